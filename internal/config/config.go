package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration. Values are read from
// an optional YAML file and may be overridden by LAWCAL_* environment
// variables, which is how deployments inject secrets.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// Environment is "development" or "production". Production requires a
	// CSRF key and secure cookies.
	Environment string `yaml:"environment"`

	// DBPath is the SQLite database file path.
	DBPath string `yaml:"db_path"`

	// StaticDir holds the single-page frontend assets.
	StaticDir string `yaml:"static_dir"`

	// AdminEmail and AdminPassword seed the office admin account on first
	// start.
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`

	// ResendKey enables real email delivery when set; otherwise sends are
	// logged only.
	ResendKey string `yaml:"resend_key"`

	// EmailFrom is the sender address for outgoing mail.
	EmailFrom string `yaml:"email_from"`

	// DigestCron is a 5-field cron schedule for the daily session digest.
	// Empty disables the digest.
	DigestCron string `yaml:"digest_cron"`

	// DigestRecipients receive the daily digest.
	DigestRecipients []string `yaml:"digest_recipients"`
}

// Default returns the development defaults.
func Default() *Config {
	return &Config{
		Listen:      ":8080",
		Environment: "development",
		DBPath:      "lawcal.db",
		StaticDir:   "static",
		AdminEmail:  "admin@lawcal.local",
		EmailFrom:   "Office Calendar <noreply@lawcal.local>",
		DigestCron:  "0 7 * * *",
	}
}

// Load reads the config file at path (missing file is not an error) and
// applies environment overrides.
// PRE: path may be empty to skip the file entirely
// POST: returns a validated config
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// First run: environment variables alone are enough.
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.Listen, "LAWCAL_ADDR")
	setString(&c.Environment, "LAWCAL_ENV")
	setString(&c.DBPath, "LAWCAL_DB_PATH")
	setString(&c.StaticDir, "LAWCAL_STATIC_DIR")
	setString(&c.AdminEmail, "LAWCAL_ADMIN_EMAIL")
	setString(&c.AdminPassword, "LAWCAL_ADMIN_PASSWORD")
	setString(&c.ResendKey, "LAWCAL_RESEND_KEY")
	setString(&c.EmailFrom, "LAWCAL_EMAIL_FROM")
	setString(&c.DigestCron, "LAWCAL_DIGEST_CRON")
	if v := os.Getenv("LAWCAL_DIGEST_RECIPIENTS"); v != "" {
		var recipients []string
		for _, r := range strings.Split(v, ",") {
			if r = strings.TrimSpace(r); r != "" {
				recipients = append(recipients, r)
			}
		}
		c.DigestRecipients = recipients
	}
}

// Validate checks the configuration invariants.
// PRE: none
// POST: returns nil if the config is usable
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address cannot be empty")
	}
	if c.DBPath == "" {
		return errors.New("db_path cannot be empty")
	}
	if c.AdminPassword == "" {
		return errors.New("admin password is required (set LAWCAL_ADMIN_PASSWORD or admin_password)")
	}
	return nil
}

// IsProduction reports whether the server runs with production hardening.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
