package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "lawcal/internal/adapters/email"
	web "lawcal/internal/adapters/http"
	"lawcal/internal/adapters/http/middleware"
	"lawcal/internal/adapters/storage"
	accountStore "lawcal/internal/adapters/storage/account"
	activityStore "lawcal/internal/adapters/storage/activity"
	casefileStore "lawcal/internal/adapters/storage/casefile"
	sessionStore "lawcal/internal/adapters/storage/session"
	suggestStore "lawcal/internal/adapters/storage/suggest"
	"lawcal/internal/application/orchestrators"
	"lawcal/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "lawcal.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// WAL mode, foreign keys and a busy timeout keep the embedded DB safe
	// under concurrent handler access
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	// Wrap the DB so slow queries are logged
	timedDB := storage.NewTimedDB(db)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:  acctStore,
		CaseStore:     casefileStore.NewSQLiteStore(timedDB),
		SessionStore:  sessionStore.NewSQLiteStore(timedDB),
		ActivityStore: activityStore.NewSQLiteStore(timedDB),
		SuggestStore:  suggestStore.NewSQLiteStore(timedDB),
	}

	// Seed the office admin account on first start
	seedDeps := orchestrators.SeedAdminDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			log.Println("WARNING: resend_key is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set LAWCAL_RESEND_KEY for real delivery)")
		}
	}

	// Daily session digest for the office inbox
	if cfg.DigestCron != "" && len(cfg.DigestRecipients) > 0 {
		digestDeps := orchestrators.DailyDigestDeps{
			SessionStore: stores.SessionStore,
			Sender:       sender,
			From:         cfg.EmailFrom,
			Recipients:   cfg.DigestRecipients,
			Now:          func() time.Time { return time.Now().UTC() },
		}
		scheduler, err := orchestrators.StartDigestScheduler(cfg.DigestCron, digestDeps)
		if err != nil {
			log.Fatalf("failed to start digest scheduler: %v", err)
		}
		defer scheduler.Stop()
		log.Printf("Daily digest scheduled (%s, %d recipients)", cfg.DigestCron, len(cfg.DigestRecipients))
	}

	middleware.SecureCookies = cfg.IsProduction()
	mux := web.NewMux(cfg.StaticDir, stores)

	log.Printf("lawcal %s starting on %s (env=%s)", version, cfg.Listen, cfg.Environment)
	if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
