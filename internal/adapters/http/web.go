package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"lawcal/internal/adapters/http/middleware"
	accountStore "lawcal/internal/adapters/storage/account"
	activityStore "lawcal/internal/adapters/storage/activity"
	casefileStore "lawcal/internal/adapters/storage/casefile"
	sessionStore "lawcal/internal/adapters/storage/session"
	suggestStore "lawcal/internal/adapters/storage/suggest"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	CaseStore     casefileStore.Store
	SessionStore  sessionStore.Store
	ActivityStore activityStore.Store
	SuggestStore  suggestStore.Store
}

// loadCSRFKey reads the CSRF secret from LAWCAL_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("LAWCAL_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("LAWCAL_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("LAWCAL_ENV") == "production" {
		log.Fatal("LAWCAL_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (form tokens won't survive restart). Set LAWCAL_CSRF_KEY for production.")
	return key
}

// trustedOrigins reads extra CSRF trusted origins from LAWCAL_TRUSTED_ORIGINS
// (comma-separated host[:port] values).
func trustedOrigins() []string {
	v := os.Getenv("LAWCAL_TRUSTED_ORIGINS")
	if v == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, middleware.SecureCookies, trustedOrigins()),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
