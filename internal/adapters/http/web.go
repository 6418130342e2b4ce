package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"coachsite/internal/adapters/email"
	"coachsite/internal/adapters/http/middleware"
	accountStore "coachsite/internal/adapters/storage/account"
	locationStore "coachsite/internal/adapters/storage/location"
	participantStore "coachsite/internal/adapters/storage/participant"
	seminarStore "coachsite/internal/adapters/storage/seminar"
)

// Stores holds all storage dependencies.
type Stores struct {
	SeminarStore     seminarStore.Store
	LocationStore    locationStore.Store
	ParticipantStore participantStore.Store
	AccountStore     accountStore.Store
}

// loadCSRFKey reads the CSRF secret from SITE_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("SITE_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("SITE_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("SITE_ENV") == "production" {
		log.Fatal("SITE_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set SITE_CSRF_KEY for production.")
	return key
}

// loadJWTSecret reads the session signing secret from SITE_JWT_SECRET.
func loadJWTSecret() []byte {
	if secret := os.Getenv("SITE_JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	if os.Getenv("SITE_ENV") == "production" {
		log.Fatal("SITE_JWT_SECRET is required in production")
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatalf("failed to generate JWT secret: %v", err)
	}
	log.Println("WARNING: using random JWT secret (sessions won't survive restart). Set SITE_JWT_SECRET for production.")
	return secret
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global JWT signing secret (set by NewMux)
var jwtSecret []byte

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// LoginAttemptsPerHour controls the login endpoint throttle per IP.
var LoginAttemptsPerHour = 3

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// Site configuration (set by SetSiteConfig)
var siteBaseURL string
var siteAdminEmail string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// SetSiteConfig sets the public base URL (for unregister links) and the
// operator inbox (for notifications and contact forwarding).
func SetSiteConfig(baseURL, adminEmail string) {
	siteBaseURL = baseURL
	siteAdminEmail = adminEmail
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	jwtSecret = loadJWTSecret()
	middleware.SecureCookies = os.Getenv("SITE_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiters: a general per-IP limit plus the stricter login throttle
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)
	loginLimiter := middleware.NewRateLimiter(LoginAttemptsPerHour, time.Hour)

	// Apply middleware: SecurityHeaders -> CSRF -> Auth -> LoginThrottle -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(jwtSecret),
		middleware.LimitPath("/admin/token", loginLimiter),
		middleware.RateLimit(limiter),
	)
}
