package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "coachsite/internal/adapters/email"
	web "coachsite/internal/adapters/http"
	"coachsite/internal/adapters/storage"
	accountStore "coachsite/internal/adapters/storage/account"
	locationStore "coachsite/internal/adapters/storage/location"
	participantStore "coachsite/internal/adapters/storage/participant"
	seminarStore "coachsite/internal/adapters/storage/seminar"
	"coachsite/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("SITE_DB_PATH", "coachsite.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
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

	acctStore := accountStore.NewSQLiteStore(db)
	stores := &web.Stores{
		SeminarStore:     seminarStore.NewSQLiteStore(db),
		LocationStore:    locationStore.NewSQLiteStore(db),
		ParticipantStore: participantStore.NewSQLiteStore(db),
		AccountStore:     acctStore,
	}

	// Seed the operator account if no accounts exist
	adminEmail := envOrDefault("SITE_ADMIN_EMAIL", "admin@example.com")
	adminPassword := os.Getenv("SITE_ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Println("SITE_ADMIN_PASSWORD is not set, skipping admin seeding")
	} else {
		created, err := orchestrators.ExecuteSeedAdmin(context.Background(),
			orchestrators.SeedAdminInput{Email: adminEmail, Password: adminPassword},
			orchestrators.SeedAdminDeps{AccountStore: acctStore})
		if err != nil {
			log.Fatalf("failed to seed admin account: %v", err)
		}
		if created {
			log.Printf("Admin account created for %s", adminEmail)
		}
	}

	// Configure email sender
	resendKey := os.Getenv("SITE_RESEND_KEY")
	emailFrom := envOrDefault("SITE_RESEND_FROM", "Berger Coaching <noreply@berger-coaching.example>")
	emailReply := envOrDefault("SITE_REPLY_TO", adminEmail)
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		if os.Getenv("SITE_ENV") == "production" {
			log.Println("WARNING: SITE_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set SITE_RESEND_KEY for real delivery)")
		}
	}

	baseURL := envOrDefault("SITE_BASE_URL", "http://localhost:8080")
	web.SetSiteConfig(baseURL, adminEmail)

	mux := web.NewMux("static", stores)

	addr := envOrDefault("SITE_ADDR", ":8080")
	log.Printf("coachsite %s starting on %s (env=%s)", version, addr, envOrDefault("SITE_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
