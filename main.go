package main

import (
	"log"

	api "startupmail-backend/cmd/api"
	"startupmail-backend/internal/analytics"
	authdomain "startupmail-backend/internal/auth/domain"
	authrepo "startupmail-backend/internal/auth/repository"
	authusecase "startupmail-backend/internal/auth/usecase"
	maildomain "startupmail-backend/internal/mail/domain"
	mailrepo "startupmail-backend/internal/mail/repository"
	mailusecase "startupmail-backend/internal/mail/usecase"
	"startupmail-backend/pkg/config"
	"startupmail-backend/pkg/database"
	"startupmail-backend/pkg/demomail"
	"startupmail-backend/pkg/imapmail"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&maildomain.EmailAccount{},
		&maildomain.EmailMessage{},
		&maildomain.Draft{},
		&maildomain.Template{},
		&maildomain.Campaign{},
		&maildomain.Contact{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authrepo.NewUserRepository(db)
	sessionRepo := authrepo.NewSessionRepository(db)
	accountRepo := mailrepo.NewAccountRepository(db)
	emailRepo := mailrepo.NewEmailRepository(db)
	draftRepo := mailrepo.NewDraftRepository(db)
	templateRepo := mailrepo.NewTemplateRepository(db)
	campaignRepo := mailrepo.NewCampaignRepository(db)

	// Build the provider registry. The simulated providers are always
	// available; the direct-protocol one joins only when SMTP is
	// configured.
	registry := maildomain.NewProviderRegistry()
	registry.Register("gmail", demomail.NewService("gmail.com"))
	registry.Register("outlook", demomail.NewService("outlook.com"))
	if cfg.SMTPHost != "" {
		registry.Register("imap", imapmail.NewService(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUseTLS,
			cfg.IMAPHost, cfg.IMAPPort, cfg.IMAPUseSSL,
		))
	} else {
		log.Printf("[WARN] SMTP_HOST not configured, direct-protocol provider disabled")
	}

	// Initialize use cases
	authUsecaseInstance := authusecase.NewAuthUsecase(userRepo, sessionRepo, cfg)
	mailUsecaseInstance := mailusecase.NewMailUsecase(registry, accountRepo, emailRepo, draftRepo, templateRepo, campaignRepo)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, mailUsecaseInstance, analytics.NewGenerator())

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
