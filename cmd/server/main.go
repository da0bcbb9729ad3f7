package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	httpapi "partyhub-backend/internal/api/http"
	"partyhub-backend/internal/config"
	"partyhub-backend/internal/logger"
	fsrepo "partyhub-backend/internal/repository/firestore"
	"partyhub-backend/internal/security"
	"partyhub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting PartyHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Firebase configuration", "project_id", cfg.Firebase.ProjectID)

	ctx := context.Background()

	// Initialize Firebase
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firebase app", "error", err)
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		logger.Error("Failed to connect to Firestore", "error", err)
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer fsClient.Close()
	logger.Info("Firestore connection established")

	// Initialize Repositories
	store := fsrepo.NewStore(fsClient)

	// Initialize token verification
	var verifier httpapi.TokenVerifier
	if cfg.Auth.Mode == "local" {
		logger.Info("Using local JWT auth mode")
		verifier = httpapi.NewLocalVerifier(security.NewTokenManager(cfg.Auth.JWTSecret))
	} else {
		authClient, err := app.Auth(ctx)
		if err != nil {
			logger.Error("Failed to initialize Firebase auth", "error", err)
			log.Fatalf("Failed to initialize Firebase auth: %v", err)
		}
		verifier = httpapi.NewFirebaseVerifier(authClient)
	}

	// Initialize notification transport
	var notifier service.Notifier
	switch cfg.Notifier.Mode {
	case "push":
		msgClient, err := app.Messaging(ctx)
		if err != nil {
			logger.Error("Failed to initialize Firebase messaging", "error", err)
			log.Fatalf("Failed to initialize Firebase messaging: %v", err)
		}
		notifier = service.NewPushNotifier(msgClient)
	case "email":
		notifier = service.NewEmailNotifier(cfg.Notifier.SendGridAPIKey, cfg.Notifier.FromEmail, cfg.Notifier.FromName)
	default:
		logger.Info("Using log-only notification transport")
		notifier = service.NewLogNotifier()
	}
	dispatcher := service.NewNotificationDispatcher(store.UserRepository, notifier)

	// Initialize Services
	ledgerSvc := service.NewLedgerService(store.LedgerRepository)
	purchaseSvc := service.NewPurchaseService(store.ProductRepository, ledgerSvc)
	ratingSvc := service.NewRatingService(store.RatingRepository, store.PartyRepository)
	partySvc := service.NewPartyService(
		store.PartyRepository,
		store.UserRepository,
		ledgerSvc,
		dispatcher,
		service.PartyConfig{
			ListingFeeSubcredits: cfg.Party.ListingFeeSubcredits,
			CountUnknownGenders:  cfg.Party.CountUnknownGenders,
		},
	)

	// Initialize HTTP handlers
	partyHandler := httpapi.NewPartyHandler(partySvc, ratingSvc)
	ledgerHandler := httpapi.NewLedgerHandler(ledgerSvc, purchaseSvc)
	router := httpapi.NewRouter(verifier, partyHandler, ledgerHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
