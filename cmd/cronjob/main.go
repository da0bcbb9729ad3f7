package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"partyhub-backend/internal/config"
	"partyhub-backend/internal/jobs"
	"partyhub-backend/internal/logger"
	fsrepo "partyhub-backend/internal/repository/firestore"
	"partyhub-backend/internal/scheduler"
	"partyhub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'retry-pending-refunds', 'process-ended-party-stats')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting PartyHub Cronjob Runner...", "log_level", cfg.Log.Level)

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

	// Initialize Services
	ratingService := service.NewRatingService(store.RatingRepository, store.PartyRepository)
	paymentProvider := service.NewLogPaymentProvider()

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(
		store.PartyRepository,
		store.RefundRepository,
		ratingService,
		paymentProvider,
		cfg,
	)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "retry-pending-refunds":
		jobRunner.RetryPendingRefunds()
	case "process-ended-party-stats":
		jobRunner.ProcessEndedPartyStats()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - retry-pending-refunds\n")
		fmt.Printf("  - process-ended-party-stats\n")
		os.Exit(1)
	}
}
