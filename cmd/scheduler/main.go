package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/campuspay/fee-engine/internal/config"
	"github.com/campuspay/fee-engine/internal/repository"
	"github.com/campuspay/fee-engine/internal/service"
)

func main() {
	log.Println("Starting fee status scheduler...")

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	structureRepo := repository.NewFeeStructureRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	feeService := service.NewFeeService(structureRepo, transactionRepo, redisClient, cfg)

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(loc))

	// Schedule tasks
	setupCronJobs(c, feeService)

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, feeService *service.FeeService) {
	// Daily job just after midnight: sweep cached breakdowns and refresh
	// progress roll-ups so date rollovers (installments slipping into
	// overdue overnight) show up without waiting for cache expiry.
	_, err := c.AddFunc("0 5 0 * * *", func() {
		log.Println("Running daily status refresh job...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		if err := feeService.RefreshStatuses(ctx); err != nil {
			log.Printf("Daily status refresh finished with errors: %v", err)
			return
		}
		log.Println("Daily status refresh completed")
	})
	if err != nil {
		log.Printf("Error scheduling status refresh job: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}
