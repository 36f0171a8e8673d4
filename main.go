package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"primero/rentdesk/internal/api"
	"primero/rentdesk/internal/cache"
	"primero/rentdesk/internal/config"
	"primero/rentdesk/internal/db"
	"primero/rentdesk/internal/services"
	"primero/rentdesk/internal/storage"
	"primero/rentdesk/internal/tasks"
)

var runMode = flag.String("m", "all", "Run mode: 'api', 'bg' (background tasks), 'all' (default)")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*runMode)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Database
	mongoClient, mongoDb, err := db.ConnectDB(cfg.MongoURI, cfg.MongoDbName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.DisconnectDB(mongoClient); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	if err := db.EnsureIndexes(context.Background(), mongoDb); err != nil {
		log.Fatalf("Failed to ensure database indexes: %v", err)
	}

	// Initialize Cache (Redis)
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer func() {
		if err := cache.DisconnectRedis(redisClient); err != nil {
			log.Printf("Error disconnecting from Redis: %v", err)
		}
	}()

	// Initialize contract document storage (S3)
	documentStorage, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize S3 storage: %v", err)
	}

	// Initialize Services
	userService := services.NewUserService(mongoDb)
	propertyService := services.NewPropertyService(mongoDb)
	tenantService := services.NewTenantService(mongoDb, propertyService)
	contractService := services.NewContractService(mongoDb, documentStorage)
	paymentService := services.NewPaymentService(mongoDb)
	billingService := services.NewBillingService(mongoDb, tenantService, contractService)
	reportService := services.NewReportService(mongoDb, cfg, redisClient)

	// Seed the initial admin account when configured. The unique email index
	// makes this a no-op on restarts.
	if adminEmail := os.Getenv("ADMIN_EMAIL"); adminEmail != "" {
		_, err := userService.CreateUser(context.Background(), adminEmail, os.Getenv("ADMIN_NAME"), os.Getenv("ADMIN_PASSWORD"))
		if err != nil {
			if db.IsDuplicateKeyError(err) {
				log.Printf("Admin account %s already exists, skipping seed", adminEmail)
			} else {
				log.Fatalf("Failed to seed admin account: %v", err)
			}
		} else {
			log.Printf("Seeded admin account %s", adminEmail)
		}
	}

	// WaitGroup for managing goroutines
	var wg sync.WaitGroup

	var apiSrv *http.Server
	var taskSrv *asynq.Server

	enqueuerCtx, stopEnqueuer := context.WithCancel(context.Background())
	defer stopEnqueuer()

	fmt.Printf("Starting application in '%s' mode...\n", cfg.RunMode)

	apiMode := func() {
		fmt.Println("Starting API server...")
		router := api.SetupRouter(cfg, api.Services{
			User:     userService,
			Property: propertyService,
			Tenant:   tenantService,
			Contract: contractService,
			Payment:  paymentService,
			Billing:  billingService,
			Report:   reportService,
		})
		apiSrv = &http.Server{
			Addr:    ":" + cfg.ApiPort,
			Handler: router,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Printf("API listening on :%s\n", cfg.ApiPort)
			if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("API ListenAndServe error: %v", err)
			}
			fmt.Println("API server stopped.")
		}()
	}

	bgMode := func() {
		fmt.Println("Starting background worker...")
		taskProcessor := tasks.NewTaskProcessor(paymentService)
		var mux *asynq.ServeMux
		taskSrv, mux = tasks.SetupServer(cfg, taskProcessor)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := taskSrv.Run(mux); err != nil {
				log.Fatalf("Background task server error: %v", err)
			}
			fmt.Println("Background task server stopped.")
		}()

		taskClient := tasks.NewClient(cfg)
		tasks.StartPeriodicEnqueuer(enqueuerCtx, cfg, taskClient)
	}

	switch cfg.RunMode {
	case "api":
		apiMode()
	case "bg":
		bgMode()
	case "all":
		apiMode()
		bgMode()
	default:
		log.Fatalf("Invalid run mode specified: %s.", cfg.RunMode)
	}

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	fmt.Printf("\nReceived signal: %s. Shutting down gracefully...\n", sig)

	stopEnqueuer()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if apiSrv != nil {
		fmt.Println("Shutting down API server...")
		if err := apiSrv.Shutdown(ctxShutdown); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}

	if taskSrv != nil {
		fmt.Println("Shutting down background task server...")
		taskSrv.Shutdown()
	}

	fmt.Println("Waiting for servers to stop...")
	wg.Wait()

	fmt.Println("Server gracefully stopped")
}
