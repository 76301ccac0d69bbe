package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"debt-planner/config"
	httpLayer "debt-planner/http"
	"debt-planner/repository"
	"debt-planner/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var (
		accountRepo repository.AccountRepository
		budgetRepo  repository.BudgetRepository
	)
	if cfg.Database.URL != "" {
		db, err := repository.InitDB(cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := repository.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		accountRepo = repository.NewAccountRepositoryGorm(db)
		budgetRepo = repository.NewBudgetRepositoryGorm(db)
	} else {
		log.Println("Warning: database url not set, using in-memory account store")
		accountRepo = repository.NewAccountRepositoryMemory()
		budgetRepo = repository.NewBudgetRepositoryMemory()
	}

	var cache repository.CacheRepository = repository.NewMemoryCache()
	if cfg.Redis.URL != "" {
		redisCache, err := repository.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			log.Printf("Warning: redis unavailable, caching estimates in memory: %v", err)
		} else {
			defer redisCache.Close()
			cache = redisCache
		}
	}

	var estimator service.RateEstimator = service.StaticRateEstimator{}
	if cfg.OpenAI.APIKey != "" {
		estimator = service.NewAIService(service.AIConfig{
			APIKey:   cfg.OpenAI.APIKey,
			APIURL:   cfg.OpenAI.URL,
			Model:    cfg.OpenAI.Model,
			Timeout:  cfg.OpenAI.Timeout,
			CacheTTL: cfg.Estimate.CacheTTL,
		}, cache)
	}

	payoffService := service.NewDebtPayoffService()
	planningService := service.NewPlanningService(accountRepo, budgetRepo, estimator, payoffService)
	planHandler := httpLayer.NewPlanHandler(payoffService, planningService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle("/debt/plan", httpLayer.RateLimitMiddleware(rateLimiter, http.HandlerFunc(planHandler.GeneratePlan)))
	mux.Handle("/debt/plans", httpLayer.RateLimitMiddleware(rateLimiter, http.HandlerFunc(planHandler.GeneratePlans)))
	mux.Handle("/debt/enriched-plans", httpLayer.RateLimitMiddleware(rateLimiter, http.HandlerFunc(planHandler.GenerateEnrichedPlans)))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Debt planner listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
