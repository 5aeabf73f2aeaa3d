package main

import (
	"context"
	"errors"
	"fmt"
	"go-forum-app/internal/cache"
	"go-forum-app/internal/client"
	"go-forum-app/internal/config"
	"go-forum-app/internal/controller"
	"go-forum-app/internal/data"
	"go-forum-app/internal/handler"
	"go-forum-app/internal/logger"
	"go-forum-app/internal/middleware"
	"go-forum-app/internal/service"
	"go-forum-app/internal/session"
	"go-forum-app/internal/view"
	"go-forum-app/web"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Database Initialization and Migration ---
	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(db); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	// --- Session Management Setup ---
	sessionManager, err := session.New(cfg.Session, db, cfg.Server.TLS.Enabled, 5*time.Minute)
	if err != nil {
		log.Fatal(err, "Failed to initialize session manager")
	}

	// --- View Template Initialization ---
	log.Info("Initializing view templates...")
	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}
	log.Info("View templates initialized.")

	// --- Cache Initialization ---
	log.Info(fmt.Sprintf("Initializing %s cache...", cfg.Cache.Driver))
	summaryCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer summaryCache.Close()
	log.Info("Cache initialized.")

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	postRepository := data.NewSQLPostRepository(db)
	commentRepository := data.NewSQLCommentRepository(db)
	categoryRepository := data.NewCategoryRepository(db)
	forumService := service.NewForumService(
		postRepository, commentRepository, categoryRepository,
		summaryCache, time.Duration(cfg.Cache.TTL)*time.Second, log,
	)

	if cfg.Seed.OnStart {
		if _, err := forumService.CreateSamplePosts(context.Background()); err != nil {
			log.Error(err, "Failed to create sample posts")
		}
	}

	// The browser UI talks to a remote API when one is configured.
	var backend service.Forum = forumService
	if cfg.Backend.URL != "" {
		log.Info(fmt.Sprintf("Using remote forum backend at %s", cfg.Backend.URL))
		backend = client.New(cfg.Backend.URL, time.Duration(cfg.Backend.Timeout)*time.Second)
	}

	apiHandler := handler.NewAPIHandler(forumService)
	uiHandler := handler.NewUIHandler(controller.NewRegistry(backend, log, controller.DefaultRegistrySize), sessionManager, viewService, log)
	seoHandler := handler.NewSeoHandler(forumService, cfg.Server.BaseURL)

	// --- Router Setup ---
	router := handler.NewRouter(
		apiHandler, uiHandler, seoHandler,
		middleware.RequestLogger(log),
		middleware.Error(log, viewService),
		middleware.APIError(log),
		sessionManager,
	)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
