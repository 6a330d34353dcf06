package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/advisory-service/internal/config"
	"github.com/Dan9191/advisory-service/internal/handler"
	"github.com/Dan9191/advisory-service/internal/integrations/ratefeed"
	"github.com/Dan9191/advisory-service/internal/middleware"
	"github.com/Dan9191/advisory-service/internal/repository"
	"github.com/Dan9191/advisory-service/internal/scheduler"
	"github.com/Dan9191/advisory-service/internal/service"
	"github.com/Dan9191/advisory-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, sender, logger, cfg)
	rates, err := ratefeed.NewClient(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to configure rate feed: %v", err)
	}
	h := handler.NewHandler(svc, rates, logger)

	digest, err := scheduler.NewDigestJob(cfg.DigestSchedule, svc, logger)
	if err != nil {
		logger.Fatalf("Failed to schedule digest: %v", err)
	}
	digest.Start()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Recover(logger), middleware.Logging(logger))
	h.Routes(r, middleware.AuthMiddleware(cfg))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	<-digest.Stop().Done()
	svc.Wait()
}
