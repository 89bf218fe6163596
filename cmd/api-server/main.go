package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"bookhub/database"
	"bookhub/internal/app"
	"bookhub/internal/config"
	"bookhub/internal/microservices/http-api/handler"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/pkg/logger"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect to the database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer database.Close(db)

	// 3. Redis is optional: without it logout cannot revoke access tokens
	// and writes are not rate limited
	rdb, err := database.ConnectRedis(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, continuing without revocation and write limits")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// 4. Setup Gin
	opts := handler.RouterOptions{
		WriteRateLimit:  cfg.WriteRateLimit,
		WriteRateWindow: cfg.WriteRateWindow,
		LoginLimiter:    middleware.NewLoginLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst),
		RequestTimeout:  cfg.RequestTimeout,
		CORSOrigins:     cfg.CORSOrigins,
	}
	if rdb != nil {
		opts.Redis = redis.UniversalClient(rdb)
	}
	r := handler.NewRouter(app.NewServices(db, rdb, cfg), opts)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("HTTP server stopped")
}
