package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-manager-client/internal/auth"
	"course-manager-client/internal/config"
	"course-manager-client/internal/logging"
	"course-manager-client/internal/middleware"
	"course-manager-client/internal/server"
	"course-manager-client/internal/store"
)

func main() {
	seed := flag.Bool("seed", false, "Load sample users, classrooms, tags and events (same as SEED_DATA=true).")
	envFile := flag.String("env", ".env", "Optional dotenv file read before the environment.")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: loading %s: %s\n", *envFile, err)
		os.Exit(1)
	}
	cfg, err := config.LoadBackendConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)
	st := store.New()
	if *seed || cfg.SeedData {
		if err := st.Seed(); err != nil {
			log.Fatal("seeding failed", zap.Error(err))
		}
		log.Info("sample data loaded", zap.String("password", store.SeedPassword))
	}

	tokenCfg := auth.DefaultTokenConfig(cfg.MasterSecret)
	tokenCfg.Expiry = cfg.TokenExpiry

	limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	defer limiter.Close()

	router := server.NewRouter(server.Deps{
		Store:        st,
		TokenConfig:  tokenCfg,
		Log:          log,
		LoginLimiter: limiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, router, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
