package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"course-manager-client/internal/api"
	"course-manager-client/internal/config"
	"course-manager-client/internal/gateway"
	"course-manager-client/internal/logging"
	"course-manager-client/internal/session"
	"course-manager-client/internal/storage"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "error: loading .env: %s\n", err)
		return 1
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 1
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	sessions := session.NewStore(storage.NewFile(cfg.StateFile), log)
	changes, unwatch := sessions.Watch()
	defer unwatch()
	go func() {
		for c := range changes {
			log.Debug("session changed", zap.Bool("active", c.Active), zap.Int64("user_id", c.Session.ID))
		}
	}()
	sessions.Initialize()

	gw, err := gateway.New(cfg.BackendURL, sessions.Credentials(),
		gateway.WithLogger(log),
		gateway.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		log.Error("gateway setup failed", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := commandLine{
		client: api.New(gw, sessions, api.WithLogger(log)),
		raw:    gw,
		out:    os.Stdout,
		stdin:  stdinFD(),
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}
		return 1
	}
	return 0
}
