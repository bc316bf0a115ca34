package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.llib.dev/frameless/pkg/logging"

	"cmhac.dev/internal/config"
	"cmhac.dev/internal/handlers"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Failed to load configuration: %v", err)
	}

	fs := flag.NewFlagSet("server", flag.ExitOnError)
	fs.StringVar(&cfg.ServerAddr, "addr", cfg.ServerAddr, "listen address")
	fs.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "content directory")
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := cfg.Logger(os.Stdout)
	ctx = logging.ContextWith(ctx, logging.Field("cmd", "server"))

	router, err := handlers.SetupRoutes(cfg, logger)
	if err != nil {
		config.Exitf("Failed to set up routes: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn(ctx, "shutdown", logging.ErrField(err))
		}
	}()

	logger.Info(ctx, "preview server listening",
		logging.Field("addr", cfg.ServerAddr),
		logging.Field("content", cfg.ContentDir))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(ctx, "server stopped", logging.ErrField(err))
		os.Exit(1)
	}
}
