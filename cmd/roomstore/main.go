package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/jcmexdev/quickbite/internal/pkg/config"
	"github.com/jcmexdev/quickbite/internal/pkg/telemetry"
	"github.com/jcmexdev/quickbite/internal/roomstore"
)

func main() {
	dev := pflag.Bool("dev", false, "serve from an in-memory store instead of Redis")
	trace := pflag.Bool("trace", true, "export traces to the OTLP collector")
	pflag.Parse()

	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *trace {
		shutdown, err := telemetry.SetupTracer(ctx, "roomstore")
		if err != nil {
			slog.Error("failed to initialise tracer", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	var store roomstore.DocumentStore
	if *dev {
		store = roomstore.NewMemoryStore()
		slog.Info("using in-memory store, documents will not survive a restart")
	} else {
		redisStore := roomstore.NewRedisStore(cfg.RoomStore.RedisAddr, cfg.RoomStore.RoomTTL)
		if err := redisStore.Ping(ctx); err != nil {
			slog.Error("redis unavailable", "addr", cfg.RoomStore.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
	}

	router := roomstore.NewRouter(roomstore.NewHandler(store))
	server := &http.Server{
		Addr:              cfg.RoomStore.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("room store running", "addr", cfg.RoomStore.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}
