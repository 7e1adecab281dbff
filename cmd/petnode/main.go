// Command petnode serves the in-process pet simulator over the pet service HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/PixelPet_Go/internal/bootstrap"
	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/config"
	"github.com/osse101/PixelPet_Go/internal/logger"
	"github.com/osse101/PixelPet_Go/internal/petservice"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.ServiceName = "pixel-petnode"
	logger.InitLogger(bootstrap.LoggerConfig(cfg))

	sim := petservice.NewSimulator(clock.Real{}, cfg.PetDecayInterval)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.PetNodePort),
		Handler:           petservice.NewGateway(sim, cfg.APIKey).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Pet node listening", "addr", srv.Addr, "decay_interval", cfg.PetDecayInterval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Pet node failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Pet node forced to shutdown", "error", err)
	}
	slog.Info("Pet node stopped")
}
