package bootstrap

import (
	"log/slog"

	"github.com/osse101/PixelPet_Go/internal/clock"
	"github.com/osse101/PixelPet_Go/internal/config"
	"github.com/osse101/PixelPet_Go/internal/handler"
	"github.com/osse101/PixelPet_Go/internal/petservice"
)

// BuildPetClient returns the remote gateway client when PetServiceURL is set and an
// in-process simulator otherwise. The readiness check is nil for the simulator.
func BuildPetClient(cfg *config.Config, clk clock.Clock) (petservice.Client, handler.HealthChecker) {
	if cfg.PetServiceURL == "" {
		slog.Info(LogMsgPetClientSimulator, "decay_interval", cfg.PetDecayInterval)
		return petservice.NewSimulator(clk, cfg.PetDecayInterval), nil
	}

	client := petservice.NewHTTPClient(cfg.PetServiceURL, cfg.APIKey, cfg.PetServiceTimeout)
	if cfg.PetServiceAttempts > 0 {
		client.MaxRetries = cfg.PetServiceAttempts
	}
	slog.Info(LogMsgPetClientRemote, "url", cfg.PetServiceURL, "attempts", client.MaxRetries)
	return client, client
}
