package main

import (
	"fmt"
	"os"

	"github.com/osse101/PixelPet_Go/internal/bootstrap"
	"github.com/osse101/PixelPet_Go/internal/config"
)

// initLogger installs the session logger and returns a func closing its file
func initLogger(cfg *config.Config) (func(), error) {
	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if logFile != nil {
			_ = logFile.Sync()
			_ = logFile.Close()
		}
	}, nil
}

func exitOnError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}
