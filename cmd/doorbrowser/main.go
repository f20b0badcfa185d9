// doorbrowser is an interactive editor for parametric doors: a variant list,
// a property panel generated from the door schema and a live 3D preview.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/doorsmith/internal/config"
	"github.com/Faultbox/doorsmith/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg, logger.Named("doorbrowser"))
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	defer app.Close()

	app.Run()
}
