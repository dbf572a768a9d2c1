package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/miy4x/shigezane-admin/internal/buildinfo"
	"github.com/miy4x/shigezane-admin/internal/client/cli"
	"github.com/miy4x/shigezane-admin/internal/client/config"
	"github.com/miy4x/shigezane-admin/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
