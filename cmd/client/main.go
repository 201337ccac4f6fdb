package main

import (
	"context"
	"log"
	"os"

	"github.com/notechain/notechain/internal/buildinfo"
	"github.com/notechain/notechain/internal/client/config"
	"github.com/notechain/notechain/internal/client/tui"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := tui.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
