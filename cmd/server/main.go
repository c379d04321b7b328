package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/verischol/internal/buildinfo"
	"github.com/dmitrijs2005/verischol/internal/server"
	"github.com/dmitrijs2005/verischol/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		stop()
		os.Exit(1)
	}

	app.Run(ctx)

}
