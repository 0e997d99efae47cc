package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/api"
	"kgeyst.com/glance/pkg/glance/infrastructure/console"
	"kgeyst.com/glance/pkg/glance/infrastructure/web"
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	err := common.LoadEnv(".env")
	if err != nil {
		return err
	}
	config, err := common.LoadConfig("config.yaml")
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger := api.NewLogger(config)
	glance, err := api.NewAPI(ctx, config, logger)
	if err != nil {
		return err
	}
	transport := console.NewTransport(web.NewURLFinder(), config, logger)
	err = transport.Run(ctx, glance.HandleEvent)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
