package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kgeyst.com/glance/pkg/common"
	"kgeyst.com/glance/pkg/glance/api"
	"kgeyst.com/glance/pkg/glance/infrastructure/irc"
	"kgeyst.com/glance/pkg/glance/infrastructure/rss"
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
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := api.NewLogger(config)
	glance, err := api.NewAPI(ctx, config, logger)
	if err != nil {
		return err
	}
	ircBot, err := irc.NewBot(config)
	if err != nil {
		return err
	}
	if config.GetString(rss.ConfigKeyFeedURL) != "" {
		announcer := irc.NewReplier(ircBot, ircBot.Channels[0], glance)
		feedTransport := rss.NewFeedTransport(config, announcer, logger)
		go func() {
			err := feedTransport.Run(ctx, glance.HandleEvent)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Log(fmt.Sprintf("feed transport stopped: %s", err))
			}
		}()
	}
	transport := irc.NewTransport(ircBot, web.NewURLFinder(), web.NewPageImageResolver(), glance, config, logger)
	err = transport.Run(ctx, glance.HandleEvent)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
