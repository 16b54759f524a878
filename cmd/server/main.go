package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/myday-gateway/internal/api"
	"github.com/skybi/myday-gateway/internal/config"
	"github.com/skybi/myday-gateway/internal/myday"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Stringer("config", cfg).Msg("")

	// Make sure the identity credential carries a session ID before accepting any requests
	if _, err := myday.ExtractSessionID(cfg.Token); err != nil {
		log.Fatal().Err(err).Msg("could not read the myday identity credential")
	}

	client := myday.New(cfg.Token, cfg.DeviceCode, myday.WithTimeout(cfg.UpstreamTimeout))

	// Start up the gateway API
	log.Info().Str("address", cfg.ListenAddress()).Msg("starting up the gateway API...")
	apis := &api.Service{
		Config:   cfg,
		Upstream: client,
	}
	apiErrs := make(chan error, 1)
	apis.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the gateway API raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the gateway API...")
		apis.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	<-shutdown
}
