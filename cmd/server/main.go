package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/freelancetrack/invoice-server/internal/api"
	"github.com/freelancetrack/invoice-server/internal/api/portal/session/storage/inmem"
	"github.com/freelancetrack/invoice-server/internal/config"
	"github.com/freelancetrack/invoice-server/internal/storage"
	"github.com/freelancetrack/invoice-server/internal/storage/cache"
	storageinmem "github.com/freelancetrack/invoice-server/internal/storage/inmem"
	"github.com/freelancetrack/invoice-server/internal/storage/postgres"
	"github.com/freelancetrack/invoice-server/internal/task"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
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
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Initialize the storage driver, wrapping it in the caching layer
	log.Info().Str("driver", cfg.StorageDriver).Msg("initializing storage...")
	var underlying storage.Driver
	switch cfg.StorageDriver {
	case "postgres":
		underlying = postgres.New(cfg.PostgresDSN)
	case "inmem":
		underlying = storageinmem.New()
	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown storage driver")
	}
	if err := underlying.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the storage driver")
	}
	driver := cache.New(underlying)
	if err := driver.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the storage cache")
	}
	defer driver.Close()

	// Create the session storage and schedule a task that terminates expired sessions
	sessions, err := inmem.New()
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize the session storage")
	}
	cleanupTask := task.NewRepeating(func() {
		n, err := sessions.TerminateExpired(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("could not terminate expired sessions")
		} else if n > 0 {
			log.Info().Int("amount", n).Msg("terminated expired sessions")
		}
	}, time.Minute)
	cleanupTask.Start()
	defer cleanupTask.Stop(false)

	// Start up the invoice API
	log.Info().Str("address", cfg.ListenAddress).Msg("starting up the invoice API...")
	apis := &api.Service{
		Config:   cfg,
		Storage:  driver,
		Sessions: sessions,
	}
	apiErrs := make(chan error, 1)
	apis.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the API service raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the invoice API...")
		apis.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
