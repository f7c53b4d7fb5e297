package main

import (
	"context"
	"fmt"

	"github.com/okatev/mailmirror/internal/client"
	"github.com/okatev/mailmirror/internal/config"
	"github.com/okatev/mailmirror/internal/jmap"
	"github.com/okatev/mailmirror/internal/logger"
	"github.com/okatev/mailmirror/internal/service"
	"github.com/okatev/mailmirror/internal/store"
	"github.com/okatev/mailmirror/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetConfig()
	if err != nil {
		log := logger.NewLogger("mailmirror")
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log := newLogger(cfg)

	remote := jmap.NewClient(jmap.ClientConfig{
		SessionURL: cfg.Remote.SessionURL,
		Token:      cfg.Remote.Token,
		Timeout:    cfg.Remote.RequestTimeout,
	}, log)

	db, err := store.NewDB(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create mirror database")
	}

	mirror := store.NewMirrorRepository(db, log)
	services := service.NewServices(remote, mirror, log)

	ui, err := tui.New(services, remote, cfg.App.EmailPageSize, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("run error")
	}
}

// newLogger routes logs to the configured file when set, since the terminal
// UI owns both stdout and the alternate screen.
func newLogger(cfg *config.Config) *logger.Logger {
	if cfg.App.LogPath != "" {
		return logger.NewFileLogger("mailmirror", cfg.App.LogPath)
	}
	return logger.NewLogger("mailmirror")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
