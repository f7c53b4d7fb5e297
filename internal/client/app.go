// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Oleg Katev

package client

import (
	"context"
	"fmt"
	"os"

	"github.com/okatev/mailmirror/internal/config"
	"github.com/okatev/mailmirror/internal/logger"
	"github.com/okatev/mailmirror/internal/service"
	"github.com/okatev/mailmirror/internal/tui"
)

type App struct {
	services *service.Services
	tui      *tui.TUI
	workers  config.Workers
	logger   *logger.Logger
}

func NewApp(services *service.Services, ui *tui.TUI, workers config.Workers, log *logger.Logger) (*App, error) {
	return &App{
		services: services,
		tui:      ui,
		workers:  workers,
		logger:   log,
	}, nil
}

// Run performs an initial reconciliation pass, starts the periodic sync job
// and hands control to the terminal UI. A failed initial sync is reported
// but does not prevent browsing the last mirrored state.
func (a *App) Run() error {
	ctx := context.Background()

	if err := a.services.SyncService.Sync(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("initial sync failed, showing last mirrored state")
		fmt.Fprintf(os.Stderr, "sync warning: %v\n", err)
	}

	if a.workers.SyncInterval > 0 {
		a.services.SyncJob.Start(ctx, a.workers.SyncInterval)
		defer a.services.SyncJob.Stop()
	}

	return a.tui.Run(ctx)
}
