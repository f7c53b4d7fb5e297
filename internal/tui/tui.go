// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Oleg Katev

// Package tui implements the terminal mailbox browser: a folder pane served
// from the local mirror, a message pane fetched live from the remote store,
// and a body viewport.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okatev/mailmirror/internal/jmap"
	"github.com/okatev/mailmirror/internal/logger"
	"github.com/okatev/mailmirror/internal/service"
)

type TUI struct {
	services *service.Services
	client   jmap.Client
	pageSize int
}

func New(services *service.Services, client jmap.Client, pageSize int, _ *logger.Logger) (*TUI, error) {
	return &TUI{
		services: services,
		client:   client,
		pageSize: pageSize,
	}, nil
}

// Run starts the browser and blocks until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	model := newBrowserModel(ctx, t.services, t.client, t.pageSize)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
