package tui

import (
	"github.com/okatev/mailmirror/models"
)

type foldersLoadedMsg struct {
	parent *string
	boxes  []models.Mailbox
	crumb  []models.Mailbox
	err    error
}

type emailsLoadedMsg struct {
	emails []models.EmailSummary
	err    error
}

type bodyLoadedMsg struct {
	text string
	err  error
}

type syncDoneMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
