package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okatev/mailmirror/internal/jmap"
	"github.com/okatev/mailmirror/internal/mail"
	"github.com/okatev/mailmirror/internal/service"
	"github.com/okatev/mailmirror/models"
)

type pane int

const (
	paneFolders pane = iota
	paneEmails
	paneBody
)

type browserModel struct {
	ctx      context.Context
	services *service.Services
	client   jmap.Client
	pageSize int

	active pane

	// folder pane state, served from the local mirror
	parent    *string
	crumb     []models.Mailbox
	folders   []models.Mailbox
	folderIdx int

	// message pane state, fetched live
	emails   []models.EmailSummary
	emailIdx int

	body     viewport.Model
	bodyText string

	loading bool
	syncing bool
	status  string
	errMsg  string

	width  int
	height int
}

func newBrowserModel(ctx context.Context, services *service.Services, client jmap.Client, pageSize int) browserModel {
	return browserModel{
		ctx:      ctx,
		services: services,
		client:   client,
		pageSize: pageSize,
		body:     viewport.New(80, 20),
		loading:  true,
	}
}

func (m browserModel) Init() tea.Cmd {
	return m.cmdLoadFolders(nil)
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width - 4
		m.body.Height = msg.Height - 10
		return m, nil

	case foldersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.parent = msg.parent
		m.folders = msg.boxes
		m.crumb = msg.crumb
		if m.folderIdx >= len(m.folders) {
			m.folderIdx = len(m.folders) - 1
		}
		if m.folderIdx < 0 {
			m.folderIdx = 0
		}
		return m, nil

	case emailsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.emails = msg.emails
		m.emailIdx = 0
		m.active = paneEmails
		return m, nil

	case bodyLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.bodyText = msg.text
		m.body.SetContent(msg.text)
		m.body.GotoTop()
		m.active = paneBody
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("sync failed: %v", msg.err)
			return m, nil
		}
		m.status = "folders synced"
		return m, tea.Batch(m.cmdLoadFolders(m.parent), m.cmdClearStatus())

	case copiedMsg:
		m.status = "body copied to clipboard"
		return m, m.cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m browserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "s":
		if !m.syncing {
			m.syncing = true
			m.status = "syncing..."
			return m, m.cmdSync()
		}
		return m, nil

	case "tab":
		m.active = (m.active + 1) % 3
		return m, nil

	case "y":
		if m.active == paneBody && m.bodyText != "" {
			return m, m.cmdCopyBody()
		}
		return m, nil
	}

	switch m.active {
	case paneFolders:
		return m.handleFolderKey(msg)
	case paneEmails:
		return m.handleEmailKey(msg)
	default:
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		if msg.String() == "esc" || msg.String() == "backspace" {
			m.active = paneEmails
		}
		return m, cmd
	}
}

func (m browserModel) handleFolderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.folderIdx > 0 {
			m.folderIdx--
		}
	case "down", "j":
		if m.folderIdx < len(m.folders)-1 {
			m.folderIdx++
		}
	case "right", "l":
		if box, ok := m.selectedFolder(); ok {
			m.loading = true
			return m, m.cmdLoadFolders(&box.ServerID)
		}
	case "left", "h", "backspace":
		if len(m.crumb) > 0 {
			m.loading = true
			var up *string
			if len(m.crumb) > 1 {
				up = &m.crumb[len(m.crumb)-2].ServerID
			}
			return m, m.cmdLoadFolders(up)
		}
	case "enter":
		if box, ok := m.selectedFolder(); ok {
			m.loading = true
			return m, m.cmdLoadEmails(box.ServerID)
		}
	case "r":
		m.loading = true
		return m, m.cmdLoadFolders(m.parent)
	}
	return m, nil
}

func (m browserModel) handleEmailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.emailIdx > 0 {
			m.emailIdx--
		}
	case "down", "j":
		if m.emailIdx < len(m.emails)-1 {
			m.emailIdx++
		}
	case "enter":
		if m.emailIdx < len(m.emails) {
			m.loading = true
			return m, m.cmdLoadBody(m.emails[m.emailIdx].BlobID)
		}
	case "esc", "backspace":
		m.active = paneFolders
	}
	return m, nil
}

func (m browserModel) selectedFolder() (models.Mailbox, bool) {
	if m.folderIdx < 0 || m.folderIdx >= len(m.folders) {
		return models.Mailbox{}, false
	}
	return m.folders[m.folderIdx], true
}

// commands

func (m browserModel) cmdLoadFolders(parent *string) tea.Cmd {
	ctx := m.ctx
	rm := m.services.ReadModel
	return func() tea.Msg {
		var (
			boxes []models.Mailbox
			crumb []models.Mailbox
			err   error
		)
		if parent == nil {
			boxes, err = rm.Roots(ctx)
		} else {
			boxes, err = rm.Children(ctx, *parent)
			if err == nil {
				crumb, err = rm.Path(ctx, *parent)
			}
		}
		return foldersLoadedMsg{parent: parent, boxes: boxes, crumb: crumb, err: err}
	}
}

func (m browserModel) cmdLoadEmails(mailboxID string) tea.Cmd {
	ctx := m.ctx
	client := m.client
	limit := m.pageSize
	return func() tea.Msg {
		emails, err := client.ListEmails(ctx, mailboxID, limit)
		return emailsLoadedMsg{emails: emails, err: err}
	}
}

func (m browserModel) cmdLoadBody(blobID string) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		raw, err := client.DownloadBlob(ctx, blobID)
		if err != nil {
			return bodyLoadedMsg{err: err}
		}
		text, err := mail.ExtractText(raw)
		return bodyLoadedMsg{text: text, err: err}
	}
}

func (m browserModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService
	return func() tea.Msg {
		return syncDoneMsg{err: svc.Sync(ctx)}
	}
}

func (m browserModel) cmdCopyBody() tea.Cmd {
	text := m.bodyText
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return bodyLoadedMsg{text: text, err: err}
		}
		return copiedMsg{}
	}
}

func (m browserModel) cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// views

func (m browserModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mailmirror"))
	if crumb := m.renderCrumb(); crumb != "" {
		b.WriteString("  ")
		b.WriteString(crumbStyle.Render(crumb))
	}
	b.WriteString("\n\n")

	switch m.active {
	case paneBody:
		b.WriteString(m.body.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • y copy • q quit"))
	case paneEmails:
		b.WriteString(m.renderEmails())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter open • esc back • s sync • q quit"))
	default:
		b.WriteString(m.renderFolders())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter messages • l descend • h up • s sync • q quit"))
	}

	if m.loading {
		b.WriteString("\n" + helpStyle.Render("loading..."))
	}
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}

	return appStyle.Render(b.String())
}

func (m browserModel) renderCrumb() string {
	if len(m.crumb) == 0 {
		return ""
	}
	names := make([]string, 0, len(m.crumb))
	for _, box := range m.crumb {
		names = append(names, box.Name)
	}
	return strings.Join(names, " / ")
}

func (m browserModel) renderFolders() string {
	if len(m.folders) == 0 {
		return helpStyle.Render("no folders (press s to sync)")
	}

	var b strings.Builder
	for i, box := range m.folders {
		line := box.Name
		if box.Role != nil {
			line += " " + roleStyle.Render("["+*box.Role+"]")
		}
		if i == m.folderIdx && m.active == paneFolders {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m browserModel) renderEmails() string {
	if len(m.emails) == 0 {
		return helpStyle.Render("no messages")
	}

	var b strings.Builder
	for i, email := range m.emails {
		subject := email.Subject
		if subject == "" {
			subject = "(no subject)"
		}
		line := fmt.Sprintf("%s  %s  %s",
			email.SentAt.Format("2006-01-02 15:04"), email.FromLine(), subject)
		if i == m.emailIdx && m.active == paneEmails {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
