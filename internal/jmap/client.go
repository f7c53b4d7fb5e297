package jmap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/okatev/mailmirror/internal/logger"
	"github.com/okatev/mailmirror/models"
)

// ClientConfig carries everything the protocol client needs, resolved once
// at startup. No ambient environment lookups happen past this point.
type ClientConfig struct {
	// SessionURL is the session bootstrap endpoint.
	SessionURL string
	// Token is the opaque bearer token presented on every request.
	Token string
	// Timeout bounds each outbound request.
	Timeout time.Duration
}

type jmapClient struct {
	http       *resty.Client
	sessionURL string
	logger     *logger.Logger

	mu      sync.RWMutex
	session *models.Session
}

// NewClient constructs a [Client] speaking the JMAP wire protocol over
// HTTP. Connect must be called before any other method.
func NewClient(cfg ClientConfig, log *logger.Logger) Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", "Bearer "+strings.TrimSpace(cfg.Token)).
		SetHeader("Content-Type", "application/json")

	return &jmapClient{
		http:       cli,
		sessionURL: cfg.SessionURL,
		logger:     log,
	}
}

// Connect implements [Client]. The session document is fetched once and
// cached; there are no lazy lookups hidden behind later calls.
func (c *jmapClient) Connect(ctx context.Context) (models.Session, error) {
	c.mu.RLock()
	cached := c.session
	c.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	resp, err := c.http.R().SetContext(ctx).Get(c.sessionURL)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: session request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	var doc sessionDocument
	if err = json.Unmarshal(resp.Body(), &doc); err != nil {
		return models.Session{}, fmt.Errorf("%w: decode session document: %w", ErrProtocol, err)
	}

	session := models.Session{
		AccountID:   doc.PrimaryAccounts[capMail],
		APIURL:      doc.APIURL,
		DownloadURL: doc.DownloadURL,
	}
	if session.AccountID == "" {
		return models.Session{}, fmt.Errorf("%w: session document has no primary mail account", ErrProtocol)
	}
	if session.APIURL == "" {
		return models.Session{}, fmt.Errorf("%w: session document has no api url", ErrProtocol)
	}

	c.mu.Lock()
	c.session = &session
	c.mu.Unlock()

	c.logger.Debug().
		Str("func", "jmapClient.Connect").
		Str("account_id", session.AccountID).
		Msg("session established")

	return session, nil
}

// FetchAllMailboxes implements [Client].
func (c *jmapClient) FetchAllMailboxes(ctx context.Context) (string, []models.Mailbox, error) {
	session, err := c.currentSession()
	if err != nil {
		return "", nil, err
	}

	responses, err := c.call(ctx, []invocation{
		{name: methodMailboxGet, args: mailboxGetArgs{AccountID: session.AccountID, IDs: nil}, callID: "0"},
	})
	if err != nil {
		return "", nil, err
	}

	var result mailboxGetResult
	if err = decodeInvocation(responses[0], methodMailboxGet, &result); err != nil {
		return "", nil, err
	}
	if result.State == "" {
		return "", nil, fmt.Errorf("%w: Mailbox/get returned empty state", ErrProtocol)
	}
	if err = validateMailboxes(result.List); err != nil {
		return "", nil, err
	}

	return result.State, result.List, nil
}

// FetchMailboxChanges implements [Client]. UpdatedPropertiesKnown is set
// only when the server named the changed properties and at least one of
// them is mirrored locally; an absent property list means the update set
// cannot be trusted for this pass.
func (c *jmapClient) FetchMailboxChanges(ctx context.Context, sinceState string) (models.MailboxChanges, error) {
	session, err := c.currentSession()
	if err != nil {
		return models.MailboxChanges{}, err
	}

	responses, err := c.call(ctx, []invocation{
		{name: methodMailboxChanges, args: mailboxChangesArgs{AccountID: session.AccountID, SinceState: sinceState}, callID: "0"},
	})
	if err != nil {
		return models.MailboxChanges{}, err
	}

	var result mailboxChangesResult
	if err = decodeInvocation(responses[0], methodMailboxChanges, &result); err != nil {
		return models.MailboxChanges{}, err
	}
	if result.NewState == "" {
		return models.MailboxChanges{}, fmt.Errorf("%w: Mailbox/changes returned empty newState", ErrProtocol)
	}

	return models.MailboxChanges{
		NewState:               result.NewState,
		HasMore:                result.HasMoreChanges,
		CreatedIDs:             result.Created,
		UpdatedIDs:             result.Updated,
		DestroyedIDs:           result.Destroyed,
		UpdatedPropertiesKnown: result.UpdatedProperties != nil && relevantToMirror(*result.UpdatedProperties),
	}, nil
}

// FetchMailboxesByIDs implements [Client].
func (c *jmapClient) FetchMailboxesByIDs(ctx context.Context, ids []string) ([]models.Mailbox, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	session, err := c.currentSession()
	if err != nil {
		return nil, err
	}

	responses, err := c.call(ctx, []invocation{
		{name: methodMailboxGet, args: mailboxGetArgs{AccountID: session.AccountID, IDs: &ids}, callID: "0"},
	})
	if err != nil {
		return nil, err
	}

	var result mailboxGetResult
	if err = decodeInvocation(responses[0], methodMailboxGet, &result); err != nil {
		return nil, err
	}
	if err = validateMailboxes(result.List); err != nil {
		return nil, err
	}
	if len(result.NotFound) > 0 {
		// ids destroyed between the changes call and this one; a later
		// destroyed set will remove them from the mirror.
		c.logger.Debug().
			Str("func", "jmapClient.FetchMailboxesByIDs").
			Int("not_found", len(result.NotFound)).
			Msg("some requested mailboxes no longer exist")
	}

	return result.List, nil
}

// ListEmails implements [Client]. It chains Email/query into Email/get with
// a back reference so one round-trip returns full summaries.
func (c *jmapClient) ListEmails(ctx context.Context, mailboxID string, limit int) ([]models.EmailSummary, error) {
	session, err := c.currentSession()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	responses, err := c.call(ctx, []invocation{
		{
			name: methodEmailQuery,
			args: emailQueryArgs{
				AccountID: session.AccountID,
				Filter:    emailQueryFilter{InMailbox: mailboxID},
				Sort:      []emailQuerySort{{Property: "receivedAt", IsAscending: false}},
				Limit:     limit,
			},
			callID: "0",
		},
		{
			name: methodEmailGet,
			args: emailGetArgs{
				AccountID:  session.AccountID,
				BackRefIDs: &resultReference{ResultOf: "0", Name: methodEmailQuery, Path: "/ids"},
				Properties: []string{"subject", "from", "sentAt", "blobId"},
			},
			callID: "1",
		},
	})
	if err != nil {
		return nil, err
	}

	var result emailGetResult
	if err = decodeInvocation(responses[1], methodEmailGet, &result); err != nil {
		return nil, err
	}

	return result.List, nil
}

// DownloadBlob implements [Client]. The download URL template is expanded
// the way the session document prescribes.
func (c *jmapClient) DownloadBlob(ctx context.Context, blobID string) ([]byte, error) {
	session, err := c.currentSession()
	if err != nil {
		return nil, err
	}
	if session.DownloadURL == "" {
		return nil, fmt.Errorf("%w: session document has no download url", ErrProtocol)
	}

	url := strings.NewReplacer(
		"{accountId}", session.AccountID,
		"{blobId}", blobID,
		"{name}", "email",
		"{type}", "application/octet-stream",
	).Replace(session.DownloadURL)

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: blob download: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// call posts a batch of method calls and returns one raw response per call.
func (c *jmapClient) call(ctx context.Context, calls []invocation) ([]json.RawMessage, error) {
	session, err := c.currentSession()
	if err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(apiRequest{Using: []string{capCore, capMail}, MethodCalls: calls}).
		Post(session.APIURL)
	if err != nil {
		return nil, fmt.Errorf("%w: api request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var envelope apiResponse
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode response envelope: %w", ErrProtocol, err)
	}
	if len(envelope.MethodResponses) < len(calls) {
		return nil, fmt.Errorf("%w: %d method responses for %d calls",
			ErrProtocol, len(envelope.MethodResponses), len(calls))
	}

	return envelope.MethodResponses, nil
}

func (c *jmapClient) currentSession() (models.Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil {
		return models.Session{}, ErrNotConnected
	}
	return *c.session, nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("%w: http %d: %s", ErrTransport, resp.StatusCode(), body)
}
