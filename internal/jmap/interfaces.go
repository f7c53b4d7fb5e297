package jmap

import (
	"context"

	"github.com/okatev/mailmirror/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/jmap_client_mock.go -package=mock

// Client is the protocol boundary the reconciler and presentation layer
// consume. Implementations must validate response shapes before returning
// them; core logic never sees raw wire data.
type Client interface {
	// Connect resolves the session document (account id, API URL, download
	// URL) into an immutable [models.Session]. Idempotent: after the first
	// success the cached descriptor is returned.
	Connect(ctx context.Context) (models.Session, error)

	// FetchAllMailboxes returns the complete folder listing together with
	// the state token it reflects.
	FetchAllMailboxes(ctx context.Context) (string, []models.Mailbox, error)

	// FetchMailboxChanges returns the created/updated/destroyed id sets
	// accumulated since sinceState, plus the token they advance to.
	FetchMailboxChanges(ctx context.Context, sinceState string) (models.MailboxChanges, error)

	// FetchMailboxesByIDs resolves ids to full mailbox objects. Ids the
	// server no longer knows are silently absent from the result; they
	// will arrive in a later destroyed set.
	FetchMailboxesByIDs(ctx context.Context, ids []string) ([]models.Mailbox, error)

	// ListEmails returns the newest messages in a folder, newest first.
	// Messages are fetched live and never mirrored.
	ListEmails(ctx context.Context, mailboxID string, limit int) ([]models.EmailSummary, error)

	// DownloadBlob fetches the raw RFC 5322 bytes of a message.
	DownloadBlob(ctx context.Context, blobID string) ([]byte, error)
}
