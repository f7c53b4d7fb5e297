package store

import (
	"context"

	"github.com/okatev/mailmirror/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mirror_store_mock.go -package=mock

// MirrorStore persists the local folder mirror and its sync token.
//
// All mutating operations are transactional: either the full change set and
// the new token land together, or nothing does.
type MirrorStore interface {
	// Initialize seeds an empty mirror with a full folder snapshot and the
	// token that snapshot corresponds to. Returns [ErrStateConflict] when a
	// token is already present.
	Initialize(ctx context.Context, account string, nodes []models.Mailbox, token string) error

	// ApplyDiff applies a change set and advances the token in the same
	// transaction. Returns [ErrNotInitialized] when no token is stored yet,
	// or an [IntegrityError] when the change set violates mirror constraints.
	ApplyDiff(ctx context.Context, diff models.MailboxDiff, newToken string) error

	// CurrentToken returns the stored sync token, or "" when the mirror has
	// never been initialized.
	CurrentToken(ctx context.Context) (string, error)

	// ListChildren returns the folders whose parent is parentID, ordered by
	// sort order then name. A nil parentID selects the top-level folders.
	ListChildren(ctx context.Context, parentID *string) ([]models.Mailbox, error)

	// GetNode returns the folder with the given server id, or
	// [ErrNodeNotFound].
	GetNode(ctx context.Context, serverID string) (*models.Mailbox, error)
}
