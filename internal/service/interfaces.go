package service

import (
	"context"
	"time"

	"github.com/okatev/mailmirror/models"
)

// SyncService defines the contract for reconciling the local folder mirror
// with the remote mailbox store.
type SyncService interface {
	// Sync performs one reconciliation pass. On an empty mirror it seeds a
	// full folder snapshot; otherwise it requests the changes accumulated
	// since the stored token and applies them as one atomic change set,
	// repeating while the remote store reports more changes pending.
	// Returns an error if any protocol call or mirror write fails; the
	// mirror is left at the last token that was fully applied.
	Sync(ctx context.Context) error
}

// ReadModel defines the queries the presentation layer runs against the
// mirror. All reads are local; no method ever touches the network.
type ReadModel interface {
	// Roots returns the top-level folders ordered by sort order then name.
	Roots(ctx context.Context) ([]models.Mailbox, error)

	// Children returns the direct children of the folder with the given
	// server id, ordered by sort order then name.
	Children(ctx context.Context, serverID string) ([]models.Mailbox, error)

	// Folder returns the folder with the given server id.
	Folder(ctx context.Context, serverID string) (*models.Mailbox, error)

	// Path returns the chain of folders from a root down to the folder with
	// the given server id, inclusive.
	Path(ctx context.Context, serverID string) ([]models.Mailbox, error)
}

// SyncJob defines the contract for a background worker that periodically
// runs a reconciliation pass.
type SyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any
	// previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
