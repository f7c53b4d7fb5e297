package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okatev/mailmirror/internal/jmap"
	"github.com/okatev/mailmirror/internal/logger"
	"github.com/okatev/mailmirror/internal/store"
	"github.com/okatev/mailmirror/models"
)

// maxChangePasses bounds a single Sync call when the remote store keeps
// reporting more changes pending. Each pass still advances the token, so the
// next Sync resumes where this one stopped.
const maxChangePasses = 32

type syncReconciler struct {
	client jmap.Client
	store  store.MirrorStore
	logger *logger.Logger
}

// NewSyncReconciler creates the [SyncService] that keeps the local folder
// mirror converged with the remote mailbox store.
func NewSyncReconciler(client jmap.Client, mirrorStore store.MirrorStore, logger *logger.Logger) SyncService {
	return &syncReconciler{
		client: client,
		store:  mirrorStore,
		logger: logger,
	}
}

func (s *syncReconciler) Sync(ctx context.Context) error {
	log := s.logger.With().
		Str("sync_pass", uuid.NewString()).
		Logger()
	ctx = log.WithContext(ctx)

	session, err := s.client.Connect(ctx)
	if err != nil {
		return fmt.Errorf("connect to remote store: %w", err)
	}

	token, err := s.store.CurrentToken(ctx)
	if err != nil {
		return fmt.Errorf("read stored sync token: %w", err)
	}

	if token == "" {
		return s.bootstrap(ctx, session.AccountID)
	}

	return s.reconcile(ctx, token)
}

// bootstrap seeds an empty mirror with the full folder listing and the
// token the listing reflects.
func (s *syncReconciler) bootstrap(ctx context.Context, accountID string) error {
	log := logger.FromContext(ctx)

	state, boxes, err := s.client.FetchAllMailboxes(ctx)
	if err != nil {
		return fmt.Errorf("fetch full folder listing: %w", err)
	}

	if err = s.store.Initialize(ctx, accountID, boxes, state); err != nil {
		return fmt.Errorf("seed mirror: %w", err)
	}

	log.Info().
		Str("func", "syncReconciler.bootstrap").
		Int("folders", len(boxes)).
		Msg("mirror bootstrapped from full folder listing")

	return nil
}

// reconcile requests the changes accumulated since token and applies them,
// repeating while the remote store reports the change sets were truncated.
func (s *syncReconciler) reconcile(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	for pass := 0; pass < maxChangePasses; pass++ {
		changes, err := s.client.FetchMailboxChanges(ctx, token)
		if err != nil {
			return fmt.Errorf("fetch folder changes since token: %w", err)
		}

		if changes.NewState == token && noChanges(changes) {
			log.Debug().
				Str("func", "syncReconciler.reconcile").
				Msg("mirror already in sync")
			return nil
		}

		diff, err := s.resolveDiff(ctx, changes)
		if err != nil {
			return err
		}

		if err = s.store.ApplyDiff(ctx, diff, changes.NewState); err != nil {
			return fmt.Errorf("apply change set: %w", err)
		}

		log.Info().
			Str("func", "syncReconciler.reconcile").
			Int("created", len(diff.Created)).
			Int("updated", len(diff.Updated)).
			Int("destroyed", len(diff.Destroyed)).
			Bool("has_more", changes.HasMore).
			Msg("change set applied")

		if !changes.HasMore {
			return nil
		}
		token = changes.NewState
	}

	log.Warn().
		Str("func", "syncReconciler.reconcile").
		Int("passes", maxChangePasses).
		Msg("change stream still pending after pass limit, resuming next sync")

	return nil
}

// resolveDiff turns raw id sets into a full change set by fetching the
// folder objects the ids refer to.
func (s *syncReconciler) resolveDiff(ctx context.Context, changes models.MailboxChanges) (models.MailboxDiff, error) {
	log := logger.FromContext(ctx)

	var diff models.MailboxDiff
	diff.Destroyed = changes.DestroyedIDs

	if len(changes.CreatedIDs) > 0 {
		created, err := s.client.FetchMailboxesByIDs(ctx, changes.CreatedIDs)
		if err != nil {
			return models.MailboxDiff{}, fmt.Errorf("resolve created folders: %w", err)
		}
		diff.Created = created
	}

	if len(changes.UpdatedIDs) > 0 {
		if !changes.UpdatedPropertiesKnown {
			// none of the changed properties is mirrored locally, or the
			// remote store did not say which properties changed
			log.Debug().
				Str("func", "syncReconciler.resolveDiff").
				Int("skipped", len(changes.UpdatedIDs)).
				Msg("updated set not relevant to the mirror, skipping")
		} else {
			updated, err := s.client.FetchMailboxesByIDs(ctx, changes.UpdatedIDs)
			if err != nil {
				return models.MailboxDiff{}, fmt.Errorf("resolve updated folders: %w", err)
			}
			diff.Updated = updated
		}
	}

	return diff, nil
}

func noChanges(changes models.MailboxChanges) bool {
	return len(changes.CreatedIDs) == 0 &&
		len(changes.UpdatedIDs) == 0 &&
		len(changes.DestroyedIDs) == 0
}
