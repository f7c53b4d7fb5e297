package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/okatev/mailmirror/internal/logger"
	"github.com/okatev/mailmirror/models"
)

type mirrorRepository struct {
	*DB
	logger *logger.Logger
}

// NewMirrorRepository returns a [MirrorStore] backed by the given database.
func NewMirrorRepository(db *DB, logger *logger.Logger) MirrorStore {
	return &mirrorRepository{
		DB:     db,
		logger: logger,
	}
}

// Initialize seeds the mirror with a full folder snapshot inside a single
// transaction. The snapshot is inserted parent-first so the hierarchy
// constraint holds at every step.
func (m *mirrorRepository) Initialize(ctx context.Context, account string, nodes []models.Mailbox, token string) error {
	log := logger.FromContext(ctx)

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.Initialize").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	existing, err := m.tokenInTx(ctx, tx)
	if err != nil {
		return err
	}
	if existing != "" {
		log.Warn().
			Str("func", "mirrorRepository.Initialize").
			Msg("mirror already holds a sync token, refusing to re-seed")
		return fmt.Errorf("%w: mirror already initialized", ErrStateConflict)
	}

	query, args, err := m.insertAccountQuery(account).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.Initialize").
			Str("account", account).
			Msg("failed to insert account")
		return integrityOrExec(err, account)
	}

	for _, box := range models.OrderParentFirst(nodes) {
		if err = m.insertFolderInTx(ctx, tx, account, box); err != nil {
			log.Err(err).
				Str("func", "mirrorRepository.Initialize").
				Str("server_id", box.ServerID).
				Msg("failed to insert folder during seeding")
			return err
		}
	}

	query, args, err = m.insertTokenQuery(token).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.Initialize").
			Msg("failed to store initial sync token")
		return integrityOrExec(err, syncTokenKey)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.Initialize").
			Msg("failed to commit seeding transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "mirrorRepository.Initialize").
		Int("folders", len(nodes)).
		Msg("mirror seeded with full folder snapshot")

	return nil
}

// ApplyDiff applies a change set and advances the sync token in the same
// transaction. Created folders are inserted parent-first, destroyed folders
// are deleted deepest-first so the hierarchy constraint holds at every step.
func (m *mirrorRepository) ApplyDiff(ctx context.Context, diff models.MailboxDiff, newToken string) error {
	log := logger.FromContext(ctx)

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.ApplyDiff").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	current, err := m.tokenInTx(ctx, tx)
	if err != nil {
		return err
	}
	if current == "" {
		return fmt.Errorf("%w: no sync token stored", ErrNotInitialized)
	}

	if len(diff.Created) > 0 {
		account, accErr := m.accountNameInTx(ctx, tx)
		if accErr != nil {
			return accErr
		}

		for _, box := range models.OrderParentFirst(diff.Created) {
			if err = m.insertFolderInTx(ctx, tx, account, box); err != nil {
				log.Err(err).
					Str("func", "mirrorRepository.ApplyDiff").
					Str("server_id", box.ServerID).
					Msg("failed to insert created folder")
				return err
			}
		}
	}

	for _, box := range diff.Updated {
		query, args, buildErr := m.updateFolderQuery(box).ToSql()
		if buildErr != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		result, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			log.Err(execErr).
				Str("func", "mirrorRepository.ApplyDiff").
				Str("server_id", box.ServerID).
				Msg("failed to update folder")
			return integrityOrExec(execErr, box.ServerID)
		}

		affected, raErr := result.RowsAffected()
		if raErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, raErr)
		}
		if affected == 0 {
			log.Warn().
				Str("func", "mirrorRepository.ApplyDiff").
				Str("server_id", box.ServerID).
				Msg("update targets a folder the mirror does not hold, skipping")
		}
	}

	if len(diff.Destroyed) > 0 {
		if err = m.deleteFoldersInTx(ctx, tx, diff.Destroyed); err != nil {
			return err
		}
	}

	query, args, err := m.updateTokenQuery(newToken).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.ApplyDiff").
			Msg("failed to advance sync token")
		return integrityOrExec(err, syncTokenKey)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.ApplyDiff").
			Msg("failed to commit change set transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "mirrorRepository.ApplyDiff").
		Int("created", len(diff.Created)).
		Int("updated", len(diff.Updated)).
		Int("destroyed", len(diff.Destroyed)).
		Msg("change set applied, sync token advanced")

	return nil
}

// CurrentToken returns the stored sync token, or "" when the mirror has
// never been initialized.
func (m *mirrorRepository) CurrentToken(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := m.selectTokenQuery().ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token string
	err = m.DB.QueryRowContext(ctx, query, args...).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.CurrentToken").
			Msg("failed to read sync token")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return token, nil
}

// ListChildren returns the folders whose parent is parentID, ordered by sort
// order then name. A nil parentID selects the top-level folders.
func (m *mirrorRepository) ListChildren(ctx context.Context, parentID *string) ([]models.Mailbox, error) {
	log := logger.FromContext(ctx)

	query, args, err := m.selectChildrenQuery(parentID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := m.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.ListChildren").
			Msg("failed to query child folders")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var boxes []models.Mailbox

	for rows.Next() {
		box, scanErr := scanFolder(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "mirrorRepository.ListChildren").
				Msg("failed to scan folder row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		boxes = append(boxes, box)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "mirrorRepository.ListChildren").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return boxes, nil
}

// GetNode returns the folder with the given server id.
func (m *mirrorRepository) GetNode(ctx context.Context, serverID string) (*models.Mailbox, error) {
	log := logger.FromContext(ctx)

	query, args, err := m.selectFolderQuery(serverID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var box models.Mailbox
	err = m.DB.QueryRowContext(ctx, query, args...).
		Scan(&box.ServerID, &box.Name, &box.Role, &box.ParentID, &box.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: server_id=%s", ErrNodeNotFound, serverID)
	}
	if err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.GetNode").
			Str("server_id", serverID).
			Msg("failed to read folder")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return &box, nil
}

// tokenInTx reads the sync token inside an open transaction, returning ""
// when none is stored.
func (m *mirrorRepository) tokenInTx(ctx context.Context, tx *sql.Tx) (string, error) {
	query, args, err := m.selectTokenQuery().ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return token, nil
}

func (m *mirrorRepository) accountNameInTx(ctx context.Context, tx *sql.Tx) (string, error) {
	query, args, err := m.selectAccountNameQuery().ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var name string
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&name); err != nil {
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return name, nil
}

func (m *mirrorRepository) insertFolderInTx(ctx context.Context, tx *sql.Tx, account string, box models.Mailbox) error {
	query, args, err := m.insertFolderQuery(account, box).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return integrityOrExec(err, box.ServerID)
	}

	return nil
}

// deleteFoldersInTx removes the given folders deepest-first so that no
// delete ever orphans a child the same change set removes later.
func (m *mirrorRepository) deleteFoldersInTx(ctx context.Context, tx *sql.Tx, serverIDs []string) error {
	log := logger.FromContext(ctx)

	parents, err := m.parentMapInTx(ctx, tx)
	if err != nil {
		return err
	}

	ordered := make([]string, len(serverIDs))
	copy(ordered, serverIDs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return folderDepth(ordered[i], parents) > folderDepth(ordered[j], parents)
	})

	for _, id := range ordered {
		query, args, buildErr := m.deleteFolderQuery(id).ToSql()
		if buildErr != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			log.Err(execErr).
				Str("func", "mirrorRepository.deleteFoldersInTx").
				Str("server_id", id).
				Msg("failed to delete folder")
			return integrityOrExec(execErr, id)
		}
	}

	return nil
}

// parentMapInTx loads the server_id -> parent_server_id relation of the
// whole mirror inside an open transaction.
func (m *mirrorRepository) parentMapInTx(ctx context.Context, tx *sql.Tx) (map[string]*string, error) {
	query, args, err := m.selectParentsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	parents := make(map[string]*string)

	for rows.Next() {
		var (
			id     string
			parent *string
		)
		if scanErr := rows.Scan(&id, &parent); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		parents[id] = parent
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return parents, nil
}

// folderDepth counts the ancestors of id. The walk is bounded by the map
// size so a corrupt parent cycle cannot hang the delete pass.
func folderDepth(id string, parents map[string]*string) int {
	depth := 0
	cur := id
	for range parents {
		parent, ok := parents[cur]
		if !ok || parent == nil {
			break
		}
		depth++
		cur = *parent
	}
	return depth
}

func scanFolder(rows *sql.Rows) (models.Mailbox, error) {
	var box models.Mailbox
	err := rows.Scan(&box.ServerID, &box.Name, &box.Role, &box.ParentID, &box.SortOrder)
	return box, err
}
