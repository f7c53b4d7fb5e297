package service

import (
	"context"
	"fmt"

	"github.com/okatev/mailmirror/internal/store"
	"github.com/okatev/mailmirror/models"
)

// maxPathDepth bounds the ancestor walk in Path. A mirror holding a deeper
// hierarchy than this is considered corrupt.
const maxPathDepth = 100

type mirrorReadModel struct {
	store store.MirrorStore
}

// NewReadModel creates the [ReadModel] serving folder queries from the
// local mirror.
func NewReadModel(mirrorStore store.MirrorStore) ReadModel {
	return &mirrorReadModel{store: mirrorStore}
}

func (r *mirrorReadModel) Roots(ctx context.Context) ([]models.Mailbox, error) {
	return r.store.ListChildren(ctx, nil)
}

func (r *mirrorReadModel) Children(ctx context.Context, serverID string) ([]models.Mailbox, error) {
	return r.store.ListChildren(ctx, &serverID)
}

func (r *mirrorReadModel) Folder(ctx context.Context, serverID string) (*models.Mailbox, error) {
	return r.store.GetNode(ctx, serverID)
}

// Path walks the parent chain from the folder up to its root, then returns
// the chain root-first.
func (r *mirrorReadModel) Path(ctx context.Context, serverID string) ([]models.Mailbox, error) {
	var chain []models.Mailbox

	id := serverID
	for depth := 0; depth < maxPathDepth; depth++ {
		box, err := r.store.GetNode(ctx, id)
		if err != nil {
			return nil, err
		}
		chain = append(chain, *box)

		if box.ParentID == nil {
			reverse(chain)
			return chain, nil
		}
		id = *box.ParentID
	}

	return nil, fmt.Errorf("%w: parent chain of %s exceeds depth %d", store.ErrIntegrity, serverID, maxPathDepth)
}

func reverse(boxes []models.Mailbox) {
	for i, j := 0, len(boxes)-1; i < j; i, j = i+1, j-1 {
		boxes[i], boxes[j] = boxes[j], boxes[i]
	}
}
