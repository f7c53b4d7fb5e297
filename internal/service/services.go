package service

import (
	"github.com/okatev/mailmirror/internal/jmap"
	"github.com/okatev/mailmirror/internal/logger"
	"github.com/okatev/mailmirror/internal/store"
)

// Services bundles the application services behind a single constructor.
type Services struct {
	SyncService SyncService
	ReadModel   ReadModel
	SyncJob     SyncJob
}

func NewServices(client jmap.Client, mirrorStore store.MirrorStore, log *logger.Logger) *Services {
	syncSvc := NewSyncReconciler(client, mirrorStore, log)

	return &Services{
		SyncService: syncSvc,
		ReadModel:   NewReadModel(mirrorStore),
		SyncJob:     NewSyncJob(syncSvc),
	}
}
