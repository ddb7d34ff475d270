package workers

import (
	"context"
	"time"

	"gathero_backend/internal/logger"
	"gathero_backend/internal/repositories"

	"gorm.io/gorm"
)

// NotificationPurgeWorker deletes read notifications older than the
// retention window, once a day.
type NotificationPurgeWorker struct {
	db               *gorm.DB
	notificationRepo repositories.NotificationRepository
	retention        time.Duration
}

func NewNotificationPurgeWorker(db *gorm.DB, notificationRepo repositories.NotificationRepository, retentionDays int) *NotificationPurgeWorker {
	return &NotificationPurgeWorker{
		db:               db,
		notificationRepo: notificationRepo,
		retention:        time.Duration(retentionDays) * 24 * time.Hour,
	}
}

func (w *NotificationPurgeWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		w.purge()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.purge()
			}
		}
	}()
}

func (w *NotificationPurgeWorker) purge() {
	cutoff := time.Now().Add(-w.retention)
	deleted, err := w.notificationRepo.DeleteReadOlderThan(w.db, cutoff)
	if err != nil {
		logger.Error("failed to purge old notifications", "error", err.Error())
		return
	}
	if deleted > 0 {
		logger.Info("purged read notifications", "count", deleted, "cutoff", cutoff)
	}
}
