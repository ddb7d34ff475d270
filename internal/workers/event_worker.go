package workers

import (
	"context"
	"time"

	"gathero_backend/internal/logger"
	"gathero_backend/internal/models"

	"gorm.io/gorm"
)

// EventStatusWorker advances event lifecycle states on a timer:
// upcoming events whose start has passed become ongoing, ongoing events
// past their end become ended.
type EventStatusWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewEventStatusWorker(db *gorm.DB, interval time.Duration) *EventStatusWorker {
	return &EventStatusWorker{db: db, interval: interval}
}

func (w *EventStatusWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.advance()
			}
		}
	}()
}

func (w *EventStatusWorker) advance() {
	now := time.Now()

	started := w.db.Model(&models.Event{}).
		Where("status = ? AND starts_at <= ?", models.EventStatusUpcoming, now).
		Update("status", models.EventStatusOngoing)
	if started.Error != nil {
		logger.Error("failed to advance events to ongoing", "error", started.Error.Error())
	} else if started.RowsAffected > 0 {
		logger.Info("events moved to ongoing", "count", started.RowsAffected)
	}

	ended := w.db.Model(&models.Event{}).
		Where("status = ? AND ends_at IS NOT NULL AND ends_at <= ?", models.EventStatusOngoing, now).
		Update("status", models.EventStatusEnded)
	if ended.Error != nil {
		logger.Error("failed to advance events to ended", "error", ended.Error.Error())
	} else if ended.RowsAffected > 0 {
		logger.Info("events moved to ended", "count", ended.RowsAffected)
	}
}
