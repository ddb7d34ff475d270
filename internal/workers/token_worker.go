package workers

import (
	"context"
	"time"

	"gathero_backend/internal/logger"
	"gathero_backend/internal/repositories"

	"gorm.io/gorm"
)

// TokenCleanupWorker drops expired refresh tokens so the table does not
// grow without bound.
type TokenCleanupWorker struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
}

func NewTokenCleanupWorker(db *gorm.DB, userRepo repositories.UserRepository) *TokenCleanupWorker {
	return &TokenCleanupWorker{db: db, userRepo: userRepo}
}

func (w *TokenCleanupWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := w.userRepo.CleanExpiredRefreshTokens(w.db); err != nil {
					logger.Error("failed to clean expired refresh tokens", "error", err.Error())
				}
			}
		}
	}()
}
