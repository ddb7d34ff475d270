package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"gathero_backend/internal/logger"
	"gathero_backend/internal/storage"

	"github.com/google/uuid"
)

// MediaService is the narrow media contract the event pipeline needs on
// top of a storage backend. Keys are fresh and collision-resistant
// (uuid-derived, not content hashes). All calls carry a bounded
// timeout; the backends are external and must not hang a request.
type MediaService interface {
	// Upload stores the payload under a fresh key and returns it.
	Upload(ctx context.Context, reader io.Reader, mimeType string) (string, error)

	// SignedURL returns a time-limited retrieval URL, or "" when the
	// key is empty or signing fails. Callers treat "" as "no
	// displayable image", never as an error.
	SignedURL(ctx context.Context, key *string) string

	// Remove deletes a key best-effort and never returns an error, so
	// cleanup-after-commit can never fail an already-successful
	// operation. It reports false on failure; whether a missing key
	// counts as failure is backend-dependent (the local backend errors,
	// S3-style backends treat the delete as a no-op success).
	Remove(ctx context.Context, key string) bool
}

type mediaService struct {
	store       storage.Storage
	signTTL     time.Duration
	callTimeout time.Duration
}

func NewMediaService(store storage.Storage, signTTLSeconds, callTimeoutSeconds int) MediaService {
	return &mediaService{
		store:       store,
		signTTL:     time.Duration(signTTLSeconds) * time.Second,
		callTimeout: time.Duration(callTimeoutSeconds) * time.Second,
	}
}

var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (s *mediaService) Upload(ctx context.Context, reader io.Reader, mimeType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	key := fmt.Sprintf("events/%s%s", uuid.NewString(), mimeExtensions[mimeType])
	if err := s.store.Save(ctx, key, reader, mimeType); err != nil {
		return "", err
	}
	return key, nil
}

func (s *mediaService) SignedURL(ctx context.Context, key *string) string {
	if key == nil || *key == "" {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	url, err := s.store.GetSignedURL(ctx, *key, s.signTTL)
	if err != nil {
		logger.CtxWarn(ctx, "failed to sign media URL", "key", *key, "error", err.Error())
		return ""
	}
	return url
}

func (s *mediaService) Remove(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, key); err != nil {
		logger.CtxWarn(ctx, "failed to delete media", "key", key, "error", err.Error())
		return false
	}
	return true
}
