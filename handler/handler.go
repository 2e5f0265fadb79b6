package handler

import (
	"context"
	"io"
	"time"

	"gorm.io/gorm"

	"staybook/store"
)

// FileStorage keeps uploaded listing images.
type FileStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// ReceiptSigner signs reservation receipts.
type ReceiptSigner interface {
	Sign(data string) (string, error)
}

type Handler struct {
	DB        *gorm.DB
	Trips     store.TripStore
	Locker    store.Locker
	Files     FileStorage
	Signer    ReceiptSigner
	JWTSecret []byte
	Domain    string
	LockTTL   time.Duration
	Now       func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) lockTTL() time.Duration {
	if h.LockTTL > 0 {
		return h.LockTTL
	}
	return 30 * time.Second
}
