package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/spotlight/pkg/pdf"
	"github.com/JaimeStill/spotlight/pkg/storage"
)

// Uploader publishes a rendered document under name and returns a link to it.
// An existing document with the same name is replaced.
type Uploader interface {
	Put(ctx context.Context, data []byte, name string) (string, error)
}

type storageUploader struct {
	store  storage.System
	folder string
	logger *slog.Logger
}

// NewUploader creates an Uploader that writes to {folder}/{name} in store.
func NewUploader(store storage.System, folder string, logger *slog.Logger) Uploader {
	return &storageUploader{
		store:  store,
		folder: folder,
		logger: logger.With("system", "uploader"),
	}
}

func (u *storageUploader) Put(ctx context.Context, data []byte, name string) (string, error) {
	key := storage.Key(u.folder, name)

	err := u.store.Delete(ctx, key)
	switch {
	case err == nil:
		u.logger.Info("replacing published report", "key", key)
	case errors.Is(err, storage.ErrNotFound):
	default:
		return "", fmt.Errorf("remove previous %s: %w", key, err)
	}

	if err := u.store.Upload(ctx, key, bytes.NewReader(data), pdf.ContentType); err != nil {
		return "", err
	}

	return u.store.URL(key), nil
}
