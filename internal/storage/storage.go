// Package storage persists resume artifacts. The disk store matches the
// original upload-directory contract; the s3 store is selected with
// STORAGE_DRIVER=s3.
package storage

import (
	"context"
	"fmt"

	"github.com/techBikashRepo/jobbee-api/pkg/config"
)

// ResumeStore saves and removes resume artifacts by key.
type ResumeStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, key string) error
}

// New builds the configured store.
func New(storageCfg *config.StorageConfig, uploadCfg *config.UploadConfig) (ResumeStore, error) {
	switch storageCfg.Driver {
	case "", "disk":
		return NewDiskStore(uploadCfg.Dir)
	case "s3":
		return NewS3Store(storageCfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", storageCfg.Driver)
	}
}
