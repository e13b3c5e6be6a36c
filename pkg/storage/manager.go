package storage

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/inventory/config"
)

// Open builds the named disk from configuration.
func Open(ctx context.Context, name string) (Disk, error) {
	switch name {
	case "", "local":
		return NewLocalDisk(config.StorageLocalRoot()), nil
	case "s3":
		return NewS3Disk(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
		})
	default:
		return nil, fmt.Errorf("storage: unknown disk %q (supported: local, s3)", name)
	}
}
