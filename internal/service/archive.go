package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	filestorage "github.com/SeakMengs/DocCollect/internal/file_storage"
)

const purgeBatchSize = 100

type ArchiveService struct {
	*baseService
}

// Delete a temporary archive object and its record
func (as ArchiveService) Remove(ctx context.Context, objectKey string) error {
	if err := as.storage.Remove(ctx, objectKey); err != nil && !errors.Is(err, filestorage.ErrObjectNotFound) {
		return fmt.Errorf("failed to remove archive %s: %w", objectKey, err)
	}

	if err := as.repo.TemporaryArchive.DeleteByObjectKey(ctx, nil, objectKey); err != nil {
		return fmt.Errorf("failed to delete archive record %s: %w", objectKey, err)
	}

	return nil
}

// Fire and forget removal after the archive ttl, the cron sweeper covers restarts
func (as ArchiveService) scheduleRemoval(objectKey string, after time.Duration) {
	time.AfterFunc(after, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := as.Remove(ctx, objectKey); err != nil {
			as.logger.Errorf("Scheduled cleanup of %s failed: %v", objectKey, err)
			return
		}
		as.logger.Debugf("Scheduled cleanup removed %s", objectKey)
	})
}

// Remove every archive past its expiry, returns how many were removed
func (as ArchiveService) PurgeExpired(ctx context.Context) (int, error) {
	removed := 0

	for {
		archives, err := as.repo.TemporaryArchive.GetExpired(ctx, nil, as.now(), purgeBatchSize)
		if err != nil {
			return removed, fmt.Errorf("failed to list expired archives: %w", err)
		}
		if len(archives) == 0 {
			return removed, nil
		}

		failed := 0
		for _, archive := range archives {
			if err := as.Remove(ctx, archive.ObjectKey); err != nil {
				as.logger.Errorf("Failed to purge archive %s: %v", archive.ObjectKey, err)
				failed++
				continue
			}
			removed++
		}

		// the same rows would come back forever
		if failed > 0 || len(archives) < purgeBatchSize {
			return removed, nil
		}
	}
}
