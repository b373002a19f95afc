package repository

import (
	"context"
	"time"

	"github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/SeakMengs/DocCollect/internal/model"
	"gorm.io/gorm"
)

type TemporaryArchiveRepository struct {
	*baseRepository
}

func (tar TemporaryArchiveRepository) Create(ctx context.Context, tx *gorm.DB, archive *model.TemporaryArchive) (*model.TemporaryArchive, error) {
	tar.logger.Debugf("Create temporary archive: %s, expires at: %s \n", archive.ObjectKey, archive.ExpiresAt)

	db := tar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.TemporaryArchive{}).Create(archive).Error; err != nil {
		return archive, err
	}

	return archive, nil
}

// Archives whose expiry is at or before now, oldest first
func (tar TemporaryArchiveRepository) GetExpired(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]model.TemporaryArchive, error) {
	tar.logger.Debugf("Get expired temporary archives before: %s, limit: %d \n", now, limit)

	db := tar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var archives []model.TemporaryArchive
	query := db.WithContext(ctx).Model(&model.TemporaryArchive{}).
		Where("expires_at <= ?", now).
		Order("expires_at asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&archives).Error; err != nil {
		return nil, err
	}

	return archives, nil
}

func (tar TemporaryArchiveRepository) DeleteByObjectKey(ctx context.Context, tx *gorm.DB, objectKey string) error {
	tar.logger.Debugf("Delete temporary archive: %s \n", objectKey)

	db := tar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("object_key = ?", objectKey).Delete(&model.TemporaryArchive{}).Error
}
