package repository

import (
	"context"

	"github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/SeakMengs/DocCollect/internal/model"
	"gorm.io/gorm"
)

type ChecklistRepository struct {
	*baseRepository
}

// Create the checklist together with its items
func (cr ChecklistRepository) Create(ctx context.Context, tx *gorm.DB, checklist *model.Checklist) (*model.Checklist, error) {
	cr.logger.Debugf("Create checklist with slug: %s, items: %d \n", checklist.Slug, len(checklist.Items))

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Checklist{}).Create(checklist).Error; err != nil {
		return checklist, err
	}

	return checklist, nil
}

// Get checklist by slug with items ordered by position
func (cr ChecklistRepository) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*model.Checklist, error) {
	cr.logger.Debugf("Get checklist by slug: %s \n", slug)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var checklist model.Checklist
	if err := db.WithContext(ctx).Model(&model.Checklist{}).Where(&model.Checklist{
		Slug: slug,
	}).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).First(&checklist).Error; err != nil {
		return nil, err
	}

	return &checklist, nil
}

// Same as GetBySlug but also loads every file of the checklist, oldest first
func (cr ChecklistRepository) GetBySlugWithFiles(ctx context.Context, tx *gorm.DB, slug string) (*model.Checklist, error) {
	cr.logger.Debugf("Get checklist with files by slug: %s \n", slug)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var checklist model.Checklist
	if err := db.WithContext(ctx).Model(&model.Checklist{}).Where(&model.Checklist{
		Slug: slug,
	}).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Preload("Files", func(db *gorm.DB) *gorm.DB {
		return db.Order("uploaded_at asc, id asc")
	}).First(&checklist).Error; err != nil {
		return nil, err
	}

	return &checklist, nil
}
