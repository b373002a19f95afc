package repository

import (
	"context"

	"github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/SeakMengs/DocCollect/internal/model"
	"gorm.io/gorm"
)

type ChecklistItemRepository struct {
	*baseRepository
}

// Items that do not hold an uploaded file yet, ordered by position
func (cir ChecklistItemRepository) GetUnoccupied(ctx context.Context, tx *gorm.DB, checklistId string) ([]model.ChecklistItem, error) {
	cir.logger.Debugf("Get unoccupied checklist items, checklist id: %s \n", checklistId)

	db := cir.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	occupied := db.Model(&model.ChecklistFile{}).
		Select("item_id").
		Where("checklist_id = ? AND status = ? AND item_id IS NOT NULL", checklistId, constant.FileStatusUploaded)

	var items []model.ChecklistItem
	if err := db.WithContext(ctx).Model(&model.ChecklistItem{}).
		Where("checklist_id = ?", checklistId).
		Where("id NOT IN (?)", occupied).
		Order("position asc").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}
