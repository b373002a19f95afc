package repository

import (
	"context"
	"time"

	"github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/SeakMengs/DocCollect/internal/model"
	"gorm.io/gorm"
)

type ChecklistFileRepository struct {
	*baseRepository
}

// Insert a file row. A second uploaded file on the same item returns ErrItemOccupied.
func (cfr ChecklistFileRepository) Create(ctx context.Context, tx *gorm.DB, file *model.ChecklistFile) (*model.ChecklistFile, error) {
	cfr.logger.Debugf("Create checklist file: %s, checklist id: %s, status: %s \n", file.Filename, file.ChecklistID, file.Status)

	db := cfr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now().UTC()
	}

	if err := db.WithContext(ctx).Model(&model.ChecklistFile{}).Create(file).Error; err != nil {
		if isUniqueViolation(err) && file.Status == constant.FileStatusUploaded {
			return file, ErrItemOccupied
		}
		return file, err
	}

	return file, nil
}

func (cfr ChecklistFileRepository) GetById(ctx context.Context, tx *gorm.DB, checklistId, fileId string) (*model.ChecklistFile, error) {
	cfr.logger.Debugf("Get checklist file: %s, checklist id: %s \n", fileId, checklistId)

	db := cfr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var file model.ChecklistFile
	if err := db.WithContext(ctx).Model(&model.ChecklistFile{}).Where(&model.ChecklistFile{
		BaseModel: model.BaseModel{
			ID: fileId,
		},
		ChecklistID: checklistId,
	}).First(&file).Error; err != nil {
		return nil, err
	}

	return &file, nil
}

func (cfr ChecklistFileRepository) GetByChecklistId(ctx context.Context, tx *gorm.DB, checklistId string) ([]model.ChecklistFile, error) {
	cfr.logger.Debugf("Get checklist files by checklist id: %s \n", checklistId)

	db := cfr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var files []model.ChecklistFile
	if err := db.WithContext(ctx).Model(&model.ChecklistFile{}).
		Where("checklist_id = ?", checklistId).
		Order("uploaded_at asc, id asc").
		Find(&files).Error; err != nil {
		return nil, err
	}

	return files, nil
}

// Move a file onto an item or back to unclassified. Status always follows the placement.
func (cfr ChecklistFileRepository) UpdatePlacement(ctx context.Context, tx *gorm.DB, checklistId, fileId string, itemId *string) (*model.ChecklistFile, error) {
	status := constant.FileStatusForItem(itemId)
	cfr.logger.Debugf("Update checklist file placement: %s, checklist id: %s, status: %s \n", fileId, checklistId, status)

	db := cfr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	// map so that a nil item id is written as NULL
	result := db.WithContext(ctx).Model(&model.ChecklistFile{}).
		Where("id = ? AND checklist_id = ?", fileId, checklistId).
		Updates(map[string]any{
			"item_id": itemId,
			"status":  status,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, ErrItemOccupied
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var file model.ChecklistFile
	if err := db.WithContext(ctx).Model(&model.ChecklistFile{}).Where("id = ?", fileId).First(&file).Error; err != nil {
		return nil, err
	}

	return &file, nil
}

// Remove the given files of a checklist and return the rows that were removed.
// Ids that do not belong to the checklist are ignored.
func (cfr ChecklistFileRepository) DeleteMany(ctx context.Context, tx *gorm.DB, checklistId string, fileIds []string) ([]model.ChecklistFile, error) {
	cfr.logger.Debugf("Delete checklist files: %v, checklist id: %s \n", fileIds, checklistId)

	if len(fileIds) == 0 {
		return []model.ChecklistFile{}, nil
	}

	db := cfr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var files []model.ChecklistFile
	if err := db.WithContext(ctx).Model(&model.ChecklistFile{}).
		Where("checklist_id = ? AND id IN ?", checklistId, fileIds).
		Find(&files).Error; err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return files, nil
	}

	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}

	if err := db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.ChecklistFile{}).Error; err != nil {
		return nil, err
	}

	return files, nil
}
