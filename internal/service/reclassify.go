package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeakMengs/DocCollect/internal/model"
	"github.com/SeakMengs/DocCollect/internal/repository"
	"gorm.io/gorm"
)

type ReclassifyService struct {
	*baseService
}

// Put a file on another item, or back to unclassified when itemID is nil.
func (rs ReclassifyService) MoveFile(ctx context.Context, slug, fileID string, itemID *string) (*model.ChecklistFile, error) {
	checklist, err := rs.repo.Checklist.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, notFoundOr(err, "checklist %s", slug)
	}

	file, err := rs.repo.ChecklistFile.GetById(ctx, nil, checklist.ID, fileID)
	if err != nil {
		return nil, notFoundOr(err, "file %s", fileID)
	}

	if itemID != nil {
		if _, ok := checklist.FindItem(*itemID); !ok {
			return nil, fmt.Errorf("%w: item %s", ErrNotFound, *itemID)
		}
	}

	if samePlacement(file.ItemID, itemID) {
		return file, nil
	}

	moved, err := rs.repo.ChecklistFile.UpdatePlacement(ctx, nil, checklist.ID, file.ID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemOccupied) {
			return nil, ErrConflict
		}
		return nil, notFoundOr(err, "file %s", fileID)
	}

	rs.logger.Infof("File %s of checklist %s moved to %s", moved.ID, checklist.Slug, moved.Status)
	return moved, nil
}

func samePlacement(current, target *string) bool {
	if current == nil || target == nil {
		return current == nil && target == nil
	}
	return *current == *target
}

// Delete files of the checklist, returns how many rows were removed.
// Storage cleanup runs after the commit and only logs failures.
func (rs ReclassifyService) DeleteFiles(ctx context.Context, slug string, fileIDs []string) (int, error) {
	if len(fileIDs) == 0 {
		return 0, fmt.Errorf("%w: no file ids given", ErrValidation)
	}

	checklist, err := rs.repo.Checklist.GetBySlug(ctx, nil, slug)
	if err != nil {
		return 0, notFoundOr(err, "checklist %s", slug)
	}

	var deleted []model.ChecklistFile
	err = rs.repo.WithTx(func(tx *gorm.DB) error {
		var err error
		deleted, err = rs.repo.ChecklistFile.DeleteMany(ctx, tx, checklist.ID, fileIDs)
		return err
	})
	if err != nil {
		rs.logger.Errorf("Failed to delete files of checklist %s: %v", checklist.Slug, err)
		return 0, fmt.Errorf("failed to delete files: %w", err)
	}

	if len(deleted) > 0 {
		paths := make([]string, 0, len(deleted))
		for _, f := range deleted {
			paths = append(paths, f.FilePath)
		}
		if err := rs.storage.Remove(ctx, paths...); err != nil {
			rs.logger.Errorf("Failed to remove stored objects of checklist %s: %v", checklist.Slug, err)
		}
	}

	rs.logger.Infof("Deleted %d files of checklist %s", len(deleted), checklist.Slug)
	return len(deleted), nil
}
