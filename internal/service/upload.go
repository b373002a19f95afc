package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SeakMengs/DocCollect/internal/classifier"
	"github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/SeakMengs/DocCollect/internal/model"
	"github.com/SeakMengs/DocCollect/internal/repository"
	"github.com/SeakMengs/DocCollect/internal/util"
	"github.com/google/uuid"
)

type UploadService struct {
	*baseService
}

// One upload request. Content must already be validated as a pdf.
// A nil ItemID asks for AI classification.
type UploadInput struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
	ItemID      *string
}

func (us UploadService) Upload(ctx context.Context, slug string, in UploadInput) (*model.ChecklistFile, error) {
	checklist, err := us.repo.Checklist.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, notFoundOr(err, "checklist %s", slug)
	}

	if in.ItemID != nil {
		if _, ok := checklist.FindItem(*in.ItemID); !ok {
			return nil, fmt.Errorf("%w: item %s", ErrNotFound, *in.ItemID)
		}
	}

	content, err := io.ReadAll(in.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read upload: %v", ErrValidation, err)
	}

	filename := util.SanitizeFileName(in.Filename)
	filePath := model.ToChecklistFilePath(checklist.Slug, uuid.NewString())

	if err := us.storage.Put(ctx, filePath, bytes.NewReader(content), int64(len(content)), constant.PdfContentType); err != nil {
		us.logger.Errorf("Failed to store %s for checklist %s: %v", filename, checklist.Slug, err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	file := &model.ChecklistFile{
		ChecklistID: checklist.ID,
		Filename:    filename,
		FilePath:    filePath,
	}

	if in.ItemID != nil {
		return us.insertManual(ctx, file, *in.ItemID)
	}

	result := us.classify(ctx, checklist, classifier.Document{Filename: filename, Content: content})
	return us.insertClassified(ctx, file, result)
}

func (us UploadService) insertManual(ctx context.Context, file *model.ChecklistFile, itemID string) (*model.ChecklistFile, error) {
	file.ItemID = &itemID
	file.Status = constant.FileStatusUploaded

	if _, err := us.repo.ChecklistFile.Create(ctx, nil, file); err != nil {
		us.removeBlob(file.FilePath)
		if errors.Is(err, repository.ErrItemOccupied) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to record file: %w", err)
	}

	return file, nil
}

// Record an AI routed file. Losing the race for the item stores it as unclassified.
func (us UploadService) insertClassified(ctx context.Context, file *model.ChecklistFile, result classifier.Result) (*model.ChecklistFile, error) {
	file.ItemID = result.ItemID
	file.Status = constant.FileStatusForItem(result.ItemID)

	_, err := us.repo.ChecklistFile.Create(ctx, nil, file)
	if errors.Is(err, repository.ErrItemOccupied) {
		us.logger.Infof("Item %s was taken while classifying %s, storing as unclassified", *result.ItemID, file.Filename)
		file.ItemID = nil
		file.Status = constant.FileStatusUnclassified
		_, err = us.repo.ChecklistFile.Create(ctx, nil, file)
	}
	if err != nil {
		us.removeBlob(file.FilePath)
		return nil, fmt.Errorf("failed to record file: %w", err)
	}

	return file, nil
}

// Ask the classifier for one of the still empty items. Every failure ends as unclassified.
func (us UploadService) classify(ctx context.Context, checklist *model.Checklist, doc classifier.Document) classifier.Result {
	items, err := us.repo.ChecklistItem.GetUnoccupied(ctx, nil, checklist.ID)
	if err != nil {
		us.logger.Errorf("Failed to load empty items of checklist %s: %v", checklist.Slug, err)
		return classifier.Unclassified()
	}
	if len(items) == 0 {
		us.logger.Debugf("Checklist %s has no empty item, %s goes to unclassified", checklist.Slug, doc.Filename)
		return classifier.Unclassified()
	}

	candidates := make([]classifier.Candidate, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, classifier.Candidate{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
		})
	}

	if us.cfg.Classifier.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, us.cfg.Classifier.Timeout)
		defer cancel()
	}

	result, err := us.classifier.Classify(ctx, doc, candidates)
	if err != nil {
		us.logger.Errorf("Classification of %s failed, storing as unclassified: %v", doc.Filename, err)
		return classifier.Unclassified()
	}

	return ensureCandidate(result, candidates)
}

// Only an id from the candidate list may come back as uploaded
func ensureCandidate(result classifier.Result, candidates []classifier.Candidate) classifier.Result {
	if result.ItemID == nil {
		return classifier.Unclassified()
	}
	for _, c := range candidates {
		if c.ID == *result.ItemID {
			id := c.ID
			return classifier.Result{Status: constant.FileStatusUploaded, ItemID: &id}
		}
	}
	return classifier.Unclassified()
}

func (us UploadService) removeBlob(filePath string) {
	if err := us.storage.Remove(context.Background(), filePath); err != nil {
		us.logger.Errorf("Failed to remove orphaned object %s: %v", filePath, err)
	}
}
