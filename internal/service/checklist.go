package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/SeakMengs/DocCollect/internal/model"
	"github.com/SeakMengs/DocCollect/internal/repository"
	"github.com/SeakMengs/DocCollect/internal/util"
)

type ChecklistService struct {
	*baseService
}

type ChecklistItemInput struct {
	Title       string
	Description string
}

// What a checklist page shows. AdminKey and ManagerURL are only set for a manager.
type ChecklistView struct {
	ID           string                `json:"id"`
	Slug         string                `json:"slug"`
	PublicURL    string                `json:"publicUrl"`
	ManagerURL   string                `json:"managerUrl,omitempty"`
	AdminKey     string                `json:"adminKey,omitempty"`
	IsManager    bool                  `json:"isManager"`
	Items        []ChecklistItemView   `json:"items"`
	Unclassified []model.ChecklistFile `json:"unclassified"`
}

type ChecklistItemView struct {
	model.ChecklistItem
	Status constant.ItemStatus  `json:"status"`
	File   *model.ChecklistFile `json:"file"`
}

func validateItems(items []ChecklistItemInput) error {
	if len(items) < constant.MinChecklistItems || len(items) > constant.MaxChecklistItems {
		return fmt.Errorf("%w: a checklist needs between %d and %d items", ErrValidation, constant.MinChecklistItems, constant.MaxChecklistItems)
	}

	for i, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			return fmt.Errorf("%w: item %d title is required", ErrValidation, i+1)
		}
		if utf8.RuneCountInString(title) > constant.MaxItemTitleLength {
			return fmt.Errorf("%w: item %d title must be at most %d characters", ErrValidation, i+1, constant.MaxItemTitleLength)
		}
		if utf8.RuneCountInString(strings.TrimSpace(item.Description)) > constant.MaxItemDescriptionLength {
			return fmt.Errorf("%w: item %d description must be at most %d characters", ErrValidation, i+1, constant.MaxItemDescriptionLength)
		}
	}

	return nil
}

// Publish a new checklist with its items, positioned 1..n in input order
func (cs ChecklistService) Create(ctx context.Context, items []ChecklistItemInput) (*model.Checklist, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	slug, err := util.GenerateSlug()
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}
	adminKey, err := util.GenerateAdminKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate admin key: %w", err)
	}

	checklist := &model.Checklist{
		Slug:       slug,
		AdminKey:   adminKey,
		PublicURL:  model.ToPublicURL(slug),
		ManagerURL: model.ToManagerURL(slug, adminKey),
	}
	for i, item := range items {
		checklist.Items = append(checklist.Items, model.ChecklistItem{
			Title:       strings.TrimSpace(item.Title),
			Description: strings.TrimSpace(item.Description),
			Position:    i + 1,
		})
	}

	if _, err := cs.repo.Checklist.Create(ctx, nil, checklist); err != nil {
		cs.logger.Errorf("Failed to create checklist: %v", err)
		return nil, fmt.Errorf("failed to create checklist: %w", err)
	}

	cs.logger.Infof("Checklist %s created with %d items", checklist.Slug, len(checklist.Items))
	return checklist, nil
}

// Resolve a checklist and check the admin key. An empty key is rejected.
func (cs ChecklistService) Authorize(ctx context.Context, slug, adminKey string) (*model.Checklist, error) {
	checklist, err := cs.repo.Checklist.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, notFoundOr(err, "checklist %s", slug)
	}

	if !checklist.VerifyAdminKey(adminKey) {
		return nil, ErrForbidden
	}

	return checklist, nil
}

// Checklist with item statuses and files. A non empty wrong adminKey is Forbidden.
func (cs ChecklistService) Get(ctx context.Context, slug, adminKey string) (*ChecklistView, error) {
	checklist, err := cs.repo.Checklist.GetBySlugWithFiles(ctx, nil, slug)
	if err != nil {
		return nil, notFoundOr(err, "checklist %s", slug)
	}

	isManager := false
	if adminKey != "" {
		if !checklist.VerifyAdminKey(adminKey) {
			return nil, ErrForbidden
		}
		isManager = true
	}

	return buildChecklistView(checklist, isManager), nil
}

func buildChecklistView(checklist *model.Checklist, isManager bool) *ChecklistView {
	byItem := make(map[string]*model.ChecklistFile, len(checklist.Files))
	unclassified := make([]model.ChecklistFile, 0)
	for i := range checklist.Files {
		f := &checklist.Files[i]
		if f.ItemID == nil || f.IsUnclassified() {
			unclassified = append(unclassified, *f)
			continue
		}
		byItem[*f.ItemID] = f
	}

	items := make([]ChecklistItemView, 0, len(checklist.Items))
	for _, item := range checklist.Items {
		view := ChecklistItemView{ChecklistItem: item, Status: constant.ItemStatusMissing}
		if f, ok := byItem[item.ID]; ok {
			view.Status = constant.ItemStatusUploaded
			view.File = f
		}
		items = append(items, view)
	}

	view := &ChecklistView{
		ID:           checklist.ID,
		Slug:         checklist.Slug,
		PublicURL:    checklist.PublicURL,
		IsManager:    isManager,
		Items:        items,
		Unclassified: unclassified,
	}
	if isManager {
		view.AdminKey = checklist.AdminKey
		view.ManagerURL = checklist.ManagerURL
	}

	return view
}

func notFoundOr(err error, format string, args ...any) error {
	if repository.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}
