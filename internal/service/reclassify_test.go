package service

import (
	"context"
	"errors"
	"testing"

	"github.com/SeakMengs/DocCollect/internal/constant"
)

func TestMoveFileRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	checklist := env.createChecklist(t, "Resume", "Transcript")
	ctx := context.Background()
	resumeID := checklist.Items[0].ID
	transcriptID := checklist.Items[1].ID

	file, _ := env.upload(t, checklist.Slug, "doc.pdf", &resumeID)

	moved, err := env.svc.Reclassify.MoveFile(ctx, checklist.Slug, file.ID, nil)
	if err != nil {
		t.Fatalf("MoveFile(nil) error = %v", err)
	}
	if moved.Status != constant.FileStatusUnclassified || moved.ItemID != nil {
		t.Errorf("after move to unclassified = %+v", moved)
	}

	moved, err = env.svc.Reclassify.MoveFile(ctx, checklist.Slug, file.ID, &transcriptID)
	if err != nil {
		t.Fatalf("MoveFile(transcript) error = %v", err)
	}
	if moved.Status != constant.FileStatusUploaded || moved.ItemID == nil || *moved.ItemID != transcriptID {
		t.Errorf("after move to transcript = %+v", moved)
	}

	moved, err = env.svc.Reclassify.MoveFile(ctx, checklist.Slug, file.ID, &transcriptID)
	if err != nil || *moved.ItemID != transcriptID {
		t.Errorf("move onto current item = %+v, %v", moved, err)
	}
}

func TestMoveFileErrors(t *testing.T) {
	env := newTestEnv(t)
	checklist := env.createChecklist(t, "Resume", "Transcript")
	other := env.createChecklist(t, "Passport")
	ctx := context.Background()

	occupant, _ := env.upload(t, checklist.Slug, "cv.pdf", &checklist.Items[0].ID)
	loose, _ := env.upload(t, checklist.Slug, "loose.pdf", nil)

	tests := []struct {
		name    string
		slug    string
		fileID  string
		itemID  *string
		wantErr error
	}{
		{name: "occupied target", slug: checklist.Slug, fileID: loose.ID, itemID: &checklist.Items[0].ID, wantErr: ErrConflict},
		{name: "unknown checklist", slug: "missing", fileID: loose.ID, wantErr: ErrNotFound},
		{name: "unknown file", slug: checklist.Slug, fileID: "missing", wantErr: ErrNotFound},
		{name: "item of another checklist", slug: checklist.Slug, fileID: loose.ID, itemID: &other.Items[0].ID, wantErr: ErrNotFound},
		{name: "file of another checklist", slug: other.Slug, fileID: loose.ID, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Reclassify.MoveFile(ctx, tt.slug, tt.fileID, tt.itemID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("MoveFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	still, err := env.repo.ChecklistFile.GetById(ctx, nil, checklist.ID, occupant.ID)
	if err != nil || still.ItemID == nil || *still.ItemID != checklist.Items[0].ID {
		t.Errorf("occupant changed after failed move: %+v, %v", still, err)
	}
}

func TestDeleteFiles(t *testing.T) {
	env := newTestEnv(t)
	checklist := env.createChecklist(t, "Resume")
	other := env.createChecklist(t, "Passport")
	ctx := context.Background()

	a, _ := env.upload(t, checklist.Slug, "a.pdf", &checklist.Items[0].ID)
	b, _ := env.upload(t, checklist.Slug, "b.pdf", nil)
	foreign, _ := env.upload(t, other.Slug, "foreign.pdf", nil)

	count, err := env.svc.Reclassify.DeleteFiles(ctx, checklist.Slug, []string{a.ID, b.ID, foreign.ID})
	if err != nil {
		t.Fatalf("DeleteFiles() error = %v", err)
	}
	if count != 2 {
		t.Errorf("DeleteFiles() = %d, want 2", count)
	}
	if env.storage.has(a.FilePath) || env.storage.has(b.FilePath) {
		t.Errorf("storage objects of deleted files remain")
	}
	if !env.storage.has(foreign.FilePath) {
		t.Errorf("storage object of another checklist was removed")
	}

	// the item is free again
	if _, err := env.upload(t, checklist.Slug, "new.pdf", &checklist.Items[0].ID); err != nil {
		t.Errorf("upload after delete error = %v", err)
	}

	if _, err := env.svc.Reclassify.DeleteFiles(ctx, checklist.Slug, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("DeleteFiles(nil) error = %v, want ErrValidation", err)
	}
	if _, err := env.svc.Reclassify.DeleteFiles(ctx, "missing", []string{a.ID}); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteFiles(missing) error = %v, want ErrNotFound", err)
	}
}
