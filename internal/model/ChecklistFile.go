package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/SeakMengs/DocCollect/internal/constant"
)

// The partial unique index allows at most one uploaded file per (checklist, item).
// Rows with a NULL item_id never collide.
type ChecklistFile struct {
	BaseModel
	ChecklistID string              `gorm:"type:text;not null;index;uniqueIndex:idx_checklist_files_uploaded_item,where:status = 'uploaded'" json:"-"`
	ItemID      *string             `gorm:"type:text;uniqueIndex:idx_checklist_files_uploaded_item,where:status = 'uploaded'" json:"item_id"`
	Filename    string              `gorm:"type:text;not null" json:"filename"`
	FilePath    string              `gorm:"type:text;not null;uniqueIndex" json:"file_path"`
	Status      constant.FileStatus `gorm:"type:text;not null;check:chk_checklist_files_status,status IN ('uploaded','unclassified')" json:"status"`
	UploadedAt  time.Time           `gorm:"not null" json:"uploaded_at"`

	Item *ChecklistItem `gorm:"foreignKey:ItemID;constraint:OnDelete:SET NULL;" json:"-"`
}

func (cf ChecklistFile) TableName() string {
	return "checklist_files"
}

func (cf ChecklistFile) IsUnclassified() bool {
	return cf.Status == constant.FileStatusUnclassified
}

// Storage key for a new upload, scoped to the checklist slug
func ToChecklistFilePath(slug, objectID string) string {
	return fmt.Sprintf("%s/%s.pdf", slug, objectID)
}

// Label used in front of the original filename when the file is downloaded.
// A file pointing at an item that no longer exists gets no label.
func FileLabel(itemTitles map[string]string, itemID *string) string {
	if itemID == nil {
		return constant.UnclassifiedLabel
	}
	return itemTitles[*itemID]
}

// Example: "Resume - cv.pdf", "Unclassified - scan.pdf".
// The label is free text from the manager, so path separators and dot segments are removed
// before it ends up in a zip entry name or a Content-Disposition header.
func ToLabeledFilename(label, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	label = sanitizeLabel(label)
	if label == "" {
		return base
	}
	return fmt.Sprintf("%s - %s", label, base)
}

// "a/b" becomes "a-b", "../../evil" becomes "evil"
func sanitizeLabel(label string) string {
	segments := strings.FieldsFunc(label, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	kept := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" || segment == "." || segment == ".." {
			continue
		}
		kept = append(kept, segment)
	}

	return strings.Join(kept, "-")
}
