package model

import (
	"crypto/subtle"
	"fmt"
)

type Checklist struct {
	BaseModel
	Slug       string `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	AdminKey   string `gorm:"type:text;not null" json:"-"`
	PublicURL  string `gorm:"type:text;not null" json:"publicUrl"`
	ManagerURL string `gorm:"type:text;not null" json:"-"`

	Items []ChecklistItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`
	Files []ChecklistFile `gorm:"constraint:OnDelete:CASCADE;" json:"files"`
}

func (c Checklist) TableName() string {
	return "checklists"
}

func ToPublicURL(slug string) string {
	return fmt.Sprintf("/%s", slug)
}

func ToManagerURL(slug, adminKey string) string {
	return fmt.Sprintf("/%s/manage?key=%s", slug, adminKey)
}

// Constant time comparison, an empty key never matches
func (c Checklist) VerifyAdminKey(adminKey string) bool {
	if adminKey == "" || c.AdminKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.AdminKey), []byte(adminKey)) == 1
}

func (c Checklist) FindItem(itemID string) (*ChecklistItem, bool) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// Map of item id to title, used to label downloads
func (c Checklist) ItemTitles() map[string]string {
	titles := make(map[string]string, len(c.Items))
	for _, item := range c.Items {
		titles[item.ID] = item.Title
	}
	return titles
}
