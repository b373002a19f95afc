package model

type ChecklistItem struct {
	BaseModel
	ChecklistID string `gorm:"type:text;not null;index" json:"-"`
	Title       string `gorm:"type:varchar(100);not null" json:"title"`
	Description string `gorm:"type:varchar(300);not null;default:''" json:"description"`
	Position    int    `gorm:"type:int;not null" json:"position"`
}

func (ci ChecklistItem) TableName() string {
	return "checklist_items"
}
