package models

import "time"

// ApplicationNote is one append-only staff note on an application.
type ApplicationNote struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	Author        string    `gorm:"size:64;not null" json:"author"`
	Category      string    `gorm:"size:32;default:general" json:"category"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Internal      bool      `gorm:"not null;default:false" json:"internal"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName keeps the collaborator schema's table name.
func (ApplicationNote) TableName() string {
	return "application_notes"
}
