package models

import "time"

// Communication types sent by stage actions.
const (
	CommunicationWelcomeEmail = "welcome_email"
	CommunicationOfferEmail   = "offer_email"
)

// Communication is the audit row for an outbound email triggered by a stage
// action. Actual delivery belongs to the notification collaborator.
type Communication struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	Type          string    `gorm:"size:32;not null" json:"type"`
	Recipient     string    `gorm:"size:255;not null" json:"recipient"`
	Subject       string    `gorm:"size:255" json:"subject"`
	Body          string    `gorm:"type:text" json:"body"`
	SentBy        string    `gorm:"size:64" json:"sent_by"`
	SentAt        time.Time `json:"sent_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName keeps the collaborator schema's table name.
func (Communication) TableName() string {
	return "application_communications"
}
