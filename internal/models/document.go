package models

import (
	"time"

	"github.com/noah-isme/sams-go-api/internal/admission"
)

// ApplicationDocument is the metadata row for one uploaded document. The file
// itself lives in the blob store under FilePath.
type ApplicationDocument struct {
	ID            uint                     `gorm:"primaryKey" json:"id"`
	ApplicationID uint                     `gorm:"not null;index" json:"application_id"`
	DocumentType  string                   `gorm:"size:64;not null;index" json:"document_type"`
	FileName      string                   `gorm:"size:255;not null" json:"file_name"`
	FilePath      string                   `gorm:"size:512;not null" json:"file_path"`
	FileURL       string                   `gorm:"size:512" json:"file_url"`
	Status        admission.DocumentStatus `gorm:"size:16;not null;default:pending" json:"status"`
	UploadedBy    string                   `gorm:"size:64" json:"uploaded_by"`
	VerifiedBy    *string                  `gorm:"size:64" json:"verified_by,omitempty"`
	VerifiedAt    *time.Time               `json:"verified_at,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// TableName keeps the collaborator schema's table name.
func (ApplicationDocument) TableName() string {
	return "application_documents"
}

// IsVerified reports whether the document has passed verification. Verified
// documents are never updated afterwards.
func (d ApplicationDocument) IsVerified() bool {
	return d.Status == admission.DocumentVerified
}
