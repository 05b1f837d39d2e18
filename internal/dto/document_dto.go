package dto

import (
	"time"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/models"
)

// DocumentUploadRequest is the multipart metadata for a document upload.
type DocumentUploadRequest struct {
	DocumentType string `form:"document_type" validate:"required,min=2"`
}

// DocumentResponse is returned when viewing uploaded documents.
type DocumentResponse struct {
	ID            uint       `json:"id"`
	ApplicationID uint       `json:"application_id"`
	DocumentType  string     `json:"document_type"`
	FileName      string     `json:"file_name"`
	FileURL       string     `json:"file_url"`
	Status        string     `json:"status"`
	UploadedBy    string     `json:"uploaded_by"`
	VerifiedBy    *string    `json:"verified_by,omitempty"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ChecklistResponse is the merged template/upload view for the review stage.
type ChecklistResponse struct {
	ApplicationID       uint                       `json:"application_id"`
	Entries             []admission.ChecklistEntry `json:"entries"`
	AllRequiredVerified bool                       `json:"all_required_verified"`
	ReviewStageStatus   string                     `json:"review_stage_status"`
}

// SignedURLResponse carries a time-limited document retrieval URL.
type SignedURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// NewDocumentResponse converts a document model into a DTO.
func NewDocumentResponse(model models.ApplicationDocument) DocumentResponse {
	return DocumentResponse{
		ID:            model.ID,
		ApplicationID: model.ApplicationID,
		DocumentType:  model.DocumentType,
		FileName:      model.FileName,
		FileURL:       model.FileURL,
		Status:        string(model.Status),
		UploadedBy:    model.UploadedBy,
		VerifiedBy:    model.VerifiedBy,
		VerifiedAt:    model.VerifiedAt,
		CreatedAt:     model.CreatedAt,
	}
}

// NewDocumentResponseSlice converts document models into DTOs.
func NewDocumentResponseSlice(items []models.ApplicationDocument) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewDocumentResponse(item))
	}
	return responses
}
