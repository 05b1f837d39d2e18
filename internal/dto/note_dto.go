package dto

import (
	"time"

	"github.com/noah-isme/sams-go-api/internal/models"
)

// NoteCreateRequest adds an append-only note to an application.
type NoteCreateRequest struct {
	Category string `json:"category" validate:"omitempty,oneof=general review assessment decision safeguarding"`
	Content  string `json:"content" validate:"required,min=1"`
	Internal bool   `json:"internal"`
}

// NoteResponse is returned when viewing notes.
type NoteResponse struct {
	ID            uint      `json:"id"`
	ApplicationID uint      `json:"application_id"`
	Author        string    `json:"author"`
	Category      string    `json:"category"`
	Content       string    `json:"content"`
	Internal      bool      `json:"internal"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewNoteResponse converts a note model into a DTO.
func NewNoteResponse(model models.ApplicationNote) NoteResponse {
	return NoteResponse{
		ID:            model.ID,
		ApplicationID: model.ApplicationID,
		Author:        model.Author,
		Category:      model.Category,
		Content:       model.Content,
		Internal:      model.Internal,
		CreatedAt:     model.CreatedAt,
	}
}

// NewNoteResponseSlice converts note models into DTOs.
func NewNoteResponseSlice(items []models.ApplicationNote) []NoteResponse {
	responses := make([]NoteResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewNoteResponse(item))
	}
	return responses
}
