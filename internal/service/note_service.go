package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/models"
	"github.com/noah-isme/sams-go-api/internal/repository"
)

// Sentinel errors surfaced by the note workflow.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNoteEmpty    = errors.New("note content empty after sanitization")
)

// NoteService manages append-only notes on applications.
type NoteService interface {
	Add(ctx context.Context, applicationID uint, payload dto.NoteCreateRequest, author string) (dto.NoteResponse, error)
	List(ctx context.Context, applicationID uint) ([]dto.NoteResponse, error)
	Delete(ctx context.Context, noteID uint) error
}

type noteService struct {
	notes        repository.NoteRepository
	applications repository.ApplicationRepository
	validator    *validator.Validate
	sanitizer    *bluemonday.Policy
	logger       zerolog.Logger
	now          func() time.Time
}

// NewNoteService constructs a NoteService instance.
func NewNoteService(noteRepo repository.NoteRepository, appRepo repository.ApplicationRepository, validate *validator.Validate, logger zerolog.Logger) NoteService {
	return &noteService{
		notes:        noteRepo,
		applications: appRepo,
		validator:    validate,
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       logger.With().Str("component", "note_service").Logger(),
		now:          time.Now,
	}
}

func (s *noteService) Add(ctx context.Context, applicationID uint, payload dto.NoteCreateRequest, author string) (dto.NoteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NoteResponse{}, err
	}
	if strings.TrimSpace(author) == "" {
		return dto.NoteResponse{}, ErrActorRequired
	}

	if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NoteResponse{}, ErrApplicationNotFound
		}
		return dto.NoteResponse{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if content == "" {
		return dto.NoteResponse{}, ErrNoteEmpty
	}

	category := payload.Category
	if category == "" {
		category = "general"
	}

	note := models.ApplicationNote{
		ApplicationID: applicationID,
		Author:        author,
		Category:      category,
		Content:       content,
		Internal:      payload.Internal,
	}
	if err := s.notes.Create(ctx, &note); err != nil {
		return dto.NoteResponse{}, err
	}

	s.logger.Info().Uint("application_id", applicationID).Str("category", category).Msg("note added")
	return dto.NewNoteResponse(note), nil
}

func (s *noteService) List(ctx context.Context, applicationID uint) ([]dto.NoteResponse, error) {
	notes, err := s.notes.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return dto.NewNoteResponseSlice(notes), nil
}

func (s *noteService) Delete(ctx context.Context, noteID uint) error {
	if _, err := s.notes.GetByID(ctx, noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}
	return s.notes.Delete(ctx, noteID)
}
