package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sams-go-api/internal/models"
)

// NoteRepository defines data operations for application notes.
type NoteRepository interface {
	ListByApplication(ctx context.Context, applicationID uint) ([]models.ApplicationNote, error)
	GetByID(ctx context.Context, id uint) (models.ApplicationNote, error)
	Create(ctx context.Context, note *models.ApplicationNote) error
	Delete(ctx context.Context, id uint) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository instantiates the repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) ListByApplication(ctx context.Context, applicationID uint) ([]models.ApplicationNote, error) {
	var notes []models.ApplicationNote
	if err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) GetByID(ctx context.Context, id uint) (models.ApplicationNote, error) {
	var note models.ApplicationNote
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return models.ApplicationNote{}, err
	}
	return note, nil
}

func (r *noteRepository) Create(ctx context.Context, note *models.ApplicationNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ApplicationNote{}, id).Error
}
