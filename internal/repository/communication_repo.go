package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sams-go-api/internal/models"
)

// CommunicationRepository records outbound emails triggered by stage actions.
type CommunicationRepository interface {
	ListByApplication(ctx context.Context, applicationID uint) ([]models.Communication, error)
	Create(ctx context.Context, communication *models.Communication) error
}

type communicationRepository struct {
	db *gorm.DB
}

// NewCommunicationRepository instantiates the repository.
func NewCommunicationRepository(db *gorm.DB) CommunicationRepository {
	return &communicationRepository{db: db}
}

func (r *communicationRepository) ListByApplication(ctx context.Context, applicationID uint) ([]models.Communication, error) {
	var communications []models.Communication
	if err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("sent_at DESC").
		Find(&communications).Error; err != nil {
		return nil, err
	}
	return communications, nil
}

func (r *communicationRepository) Create(ctx context.Context, communication *models.Communication) error {
	return r.db.WithContext(ctx).Create(communication).Error
}
