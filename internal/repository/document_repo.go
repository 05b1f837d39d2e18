package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sams-go-api/internal/models"
)

// DocumentRepository defines data operations for application documents.
type DocumentRepository interface {
	ListByApplication(ctx context.Context, applicationID uint) ([]models.ApplicationDocument, error)
	GetByID(ctx context.Context, id uint) (models.ApplicationDocument, error)
	Create(ctx context.Context, document *models.ApplicationDocument) error
	Update(ctx context.Context, document *models.ApplicationDocument) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository instantiates the repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) ListByApplication(ctx context.Context, applicationID uint) ([]models.ApplicationDocument, error) {
	var documents []models.ApplicationDocument
	if err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id uint) (models.ApplicationDocument, error) {
	var document models.ApplicationDocument
	if err := r.db.WithContext(ctx).First(&document, id).Error; err != nil {
		return models.ApplicationDocument{}, err
	}
	return document, nil
}

func (r *documentRepository) Create(ctx context.Context, document *models.ApplicationDocument) error {
	return r.db.WithContext(ctx).Create(document).Error
}

func (r *documentRepository) Update(ctx context.Context, document *models.ApplicationDocument) error {
	return r.db.WithContext(ctx).Save(document).Error
}
