package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/models"
	"github.com/noah-isme/sams-go-api/internal/repository"
)

// signedURLTTL is how long document retrieval links stay valid.
const signedURLTTL = 3600 * time.Second

// Sentinel errors surfaced by document workflows.
var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrDocumentFinalized   = errors.New("verified documents cannot be changed")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileRequired        = errors.New("document file is required")
)

// DocumentStore is the blob store collaborator holding uploaded files.
type DocumentStore interface {
	Upload(ctx context.Context, path string, reader io.Reader) (string, error)
	SignedURL(path string, expiry time.Duration) (string, error)
}

// DocumentService orchestrates document upload and verification.
type DocumentService interface {
	Upload(ctx context.Context, applicationID uint, payload dto.DocumentUploadRequest, file *multipart.FileHeader, actor string) (dto.DocumentResponse, error)
	ListByApplication(ctx context.Context, applicationID uint) ([]dto.DocumentResponse, error)
	Verify(ctx context.Context, documentID uint, actor string) (dto.DocumentResponse, error)
	Reject(ctx context.Context, documentID uint, actor string) (dto.DocumentResponse, error)
	Checklist(ctx context.Context, applicationID uint) (dto.ChecklistResponse, error)
	SignedURL(ctx context.Context, documentID uint) (dto.SignedURLResponse, error)
}

type documentService struct {
	documents    repository.DocumentRepository
	applications repository.ApplicationRepository
	store        DocumentStore
	validator    *validator.Validate
	logger       zerolog.Logger
	now          func() time.Time
}

// NewDocumentService constructs a DocumentService instance.
func NewDocumentService(docRepo repository.DocumentRepository, appRepo repository.ApplicationRepository, store DocumentStore, validate *validator.Validate, logger zerolog.Logger) DocumentService {
	return &documentService{
		documents:    docRepo,
		applications: appRepo,
		store:        store,
		validator:    validate,
		logger:       logger.With().Str("component", "document_service").Logger(),
		now:          time.Now,
	}
}

func (s *documentService) Upload(ctx context.Context, applicationID uint, payload dto.DocumentUploadRequest, file *multipart.FileHeader, actor string) (dto.DocumentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DocumentResponse{}, err
	}
	if strings.TrimSpace(actor) == "" {
		return dto.DocumentResponse{}, ErrActorRequired
	}
	if file == nil {
		return dto.DocumentResponse{}, ErrFileRequired
	}

	if _, err := s.lookupApplication(ctx, applicationID); err != nil {
		return dto.DocumentResponse{}, err
	}

	if err := validateDocumentType(file); err != nil {
		return dto.DocumentResponse{}, err
	}

	reader, err := file.Open()
	if err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	path := s.objectPath(applicationID, payload.DocumentType, file.Filename)
	url, err := s.store.Upload(ctx, path, reader)
	if err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("failed to upload document: %w", err)
	}

	document := models.ApplicationDocument{
		ApplicationID: applicationID,
		DocumentType:  payload.DocumentType,
		FileName:      file.Filename,
		FilePath:      path,
		FileURL:       url,
		Status:        admission.DocumentPending,
		UploadedBy:    actor,
	}
	if err := s.documents.Create(ctx, &document); err != nil {
		return dto.DocumentResponse{}, err
	}

	s.logger.Info().
		Uint("application_id", applicationID).
		Str("document_type", payload.DocumentType).
		Msg("document uploaded")

	return dto.NewDocumentResponse(document), nil
}

func (s *documentService) ListByApplication(ctx context.Context, applicationID uint) ([]dto.DocumentResponse, error) {
	documents, err := s.documents.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return dto.NewDocumentResponseSlice(documents), nil
}

func (s *documentService) Verify(ctx context.Context, documentID uint, actor string) (dto.DocumentResponse, error) {
	return s.setStatus(ctx, documentID, admission.DocumentVerified, actor)
}

func (s *documentService) Reject(ctx context.Context, documentID uint, actor string) (dto.DocumentResponse, error) {
	return s.setStatus(ctx, documentID, admission.DocumentRejected, actor)
}

func (s *documentService) setStatus(ctx context.Context, documentID uint, status admission.DocumentStatus, actor string) (dto.DocumentResponse, error) {
	if strings.TrimSpace(actor) == "" {
		return dto.DocumentResponse{}, ErrActorRequired
	}

	document, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DocumentResponse{}, ErrDocumentNotFound
		}
		return dto.DocumentResponse{}, err
	}

	if document.IsVerified() {
		return dto.DocumentResponse{}, ErrDocumentFinalized
	}

	now := s.now()
	document.Status = status
	document.VerifiedBy = &actor
	document.VerifiedAt = &now
	if err := s.documents.Update(ctx, &document); err != nil {
		return dto.DocumentResponse{}, err
	}

	if err := s.refreshReviewStage(ctx, document.ApplicationID); err != nil {
		// The checklist sub-state is re-derived on the next gate read, so a
		// failed refresh is logged rather than failing the verification.
		s.logger.Warn().Err(err).Uint("application_id", document.ApplicationID).Msg("failed to refresh review stage status")
	}

	s.logger.Info().
		Uint("document_id", document.ID).
		Str("status", string(status)).
		Str("actor", actor).
		Msg("document verification recorded")

	return dto.NewDocumentResponse(document), nil
}

func (s *documentService) Checklist(ctx context.Context, applicationID uint) (dto.ChecklistResponse, error) {
	application, err := s.lookupApplication(ctx, applicationID)
	if err != nil {
		return dto.ChecklistResponse{}, err
	}

	uploaded, err := s.uploadedDocuments(ctx, applicationID)
	if err != nil {
		return dto.ChecklistResponse{}, err
	}

	return dto.ChecklistResponse{
		ApplicationID:       applicationID,
		Entries:             admission.MergeChecklist(uploaded),
		AllRequiredVerified: admission.AllRequiredVerified(uploaded),
		ReviewStageStatus:   string(application.ReviewStageStatus),
	}, nil
}

func (s *documentService) SignedURL(ctx context.Context, documentID uint) (dto.SignedURLResponse, error) {
	document, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SignedURLResponse{}, ErrDocumentNotFound
		}
		return dto.SignedURLResponse{}, err
	}

	url, err := s.store.SignedURL(document.FilePath, signedURLTTL)
	if err != nil {
		return dto.SignedURLResponse{}, fmt.Errorf("failed to sign url: %w", err)
	}

	return dto.SignedURLResponse{URL: url, ExpiresIn: int(signedURLTTL.Seconds())}, nil
}

// refreshReviewStage re-derives the checklist sub-state after a verification
// change. A submitted review is never downgraded.
func (s *documentService) refreshReviewStage(ctx context.Context, applicationID uint) error {
	application, err := s.lookupApplication(ctx, applicationID)
	if err != nil {
		return err
	}

	if application.ReviewStageStatus == admission.ReviewSubmitted {
		return nil
	}

	uploaded, err := s.uploadedDocuments(ctx, applicationID)
	if err != nil {
		return err
	}

	next := admission.ReviewDocumentsPending
	if admission.AllRequiredVerified(uploaded) {
		next = admission.ReviewDocumentsVerified
	}

	if next == application.ReviewStageStatus {
		return nil
	}

	application.ReviewStageStatus = next
	return s.applications.Update(ctx, &application)
}

func (s *documentService) uploadedDocuments(ctx context.Context, applicationID uint) ([]admission.UploadedDocument, error) {
	documents, err := s.documents.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	uploaded := make([]admission.UploadedDocument, 0, len(documents))
	for _, document := range documents {
		uploaded = append(uploaded, admission.UploadedDocument{
			Type:   document.DocumentType,
			Status: document.Status,
		})
	}
	return uploaded, nil
}

func (s *documentService) lookupApplication(ctx context.Context, applicationID uint) (models.Application, error) {
	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Application{}, ErrApplicationNotFound
		}
		return models.Application{}, err
	}
	return application, nil
}

func (s *documentService) objectPath(applicationID uint, documentType, fileName string) string {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%d/%s-%d.%s", applicationID, documentType, s.now().Unix(), ext)
}

func validateDocumentType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	allowed := []string{"application/pdf", "image/png", "image/jpeg"}
	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedFileType, mime.String())
}
