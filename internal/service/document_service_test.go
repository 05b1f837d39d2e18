package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/models"
)

type storeStub struct {
	uploaded bytes.Buffer
	lastPath string
}

func (s *storeStub) Upload(ctx context.Context, path string, reader io.Reader) (string, error) {
	s.uploaded.Reset()
	if _, err := s.uploaded.ReadFrom(reader); err != nil {
		return "", err
	}
	s.lastPath = path
	return "https://cdn.example.com/" + path, nil
}

func (s *storeStub) SignedURL(path string, expiry time.Duration) (string, error) {
	return "https://cdn.example.com/signed/" + path, nil
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func pngHeader() []byte {
	return []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
}

func newDocumentFixture(t *testing.T) (*memoryDocumentRepo, *memoryApplicationRepo, *storeStub, DocumentService, uint) {
	t.Helper()
	docRepo := newMemoryDocumentRepo()
	appRepo := newMemoryApplicationRepo()
	store := &storeStub{}
	svc := NewDocumentService(docRepo, appRepo, store, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	application := models.Application{
		Status:            admission.StatusUnderReview,
		ReviewStageStatus: admission.ReviewDocumentsPending,
	}
	require.NoError(t, appRepo.Create(context.Background(), &application))
	return docRepo, appRepo, store, svc, application.ID
}

func TestDocumentServiceUploadStoresFile(t *testing.T) {
	_, _, store, svc, appID := newDocumentFixture(t)

	file := buildFileHeader(t, "birth.png", pngHeader())
	resp, err := svc.Upload(context.Background(), appID, dto.DocumentUploadRequest{DocumentType: "birth_certificate"}, file, "registrar@school")
	require.NoError(t, err)
	require.Equal(t, "pending", resp.Status)
	require.Equal(t, "birth_certificate", resp.DocumentType)
	require.Contains(t, store.lastPath, "birth_certificate-")
	require.Contains(t, resp.FileURL, "cdn.example.com")
}

func TestDocumentServiceUploadRejectsUnsupportedType(t *testing.T) {
	_, _, _, svc, appID := newDocumentFixture(t)

	file := buildFileHeader(t, "notes.txt", []byte("plain text"))
	_, err := svc.Upload(context.Background(), appID, dto.DocumentUploadRequest{DocumentType: "birth_certificate"}, file, "registrar@school")
	require.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestDocumentServiceVerifyIsFinal(t *testing.T) {
	docRepo, _, _, svc, appID := newDocumentFixture(t)

	document := models.ApplicationDocument{
		ApplicationID: appID,
		DocumentType:  "birth_certificate",
		Status:        admission.DocumentPending,
	}
	require.NoError(t, docRepo.Create(context.Background(), &document))

	verified, err := svc.Verify(context.Background(), document.ID, "registrar@school")
	require.NoError(t, err)
	require.Equal(t, "verified", verified.Status)
	require.NotNil(t, verified.VerifiedAt)

	_, err = svc.Reject(context.Background(), document.ID, "registrar@school")
	require.ErrorIs(t, err, ErrDocumentFinalized)
}

func TestDocumentServiceChecklistMergesTemplate(t *testing.T) {
	docRepo, _, _, svc, appID := newDocumentFixture(t)

	document := models.ApplicationDocument{
		ApplicationID: appID,
		DocumentType:  "birth_certificate",
		Status:        admission.DocumentVerified,
	}
	require.NoError(t, docRepo.Create(context.Background(), &document))

	resp, err := svc.Checklist(context.Background(), appID)
	require.NoError(t, err)
	require.False(t, resp.AllRequiredVerified)
	require.Len(t, resp.Entries, len(admission.ChecklistTemplate))

	var birthCert *admission.ChecklistEntry
	for i := range resp.Entries {
		if resp.Entries[i].Type == "birth_certificate" {
			birthCert = &resp.Entries[i]
		}
	}
	require.NotNil(t, birthCert)
	require.True(t, birthCert.Uploaded)
	require.Equal(t, admission.DocumentVerified, birthCert.Status)
}

func TestDocumentServiceVerifyFlipsReviewStage(t *testing.T) {
	docRepo, appRepo, _, svc, appID := newDocumentFixture(t)

	var lastID uint
	for _, item := range admission.ChecklistTemplate {
		if !item.Required {
			continue
		}
		document := models.ApplicationDocument{
			ApplicationID: appID,
			DocumentType:  item.Type,
			Status:        admission.DocumentPending,
		}
		require.NoError(t, docRepo.Create(context.Background(), &document))
		lastID = document.ID
	}

	for id := uint(1); id <= lastID; id++ {
		_, err := svc.Verify(context.Background(), id, "registrar@school")
		require.NoError(t, err)
	}

	application, err := appRepo.GetByID(context.Background(), appID)
	require.NoError(t, err)
	require.Equal(t, admission.ReviewDocumentsVerified, application.ReviewStageStatus)
}

func TestDocumentServiceSignedURL(t *testing.T) {
	docRepo, _, _, svc, appID := newDocumentFixture(t)

	document := models.ApplicationDocument{
		ApplicationID: appID,
		DocumentType:  "passport_photo",
		FilePath:      "1/passport_photo-1700000000.png",
	}
	require.NoError(t, docRepo.Create(context.Background(), &document))

	resp, err := svc.SignedURL(context.Background(), document.ID)
	require.NoError(t, err)
	require.Contains(t, resp.URL, document.FilePath)
	require.Equal(t, 3600, resp.ExpiresIn)

	_, err = svc.SignedURL(context.Background(), 999)
	require.ErrorIs(t, err, ErrDocumentNotFound)
}
