package cloudinary

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Service stores application documents in Cloudinary.
type Service struct {
	client *cloudinary.Cloudinary
	cfg    Config
	logger zerolog.Logger
	now    func() time.Time
}

// New constructs a Cloudinary service instance.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Service{
		client: cld,
		cfg:    cfg,
		logger: logger.With().Str("component", "cloudinary").Logger(),
		now:    time.Now,
	}, nil
}

// Upload stores the file under the given object path and returns a secure URL.
func (s *Service) Upload(ctx context.Context, objectPath string, reader io.Reader) (string, error) {
	params := uploader.UploadParams{
		Folder:       strings.Trim(s.cfg.Folder, "/"),
		PublicID:     publicID(objectPath),
		ResourceType: "auto",
		Overwrite:    api.Bool(true),
	}

	result, err := s.client.Upload.Upload(ctx, reader, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	s.logger.Info().Str("public_id", result.PublicID).Msg("document uploaded to cloudinary")

	return result.SecureURL, nil
}

// SignedURL returns a time-limited private download link for the object.
func (s *Service) SignedURL(objectPath string, expiry time.Duration) (string, error) {
	expiresAt := s.now().Add(expiry).Unix()

	params := url.Values{}
	params.Set("public_id", path.Join(strings.Trim(s.cfg.Folder, "/"), publicID(objectPath)))
	params.Set("expires_at", strconv.FormatInt(expiresAt, 10))
	params.Set("timestamp", strconv.FormatInt(s.now().Unix(), 10))

	signature, err := api.SignParameters(params, s.cfg.APISecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign download url: %w", err)
	}
	params.Set("signature", signature)
	params.Set("api_key", s.cfg.APIKey)

	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/utils/download?%s", s.cfg.CloudName, params.Encode()), nil
}

// publicID strips the extension; Cloudinary keys derived assets off the bare id.
func publicID(objectPath string) string {
	trimmed := strings.Trim(objectPath, "/")
	if ext := path.Ext(trimmed); ext != "" {
		trimmed = strings.TrimSuffix(trimmed, ext)
	}
	return trimmed
}
