package timetable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sams",
		Subsystem: "timetable",
		Name:      "generation_duration_seconds",
		Help:      "Duration of hosted timetable generation calls",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
	})

	generationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sams",
		Subsystem: "timetable",
		Name:      "generation_failures_total",
		Help:      "Number of failed timetable generation calls",
	})
)

// Config defines how to reach the hosted timetable generator function.
type Config struct {
	FunctionURL string
	APIKey      string
	Timeout     time.Duration
	Logger      zerolog.Logger
}

// GenerateRequest is the opaque payload forwarded to the generator.
type GenerateRequest struct {
	SchoolData  json.RawMessage `json:"schoolData"`
	Settings    json.RawMessage `json:"settings"`
	Constraints json.RawMessage `json:"constraints,omitempty"`
	TeacherData json.RawMessage `json:"teacherData"`
	SubjectData json.RawMessage `json:"subjectData"`
	RoomData    json.RawMessage `json:"roomData"`
}

// GenerateResult carries the generator's timetable artifact and run stats.
type GenerateResult struct {
	Timetable json.RawMessage
	Stats     json.RawMessage
}

// Client calls the hosted timetable generator over HTTP.
type Client struct {
	cfg    Config
	http   *http.Client
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewClient builds a generator client from the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.FunctionURL == "" {
		return nil, fmt.Errorf("timetable function url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		tracer: otel.Tracer("github.com/noah-isme/sams-go-api/pkg/timetable"),
		logger: logger.With().Str("component", "timetable_client").Logger(),
	}, nil
}

// Generate runs one timetable generation round trip.
func (c *Client) Generate(parent context.Context, request GenerateRequest) (GenerateResult, error) {
	ctx, span := c.tracer.Start(parent, "timetable.generate", trace.WithAttributes(
		attribute.String("function.url", c.cfg.FunctionURL),
	))
	defer span.End()

	body, err := json.Marshal(request)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.FunctionURL, bytes.NewReader(body))
	if err != nil {
		return GenerateResult{}, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	generationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return GenerateResult{}, c.fail(span, fmt.Errorf("call timetable generator: %w", err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return GenerateResult{}, c.fail(span, fmt.Errorf("read generator response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return GenerateResult{}, c.fail(span, fmt.Errorf("timetable generator returned status %d", resp.StatusCode))
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Timetable json.RawMessage `json:"timetable"`
			Stats     json.RawMessage `json:"stats"`
		} `json:"data"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return GenerateResult{}, c.fail(span, fmt.Errorf("decode generator response: %w", err))
	}
	if !envelope.Success {
		message := envelope.Error
		if message == "" {
			message = "generator reported failure without detail"
		}
		return GenerateResult{}, c.fail(span, fmt.Errorf("timetable generation failed: %s", message))
	}

	c.logger.Info().Dur("duration", time.Since(start)).Msg("timetable generated")

	return GenerateResult{
		Timetable: envelope.Data.Timetable,
		Stats:     envelope.Data.Stats,
	}, nil
}

func (c *Client) fail(span trace.Span, err error) error {
	generationFailures.Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
