package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/pkg/timetable"
)

// ErrGeneratorUnavailable is returned when no generator function is configured.
var ErrGeneratorUnavailable = errors.New("timetable generator is not configured")

// TimetableService proxies timetable generation to the hosted function.
type TimetableService interface {
	Generate(ctx context.Context, payload dto.TimetableGenerateRequest) (dto.TimetableGenerateResponse, error)
}

type timetableService struct {
	client    *timetable.Client
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTimetableService constructs a TimetableService instance. The client may
// be nil when the generator function is not configured.
func NewTimetableService(client *timetable.Client, validate *validator.Validate, logger zerolog.Logger) TimetableService {
	return &timetableService{
		client:    client,
		validator: validate,
		logger:    logger.With().Str("component", "timetable_service").Logger(),
	}
}

func (s *timetableService) Generate(ctx context.Context, payload dto.TimetableGenerateRequest) (dto.TimetableGenerateResponse, error) {
	if s.client == nil {
		return dto.TimetableGenerateResponse{}, ErrGeneratorUnavailable
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.TimetableGenerateResponse{}, err
	}

	result, err := s.client.Generate(ctx, timetable.GenerateRequest{
		SchoolData:  payload.SchoolData,
		Settings:    payload.Settings,
		Constraints: payload.Constraints,
		TeacherData: payload.TeacherData,
		SubjectData: payload.SubjectData,
		RoomData:    payload.RoomData,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("timetable generation failed")
		return dto.TimetableGenerateResponse{}, err
	}

	return dto.TimetableGenerateResponse{
		Timetable: result.Timetable,
		Stats:     result.Stats,
	}, nil
}
