package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/observability"
)

const eventBufferSize = 16

// EventService broadcasts stage-transition events to dashboard subscribers,
// fanning out across nodes via NATS when configured.
type EventService interface {
	PublishStageEvent(ctx context.Context, event dto.StageEvent)
	Subscribe() (<-chan dto.StageEvent, func())
	Start(ctx context.Context)
}

type eventService struct {
	nats    *nats.Conn
	subject string
	logger  zerolog.Logger
	tracer  trace.Tracer
	broker  *eventBroker
	nodeID  string
}

type stageEventEnvelope struct {
	Source string         `json:"source"`
	Event  dto.StageEvent `json:"event"`
	SentAt time.Time      `json:"sent_at"`
}

type eventBroker struct {
	mu          sync.RWMutex
	subscribers map[chan dto.StageEvent]struct{}
}

// NewEventService constructs an event service. A nil NATS connection keeps
// fan-out local to this node.
func NewEventService(natsConn *nats.Conn, subject string, logger zerolog.Logger) EventService {
	if subject == "" {
		subject = "sams.admissions.events"
	}

	return &eventService{
		nats:    natsConn,
		subject: subject,
		logger:  logger.With().Str("component", "event_service").Logger(),
		tracer:  otel.Tracer("github.com/noah-isme/sams-go-api/internal/service/event"),
		broker: &eventBroker{
			subscribers: make(map[chan dto.StageEvent]struct{}),
		},
		nodeID: uuid.NewString(),
	}
}

func (s *eventService) Start(ctx context.Context) {
	if s.nats == nil {
		return
	}

	sub, err := s.nats.Subscribe(s.subject, func(msg *nats.Msg) {
		var envelope stageEventEnvelope
		if err := json.Unmarshal(msg.Data, &envelope); err != nil {
			s.logger.Warn().Err(err).Msg("discarding malformed stage event")
			return
		}
		if envelope.Source == s.nodeID {
			return
		}
		s.broker.broadcast(envelope.Event)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to stage events")
		return
	}

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
}

func (s *eventService) PublishStageEvent(ctx context.Context, event dto.StageEvent) {
	_, span := s.tracer.Start(ctx, "admissions.stage_event", trace.WithAttributes(
		attribute.String("event.from", event.From),
		attribute.String("event.to", event.To),
	))
	defer span.End()

	observability.StageTransitions().WithLabelValues(event.From, event.To).Inc()

	s.broker.broadcast(event)

	if s.nats == nil {
		return
	}

	payload, err := json.Marshal(stageEventEnvelope{Source: s.nodeID, Event: event, SentAt: time.Now()})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode stage event")
		return
	}

	if err := s.nats.Publish(s.subject, payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to publish stage event")
		return
	}

	s.logger.Info().
		Uint("application_id", event.ApplicationID).
		Str("from", event.From).
		Str("to", event.To).
		Msg("stage event published")
}

func (s *eventService) Subscribe() (<-chan dto.StageEvent, func()) {
	return s.broker.subscribe()
}

func (b *eventBroker) subscribe() (<-chan dto.StageEvent, func()) {
	ch := make(chan dto.StageEvent, eventBufferSize)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}

	return ch, cancel
}

func (b *eventBroker) broadcast(event dto.StageEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Slow subscribers drop events instead of blocking the pipeline.
		}
	}
}
