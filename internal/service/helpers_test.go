package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/models"
	"github.com/noah-isme/sams-go-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type memoryApplicationRepo struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]models.Application
}

func newMemoryApplicationRepo() *memoryApplicationRepo {
	return &memoryApplicationRepo{items: make(map[uint]models.Application)}
}

func (r *memoryApplicationRepo) List(ctx context.Context, filter repository.ApplicationFilter) ([]models.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Application
	for _, item := range r.items {
		if filter.Status != nil && string(item.Status) != *filter.Status {
			continue
		}
		if filter.Pathway != nil && string(item.Pathway) != *filter.Pathway {
			continue
		}
		out = append(out, item)
	}
	return out, int64(len(out)), nil
}

func (r *memoryApplicationRepo) GetByID(ctx context.Context, id uint) (models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return models.Application{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *memoryApplicationRepo) GetByNumber(ctx context.Context, number string) (models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ApplicationNumber == number {
			return item, nil
		}
	}
	return models.Application{}, gorm.ErrRecordNotFound
}

func (r *memoryApplicationRepo) Create(ctx context.Context, application *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	application.ID = r.nextID
	r.items[application.ID] = *application
	return nil
}

func (r *memoryApplicationRepo) Update(ctx context.Context, application *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[application.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[application.ID] = *application
	return nil
}

func (r *memoryApplicationRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *memoryApplicationRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int64)
	for _, item := range r.items {
		counts[string(item.Status)]++
	}
	return counts, nil
}

type memoryDocumentRepo struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]models.ApplicationDocument
}

func newMemoryDocumentRepo() *memoryDocumentRepo {
	return &memoryDocumentRepo{items: make(map[uint]models.ApplicationDocument)}
}

func (r *memoryDocumentRepo) ListByApplication(ctx context.Context, applicationID uint) ([]models.ApplicationDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.ApplicationDocument
	for _, item := range r.items {
		if item.ApplicationID == applicationID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryDocumentRepo) GetByID(ctx context.Context, id uint) (models.ApplicationDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return models.ApplicationDocument{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *memoryDocumentRepo) Create(ctx context.Context, document *models.ApplicationDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	document.ID = r.nextID
	r.items[document.ID] = *document
	return nil
}

func (r *memoryDocumentRepo) Update(ctx context.Context, document *models.ApplicationDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[document.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[document.ID] = *document
	return nil
}

type memoryNoteRepo struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]models.ApplicationNote
}

func newMemoryNoteRepo() *memoryNoteRepo {
	return &memoryNoteRepo{items: make(map[uint]models.ApplicationNote)}
}

func (r *memoryNoteRepo) ListByApplication(ctx context.Context, applicationID uint) ([]models.ApplicationNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.ApplicationNote
	for _, item := range r.items {
		if item.ApplicationID == applicationID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryNoteRepo) GetByID(ctx context.Context, id uint) (models.ApplicationNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return models.ApplicationNote{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *memoryNoteRepo) Create(ctx context.Context, note *models.ApplicationNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	note.ID = r.nextID
	r.items[note.ID] = *note
	return nil
}

func (r *memoryNoteRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

type memoryCommunicationRepo struct {
	mu     sync.Mutex
	nextID uint
	items  []models.Communication
}

func (r *memoryCommunicationRepo) ListByApplication(ctx context.Context, applicationID uint) ([]models.Communication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Communication
	for _, item := range r.items {
		if item.ApplicationID == applicationID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryCommunicationRepo) Create(ctx context.Context, communication *models.Communication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	communication.ID = r.nextID
	r.items = append(r.items, *communication)
	return nil
}

type capturingEvents struct {
	mu     sync.Mutex
	events []dto.StageEvent
}

func (c *capturingEvents) PublishStageEvent(ctx context.Context, event dto.StageEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *capturingEvents) Subscribe() (<-chan dto.StageEvent, func()) {
	ch := make(chan dto.StageEvent)
	close(ch)
	return ch, func() {}
}

func (c *capturingEvents) Start(ctx context.Context) {}

func (c *capturingEvents) captured() []dto.StageEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]dto.StageEvent, len(c.events))
	copy(out, c.events)
	return out
}
