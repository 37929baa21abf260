package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srujanr7/ticketday-1-sub000/internal/domain"
	"github.com/srujanr7/ticketday-1-sub000/internal/repository"
)

type eventService struct {
	events repository.EventRepo
}

func NewEventService(events repository.EventRepo) EventService {
	return &eventService{events: events}
}

func (s *eventService) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Title == "" {
		return fmt.Errorf("event title is required")
	}
	if e.Type == "" {
		e.Type = domain.EventOther
	}
	if e.DurationMin <= 0 {
		e.DurationMin = 30
	}
	e.CreatedAt = time.Now().UTC()
	return s.events.Create(ctx, e)
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) ListByProject(ctx context.Context, projectID string) ([]*domain.Event, error) {
	return s.events.ListByProject(ctx, projectID)
}

func (s *eventService) ListUpcoming(ctx context.Context, projectID string, days int) ([]*domain.Event, error) {
	return s.events.ListUpcoming(ctx, projectID, days)
}

func (s *eventService) Delete(ctx context.Context, id, userID string) error {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e.CreatedBy != userID {
		return ErrNotCreator
	}
	return s.events.Delete(ctx, id)
}
