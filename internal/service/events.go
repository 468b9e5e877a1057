package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stitchwell/storefront/internal/models"
	"github.com/stitchwell/storefront/internal/repo"
	"github.com/stitchwell/storefront/internal/transport"
)

type EventService struct {
	Repo *repo.GormRepo
}

func (s *EventService) ListEvents(ctx context.Context, f repo.EventFilter, limit, offset int) (int64, []models.Event, error) {
	return s.Repo.ListEvents(ctx, f, limit, offset)
}

func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return s.Repo.GetEvent(ctx, id)
}

func (s *EventService) CreateEvent(ctx context.Context, req transport.CreateEventRequest) (*models.Event, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if req.StartsAt.IsZero() {
		return nil, fmt.Errorf("%w: starts_at required", ErrValidation)
	}
	if !req.EndsAt.IsZero() && req.EndsAt.Before(req.StartsAt) {
		return nil, fmt.Errorf("%w: ends_at before starts_at", ErrValidation)
	}

	event := &models.Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
	}
	if req.Published != nil {
		event.Published = *req.Published
	}

	if err := s.Repo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) PatchEvent(ctx context.Context, id uuid.UUID, req transport.PatchEventRequest) (*models.Event, error) {
	event, err := s.Repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}
	if req.Published != nil {
		event.Published = *req.Published
	}
	if !event.EndsAt.IsZero() && event.EndsAt.Before(event.StartsAt) {
		return nil, fmt.Errorf("%w: ends_at before starts_at", ErrValidation)
	}

	if err := s.Repo.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteEvent(ctx, id)
}
