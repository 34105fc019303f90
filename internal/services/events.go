package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	eventsrepo "github.com/foodgram/foodgram-backend/internal/data/repos/events"
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/requestdata"
)

type EventService interface {
	Record(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventType string, payload map[string]any)
	RecordForCaller(ctx context.Context, eventType string, payload map[string]any) error
	ListMine(ctx context.Context, limit int) ([]*types.UserEvent, error)
}

type eventService struct {
	db        *gorm.DB
	log       *logger.Logger
	eventRepo eventsrepo.UserEventRepo
}

func NewEventService(db *gorm.DB, log *logger.Logger, eventRepo eventsrepo.UserEventRepo) EventService {
	serviceLog := log.With("service", "EventService")
	return &eventService{db: db, log: serviceLog, eventRepo: eventRepo}
}

// Record is best effort: activity tracking must never fail the request
// that produced it.
func (es *eventService) Record(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventType string, payload map[string]any) {
	var raw datatypes.JSON
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			es.log.Warn("failed to encode event payload", "event_type", eventType, "error", err)
			return
		}
		raw = datatypes.JSON(encoded)
	}
	if err := es.eventRepo.Create(ctx, tx, []*types.UserEvent{{
		UserID:    userID,
		EventType: eventType,
		Payload:   raw,
	}}); err != nil {
		es.log.Warn("failed to record event", "event_type", eventType, "error", err)
	}
}

func (es *eventService) RecordForCaller(ctx context.Context, eventType string, payload map[string]any) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if eventType == "" {
		return fmt.Errorf("%w: event_type is required", ErrInvalidInput)
	}
	es.Record(ctx, nil, rd.UserID, eventType, payload)
	return nil
}

func (es *eventService) ListMine(ctx context.Context, limit int) ([]*types.UserEvent, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	return es.eventRepo.ListByUserIDs(ctx, nil, []uuid.UUID{rd.UserID}, limit)
}
