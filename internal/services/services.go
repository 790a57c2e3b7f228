package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/events"
)

// Clock returns the current time. Services stamp every write with it.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// storeError maps a repository error onto the application taxonomy.
func storeError(err error, notFound *apperrors.Exception) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.Store(err)
}

// publish announces a committed change. A failed publish does not undo the
// write, it is only logged.
func publish(ctx context.Context, p events.Publisher, entity events.Entity, id string, action events.Action, at time.Time) {
	err := p.Publish(ctx, events.Event{
		Entity: entity,
		ID:     id,
		Action: action,
		At:     at,
	})
	if err != nil {
		log.Printf("publish %s %s %s: %v", entity, action, id, err)
	}
}
