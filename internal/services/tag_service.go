package services

import (
	"context"

	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/events"
	repository "taskboard.com/taskboard/internal/repositories"
	model "taskboard.com/taskboard/pkg/models"
)

type TagService struct {
	repo   *repository.TagRepository
	events events.Publisher
	now    Clock
}

func NewTagService(repo *repository.TagRepository, publisher events.Publisher) *TagService {
	return &TagService{
		repo:   repo,
		events: publisher,
		now:    systemClock,
	}
}

// CreateTag returns the tag with the given name, creating it if it does not
// exist yet. Asking twice for the same name yields the same tag.
func (s *TagService) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	name, err := validateTagName(name)
	if err != nil {
		return nil, err
	}

	tag, err := s.repo.Upsert(ctx, name)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	publish(ctx, s.events, events.EntityTag, tag.ID, events.ActionCreated, s.now())

	return tag, nil
}

func (s *TagService) DeleteTag(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, apperrors.ErrTagNotFound)
	}
	publish(ctx, s.events, events.EntityTag, id, events.ActionDeleted, s.now())
	return nil
}

func (s *TagService) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return tags, nil
}
