package services

import (
	"context"

	"github.com/google/uuid"

	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/events"
	repository "taskboard.com/taskboard/internal/repositories"
	model "taskboard.com/taskboard/pkg/models"
)

type ProjectService struct {
	repo   *repository.ProjectRepository
	events events.Publisher
	now    Clock
}

func NewProjectService(repo *repository.ProjectRepository, publisher events.Publisher) *ProjectService {
	return &ProjectService{
		repo:   repo,
		events: publisher,
		now:    systemClock,
	}
}

func (s *ProjectService) WithClock(now Clock) *ProjectService {
	s.now = now
	return s
}

func (s *ProjectService) CreateProject(ctx context.Context, name string) (*model.Project, error) {
	name, err := validateProjectName(name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	project := &model.Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, apperrors.Store(err)
	}
	publish(ctx, s.events, events.EntityProject, project.ID, events.ActionCreated, now)

	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, id, name string) (*model.Project, error) {
	name, err := validateProjectName(name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.Rename(ctx, id, name, now); err != nil {
		return nil, storeError(err, apperrors.ErrProjectNotFound)
	}
	publish(ctx, s.events, events.EntityProject, id, events.ActionUpdated, now)

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrProjectNotFound)
	}
	return project, nil
}

// DeleteProject removes the project. Its tasks stay, unassigned.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, apperrors.ErrProjectNotFound)
	}
	publish(ctx, s.events, events.EntityProject, id, events.ActionDeleted, s.now())
	return nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]model.ProjectWithCount, error) {
	projects, err := s.repo.ListWithCounts(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return projects, nil
}
