package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/events"
	"taskboard.com/taskboard/internal/query"
	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/pkg/constants"
	model "taskboard.com/taskboard/pkg/models"
)

type TaskService struct {
	repo     *repository.TaskRepository
	projects *repository.ProjectRepository
	tags     *repository.TagRepository
	events   events.Publisher
	now      Clock
}

func NewTaskService(
	repo *repository.TaskRepository,
	projects *repository.ProjectRepository,
	tags *repository.TagRepository,
	publisher events.Publisher,
) *TaskService {
	return &TaskService{
		repo:     repo,
		projects: projects,
		tags:     tags,
		events:   publisher,
		now:      systemClock,
	}
}

// WithClock replaces the time source.
func (s *TaskService) WithClock(now Clock) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) CreateTask(ctx context.Context, in TaskInput) (*model.Task, error) {
	fields, err := parseTaskInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, fields); err != nil {
		return nil, err
	}

	now := s.now()
	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       fields.title,
		Notes:       fields.notes,
		Status:      fields.status,
		Priority:    fields.priority,
		DueDate:     fields.dueDate,
		ProjectID:   fields.projectID,
		CompletedAt: completedAtForStatusChange(fields.status, now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task, fields.tagIDs); err != nil {
		return nil, apperrors.Store(err)
	}
	publish(ctx, s.events, events.EntityTask, task.ID, events.ActionCreated, now)

	return s.GetTask(ctx, task.ID)
}

// UpdateTask replaces every field of the task and its whole tag set.
func (s *TaskService) UpdateTask(ctx context.Context, id string, in TaskInput) (*model.Task, error) {
	fields, err := parseTaskInput(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrTaskNotFound)
	}
	if err := s.checkReferences(ctx, fields); err != nil {
		return nil, err
	}

	now := s.now()
	task := &model.Task{
		ID:          id,
		Title:       fields.title,
		Notes:       fields.notes,
		Status:      fields.status,
		Priority:    fields.priority,
		DueDate:     fields.dueDate,
		ProjectID:   fields.projectID,
		CompletedAt: completedAtForUpdate(existing, fields.status, now),
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   now,
	}

	if err := s.repo.Update(ctx, task, fields.tagIDs); err != nil {
		return nil, storeError(err, apperrors.ErrTaskNotFound)
	}
	publish(ctx, s.events, events.EntityTask, id, events.ActionUpdated, now)

	return s.GetTask(ctx, id)
}

// UpdateTaskStatus changes only the status. Unlike UpdateTask it restamps
// completedAt on every move to DONE, even from DONE.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id, status string) (*model.Task, error) {
	next, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, next, completedAtForStatusChange(next, now), now); err != nil {
		return nil, storeError(err, apperrors.ErrTaskNotFound)
	}
	publish(ctx, s.events, events.EntityTask, id, events.ActionUpdated, now)

	return s.GetTask(ctx, id)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, apperrors.ErrTaskNotFound)
	}
	publish(ctx, s.events, events.EntityTask, id, events.ActionDeleted, s.now())
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrTaskNotFound)
	}
	return task, nil
}

// ListTasks never rejects params; see query.Build.
func (s *TaskService) ListTasks(ctx context.Context, params query.Params) ([]model.Task, error) {
	tasks, err := s.repo.Find(ctx, query.Build(params))
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return tasks, nil
}

func (s *TaskService) checkReferences(ctx context.Context, f taskFields) error {
	if f.projectID != nil {
		if _, err := s.projects.FindByID(ctx, *f.projectID); err != nil {
			return storeError(err, apperrors.Validation("project does not exist"))
		}
	}

	if len(f.tagIDs) > 0 {
		found, err := s.tags.FindByIDs(ctx, f.tagIDs)
		if err != nil {
			return apperrors.Store(err)
		}
		if len(found) != len(f.tagIDs) {
			return apperrors.Validation("one or more tags do not exist")
		}
	}
	return nil
}

// completedAtForUpdate keeps the original completion time while a task stays
// DONE, stamps now when it becomes DONE and clears it otherwise.
func completedAtForUpdate(prev *model.Task, status constants.TaskStatus, now time.Time) *time.Time {
	if status != constants.StatusDone {
		return nil
	}
	if prev.Status == constants.StatusDone && prev.CompletedAt != nil {
		completedAt := *prev.CompletedAt
		return &completedAt
	}
	return &now
}

// completedAtForStatusChange stamps now for DONE and clears otherwise,
// whatever the previous state was.
func completedAtForStatusChange(status constants.TaskStatus, now time.Time) *time.Time {
	if status != constants.StatusDone {
		return nil
	}
	return &now
}
