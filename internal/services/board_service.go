package services

import (
	"context"

	"taskboard.com/taskboard/internal/query"
	"taskboard.com/taskboard/pkg/constants"
	model "taskboard.com/taskboard/pkg/models"
)

const allTasksTitle = "All Tasks"

// Board is everything the task list page shows for one request.
type Board struct {
	Title    string                   `json:"title"`
	Count    int                      `json:"count"`
	Tasks    []model.Task             `json:"tasks"`
	Projects []model.ProjectWithCount `json:"projects"`
	Tags     []model.Tag              `json:"tags"`
}

type BoardService struct {
	tasks    *TaskService
	projects *ProjectService
	tags     *TagService
}

func NewBoardService(tasks *TaskService, projects *ProjectService, tags *TagService) *BoardService {
	return &BoardService{
		tasks:    tasks,
		projects: projects,
		tags:     tags,
	}
}

func (s *BoardService) Load(ctx context.Context, params query.Params) (*Board, error) {
	tasks, err := s.tasks.ListTasks(ctx, params)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []model.Task{}
	}

	return &Board{
		Title:    boardTitle(params, projects, tags),
		Count:    len(tasks),
		Tasks:    tasks,
		Projects: projects,
		Tags:     tags,
	}, nil
}

// boardTitle prefers the selected project, then the selected tag, then the
// status filter.
func boardTitle(params query.Params, projects []model.ProjectWithCount, tags []model.Tag) string {
	if params.ProjectID != "" {
		for _, p := range projects {
			if p.ID == params.ProjectID {
				return p.Name
			}
		}
	}
	if params.TagID != "" {
		for _, t := range tags {
			if t.ID == params.TagID {
				return "#" + t.Name
			}
		}
	}
	if status, ok := constants.ParseStatus(params.Status); ok {
		return status.Label()
	}
	return allTasksTitle
}
