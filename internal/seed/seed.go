// Package seed loads the sample projects, tags and tasks used for demos and
// local development.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/pkg/constants"
	model "taskboard.com/taskboard/pkg/models"
)

//go:embed seed.yaml
var defaultFixture []byte

type Fixture struct {
	Projects []ProjectFixture `yaml:"projects"`
	Tags     []string         `yaml:"tags"`
	Tasks    []TaskFixture    `yaml:"tasks"`
}

type ProjectFixture struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type TaskFixture struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Notes     string   `yaml:"notes"`
	Status    string   `yaml:"status"`
	Priority  string   `yaml:"priority"`
	Project   string   `yaml:"project"`
	DueInDays *int     `yaml:"due_in_days"`
	Tags      []string `yaml:"tags"`
}

// Result counts the projects and tasks a run inserted and the tags it
// ensured exist. Projects and tasks that already existed are skipped.
type Result struct {
	Projects int
	Tags     int
	Tasks    int
}

type Seeder struct {
	tasks    *repository.TaskRepository
	projects *repository.ProjectRepository
	tags     *repository.TagRepository
	now      func() time.Time
}

func NewSeeder(tasks *repository.TaskRepository, projects *repository.ProjectRepository, tags *repository.TagRepository) *Seeder {
	return &Seeder{
		tasks:    tasks,
		projects: projects,
		tags:     tags,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func DefaultFixture() (*Fixture, error) {
	return Parse(defaultFixture)
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed fixture: %w", err)
	}
	return &f, nil
}

// Run inserts the fixture. Running it again changes nothing.
func (s *Seeder) Run(ctx context.Context, f *Fixture) (Result, error) {
	var res Result
	now := s.now()

	for _, p := range f.Projects {
		project := &model.Project{ID: p.ID, Name: p.Name, CreatedAt: now, UpdatedAt: now}
		created, err := s.projects.CreateIfAbsent(ctx, project)
		if err != nil {
			return res, fmt.Errorf("seed project %s: %w", p.ID, err)
		}
		if created {
			res.Projects++
		}
	}

	tagIDs := make(map[string]string, len(f.Tags))
	for _, name := range f.Tags {
		tag, err := s.tags.Upsert(ctx, name)
		if err != nil {
			return res, fmt.Errorf("seed tag %s: %w", name, err)
		}
		tagIDs[name] = tag.ID
	}

	res.Tags = len(tagIDs)

	for _, tf := range f.Tasks {
		exists, err := s.tasks.Exists(ctx, tf.ID)
		if err != nil {
			return res, err
		}
		if exists {
			continue
		}

		task, links, err := buildTask(tf, tagIDs, now)
		if err != nil {
			return res, err
		}
		if err := s.tasks.Create(ctx, task, links); err != nil {
			return res, fmt.Errorf("seed task %s: %w", tf.ID, err)
		}
		res.Tasks++
	}

	return res, nil
}

func buildTask(tf TaskFixture, tagIDs map[string]string, now time.Time) (*model.Task, []string, error) {
	status, ok := constants.ParseStatus(tf.Status)
	if !ok {
		return nil, nil, fmt.Errorf("seed task %s: invalid status %q", tf.ID, tf.Status)
	}
	priority, ok := constants.ParsePriority(tf.Priority)
	if !ok {
		return nil, nil, fmt.Errorf("seed task %s: invalid priority %q", tf.ID, tf.Priority)
	}

	task := &model.Task{
		ID:        tf.ID,
		Title:     tf.Title,
		Status:    status,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if tf.Notes != "" {
		notes := tf.Notes
		task.Notes = &notes
	}
	if tf.Project != "" {
		project := tf.Project
		task.ProjectID = &project
	}
	if tf.DueInDays != nil {
		due := now.AddDate(0, 0, *tf.DueInDays)
		task.DueDate = &due
	}
	if status == constants.StatusDone {
		completedAt := now
		task.CompletedAt = &completedAt
	}

	links := make([]string, 0, len(tf.Tags))
	for _, name := range tf.Tags {
		id, ok := tagIDs[name]
		if !ok {
			return nil, nil, fmt.Errorf("seed task %s: unknown tag %q", tf.ID, name)
		}
		links = append(links, id)
	}

	return task, links, nil
}
