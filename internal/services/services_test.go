package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/events"
	"taskboard.com/taskboard/internal/query"
	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/internal/testutil"
	"taskboard.com/taskboard/pkg/constants"
	model "taskboard.com/taskboard/pkg/models"
)

type fixture struct {
	tasks    *TaskService
	projects *ProjectService
	tags     *TagService
	board    *BoardService
	clock    *testutil.Clock
	events   *events.MemoryPublisher
}

func setup(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	clock := testutil.NewClock(time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	publisher := &events.MemoryPublisher{}

	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	tagRepo := repository.NewTagRepository(db)

	f := &fixture{
		tasks:    NewTaskService(taskRepo, projectRepo, tagRepo, publisher).WithClock(clock.Now),
		projects: NewProjectService(projectRepo, publisher).WithClock(clock.Now),
		tags:     NewTagService(tagRepo, publisher),
		clock:    clock,
		events:   publisher,
	}
	f.board = NewBoardService(f.tasks, f.projects, f.tags)
	return f
}

func assertCompletionInvariant(t *testing.T, task *model.Task) {
	t.Helper()
	assert.Equal(t, task.Status == constants.StatusDone, task.CompletedAt != nil,
		"status %s with completedAt %v", task.Status, task.CompletedAt)
}

func assertTimeEqual(t *testing.T, want time.Time, got *time.Time) {
	t.Helper()
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "want %s, got %s", want, *got)
}

func TestTaskService_CreateDefaults(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Buy groceries"})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, constants.StatusTodo, task.Status)
	assert.Equal(t, constants.PriorityMedium, task.Priority)
	assert.Nil(t, task.CompletedAt)
	assert.Nil(t, task.Notes)
	assert.Nil(t, task.ProjectID)
	assert.Empty(t, task.Tags)
	assert.True(t, f.clock.Now().Equal(task.CreatedAt))
}

func TestTaskService_CreateDoneStampsCompletedAt(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Already done", Status: "DONE"})
	require.NoError(t, err)

	assertTimeEqual(t, f.clock.Now(), task.CompletedAt)
}

func TestTaskService_CreateWithEverything(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	project, err := f.projects.CreateProject(ctx, "Work")
	require.NoError(t, err)
	bug, err := f.tags.CreateTag(ctx, "bug")
	require.NoError(t, err)

	task, err := f.tasks.CreateTask(ctx, TaskInput{
		Title:     "Fix login bug",
		Notes:     "special characters in password",
		Status:    "IN_PROGRESS",
		Priority:  "HIGH",
		DueDate:   "2026-05-03",
		ProjectID: project.ID,
		TagIDs:    []string{bug.ID, bug.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, constants.PriorityHigh, task.Priority)
	require.NotNil(t, task.Notes)
	assert.Equal(t, "special characters in password", *task.Notes)
	assertTimeEqual(t, time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC), task.DueDate)
	require.NotNil(t, task.Project)
	assert.Equal(t, "Work", task.Project.Name)
	assert.Equal(t, []string{bug.ID}, task.TagIDs())
}

func TestTaskService_CreateValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cases := map[string]TaskInput{
		"empty title":      {Title: ""},
		"blank title":      {Title: "   "},
		"long title":       {Title: strings.Repeat("x", 201)},
		"invalid status":   {Title: "ok", Status: "bogus"},
		"invalid priority": {Title: "ok", Priority: "URGENT"},
		"invalid due date": {Title: "ok", DueDate: "next tuesday"},
		"unknown project":  {Title: "ok", ProjectID: "missing"},
		"unknown tag":      {Title: "ok", TagIDs: []string{"missing"}},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.tasks.CreateTask(ctx, in)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err), "got %v", err)
		})
	}

	all, err := f.tasks.ListTasks(ctx, query.Params{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.events.Events())
}

func TestTaskService_TitleAtLimit(t *testing.T) {
	f := setup(t)

	_, err := f.tasks.CreateTask(context.Background(), TaskInput{Title: strings.Repeat("é", 200)})
	assert.NoError(t, err)
}

func TestTaskService_UpdateKeepsCompletedAtWhileDone(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Ship it", Status: "DONE"})
	require.NoError(t, err)
	doneAt := f.clock.Now()

	f.clock.Advance(time.Hour)
	updated, err := f.tasks.UpdateTask(ctx, task.ID, TaskInput{Title: "Ship it (renamed)", Status: "DONE"})
	require.NoError(t, err)

	assert.Equal(t, "Ship it (renamed)", updated.Title)
	assertTimeEqual(t, doneAt, updated.CompletedAt)
	assert.True(t, f.clock.Now().Equal(updated.UpdatedAt))
	assert.True(t, doneAt.Equal(updated.CreatedAt))
}

func TestTaskService_UpdateTransitions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Write tests"})
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	done, err := f.tasks.UpdateTask(ctx, task.ID, TaskInput{Title: "Write tests", Status: "DONE"})
	require.NoError(t, err)
	assertTimeEqual(t, f.clock.Now(), done.CompletedAt)

	f.clock.Advance(time.Hour)
	reopened, err := f.tasks.UpdateTask(ctx, task.ID, TaskInput{Title: "Write tests", Status: "IN_PROGRESS"})
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	f.clock.Advance(time.Hour)
	again, err := f.tasks.UpdateTask(ctx, task.ID, TaskInput{Title: "Write tests", Status: "DONE"})
	require.NoError(t, err)
	assertTimeEqual(t, f.clock.Now(), again.CompletedAt)
}

func TestTaskService_UpdateStatusRestampsDone(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Deploy", Status: "DONE"})
	require.NoError(t, err)
	firstDone := f.clock.Now()

	// DONE -> DONE through the status-only path does not keep the old time.
	later := f.clock.Advance(30 * time.Minute)
	updated, err := f.tasks.UpdateTaskStatus(ctx, task.ID, "DONE")
	require.NoError(t, err)
	assertTimeEqual(t, later, updated.CompletedAt)
	assert.False(t, firstDone.Equal(*updated.CompletedAt))

	f.clock.Advance(time.Minute)
	todo, err := f.tasks.UpdateTaskStatus(ctx, task.ID, "TODO")
	require.NoError(t, err)
	assert.Equal(t, constants.StatusTodo, todo.Status)
	assert.Nil(t, todo.CompletedAt)
}

func TestTaskService_UpdateStatusErrors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.tasks.UpdateTaskStatus(ctx, "missing", "DONE")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "x"})
	require.NoError(t, err)
	_, err = f.tasks.UpdateTaskStatus(ctx, task.ID, "bogus")
	assert.True(t, apperrors.IsValidation(err))
}

func TestTaskService_UpdateReplacesTagSet(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, _ := f.tags.CreateTag(ctx, "a")
	b, _ := f.tags.CreateTag(ctx, "b")
	c, _ := f.tags.CreateTag(ctx, "c")

	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Tagged", TagIDs: []string{a.ID, b.ID}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, task.TagIDs())

	updated, err := f.tasks.UpdateTask(ctx, task.ID, TaskInput{Title: "Tagged", TagIDs: []string{b.ID, c.ID}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{b.ID, c.ID}, updated.TagIDs())

	cleared, err := f.tasks.UpdateTask(ctx, task.ID, TaskInput{Title: "Tagged"})
	require.NoError(t, err)
	assert.Empty(t, cleared.Tags)
}

func TestTaskService_UpdateErrorsLeaveTaskUnchanged(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, _ := f.tags.CreateTag(ctx, "a")
	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Stable", TagIDs: []string{a.ID}})
	require.NoError(t, err)

	_, err = f.tasks.UpdateTask(ctx, "missing", TaskInput{Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	_, err = f.tasks.UpdateTask(ctx, task.ID, TaskInput{Title: "Changed", TagIDs: []string{"missing"}})
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.tasks.UpdateTask(ctx, task.ID, TaskInput{Title: ""})
	assert.True(t, apperrors.IsValidation(err))

	got, err := f.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stable", got.Title)
	assert.Equal(t, []string{a.ID}, got.TagIDs())
}

func TestTaskService_Delete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Temporary"})
	require.NoError(t, err)

	require.NoError(t, f.tasks.DeleteTask(ctx, task.ID))

	_, err = f.tasks.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	assert.ErrorIs(t, f.tasks.DeleteTask(ctx, task.ID), apperrors.ErrTaskNotFound)
}

func TestTaskService_CompletionInvariantAcrossOperations(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Cycle"})
	require.NoError(t, err)
	assertCompletionInvariant(t, task)

	steps := []struct {
		full   bool
		status string
	}{
		{true, "IN_PROGRESS"}, {false, "DONE"}, {true, "DONE"}, {false, "TODO"},
		{true, "DONE"}, {false, "DONE"}, {true, "TODO"}, {false, "IN_PROGRESS"},
	}
	for _, step := range steps {
		f.clock.Advance(time.Minute)
		if step.full {
			task, err = f.tasks.UpdateTask(ctx, task.ID, TaskInput{Title: "Cycle", Status: step.status})
		} else {
			task, err = f.tasks.UpdateTaskStatus(ctx, task.ID, step.status)
		}
		require.NoError(t, err)
		assert.Equal(t, step.status, string(task.Status))
		assertCompletionInvariant(t, task)
	}
}

func TestTaskService_ListSortsPriorityByRank(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, p := range []string{"HIGH", "LOW", "MEDIUM"} {
		_, err := f.tasks.CreateTask(ctx, TaskInput{Title: p, Priority: p})
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
	}

	tasks, err := f.tasks.ListTasks(ctx, query.Params{SortBy: "priority", SortDir: "desc"})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, constants.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, constants.PriorityMedium, tasks[1].Priority)
	assert.Equal(t, constants.PriorityLow, tasks[2].Priority)

	bogus, err := f.tasks.ListTasks(ctx, query.Params{SortBy: "bogus"})
	require.NoError(t, err)
	createdAt, err := f.tasks.ListTasks(ctx, query.Params{SortBy: "createdAt"})
	require.NoError(t, err)
	assert.Equal(t, createdAt, bogus)
}

func TestTagService_CreateIsUpsert(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.tags.CreateTag(ctx, "bug")
	require.NoError(t, err)
	second, err := f.tags.CreateTag(ctx, "bug")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	tags, err := f.tags.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestTagService_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, name := range []string{"", "Bug", "has space", "under_score", strings.Repeat("a", 51)} {
		_, err := f.tags.CreateTag(ctx, name)
		assert.True(t, apperrors.IsValidation(err), name)
	}

	_, err := f.tags.CreateTag(ctx, "front-end-2")
	assert.NoError(t, err)
}

func TestTagService_DeleteDropsAssociations(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	bug, _ := f.tags.CreateTag(ctx, "bug")
	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Tagged", TagIDs: []string{bug.ID}})
	require.NoError(t, err)

	require.NoError(t, f.tags.DeleteTag(ctx, bug.ID))

	got, err := f.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
	assert.ErrorIs(t, f.tags.DeleteTag(ctx, bug.ID), apperrors.ErrTagNotFound)
}

func TestProjectService_CRUD(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.projects.CreateProject(ctx, "")
	assert.True(t, apperrors.IsValidation(err))
	_, err = f.projects.CreateProject(ctx, strings.Repeat("p", 101))
	assert.True(t, apperrors.IsValidation(err))

	project, err := f.projects.CreateProject(ctx, "Personal")
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	renamed, err := f.projects.UpdateProject(ctx, project.ID, "Home")
	require.NoError(t, err)
	assert.Equal(t, "Home", renamed.Name)

	_, err = f.projects.UpdateProject(ctx, "missing", "Home")
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
	assert.ErrorIs(t, f.projects.DeleteProject(ctx, "missing"), apperrors.ErrProjectNotFound)
}

func TestProjectService_DeleteUnassignsTasks(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	project, err := f.projects.CreateProject(ctx, "Work")
	require.NoError(t, err)

	one, err := f.tasks.CreateTask(ctx, TaskInput{Title: "one", ProjectID: project.ID})
	require.NoError(t, err)
	two, err := f.tasks.CreateTask(ctx, TaskInput{Title: "two", ProjectID: project.ID})
	require.NoError(t, err)

	require.NoError(t, f.projects.DeleteProject(ctx, project.ID))

	for _, id := range []string{one.ID, two.ID} {
		task, err := f.tasks.GetTask(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, task.ProjectID)
	}

	projects, err := f.projects.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestBoardService_Titles(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	work, _ := f.projects.CreateProject(ctx, "Work")
	urgent, _ := f.tags.CreateTag(ctx, "urgent")
	_, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Fix it", ProjectID: work.ID, TagIDs: []string{urgent.ID}})
	require.NoError(t, err)

	cases := []struct {
		params query.Params
		want   string
	}{
		{query.Params{}, "All Tasks"},
		{query.Params{ProjectID: work.ID, TagID: urgent.ID}, "Work"},
		{query.Params{TagID: urgent.ID, Status: "DONE"}, "#urgent"},
		{query.Params{Status: "IN_PROGRESS"}, "In Progress"},
		{query.Params{Status: "bogus"}, "All Tasks"},
	}
	for _, tc := range cases {
		board, err := f.board.Load(ctx, tc.params)
		require.NoError(t, err)
		assert.Equal(t, tc.want, board.Title)
	}

	board, err := f.board.Load(ctx, query.Params{})
	require.NoError(t, err)
	assert.Equal(t, 1, board.Count)
	require.Len(t, board.Projects, 1)
	assert.Equal(t, int64(1), board.Projects[0].TaskCount)
	assert.Len(t, board.Tags, 1)

	empty, err := f.board.Load(ctx, query.Params{Status: "DONE"})
	require.NoError(t, err)
	assert.NotNil(t, empty.Tasks)
	assert.Zero(t, empty.Count)
}

func TestServices_PublishChanges(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	task, err := f.tasks.CreateTask(ctx, TaskInput{Title: "Notify"})
	require.NoError(t, err)
	_, err = f.tasks.UpdateTaskStatus(ctx, task.ID, "DONE")
	require.NoError(t, err)
	require.NoError(t, f.tasks.DeleteTask(ctx, task.ID))

	got := f.events.Events()
	require.Len(t, got, 3)
	assert.Equal(t, events.Event{Entity: events.EntityTask, ID: task.ID, Action: events.ActionCreated, At: f.clock.Now()}, got[0])
	assert.Equal(t, events.ActionUpdated, got[1].Action)
	assert.Equal(t, events.ActionDeleted, got[2].Action)
}
