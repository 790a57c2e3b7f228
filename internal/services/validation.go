package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/pkg/constants"
)

const (
	maxTitleLength       = 200
	maxProjectNameLength = 100
	maxTagNameLength     = 50
)

var tagNamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// dueDateLayouts are tried in order.
var dueDateLayouts = []string{"2006-01-02", time.RFC3339}

// TaskInput is the raw field data of a create or full update. Empty strings
// mean "not supplied".
type TaskInput struct {
	Title     string
	Notes     string
	Status    string
	Priority  string
	DueDate   string
	ProjectID string
	TagIDs    []string
}

type taskFields struct {
	title     string
	notes     *string
	status    constants.TaskStatus
	priority  constants.Priority
	dueDate   *time.Time
	projectID *string
	tagIDs    []string
}

func parseTaskInput(in TaskInput) (taskFields, error) {
	var f taskFields

	f.title = strings.TrimSpace(in.Title)
	if f.title == "" {
		return f, apperrors.Validation("title is required")
	}
	if utf8.RuneCountInString(f.title) > maxTitleLength {
		return f, apperrors.Validation(fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}

	if in.Notes != "" {
		notes := in.Notes
		f.notes = &notes
	}

	f.status = constants.StatusTodo
	if in.Status != "" {
		status, ok := constants.ParseStatus(in.Status)
		if !ok {
			return f, apperrors.Validation(fmt.Sprintf("invalid status %q", in.Status))
		}
		f.status = status
	}

	f.priority = constants.PriorityMedium
	if in.Priority != "" {
		priority, ok := constants.ParsePriority(in.Priority)
		if !ok {
			return f, apperrors.Validation(fmt.Sprintf("invalid priority %q", in.Priority))
		}
		f.priority = priority
	}

	if in.DueDate != "" {
		due, err := parseDueDate(in.DueDate)
		if err != nil {
			return f, err
		}
		f.dueDate = &due
	}

	if in.ProjectID != "" {
		id := in.ProjectID
		f.projectID = &id
	}

	f.tagIDs = uniqueIDs(in.TagIDs)
	return f, nil
}

func parseStatus(s string) (constants.TaskStatus, error) {
	status, ok := constants.ParseStatus(s)
	if !ok {
		return "", apperrors.Validation(fmt.Sprintf("invalid status %q", s))
	}
	return status, nil
}

func parseDueDate(s string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.Validation(fmt.Sprintf("invalid due date %q", s))
}

func validateProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.Validation("project name is required")
	}
	if utf8.RuneCountInString(name) > maxProjectNameLength {
		return "", apperrors.Validation(fmt.Sprintf("project name must be at most %d characters", maxProjectNameLength))
	}
	return name, nil
}

func validateTagName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.Validation("tag name is required")
	}
	if len(name) > maxTagNameLength {
		return "", apperrors.Validation(fmt.Sprintf("tag name must be at most %d characters", maxTagNameLength))
	}
	if !tagNamePattern.MatchString(name) {
		return "", apperrors.Validation("tag name must be lowercase alphanumeric with hyphens")
	}
	return name, nil
}

// uniqueIDs drops blanks and repeats, keeping first occurrences in order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
