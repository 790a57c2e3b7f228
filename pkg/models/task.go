package model

import (
	"time"

	"taskboard.com/taskboard/pkg/constants"
)

type Task struct {
	ID          string               `gorm:"primaryKey;size:36" json:"id"`
	Title       string               `gorm:"size:200;not null" json:"title"`
	Notes       *string              `json:"notes,omitempty"`
	Status      constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority    constants.Priority   `gorm:"type:varchar(10);not null" json:"priority"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
	ProjectID   *string              `gorm:"size:36;index" json:"project_id,omitempty"`
	Project     *Project             `gorm:"constraint:OnDelete:SET NULL" json:"project,omitempty"`
	Tags        []Tag                `gorm:"many2many:task_tags" json:"tags"`
	CreatedAt   time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// TagIDs returns the ids of the loaded tags.
func (t *Task) TagIDs() []string {
	ids := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}
