package model

import "time"

type Tag struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskTag is the join row between a task and a tag. The composite key keeps
// the association a set.
type TaskTag struct {
	TaskID string `gorm:"primaryKey;size:36"`
	TagID  string `gorm:"primaryKey;size:36;index"`
}

func (TaskTag) TableName() string {
	return "task_tags"
}
