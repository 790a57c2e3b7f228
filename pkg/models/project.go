package model

import "time"

type Project struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectWithCount is a project plus the number of tasks assigned to it.
type ProjectWithCount struct {
	Project
	TaskCount int64 `json:"task_count"`
}
