package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "taskboard.com/taskboard/pkg/models"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// CreateIfAbsent inserts the project unless one with the same id exists and
// reports whether a row was written.
func (r *ProjectRepository) CreateIfAbsent(ctx context.Context, project *model.Project) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(project)
	return res.RowsAffected > 0, res.Error
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Rename(ctx context.Context, id, name string, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete unassigns the project's tasks and removes the project. The tasks
// themselves are kept.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("project_id = ?", id).
			UpdateColumn("project_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListWithCounts returns every project ordered by name with the number of
// tasks assigned to it.
func (r *ProjectRepository) ListWithCounts(ctx context.Context) ([]model.ProjectWithCount, error) {
	var projects []model.ProjectWithCount
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Select("projects.*, COUNT(tasks.id) AS task_count").
		Joins("LEFT JOIN tasks ON tasks.project_id = projects.id").
		Group("projects.id").
		Order("projects.name asc").
		Scan(&projects).Error
	return projects, err
}
