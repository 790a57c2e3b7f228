package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard.com/taskboard/internal/query"
	"taskboard.com/taskboard/pkg/constants"
	model "taskboard.com/taskboard/pkg/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task and its tag links in one transaction.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task, tagIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		return insertTaskTags(tx, task.ID, tagIDs)
	})
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := withRelations(r.db.WithContext(ctx)).First(&task, "tasks.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Find returns the tasks matching q.Filter ordered by q.Order.
func (r *TaskRepository) Find(ctx context.Context, q query.Query) ([]model.Task, error) {
	db := r.db.WithContext(ctx).Model(&model.Task{})

	f := q.Filter
	if f.ProjectID != nil {
		db = db.Where("tasks.project_id = ?", *f.ProjectID)
	}
	if f.Status != nil {
		db = db.Where("tasks.status = ?", *f.Status)
	}
	if f.TagID != nil {
		db = db.Where("EXISTS (SELECT 1 FROM task_tags WHERE task_tags.task_id = tasks.id AND task_tags.tag_id = ?)", *f.TagID)
	}
	if f.Search != nil {
		pattern := "%" + escapeLike(*f.Search) + "%"
		db = db.Where(`(tasks.title LIKE ? ESCAPE '\' OR tasks.notes LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	for _, o := range q.Order {
		db = db.Order(orderBy(o))
	}

	var tasks []model.Task
	if err := withRelations(db).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes every mutable field and replaces the tag set in one
// transaction. Returns gorm.ErrRecordNotFound when the task is gone.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task, tagIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"title":        task.Title,
				"notes":        task.Notes,
				"status":       task.Status,
				"priority":     task.Priority,
				"due_date":     task.DueDate,
				"project_id":   task.ProjectID,
				"completed_at": task.CompletedAt,
				"updated_at":   task.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&model.TaskTag{}).Error; err != nil {
			return err
		}
		return insertTaskTags(tx, task.ID, tagIDs)
	})
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status constants.TaskStatus, completedAt *time.Time, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": completedAt,
			"updated_at":   updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the task and its tag links.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Task{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *TaskRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name asc")
		}).
		Preload("Project")
}

func insertTaskTags(tx *gorm.DB, taskID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]model.TaskTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, model.TaskTag{TaskID: taskID, TagID: tagID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

var orderColumns = map[query.SortField]string{
	query.SortCreatedAt: "tasks.created_at",
	query.SortDueDate:   "tasks.due_date",
	query.SortPriority:  priorityRank(),
	query.SortTitle:     "tasks.title",
	query.SortUpdatedAt: "tasks.updated_at",
}

func orderBy(o query.Order) string {
	col, ok := orderColumns[o.Field]
	if !ok {
		col = orderColumns[query.SortCreatedAt]
	}
	if o.Direction == query.Asc {
		return col + " ASC"
	}
	return col + " DESC"
}

// priorityRank maps the stored priority onto its rank so HIGH sorts above
// MEDIUM above LOW instead of alphabetically.
func priorityRank() string {
	var b strings.Builder
	b.WriteString("CASE tasks.priority")
	for _, p := range constants.Priorities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	b.WriteString(" ELSE -1 END")
	return b.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
