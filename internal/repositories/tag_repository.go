package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "taskboard.com/taskboard/pkg/models"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Upsert returns the tag called name, creating it first if needed.
func (r *TagRepository) Upsert(ctx context.Context, name string) (*model.Tag, error) {
	db := r.db.WithContext(ctx)

	candidate := model.Tag{ID: uuid.NewString(), Name: name}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, err
	}

	var tag model.Tag
	if err := db.First(&tag, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Tag, error) {
	var tags []model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) FindByID(ctx context.Context, id string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error
	return tags, err
}

// Delete removes the tag and every task association with it.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.TaskTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Tag{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
