package repository

import (
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/logger"
	"gorm.io/gorm"
)

// EntityRepository persists the five content collections through their
// shared Entity surface. The concrete table is picked from the kind.
type EntityRepository interface {
	Create(entity model.Entity) error
	FindByID(kind model.EntityKind, id uint) (model.Entity, error)
	List(kind model.EntityKind, query *model.EntityListQuery) (interface{}, int64, error)
	Update(entity model.Entity) error
	Delete(kind model.EntityKind, id uint) error
	Exists(kind model.EntityKind, id uint) (bool, error)
}

type entityRepository struct {
	db *gorm.DB
}

func NewEntityRepository(db *gorm.DB) EntityRepository {
	return &entityRepository{db: db}
}

func (r *entityRepository) Create(entity model.Entity) error {
	if err := r.db.Create(entity).Error; err != nil {
		logger.Error("Failed to create entity in database", err, map[string]interface{}{
			"kind": entity.EntityKind(),
		})
		return err
	}

	logger.Debug("Entity created in database", map[string]interface{}{
		"kind":      entity.EntityKind(),
		"entity_id": entity.GetID(),
	})
	return nil
}

func (r *entityRepository) FindByID(kind model.EntityKind, id uint) (model.Entity, error) {
	entity := model.NewEntity(kind)

	query := r.db.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Limit(5).Preload("User")
	})
	if kind.HasCommentWall() {
		query = query.
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at DESC").Limit(20)
			}).
			Preload("Photos", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at DESC").Limit(20)
			})
	}

	if err := query.First(entity, id).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *entityRepository) List(kind model.EntityKind, q *model.EntityListQuery) (interface{}, int64, error) {
	var total int64

	query := r.db.Table(kind.TableName()).Where("deleted_at IS NULL")
	if q.Location != "" && kind != model.KindRegion {
		query = query.Where("location = ?", q.Location)
	}
	if q.Search != "" {
		query = query.Where("title LIKE ?", "%"+q.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	entities := model.NewEntitySlice(kind)
	offset := (q.Page - 1) * q.Limit
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(q.Limit).
		Find(entities).Error
	if err != nil {
		logger.Error("Failed to list entities from database", err, map[string]interface{}{
			"kind": kind,
		})
		return nil, 0, err
	}

	return entities, total, nil
}

// Update writes the descriptive fields only. The aggregate block and its
// version belong to the engagement transactions and must not be overwritten
// by a concurrent admin edit.
func (r *entityRepository) Update(entity model.Entity) error {
	err := r.db.
		Omit("favorites_count", "total_reviews", "average_rating", "version",
			"Reviews", "Comments", "Photos", "CreatedAt").
		Save(entity).Error
	if err != nil {
		logger.Error("Failed to update entity in database", err, map[string]interface{}{
			"kind":      entity.EntityKind(),
			"entity_id": entity.GetID(),
		})
		return err
	}
	return nil
}

func (r *entityRepository) Delete(kind model.EntityKind, id uint) error {
	result := r.db.Delete(model.NewEntity(kind), id)
	if result.Error != nil {
		logger.Error("Failed to delete entity from database", result.Error, map[string]interface{}{
			"kind":      kind,
			"entity_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *entityRepository) Exists(kind model.EntityKind, id uint) (bool, error) {
	var count int64
	err := r.db.Table(kind.TableName()).
		Where("id = ? AND deleted_at IS NULL", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
