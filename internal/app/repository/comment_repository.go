package repository

import (
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/logger"
	"gorm.io/gorm"
)

// CommentRepository persists the comment and photo walls of regions and
// cultural sites. Walls do not feed the entity aggregates, so these are
// plain writes; only like cleanup needs a transaction.
type CommentRepository interface {
	CreateComment(comment *model.EntityComment) error
	GetCommentByID(id uint) (*model.EntityComment, error)
	ListCommentsByEntity(kind model.EntityKind, entityID uint, offset, limit int) ([]model.EntityComment, int64, error)
	DeleteComment(comment *model.EntityComment) error
	CreatePhoto(photo *model.EntityPhoto) error
	GetPhotoByID(id uint) (*model.EntityPhoto, error)
	ListPhotosByEntity(kind model.EntityKind, entityID uint, offset, limit int) ([]model.EntityPhoto, int64, error)
	DeletePhoto(photo *model.EntityPhoto) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateComment(comment *model.EntityComment) error {
	if err := r.db.Create(comment).Error; err != nil {
		logger.Error("Failed to create comment in database", err, map[string]interface{}{
			"kind":      comment.EntityType,
			"entity_id": comment.EntityID,
			"user_id":   comment.UserID,
		})
		return err
	}
	return nil
}

func (r *commentRepository) GetCommentByID(id uint) (*model.EntityComment, error) {
	var comment model.EntityComment
	err := r.db.Preload("User").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListCommentsByEntity(kind model.EntityKind, entityID uint, offset, limit int) ([]model.EntityComment, int64, error) {
	var comments []model.EntityComment
	var total int64

	query := r.db.Model(&model.EntityComment{}).
		Where("entity_type = ? AND entity_id = ?", kind, entityID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) DeleteComment(comment *model.EntityComment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", model.LikeTargetComment, comment.ID).
			Delete(&model.EngagementLike{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.EntityComment{}, comment.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *commentRepository) CreatePhoto(photo *model.EntityPhoto) error {
	if err := r.db.Create(photo).Error; err != nil {
		logger.Error("Failed to create photo in database", err, map[string]interface{}{
			"kind":      photo.EntityType,
			"entity_id": photo.EntityID,
			"user_id":   photo.UserID,
		})
		return err
	}
	return nil
}

func (r *commentRepository) GetPhotoByID(id uint) (*model.EntityPhoto, error) {
	var photo model.EntityPhoto
	err := r.db.Preload("User").First(&photo, id).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *commentRepository) ListPhotosByEntity(kind model.EntityKind, entityID uint, offset, limit int) ([]model.EntityPhoto, int64, error) {
	var photos []model.EntityPhoto
	var total int64

	query := r.db.Model(&model.EntityPhoto{}).
		Where("entity_type = ? AND entity_id = ?", kind, entityID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&photos).Error
	if err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

func (r *commentRepository) DeletePhoto(photo *model.EntityPhoto) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", model.LikeTargetPhoto, photo.ID).
			Delete(&model.EngagementLike{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.EntityPhoto{}, photo.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
