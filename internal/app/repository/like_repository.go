package repository

import (
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/logger"
	"gorm.io/gorm"
)

// likeTargetTable maps a likeable sub-object kind to its backing table.
func likeTargetTable(kind model.LikeTargetKind) string {
	switch kind {
	case model.LikeTargetReview:
		return "reviews"
	case model.LikeTargetReply:
		return "review_replies"
	case model.LikeTargetComment:
		return "entity_comments"
	case model.LikeTargetPhoto:
		return "entity_photos"
	}
	return ""
}

type LikeRepository interface {
	Toggle(target model.LikeTarget, userID uint) (liked bool, likeCount int, err error)
	IsLiked(target model.LikeTarget, userID uint) (bool, error)
	UserIDs(target model.LikeTarget) ([]uint, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the caller's like on one sub-object. The membership row and
// the denormalized like_count move in the same transaction, so the count
// always matches the row set.
func (r *likeRepository) Toggle(target model.LikeTarget, userID uint) (bool, int, error) {
	table := likeTargetTable(target.Kind)
	var liked bool
	var likeCount int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Table(table).Where("id = ?", target.ID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}

		result := tx.Where("target_kind = ? AND target_id = ? AND user_id = ?", target.Kind, target.ID, userID).
			Delete(&model.EngagementLike{})
		if result.Error != nil {
			return result.Error
		}

		delta := -1
		if result.RowsAffected == 0 {
			like := model.EngagementLike{
				TargetKind: target.Kind,
				TargetID:   target.ID,
				UserID:     userID,
			}
			if createErr := tx.Create(&like).Error; createErr != nil {
				if IsUniqueViolation(createErr) {
					return ErrVersionConflict
				}
				return createErr
			}
			delta = 1
			liked = true
		}

		if updateErr := tx.Table(table).
			Where("id = ?", target.ID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error; updateErr != nil {
			return updateErr
		}

		return tx.Table(table).
			Select("like_count").
			Where("id = ?", target.ID).
			Take(&likeCount).Error
	})
	if err != nil {
		if err != ErrVersionConflict && err != gorm.ErrRecordNotFound {
			logger.Error("Failed to toggle like", err, map[string]interface{}{
				"target_kind": target.Kind,
				"target_id":   target.ID,
				"user_id":     userID,
			})
		}
		return false, 0, err
	}

	return liked, likeCount, nil
}

func (r *likeRepository) IsLiked(target model.LikeTarget, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.EngagementLike{}).
		Where("target_kind = ? AND target_id = ? AND user_id = ?", target.Kind, target.ID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) UserIDs(target model.LikeTarget) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.EngagementLike{}).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
