package repository

import (
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	Update(review *model.Review) error
	Delete(review *model.Review) error
	GetByID(id uint) (*model.Review, error)
	ListByEntity(kind model.EntityKind, entityID uint, q *model.ReviewListQuery) ([]model.Review, int64, error)
	FindByEntityAndUser(kind model.EntityKind, entityID, userID uint) (*model.Review, error)
	CreateReply(reply *model.ReviewReply) error
	GetReplyByID(id uint) (*model.ReviewReply, error)
	DeleteReply(reply *model.ReviewReply) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a review and commits the recomputed total_reviews and
// average_rating under the entity's version. The composite unique index on
// (entity_type, entity_id, user_id) backstops the one-review-per-user rule
// against concurrent inserts.
func (r *reviewRepository) Create(review *model.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		snap, err := loadStats(tx, review.EntityType, review.EntityID)
		if err != nil {
			return err
		}

		if err := tx.Create(review).Error; err != nil {
			return err
		}

		if err := recomputeReviewAggregates(tx, review.EntityType, review.EntityID, snap); err != nil {
			return err
		}
		return commitStats(tx, review.EntityType, review.EntityID, snap)
	})
}

// Update saves an edited review and recommits the average, since the rating
// may have changed.
func (r *reviewRepository) Update(review *model.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		snap, err := loadStats(tx, review.EntityType, review.EntityID)
		if err != nil {
			return err
		}

		if err := tx.Save(review).Error; err != nil {
			return err
		}

		if err := recomputeReviewAggregates(tx, review.EntityType, review.EntityID, snap); err != nil {
			return err
		}
		return commitStats(tx, review.EntityType, review.EntityID, snap)
	})
}

// Delete removes a review, its replies and every like hanging off either,
// then recommits the aggregates. All of it happens in one transaction so a
// version conflict rolls the whole cascade back.
func (r *reviewRepository) Delete(review *model.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		snap, err := loadStats(tx, review.EntityType, review.EntityID)
		if err != nil {
			return err
		}

		replyIDs := tx.Model(&model.ReviewReply{}).
			Select("id").
			Where("review_id = ?", review.ID)
		if err := tx.Where("target_kind = ? AND target_id IN (?)", model.LikeTargetReply, replyIDs).
			Delete(&model.EngagementLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", model.LikeTargetReview, review.ID).
			Delete(&model.EngagementLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("review_id = ?", review.ID).Delete(&model.ReviewReply{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Review{}, review.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := recomputeReviewAggregates(tx, review.EntityType, review.EntityID, snap); err != nil {
			return err
		}
		return commitStats(tx, review.EntityType, review.EntityID, snap)
	})
}

func (r *reviewRepository) GetByID(id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Preload("User")
		}).
		First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByEntity(kind model.EntityKind, entityID uint, q *model.ReviewListQuery) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.db.Model(&model.Review{}).
		Where("entity_type = ? AND entity_id = ?", kind, entityID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	err := query.
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Preload("User")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(q.Limit).
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to list reviews from database", err, map[string]interface{}{
			"kind":      kind,
			"entity_id": entityID,
		})
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) FindByEntityAndUser(kind model.EntityKind, entityID, userID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.
		Where("entity_type = ? AND entity_id = ? AND user_id = ?", kind, entityID, userID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// CreateReply appends a reply to an existing review. Replies do not touch
// the entity aggregates, so no version commit is needed.
func (r *reviewRepository) CreateReply(reply *model.ReviewReply) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&model.Review{}).Where("id = ?", reply.ReviewID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(reply).Error
	})
}

func (r *reviewRepository) GetReplyByID(id uint) (*model.ReviewReply, error) {
	var reply model.ReviewReply
	err := r.db.Preload("User").First(&reply, id).Error
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *reviewRepository) DeleteReply(reply *model.ReviewReply) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", model.LikeTargetReply, reply.ID).
			Delete(&model.EngagementLike{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.ReviewReply{}, reply.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
