package repository

import (
	"strings"

	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/logger"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a unique index violation, from
// either Postgres or the SQLite test driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

type FavoriteRepository interface {
	Toggle(kind model.EntityKind, entityID, userID uint) (favorited bool, count int, err error)
	ListByUser(userID uint) ([]model.Favorite, error)
	IsFavorited(kind model.EntityKind, entityID, userID uint) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle flips the caller's favorite membership for one entity and commits
// the recounted favorites_count under the entity's version. A lost race
// surfaces as ErrVersionConflict for the service to retry.
func (r *favoriteRepository) Toggle(kind model.EntityKind, entityID, userID uint) (bool, int, error) {
	var favorited bool
	var count int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		snap, err := loadStats(tx, kind, entityID)
		if err != nil {
			return err
		}

		result := tx.Where("entity_type = ? AND entity_id = ? AND user_id = ?", kind, entityID, userID).
			Delete(&model.Favorite{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			favorite := model.Favorite{
				EntityType: kind,
				EntityID:   entityID,
				UserID:     userID,
			}
			if err := tx.Create(&favorite).Error; err != nil {
				if IsUniqueViolation(err) {
					// concurrent toggle inserted first; retry resolves it
					return ErrVersionConflict
				}
				return err
			}
			favorited = true
		}

		var total int64
		err = tx.Model(&model.Favorite{}).
			Where("entity_type = ? AND entity_id = ?", kind, entityID).
			Count(&total).Error
		if err != nil {
			return err
		}

		snap.FavoritesCount = int(total)
		count = int(total)
		return commitStats(tx, kind, entityID, snap)
	})
	if err != nil {
		if err != ErrVersionConflict && err != gorm.ErrRecordNotFound {
			logger.Error("Failed to toggle favorite", err, map[string]interface{}{
				"kind":      kind,
				"entity_id": entityID,
				"user_id":   userID,
			})
		}
		return false, 0, err
	}

	return favorited, count, nil
}

func (r *favoriteRepository) ListByUser(userID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		logger.Error("Failed to list favorites by user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) IsFavorited(kind model.EntityKind, entityID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("entity_type = ? AND entity_id = ? AND user_id = ?", kind, entityID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
