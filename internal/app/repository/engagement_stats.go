package repository

import (
	"errors"

	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"gorm.io/gorm"
)

// ErrVersionConflict is returned when a stats commit lost the race against a
// concurrent writer. Callers re-read and retry; the service layer bounds the
// number of attempts.
var ErrVersionConflict = errors.New("engagement stats version conflict")

// statsSnapshot is the aggregate block of one entity row as read at the
// start of a mutation. Version pins the row for the commit.
type statsSnapshot struct {
	FavoritesCount int
	TotalReviews   int
	AverageRating  float64
	Version        int64
}

// loadStats reads the aggregate columns of a live entity row. Returns
// gorm.ErrRecordNotFound when the entity does not exist or is soft-deleted.
func loadStats(tx *gorm.DB, kind model.EntityKind, entityID uint) (*statsSnapshot, error) {
	var snap statsSnapshot
	err := tx.Table(kind.TableName()).
		Select("favorites_count, total_reviews, average_rating, version").
		Where("id = ? AND deleted_at IS NULL", entityID).
		Take(&snap).Error
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// commitStats writes recomputed aggregates back to the entity row, guarded
// by the version read in loadStats. Zero rows affected means another writer
// committed in between; the caller's transaction must roll back and retry.
func commitStats(tx *gorm.DB, kind model.EntityKind, entityID uint, snap *statsSnapshot) error {
	result := tx.Table(kind.TableName()).
		Where("id = ? AND version = ?", entityID, snap.Version).
		Updates(map[string]interface{}{
			"favorites_count": snap.FavoritesCount,
			"total_reviews":   snap.TotalReviews,
			"average_rating":  snap.AverageRating,
			"version":         snap.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// recomputeReviewAggregates recalculates total_reviews and average_rating
// from the reviews table inside the caller's transaction. The average is
// rounded to one decimal; zero reviews yield 0.
func recomputeReviewAggregates(tx *gorm.DB, kind model.EntityKind, entityID uint, snap *statsSnapshot) error {
	var agg struct {
		TotalReviews  int
		AverageRating float64
	}
	err := tx.Model(&model.Review{}).
		Where("entity_type = ? AND entity_id = ?", kind, entityID).
		Select("COUNT(*) AS total_reviews, COALESCE(ROUND(AVG(rating), 1), 0) AS average_rating").
		Scan(&agg).Error
	if err != nil {
		return err
	}
	snap.TotalReviews = agg.TotalReviews
	snap.AverageRating = agg.AverageRating
	return nil
}
