package repository

import (
	"errors"
	"fmt"

	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/logger"
	"gorm.io/gorm"
)

// AuditRepository detects and repairs drift between the stored aggregate
// columns and the favorites/reviews tables they are derived from. Under
// normal operation the engagement transactions keep them in sync; the audit
// is a safety net for manual data edits and interrupted migrations.
type AuditRepository interface {
	RepairEntityAggregates(kind model.EntityKind) (int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) RepairEntityAggregates(kind model.EntityKind) (int64, error) {
	table := kind.TableName()

	var ids []uint
	query := fmt.Sprintf(`
		SELECT e.id FROM %s e
		LEFT JOIN (
			SELECT entity_id, COUNT(*) AS cnt
			FROM favorites WHERE entity_type = ? GROUP BY entity_id
		) f ON f.entity_id = e.id
		LEFT JOIN (
			SELECT entity_id, COUNT(*) AS cnt, COALESCE(ROUND(AVG(rating), 1), 0) AS avg
			FROM reviews WHERE entity_type = ? GROUP BY entity_id
		) rv ON rv.entity_id = e.id
		WHERE e.deleted_at IS NULL AND (
			e.favorites_count <> COALESCE(f.cnt, 0) OR
			e.total_reviews <> COALESCE(rv.cnt, 0) OR
			e.average_rating <> COALESCE(rv.avg, 0)
		)`, table)

	if err := r.db.Raw(query, kind, kind).Scan(&ids).Error; err != nil {
		return 0, err
	}

	var repaired int64
	for _, id := range ids {
		err := r.db.Transaction(func(tx *gorm.DB) error {
			snap, err := loadStats(tx, kind, id)
			if err != nil {
				return err
			}

			var favorites int64
			err = tx.Model(&model.Favorite{}).
				Where("entity_type = ? AND entity_id = ?", kind, id).
				Count(&favorites).Error
			if err != nil {
				return err
			}
			snap.FavoritesCount = int(favorites)

			if err := recomputeReviewAggregates(tx, kind, id, snap); err != nil {
				return err
			}
			return commitStats(tx, kind, id, snap)
		})
		if err != nil {
			// a live writer beat us to the row, which also fixed it
			if errors.Is(err, ErrVersionConflict) || errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			logger.Error("Failed to repair entity aggregates", err, map[string]interface{}{
				"kind":      kind,
				"entity_id": id,
			})
			return repaired, err
		}

		logger.Warn("Repaired drifted entity aggregates", map[string]interface{}{
			"kind":      kind,
			"entity_id": id,
		})
		repaired++
	}

	return repaired, nil
}
