package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/repository"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/logger"
)

// EngagementAuditScheduler periodically verifies that the stored engagement
// aggregates still match the favorites and reviews tables, and repairs any
// drift it finds.
type EngagementAuditScheduler struct {
	cron      *cron.Cron
	auditRepo repository.AuditRepository
}

func NewEngagementAuditScheduler(auditRepo repository.AuditRepository) *EngagementAuditScheduler {
	return &EngagementAuditScheduler{
		cron:      cron.New(),
		auditRepo: auditRepo,
	}
}

// Start schedules the nightly audit (03:10, off the traffic peak).
func (s *EngagementAuditScheduler) Start() error {
	_, err := s.cron.AddFunc("10 3 * * *", s.runAudit)
	if err != nil {
		logger.Error("Failed to add cron job for engagement audit", err)
		return err
	}

	s.cron.Start()
	logger.Info("Engagement audit scheduler started (daily at 03:10)", nil)

	return nil
}

// Stop stops the scheduler.
func (s *EngagementAuditScheduler) Stop() {
	logger.Info("Stopping engagement audit scheduler...", nil)
	s.cron.Stop()
}

func (s *EngagementAuditScheduler) runAudit() {
	logger.Info("Starting scheduled engagement aggregate audit", nil)

	var total int64
	for _, kind := range model.AllEntityKinds {
		repaired, err := s.auditRepo.RepairEntityAggregates(kind)
		if err != nil {
			logger.Error("Engagement audit failed", err, map[string]interface{}{
				"kind": kind,
			})
			continue
		}
		total += repaired
	}

	logger.Info("Engagement aggregate audit completed", map[string]interface{}{
		"repaired": total,
	})
}
