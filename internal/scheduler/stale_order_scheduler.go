package scheduler

import (
	"time"

	"github.com/beautique/beautique-backend/internal/app/service"
	"github.com/beautique/beautique-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// StaleOrderScheduler periodically cancels orders whose payment never
// arrived. Unpaid cash-transfer orders otherwise pile up forever.
type StaleOrderScheduler struct {
	cron         *cron.Cron
	orderService service.OrderService
	spec         string
	maxAge       time.Duration
}

func NewStaleOrderScheduler(orderService service.OrderService, spec string, stalePaymentDays int) *StaleOrderScheduler {
	return &StaleOrderScheduler{
		cron:         cron.New(),
		orderService: orderService,
		spec:         spec,
		maxAge:       time.Duration(stalePaymentDays) * 24 * time.Hour,
	}
}

func (s *StaleOrderScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("Starting stale order sweep", map[string]interface{}{
			"max_age_hours": s.maxAge.Hours(),
		})

		affected, err := s.orderService.CancelStaleOrders(s.maxAge)
		if err != nil {
			logger.Error("Stale order sweep failed", err)
			return
		}

		logger.Info("Stale order sweep completed", map[string]interface{}{
			"cancelled": affected,
		})
	})
	if err != nil {
		logger.Error("Failed to register stale order sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Stale order scheduler started", map[string]interface{}{
		"schedule": s.spec,
	})

	return nil
}

func (s *StaleOrderScheduler) Stop() {
	logger.Info("Stopping stale order scheduler...", nil)
	s.cron.Stop()
	logger.Info("Stale order scheduler stopped", nil)
}
