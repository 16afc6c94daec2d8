package service

import (
	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/app/repository"
	"github.com/beautique/beautique-backend/pkg/logger"
)

// DashboardMetrics is the admin dashboard summary. OrdersByStatus carries an
// entry for every known status, zero-filled when no orders match.
type DashboardMetrics struct {
	TotalOrders     int64                       `json:"total_orders"`
	PendingPayments int64                       `json:"pending_payments"`
	VerifiedRevenue float64                     `json:"verified_revenue"`
	OrdersByStatus  map[model.OrderStatus]int64 `json:"orders_by_status"`
}

type AnalyticsService interface {
	DashboardMetrics() (*DashboardMetrics, error)
}

type analyticsService struct {
	orderRepo repository.OrderRepository
}

func NewAnalyticsService(orderRepo repository.OrderRepository) AnalyticsService {
	return &analyticsService{orderRepo: orderRepo}
}

func (s *analyticsService) DashboardMetrics() (*DashboardMetrics, error) {
	total, err := s.orderRepo.CountAll()
	if err != nil {
		logger.Error("Failed to count orders for dashboard", err, nil)
		return nil, err
	}

	pending, err := s.orderRepo.CountByPaymentStatus(model.PaymentStatusPending)
	if err != nil {
		return nil, err
	}

	revenue, err := s.orderRepo.SumRevenueByPaymentStatus(model.PaymentStatusVerified)
	if err != nil {
		return nil, err
	}

	counts, err := s.orderRepo.CountGroupedByOrderStatus()
	if err != nil {
		return nil, err
	}

	byStatus := make(map[model.OrderStatus]int64, len(model.AllOrderStatuses))
	for _, status := range model.AllOrderStatuses {
		byStatus[status] = 0
	}
	for _, c := range counts {
		byStatus[c.OrderStatus] = c.Count
	}

	return &DashboardMetrics{
		TotalOrders:     total,
		PendingPayments: pending,
		VerifiedRevenue: revenue,
		OrdersByStatus:  byStatus,
	}, nil
}
