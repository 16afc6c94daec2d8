package service

import (
	"testing"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/app/repository"
	"github.com/beautique/beautique-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAnalyticsServiceTest(t *testing.T) (AnalyticsService, repository.OrderRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := repository.NewOrderRepository(testDB)
	return NewAnalyticsService(repo), repo
}

func analyticsOrder(orderID string, payment model.PaymentStatus, status model.OrderStatus, total float64) *model.Order {
	return &model.Order{
		OrderID:        orderID,
		CustomerName:   "Ayesha Khan",
		Phone:          "03132306429",
		Whatsapp:       "03132306429",
		Address:        "House 12",
		City:           "Karachi",
		Items:          model.OrderItems{{ProductID: 1, Name: "Maxi", Quantity: 1, Price: total}},
		TotalAmount:    total,
		PaymentMethod:  model.PaymentMethodMeezanBank,
		PaymentStatus:  payment,
		OrderStatus:    status,
		DeliveryStatus: model.DeliveryStatusNotStarted,
	}
}

func TestAnalyticsService_DashboardMetrics(t *testing.T) {
	svc, repo := setupAnalyticsServiceTest(t)

	require.NoError(t, repo.Create(analyticsOrder("BQ-20260827-001", model.PaymentStatusPending, model.OrderStatusReceived, 1000)))
	require.NoError(t, repo.Create(analyticsOrder("BQ-20260827-002", model.PaymentStatusVerified, model.OrderStatusProcessing, 2500)))
	require.NoError(t, repo.Create(analyticsOrder("BQ-20260827-003", model.PaymentStatusVerified, model.OrderStatusDelivered, 4500)))
	require.NoError(t, repo.Create(analyticsOrder("BQ-20260827-004", model.PaymentStatusPaid, model.OrderStatusProcessing, 3000)))

	metrics, err := svc.DashboardMetrics()
	require.NoError(t, err)

	assert.Equal(t, int64(4), metrics.TotalOrders)
	assert.Equal(t, int64(1), metrics.PendingPayments)
	assert.Equal(t, 7000.0, metrics.VerifiedRevenue)

	assert.Equal(t, int64(1), metrics.OrdersByStatus[model.OrderStatusReceived])
	assert.Equal(t, int64(2), metrics.OrdersByStatus[model.OrderStatusProcessing])
	assert.Equal(t, int64(1), metrics.OrdersByStatus[model.OrderStatusDelivered])
	// Statuses with no orders are still present
	assert.Equal(t, int64(0), metrics.OrdersByStatus[model.OrderStatusReady])
	assert.Equal(t, int64(0), metrics.OrdersByStatus[model.OrderStatusCancelled])
}

func TestAnalyticsService_DashboardMetrics_Empty(t *testing.T) {
	svc, _ := setupAnalyticsServiceTest(t)

	metrics, err := svc.DashboardMetrics()
	require.NoError(t, err)

	assert.Equal(t, int64(0), metrics.TotalOrders)
	assert.Equal(t, 0.0, metrics.VerifiedRevenue)
	assert.Len(t, metrics.OrdersByStatus, len(model.AllOrderStatuses))
}
