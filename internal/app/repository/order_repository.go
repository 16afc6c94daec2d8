package repository

import (
	"time"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderFilter struct {
	PaymentStatus *model.PaymentStatus
	OrderStatus   *model.OrderStatus
	StartDate     *time.Time
	EndDate       *time.Time
	Limit         int
	Offset        int
}

type StatusCount struct {
	OrderStatus model.OrderStatus
	Count       int64
}

type OrderRepository interface {
	Create(order *model.Order) error
	FindWithFilter(filter OrderFilter) ([]model.Order, error)
	CountWithFilter(filter OrderFilter) (int64, error)
	FindByID(id uint) (*model.Order, error)
	FindByOrderID(orderID string) (*model.Order, error)
	CountByOrderIDPrefix(prefix string) (int64, error)
	Update(order *model.Order) error
	CountAll() (int64, error)
	CountByPaymentStatus(status model.PaymentStatus) (int64, error)
	SumRevenueByPaymentStatus(status model.PaymentStatus) (float64, error)
	CountGroupedByOrderStatus() ([]StatusCount, error)
	CancelStalePaymentPending(before time.Time) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"order_id":      order.OrderID,
		"customer_name": order.CustomerName,
		"total_amount":  order.TotalAmount,
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"order_id": order.OrderID,
		})
		return err
	}

	return nil
}

func (r *orderRepository) filteredQuery(filter OrderFilter) *gorm.DB {
	query := r.db.Model(&model.Order{})

	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.OrderStatus != nil {
		query = query.Where("order_status = ?", *filter.OrderStatus)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	return query
}

func (r *orderRepository) FindWithFilter(filter OrderFilter) ([]model.Order, error) {
	logger.Debug("Finding orders with filter", map[string]interface{}{
		"payment_status": filter.PaymentStatus,
		"order_status":   filter.OrderStatus,
		"limit":          filter.Limit,
		"offset":         filter.Offset,
	})

	query := r.filteredQuery(filter).Order("created_at DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders with filter", err, nil)
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) CountWithFilter(filter OrderFilter) (int64, error) {
	var count int64
	if err := r.filteredQuery(filter).Count(&count).Error; err != nil {
		logger.Error("Failed to count orders with filter", err, nil)
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByOrderID(orderID string) (*model.Order, error) {
	logger.Debug("Finding order by order ID", map[string]interface{}{
		"order_id": orderID,
	})

	var order model.Order
	if err := r.db.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) CountByOrderIDPrefix(prefix string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).
		Unscoped(). // soft-deleted orders still hold their daily sequence slot
		Where("order_id LIKE ?", prefix+"%").
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count orders by prefix", err, map[string]interface{}{
			"prefix": prefix,
		})
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) Update(order *model.Order) error {
	logger.Debug("Updating order in database", map[string]interface{}{
		"order_id": order.OrderID,
	})

	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to update order in database", err, map[string]interface{}{
			"order_id": order.OrderID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) CountByPaymentStatus(status model.PaymentStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).
		Where("payment_status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) SumRevenueByPaymentStatus(status model.PaymentStatus) (float64, error) {
	var total float64
	err := r.db.Model(&model.Order{}).
		Where("payment_status = ?", status).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *orderRepository) CountGroupedByOrderStatus() ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.Model(&model.Order{}).
		Select("order_status, COUNT(*) AS count").
		Group("order_status").
		Scan(&counts).Error
	if err != nil {
		logger.Error("Failed to group orders by status", err, nil)
		return nil, err
	}
	return counts, nil
}

func (r *orderRepository) CancelStalePaymentPending(before time.Time) (int64, error) {
	result := r.db.Model(&model.Order{}).
		Where("payment_status = ?", model.PaymentStatusPending).
		Where("order_status NOT IN ?", []model.OrderStatus{model.OrderStatusCancelled, model.OrderStatusDelivered}).
		Where("created_at < ?", before).
		Update("order_status", model.OrderStatusCancelled)
	if result.Error != nil {
		logger.Error("Failed to cancel stale orders", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
