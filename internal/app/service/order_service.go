package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/app/repository"
	"github.com/beautique/beautique-backend/pkg/logger"
	"github.com/beautique/beautique-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyOrderItems     = errors.New("order must contain at least one item")
	ErrInvalidOrderStatus  = errors.New("invalid order status value")
	ErrInvalidPhone        = errors.New("phone number is required")
	ErrInvalidOrderProduct = errors.New("order references an unavailable product")
)

// OrderNotifier receives order lifecycle events. The websocket hub implements
// it for the admin dashboard; tests use a no-op.
type OrderNotifier interface {
	OrderCreated(order *model.Order)
	OrderUpdated(order *model.Order)
}

type noopNotifier struct{}

func (noopNotifier) OrderCreated(*model.Order) {}
func (noopNotifier) OrderUpdated(*model.Order) {}

// NoopOrderNotifier is used where no live feed is wired up.
var NoopOrderNotifier OrderNotifier = noopNotifier{}

// CreateOrderInput carries the customer-submitted order. Item prices are
// ignored; the current catalog price is snapshotted server-side.
type CreateOrderInput struct {
	CustomerName  string
	Phone         string
	Whatsapp      string
	Email         string
	Address       string
	City          string
	Country       string
	Notes         string
	PaymentMethod model.PaymentMethod
	Items         []CreateOrderItem
}

type CreateOrderItem struct {
	ProductID uint
	Size      string
	Color     string
	Quantity  int
}

// UpdateOrderStatusInput is a partial update; nil fields are left untouched.
type UpdateOrderStatusInput struct {
	PaymentStatus     *model.PaymentStatus
	OrderStatus       *model.OrderStatus
	DeliveryStatus    *model.DeliveryStatus
	EstimatedDelivery *string
	TrackingNotes     *string
}

type ListOrdersParams struct {
	PaymentStatus *model.PaymentStatus
	OrderStatus   *model.OrderStatus
	StartDate     *time.Time
	EndDate       *time.Time
	Page          int
	Limit         int
}

type OrderPage struct {
	Items      []model.Order `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

type OrderService interface {
	CreateOrder(input CreateOrderInput) (*model.Order, error)
	TrackOrder(orderID, phone string) (*model.Order, error)
	ListOrders(params ListOrdersParams) (*OrderPage, error)
	GetOrderByID(id uint) (*model.Order, error)
	UpdateOrderStatus(id uint, input UpdateOrderStatusInput) (*model.Order, error)
	CancelStaleOrders(olderThan time.Duration) (int64, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	notifier    OrderNotifier
	idPrefix    string
	now         func() time.Time
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, notifier OrderNotifier, idPrefix string) OrderService {
	if notifier == nil {
		notifier = NoopOrderNotifier
	}
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		notifier:    notifier,
		idPrefix:    idPrefix,
		now:         time.Now,
	}
}

// nextOrderID builds the customer-facing ID, e.g. BQ-20260118-003. The
// sequence restarts each day and counts every order created that day.
func (s *orderService) nextOrderID() (string, error) {
	prefix := fmt.Sprintf("%s-%s-", s.idPrefix, s.now().Format("20060102"))
	count, err := s.orderRepo.CountByOrderIDPrefix(prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}

func (s *orderService) CreateOrder(input CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrderItems
	}
	if util.NormalizePhone(input.Phone) == "" {
		return nil, ErrInvalidPhone
	}

	logger.Info("Creating order", map[string]interface{}{
		"customer_name": input.CustomerName,
		"items":         len(input.Items),
	})

	var (
		items model.OrderItems
		total float64
	)
	for _, line := range input.Items {
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		product, err := s.productRepo.FindActiveByID(line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Order references unavailable product", map[string]interface{}{
					"product_id": line.ProductID,
				})
				return nil, ErrInvalidOrderProduct
			}
			return nil, err
		}

		price := product.EffectivePrice()
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Size:      line.Size,
			Color:     line.Color,
			Quantity:  line.Quantity,
			Price:     price,
			Image:     image,
		})
		total += price * float64(line.Quantity)
	}

	orderID, err := s.nextOrderID()
	if err != nil {
		logger.Error("Failed to generate order ID", err, nil)
		return nil, err
	}

	country := input.Country
	if country == "" {
		country = "Pakistan"
	}

	order := &model.Order{
		OrderID:        orderID,
		CustomerName:   input.CustomerName,
		Phone:          input.Phone,
		Whatsapp:       input.Whatsapp,
		Email:          input.Email,
		Address:        input.Address,
		City:           input.City,
		Country:        country,
		Notes:          input.Notes,
		Items:          items,
		TotalAmount:    total,
		PaymentMethod:  input.PaymentMethod,
		PaymentStatus:  model.PaymentStatusPending,
		OrderStatus:    model.OrderStatusReceived,
		DeliveryStatus: model.DeliveryStatusNotStarted,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id":     order.OrderID,
		"total_amount": order.TotalAmount,
	})

	s.notifier.OrderCreated(order)
	return order, nil
}

// TrackOrder looks up an order for a customer. A phone mismatch is reported
// as not found so the endpoint leaks nothing about existing order IDs.
func (s *orderService) TrackOrder(orderID, phone string) (*model.Order, error) {
	order, err := s.orderRepo.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to look up order for tracking", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if !util.SamePhone(order.Phone, phone) {
		logger.Warn("Order tracking phone mismatch", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrOrderNotFound
	}

	return order, nil
}

func (s *orderService) ListOrders(params ListOrdersParams) (*OrderPage, error) {
	page, limit := normalizePagination(params.Page, params.Limit)

	filter := repository.OrderFilter{
		PaymentStatus: params.PaymentStatus,
		OrderStatus:   params.OrderStatus,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
	}

	total, err := s.orderRepo.CountWithFilter(filter)
	if err != nil {
		return nil, err
	}

	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	orders, err := s.orderRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	return &OrderPage{
		Items:      orders,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func validPaymentStatus(s model.PaymentStatus) bool {
	switch s {
	case model.PaymentStatusPending, model.PaymentStatusPaid, model.PaymentStatusVerified:
		return true
	}
	return false
}

func validOrderStatus(s model.OrderStatus) bool {
	for _, candidate := range model.AllOrderStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

func validDeliveryStatus(s model.DeliveryStatus) bool {
	switch s {
	case model.DeliveryStatusNotStarted, model.DeliveryStatusInProgress,
		model.DeliveryStatusOutForDelivery, model.DeliveryStatusDelivered:
		return true
	}
	return false
}

func (s *orderService) UpdateOrderStatus(id uint, input UpdateOrderStatusInput) (*model.Order, error) {
	order, err := s.GetOrderByID(id)
	if err != nil {
		return nil, err
	}

	if input.PaymentStatus != nil {
		if !validPaymentStatus(*input.PaymentStatus) {
			return nil, ErrInvalidOrderStatus
		}
		order.PaymentStatus = *input.PaymentStatus
	}
	if input.OrderStatus != nil {
		if !validOrderStatus(*input.OrderStatus) {
			return nil, ErrInvalidOrderStatus
		}
		order.OrderStatus = *input.OrderStatus
	}
	if input.DeliveryStatus != nil {
		if !validDeliveryStatus(*input.DeliveryStatus) {
			return nil, ErrInvalidOrderStatus
		}
		order.DeliveryStatus = *input.DeliveryStatus
	}
	if input.EstimatedDelivery != nil {
		order.EstimatedDelivery = *input.EstimatedDelivery
	}
	if input.TrackingNotes != nil {
		order.TrackingNotes = *input.TrackingNotes
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id":        order.OrderID,
		"payment_status":  order.PaymentStatus,
		"order_status":    order.OrderStatus,
		"delivery_status": order.DeliveryStatus,
	})

	s.notifier.OrderUpdated(order)
	return order, nil
}

// CancelStaleOrders cancels orders whose payment never arrived. Run by the
// scheduler, but callable from an admin endpoint as well.
func (s *orderService) CancelStaleOrders(olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan)
	affected, err := s.orderRepo.CancelStalePaymentPending(cutoff)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		logger.Info("Cancelled stale payment-pending orders", map[string]interface{}{
			"count":  affected,
			"cutoff": cutoff.Format(time.RFC3339),
		})
	}
	return affected, nil
}
