package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/app/service"
	apperrors "github.com/beautique/beautique-backend/internal/errors"
	"github.com/beautique/beautique-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService  service.OrderService
	exportService service.ExportService
}

func NewOrderController(orderService service.OrderService, exportService service.ExportService) *OrderController {
	return &OrderController{
		orderService:  orderService,
		exportService: exportService,
	}
}

type CreateOrderRequest struct {
	CustomerName  string                   `json:"customer_name" binding:"required"`
	Phone         string                   `json:"phone" binding:"required"`
	Whatsapp      string                   `json:"whatsapp"`
	Email         string                   `json:"email"`
	Address       string                   `json:"address" binding:"required"`
	City          string                   `json:"city" binding:"required"`
	Country       string                   `json:"country"`
	Notes         string                   `json:"notes"`
	PaymentMethod model.PaymentMethod      `json:"payment_method" binding:"required"`
	Items         []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type CreateOrderItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrder places a customer order
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if req.PaymentMethod != model.PaymentMethodEasypaisa && req.PaymentMethod != model.PaymentMethodMeezanBank {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.OrderInvalidPayment, "Unknown payment method")
		return
	}

	input := service.CreateOrderInput{
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Whatsapp:      req.Whatsapp,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.CreateOrderItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		})
	}

	order, err := ctrl.orderService.CreateOrder(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrderItems):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.OrderEmptyItems, "Order must contain at least one item")
		case errors.Is(err, service.ErrInvalidPhone):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationRequired, "A valid phone number is required")
		case errors.Is(err, service.ErrInvalidOrderProduct):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ProductNotFound, "One of the ordered products is unavailable")
		default:
			log.Error("Failed to create order", err, nil)
			apperrors.InternalError(c, "Failed to place order")
		}
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"order_id":     order.OrderID,
		"total_amount": order.TotalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// TrackOrder looks up an order by its public ID and the customer phone
// GET /api/v1/orders/track?order_id=BQ-20260118-001&phone=03132306429
func (ctrl *OrderController) TrackOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID := c.Query("order_id")
	phone := c.Query("phone")
	if orderID == "" || phone == "" {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationRequired, "order_id and phone are required")
		return
	}

	order, err := ctrl.orderService.TrackOrder(orderID, phone)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.OrderNotFound, "No order matches that ID and phone number")
			return
		}
		log.Error("Failed to track order", err, map[string]interface{}{
			"order_id": orderID,
		})
		apperrors.InternalError(c, "Failed to track order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

func parseOrderListParams(c *gin.Context) (service.ListOrdersParams, error) {
	var params service.ListOrdersParams

	if status := c.Query("payment_status"); status != "" {
		s := model.PaymentStatus(status)
		params.PaymentStatus = &s
	}
	if status := c.Query("order_status"); status != "" {
		s := model.OrderStatus(status)
		params.OrderStatus = &s
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return params, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		params.StartDate = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return params, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		params.EndDate = &end
	}

	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))

	return params, nil
}

// AdminListOrders returns filtered, paginated orders
// GET /api/v1/admin/orders
func (ctrl *OrderController) AdminListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	params, err := parseOrderListParams(c)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidRange, err.Error())
		return
	}

	page, err := ctrl.orderService.ListOrders(params)
	if err != nil {
		log.Error("Failed to list orders", err, nil)
		apperrors.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, page)
}

// AdminGetOrder returns a single order
// GET /api/v1/admin/orders/:id
func (ctrl *OrderController) AdminGetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderByID(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

type UpdateOrderStatusRequest struct {
	PaymentStatus     *model.PaymentStatus  `json:"payment_status"`
	OrderStatus       *model.OrderStatus    `json:"order_status"`
	DeliveryStatus    *model.DeliveryStatus `json:"delivery_status"`
	EstimatedDelivery *string               `json:"estimated_delivery"`
	TrackingNotes     *string               `json:"tracking_notes"`
}

// AdminUpdateOrderStatus partially updates order status fields
// PATCH /api/v1/admin/orders/:id/status
func (ctrl *OrderController) AdminUpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(id, service.UpdateOrderStatusInput{
		PaymentStatus:     req.PaymentStatus,
		OrderStatus:       req.OrderStatus,
		DeliveryStatus:    req.DeliveryStatus,
		EstimatedDelivery: req.EstimatedDelivery,
		TrackingNotes:     req.TrackingNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.OrderInvalidStatus, "Invalid status value")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "Failed to update order")
		}
		return
	}

	log.Info("Order status updated", map[string]interface{}{
		"order_id":     order.OrderID,
		"order_status": order.OrderStatus,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"order":   order,
	})
}

// AdminExportOrders streams the filtered orders as an XLSX download
// GET /api/v1/admin/orders/export
func (ctrl *OrderController) AdminExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	params, err := parseOrderListParams(c)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidRange, err.Error())
		return
	}

	data, filename, err := ctrl.exportService.ExportOrdersXLSX(params)
	if err != nil {
		log.Error("Failed to export orders", err, nil)
		apperrors.InternalError(c, "Failed to export orders")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
