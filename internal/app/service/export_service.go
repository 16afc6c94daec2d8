package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/app/repository"
	"github.com/beautique/beautique-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type ExportService interface {
	ExportOrdersXLSX(params ListOrdersParams) ([]byte, string, error)
}

type exportService struct {
	orderRepo repository.OrderRepository
}

func NewExportService(orderRepo repository.OrderRepository) ExportService {
	return &exportService{orderRepo: orderRepo}
}

var orderExportHeaders = []string{
	"Order ID", "Date", "Customer", "Phone", "City",
	"Items", "Total Amount", "Payment Method", "Payment Status",
	"Order Status", "Delivery Status",
}

func formatOrderItems(items model.OrderItems) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		variant := item.Size
		if item.Color != "" {
			variant = variant + "/" + item.Color
		}
		parts = append(parts, fmt.Sprintf("%s (%s) x%d", item.Name, variant, item.Quantity))
	}
	return strings.Join(parts, "; ")
}

// ExportOrdersXLSX writes every order matching the filter into a spreadsheet
// and returns the file contents plus a suggested filename.
func (s *exportService) ExportOrdersXLSX(params ListOrdersParams) ([]byte, string, error) {
	orders, err := s.orderRepo.FindWithFilter(repository.OrderFilter{
		PaymentStatus: params.PaymentStatus,
		OrderStatus:   params.OrderStatus,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
	})
	if err != nil {
		logger.Error("Failed to load orders for export", err, nil)
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Orders"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, header := range orderExportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
	}

	for i, order := range orders {
		row := i + 2
		values := []interface{}{
			order.OrderID,
			order.CreatedAt.Format("2006-01-02 15:04"),
			order.CustomerName,
			order.Phone,
			order.City,
			formatOrderItems(order.Items),
			order.TotalAmount,
			string(order.PaymentMethod),
			string(order.PaymentStatus),
			string(order.OrderStatus),
			string(order.DeliveryStatus),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write export spreadsheet", err, nil)
		return nil, "", err
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102-150405"))

	logger.Info("Orders exported", map[string]interface{}{
		"count":    len(orders),
		"filename": filename,
	})

	return buf.Bytes(), filename, nil
}
