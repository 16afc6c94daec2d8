package service

import (
	"bytes"
	"testing"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/app/repository"
	"github.com/beautique/beautique-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportOrdersXLSX(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := repository.NewOrderRepository(testDB)
	svc := NewExportService(repo)

	order := analyticsOrder("BQ-20260827-001", model.PaymentStatusVerified, model.OrderStatusProcessing, 7000)
	order.Items = model.OrderItems{
		{ProductID: 1, Name: "Silk Maxi", Size: "M", Color: "Navy", Quantity: 2, Price: 3500},
	}
	require.NoError(t, repo.Create(order))

	data, filename, err := svc.ExportOrdersXLSX(ListOrdersParams{})
	require.NoError(t, err)
	assert.Contains(t, filename, "orders-")
	assert.Contains(t, filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Order ID", rows[0][0])
	assert.Equal(t, "BQ-20260827-001", rows[1][0])
	assert.Equal(t, "Ayesha Khan", rows[1][2])
	assert.Equal(t, "Silk Maxi (M/Navy) x2", rows[1][5])
	assert.Equal(t, "verified", rows[1][8])
}

func TestExportService_ExportOrdersXLSX_FilterByStatus(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := repository.NewOrderRepository(testDB)
	svc := NewExportService(repo)

	require.NoError(t, repo.Create(analyticsOrder("BQ-20260827-001", model.PaymentStatusPending, model.OrderStatusReceived, 1000)))
	require.NoError(t, repo.Create(analyticsOrder("BQ-20260827-002", model.PaymentStatusVerified, model.OrderStatusProcessing, 2000)))

	verified := model.PaymentStatusVerified
	data, _, err := svc.ExportOrdersXLSX(ListOrdersParams{PaymentStatus: &verified})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "BQ-20260827-002", rows[1][0])
}
