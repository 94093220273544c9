package vendororders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orderdesk/backoffice-backend/pkg/db/models"
	"github.com/orderdesk/backoffice-backend/pkg/enums"
)

func setupVendorOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'created',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  sku TEXT,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price_per_unit TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS vendors (
  id TEXT PRIMARY KEY,
  company_name TEXT NOT NULL,
  contact_person_name TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS assigned_order_items (
  id TEXT PRIMARY KEY,
  order_item_id TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  assigned_quantity INTEGER NOT NULL,
  confirmed_quantity INTEGER,
  status TEXT NOT NULL DEFAULT 'pending_confirmation',
  vendor_remarks TEXT,
  assigned_at DATETIME,
  vendor_action_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type seedInput struct {
	orderNumber string
	vendorName  string
	status      enums.AssignmentStatus
	actionAt    *time.Time
}

func seedRow(t *testing.T, db *gorm.DB, in seedInput) (uuid.UUID, uuid.UUID) {
	t.Helper()

	order := models.Order{ID: uuid.New(), OrderNumber: in.orderNumber, Status: enums.OrderStatusAssigned}
	require.NoError(t, db.Create(&order).Error)

	item := models.OrderItem{ID: uuid.New(), OrderID: order.ID, ProductName: "Widget", Quantity: 10}
	require.NoError(t, db.Create(&item).Error)

	vendor := models.Vendor{ID: uuid.New(), CompanyName: in.vendorName}
	require.NoError(t, db.Create(&vendor).Error)

	assignment := models.AssignedOrderItem{
		ID:               uuid.New(),
		OrderItemID:      item.ID,
		VendorID:         vendor.ID,
		AssignedQuantity: 10,
		Status:           in.status,
		AssignedAt:       time.Now(),
		VendorActionAt:   in.actionAt,
	}
	require.NoError(t, db.Create(&assignment).Error)
	return vendor.ID, assignment.ID
}

func TestFetchRowsJoinsAllRelations(t *testing.T) {
	db := setupVendorOrdersTestDB(t)
	repo := NewRepository(db)
	now := time.Now().UTC()
	vendorID, assignmentID := seedRow(t, db, seedInput{
		orderNumber: "ORD-100",
		vendorName:  "Apex Supplies",
		status:      enums.AssignmentStatusConfirmedFull,
		actionAt:    &now,
	})

	rows, err := repo.FetchRows(context.Background(), RowQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, assignmentID, row.AssignmentID)
	assert.Equal(t, "ORD-100", row.OrderNumber)
	assert.Equal(t, vendorID, row.VendorID)
	assert.Equal(t, "Apex Supplies", row.VendorName)
	assert.Equal(t, "Widget", row.ProductName)
	assert.Equal(t, enums.AssignmentStatusConfirmedFull, row.Status)
	require.NotNil(t, row.VendorActionAt)
}

func TestFetchRowsStatusAndVendorPushdown(t *testing.T) {
	db := setupVendorOrdersTestDB(t)
	repo := NewRepository(db)
	now := time.Now().UTC()

	confirmedVendor, _ := seedRow(t, db, seedInput{
		orderNumber: "ORD-200", vendorName: "Apex", status: enums.AssignmentStatusConfirmedFull, actionAt: &now,
	})
	seedRow(t, db, seedInput{
		orderNumber: "ORD-201", vendorName: "Borealis", status: enums.AssignmentStatusPendingConfirmation,
	})

	rows, err := repo.FetchRows(context.Background(), RowQuery{Statuses: enums.ConfirmedStatuses})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ORD-200", rows[0].OrderNumber)

	rows, err = repo.FetchRows(context.Background(), RowQuery{VendorID: &confirmedVendor})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, confirmedVendor, rows[0].VendorID)
}

func TestFetchRowsOrderNumberSubstringIsCaseInsensitive(t *testing.T) {
	db := setupVendorOrdersTestDB(t)
	repo := NewRepository(db)
	now := time.Now().UTC()

	seedRow(t, db, seedInput{orderNumber: "ORD-2024-001", vendorName: "Apex", status: enums.AssignmentStatusConfirmedFull, actionAt: &now})
	seedRow(t, db, seedInput{orderNumber: "PO-99", vendorName: "Apex", status: enums.AssignmentStatusConfirmedFull, actionAt: &now})

	rows, err := repo.FetchRows(context.Background(), RowQuery{OrderNumberQuery: "ord-2024"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ORD-2024-001", rows[0].OrderNumber)
}

func TestFetchRowsActionDateRangeInclusive(t *testing.T) {
	db := setupVendorOrdersTestDB(t)
	repo := NewRepository(db)

	boundary := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	before := boundary.Add(-time.Hour)
	after := boundary.Add(time.Hour)

	seedRow(t, db, seedInput{orderNumber: "ORD-A", vendorName: "Apex", status: enums.AssignmentStatusConfirmedFull, actionAt: &boundary})
	seedRow(t, db, seedInput{orderNumber: "ORD-B", vendorName: "Apex", status: enums.AssignmentStatusConfirmedFull, actionAt: &before})
	seedRow(t, db, seedInput{orderNumber: "ORD-C", vendorName: "Apex", status: enums.AssignmentStatusConfirmedFull, actionAt: &after})

	rows, err := repo.FetchRows(context.Background(), RowQuery{ActionFrom: &boundary, ActionTo: &boundary})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ORD-A", rows[0].OrderNumber)
}
