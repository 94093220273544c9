package vendororders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backoffice-backend/pkg/enums"
	"github.com/orderdesk/backoffice-backend/pkg/pagination"
)

// Row is one assignment joined with its order item, order and vendor. The
// aggregator's grouping is a pure function over a slice of these.
type Row struct {
	AssignmentID      uuid.UUID
	OrderID           uuid.UUID
	OrderNumber       string
	OrderCreatedAt    time.Time
	VendorID          uuid.UUID
	VendorName        string
	SKU               *string
	ProductName       string
	AssignedQuantity  int
	ConfirmedQuantity *int
	PricePerUnit      *decimal.Decimal
	Status            enums.AssignmentStatus
	VendorActionAt    *time.Time
}

// RowQuery holds the filters the store can serve directly.
type RowQuery struct {
	VendorID         *uuid.UUID
	Statuses         []enums.AssignmentStatus
	OrderNumber      string // exact match, used by single lookups
	OrderNumberQuery string // case-insensitive substring
	ActionFrom       *time.Time
	ActionTo         *time.Time
}

// Filters are the caller-facing list filters. Vendor name matching and
// derived-status filters cannot be pushed to the store; they run after
// fetching and grouping.
type Filters struct {
	OrderNumberQuery string
	VendorNameQuery  string
	ActionFrom       *time.Time
	ActionTo         *time.Time
	OrderStatus      string
	POStatus         string
	InvoiceStatus    string
}

// ItemView is one assignment line inside a vendor order view.
type ItemView struct {
	SKU          string `json:"sku"`
	Product      string `json:"product"`
	Qty          int    `json:"qty"`
	ConfirmedQty int    `json:"confirmedQty"`
}

// VendorOrderView is the derived grouping served to dashboards. poStatus and
// invoiceStatus are fixed placeholders until the PO/invoice subsystems land.
type VendorOrderView struct {
	ID               string          `json:"id"`
	VendorID         uuid.UUID       `json:"vendorId"`
	VendorName       string          `json:"vendorName"`
	Items            []ItemView      `json:"items"`
	OrderStatus      string          `json:"orderStatus"`
	POStatus         string          `json:"poStatus"`
	InvoiceStatus    string          `json:"invoiceStatus"`
	OrderDate        time.Time       `json:"orderDate"`
	ConfirmationDate *time.Time      `json:"confirmationDate"`
	OrderNumber      string          `json:"orderNumber"`
	OrderID          uuid.UUID       `json:"orderId"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
}

// ListResult wraps a page of vendor order views.
type ListResult struct {
	Orders     []VendorOrderView `json:"orders"`
	Pagination pagination.Meta   `json:"pagination"`
}
