package vendororders

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backoffice-backend/pkg/enums"
	pkgerrors "github.com/orderdesk/backoffice-backend/pkg/errors"
	"github.com/orderdesk/backoffice-backend/pkg/logger"
	"github.com/orderdesk/backoffice-backend/pkg/pagination"
)

const (
	// Placeholder values until the PO/invoice subsystems integrate.
	poStatusPending         = "Pending"
	invoiceStatusNotCreated = "Not Created"

	statusMixed = "Mixed"

	defaultSKU = "N/A"
)

// Service serves the derived vendor-order views.
type Service interface {
	ListVendorAssignments(ctx context.Context, vendorID uuid.UUID, filters Filters, params pagination.Params) (*ListResult, error)
	ListConfirmedVendorOrders(ctx context.Context, filters Filters, params pagination.Params) (*ListResult, error)
	GetVendorOrder(ctx context.Context, key Key) (*VendorOrderView, error)
}

type service struct {
	rows RowFetcher
	logg *logger.Logger
}

// NewService builds the vendor-order aggregator.
func NewService(rows RowFetcher, logg *logger.Logger) (Service, error) {
	if rows == nil {
		return nil, fmt.Errorf("row fetcher required")
	}
	return &service{rows: rows, logg: logg}, nil
}

// ListVendorAssignments returns all of one vendor's assignments, across all
// statuses, grouped by order number.
func (s *service) ListVendorAssignments(ctx context.Context, vendorID uuid.UUID, filters Filters, params pagination.Params) (*ListResult, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}

	rows, err := s.rows.FetchRows(ctx, RowQuery{
		VendorID:         &vendorID,
		OrderNumberQuery: filters.OrderNumberQuery,
		ActionFrom:       filters.ActionFrom,
		ActionTo:         filters.ActionTo,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch assignment rows")
	}

	groups := buildGroups(rows, false)
	return paginate(applyPostFilters(groups, filters), params), nil
}

// ListConfirmedVendorOrders returns confirmed (full or partial) assignments
// across all vendors, grouped by (orderNumber, vendorId).
func (s *service) ListConfirmedVendorOrders(ctx context.Context, filters Filters, params pagination.Params) (*ListResult, error) {
	rows, err := s.rows.FetchRows(ctx, RowQuery{
		Statuses:         enums.ConfirmedStatuses,
		OrderNumberQuery: filters.OrderNumberQuery,
		ActionFrom:       filters.ActionFrom,
		ActionTo:         filters.ActionTo,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch confirmed rows")
	}

	groups := buildGroups(rows, true)
	return paginate(applyPostFilters(groups, filters), params), nil
}

// GetVendorOrder resolves one derived vendor order. Absence is a normal
// outcome and returns nil, not an error.
func (s *service) GetVendorOrder(ctx context.Context, key Key) (*VendorOrderView, error) {
	if key.OrderNumber == "" || key.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor order key incomplete")
	}

	rows, err := s.rows.FetchRows(ctx, RowQuery{
		VendorID:    &key.VendorID,
		OrderNumber: key.OrderNumber,
		Statuses:    enums.ConfirmedStatuses,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch vendor order rows")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	groups := buildGroups(rows, true)
	view := groups[0]
	return &view, nil
}

// buildGroups partitions rows into derived vendor orders. Pure function:
// permuting the input changes emission order at most, never membership or
// totals. Emission order follows first appearance so the later stable sort
// stays deterministic.
func buildGroups(rows []Row, accountsView bool) []VendorOrderView {
	type groupKey struct {
		orderNumber string
		vendorID    uuid.UUID
	}

	index := make(map[groupKey]int)
	views := make([]VendorOrderView, 0)
	statuses := make([][]string, 0)

	for _, row := range rows {
		k := groupKey{orderNumber: row.OrderNumber, vendorID: row.VendorID}
		i, ok := index[k]
		if !ok {
			i = len(views)
			index[k] = i
			views = append(views, VendorOrderView{
				ID:               Key{OrderNumber: row.OrderNumber, VendorID: row.VendorID}.String(),
				VendorID:         row.VendorID,
				VendorName:       row.VendorName,
				OrderDate:        row.OrderCreatedAt,
				ConfirmationDate: row.VendorActionAt,
				OrderNumber:      row.OrderNumber,
				OrderID:          row.OrderID,
				POStatus:         poStatusPending,
				InvoiceStatus:    invoiceStatusNotCreated,
				TotalAmount:      decimal.Zero,
			})
			statuses = append(statuses, nil)
		}

		sku := defaultSKU
		if row.SKU != nil && *row.SKU != "" {
			sku = *row.SKU
		}
		confirmedQty := 0
		if row.ConfirmedQuantity != nil {
			confirmedQty = *row.ConfirmedQuantity
		}
		views[i].Items = append(views[i].Items, ItemView{
			SKU:          sku,
			Product:      row.ProductName,
			Qty:          row.AssignedQuantity,
			ConfirmedQty: confirmedQty,
		})

		// Billing prefers the vendor-confirmed quantity; unset means the
		// engine did not restate it, so fall back to the assigned quantity.
		billedQty := row.AssignedQuantity
		if row.ConfirmedQuantity != nil {
			billedQty = *row.ConfirmedQuantity
		}
		price := decimal.Zero
		if row.PricePerUnit != nil {
			price = *row.PricePerUnit
		}
		views[i].TotalAmount = views[i].TotalAmount.Add(price.Mul(decimal.NewFromInt(int64(billedQty))))

		statuses[i] = append(statuses[i], displayStatus(row.Status, accountsView))
	}

	for i := range views {
		views[i].OrderStatus = rollupStatus(statuses[i])
	}
	return views
}

// displayStatus maps an assignment status to the human-facing label. The
// accounts view reports partial confirmations as Confirmed so a partially
// confirmed order never reads as downgraded on the billing screen.
func displayStatus(status enums.AssignmentStatus, accountsView bool) string {
	switch status {
	case enums.AssignmentStatusPendingConfirmation:
		return "Pending"
	case enums.AssignmentStatusConfirmedFull:
		return "Confirmed"
	case enums.AssignmentStatusConfirmedPartial:
		if accountsView {
			return "Confirmed"
		}
		return "Partially Confirmed"
	case enums.AssignmentStatusDeclined:
		return "Declined"
	case enums.AssignmentStatusInvoiced:
		return "Invoiced"
	case enums.AssignmentStatusDispatched:
		return "Dispatched"
	case enums.AssignmentStatusStoreReceived:
		return "Received"
	case enums.AssignmentStatusVerifiedOK:
		return "Verified"
	case enums.AssignmentStatusVerifiedMismatch:
		return "Verification Mismatch"
	case enums.AssignmentStatusCompleted:
		return "Completed"
	default:
		return string(status)
	}
}

// rollupStatus collapses item statuses into the single group label.
func rollupStatus(itemStatuses []string) string {
	if len(itemStatuses) == 0 {
		return statusMixed
	}
	first := itemStatuses[0]
	for _, status := range itemStatuses[1:] {
		if status != first {
			return statusMixed
		}
	}
	return first
}

// applyPostFilters runs the filters the store cannot serve: vendor-name fuzzy
// match and derived-status equality. They run before pagination, so page
// counts reflect the filtered set.
func applyPostFilters(groups []VendorOrderView, filters Filters) []VendorOrderView {
	nameQuery := strings.ToLower(strings.TrimSpace(filters.VendorNameQuery))
	if nameQuery == "" && filters.OrderStatus == "" && filters.POStatus == "" && filters.InvoiceStatus == "" {
		return groups
	}

	filtered := groups[:0:0]
	for _, group := range groups {
		if nameQuery != "" && !strings.Contains(strings.ToLower(group.VendorName), nameQuery) {
			continue
		}
		if filters.OrderStatus != "" && group.OrderStatus != filters.OrderStatus {
			continue
		}
		if filters.POStatus != "" && group.POStatus != filters.POStatus {
			continue
		}
		if filters.InvoiceStatus != "" && group.InvoiceStatus != filters.InvoiceStatus {
			continue
		}
		filtered = append(filtered, group)
	}
	return filtered
}

// paginate sorts by confirmation date descending (stable, groups without a
// confirmation date last) and windows the result.
func paginate(groups []VendorOrderView, params pagination.Params) *ListResult {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].ConfirmationDate, groups[j].ConfirmationDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	low, high := pagination.Slice(params, len(groups))
	page := make([]VendorOrderView, high-low)
	copy(page, groups[low:high])

	return &ListResult{
		Orders:     page,
		Pagination: pagination.MetaFor(params, len(groups)),
	}
}
