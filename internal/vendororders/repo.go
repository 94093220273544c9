package vendororders

import (
	"context"

	"gorm.io/gorm"
)

// RowFetcher reads joined assignment rows for the aggregator.
type RowFetcher interface {
	FetchRows(ctx context.Context, query RowQuery) ([]Row, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a vendor-orders row repository bound to the provided DB.
func NewRepository(db *gorm.DB) RowFetcher {
	return &repository{db: db}
}

// FetchRows pushes the indexable filters to the store and returns rows in
// assignment order so grouping stays deterministic before the sort step.
func (r *repository) FetchRows(ctx context.Context, query RowQuery) ([]Row, error) {
	q := r.db.WithContext(ctx).
		Table("assigned_order_items AS a").
		Select(`a.id AS assignment_id,
o.id AS order_id,
o.order_number,
o.created_at AS order_created_at,
v.id AS vendor_id,
v.company_name AS vendor_name,
oi.sku,
oi.product_name,
a.assigned_quantity,
a.confirmed_quantity,
oi.price_per_unit,
a.status,
a.vendor_action_at`).
		Joins("JOIN order_items oi ON oi.id = a.order_item_id").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN vendors v ON v.id = a.vendor_id")

	if query.VendorID != nil {
		q = q.Where("a.vendor_id = ?", *query.VendorID)
	}
	if len(query.Statuses) > 0 {
		q = q.Where("a.status IN ?", query.Statuses)
	}
	if query.OrderNumber != "" {
		q = q.Where("o.order_number = ?", query.OrderNumber)
	}
	if query.OrderNumberQuery != "" {
		q = q.Where("LOWER(o.order_number) LIKE LOWER(?)", "%"+query.OrderNumberQuery+"%")
	}
	if query.ActionFrom != nil {
		q = q.Where("a.vendor_action_at >= ?", *query.ActionFrom)
	}
	if query.ActionTo != nil {
		q = q.Where("a.vendor_action_at <= ?", *query.ActionTo)
	}

	var rows []Row
	err := q.Order("a.assigned_at ASC").Order("a.id ASC").Scan(&rows).Error
	return rows, err
}
