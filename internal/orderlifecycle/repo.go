package orderlifecycle

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backoffice-backend/pkg/db/models"
	"github.com/orderdesk/backoffice-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an order-lifecycle repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindOrderByItem(ctx context.Context, orderItemID uuid.UUID) (*models.Order, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).
		Where("id = ?", orderItemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	var order models.Order
	err = r.db.WithContext(ctx).
		Where("id = ?", item.OrderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListAssignmentStatusesByOrder(ctx context.Context, orderID uuid.UUID) ([]enums.AssignmentStatus, error) {
	var statuses []enums.AssignmentStatus
	err := r.db.WithContext(ctx).
		Table("assigned_order_items").
		Select("assigned_order_items.status").
		Joins("JOIN order_items ON order_items.id = assigned_order_items.order_item_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&statuses).Error
	return statuses, err
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}
