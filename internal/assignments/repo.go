package assignments

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

// NewRepository builds an assignments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindAssignedItem(ctx context.Context, id uuid.UUID) (*models.AssignedOrderItem, error) {
	var item models.AssignedOrderItem
	err := r.db.WithContext(ctx).
		Preload("OrderItem").
		Preload("Vendor").
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.AssignedOrderItem{}).
		Where("id = ? AND status = ?", id, enums.AssignmentStatusPendingConfirmation).
		Updates(updates)
	return result.RowsAffected, result.Error
}
