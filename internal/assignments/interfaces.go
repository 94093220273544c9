package assignments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backoffice-backend/pkg/db/models"
)

// Repository defines persistence operations for assigned order items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindAssignedItem(ctx context.Context, id uuid.UUID) (*models.AssignedOrderItem, error)
	// UpdateStatusIfPending applies the updates only when the row is still in
	// pending_confirmation and reports how many rows were touched. Zero rows
	// means another writer won or the row is gone.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
}
