package assignments

import (
	"github.com/google/uuid"

	"github.com/orderdesk/backoffice-backend/pkg/db/models"
	"github.com/orderdesk/backoffice-backend/pkg/enums"
)

// UpdateStatusInput carries a vendor's decision for one assigned order item.
// Status arrives raw from the transport so the engine owns enum validation.
type UpdateStatusInput struct {
	AssignmentID      uuid.UUID
	Status            string
	ConfirmedQuantity *int
	VendorRemarks     *string
}

// StatusUpdateResult reports the persisted assignment plus whether the parent
// order's rollup status moved as a consequence.
type StatusUpdateResult struct {
	Assignment         models.AssignedOrderItem `json:"assignment"`
	OrderStatusUpdated bool                     `json:"orderStatusUpdated"`
	NewOrderStatus     *enums.OrderStatus       `json:"newOrderStatus,omitempty"`
}
