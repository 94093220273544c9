package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backoffice-backend/pkg/enums"
)

// AssignmentDecidedEvent is emitted when a vendor confirms or declines an
// assigned order item.
type AssignmentDecidedEvent struct {
	AssignmentID      uuid.UUID              `json:"assignmentId"`
	OrderItemID       uuid.UUID              `json:"orderItemId"`
	VendorID          uuid.UUID              `json:"vendorId"`
	Status            enums.AssignmentStatus `json:"status"`
	AssignedQuantity  int                    `json:"assignedQuantity"`
	ConfirmedQuantity *int                   `json:"confirmedQuantity,omitempty"`
	VendorActionAt    time.Time              `json:"vendorActionAt"`
}

// OrderStatusRecalculatedEvent signals that an order's rollup status moved
// after all of its assignments reached a terminal vendor decision.
type OrderStatusRecalculatedEvent struct {
	OrderID     uuid.UUID         `json:"orderId"`
	OrderNumber string            `json:"orderNumber"`
	OldStatus   enums.OrderStatus `json:"oldStatus"`
	NewStatus   enums.OrderStatus `json:"newStatus"`
}
