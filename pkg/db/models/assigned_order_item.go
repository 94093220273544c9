package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backoffice-backend/pkg/enums"
)

// AssignedOrderItem is the unit of vendor confirmation: one order item
// assigned to one vendor. ConfirmedQuantity is set only by vendor actions and
// is immutable once the row leaves pending_confirmation.
type AssignedOrderItem struct {
	ID                uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderItemID       uuid.UUID              `gorm:"column:order_item_id;type:uuid;not null;index"`
	VendorID          uuid.UUID              `gorm:"column:vendor_id;type:uuid;not null;index"`
	AssignedQuantity  int                    `gorm:"column:assigned_quantity;not null"`
	ConfirmedQuantity *int                   `gorm:"column:confirmed_quantity"`
	Status            enums.AssignmentStatus `gorm:"column:status;type:assignment_status;not null;default:'pending_confirmation'"`
	VendorRemarks     *string                `gorm:"column:vendor_remarks"`
	AssignedAt        time.Time              `gorm:"column:assigned_at;autoCreateTime"`
	VendorActionAt    *time.Time             `gorm:"column:vendor_action_at"`
	OrderItem         *OrderItem             `gorm:"foreignKey:OrderItemID"`
	Vendor            *Vendor                `gorm:"foreignKey:VendorID"`
}
