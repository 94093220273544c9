package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backoffice-backend/pkg/enums"
)

// Order is the admin-created order header. The reconciliation core reads it
// for grouping; the order-management collaborators own its lifecycle.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber string            `gorm:"column:order_number;not null;uniqueIndex"`
	Status      enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'created'"`
	Items       []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
