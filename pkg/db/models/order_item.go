package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem captures one product line within an order. PricePerUnit is nil
// until pricing is finalized; billing treats a missing price as zero.
type OrderItem struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID        `gorm:"column:order_id;type:uuid;not null;index"`
	SKU          *string          `gorm:"column:sku"`
	ProductName  string           `gorm:"column:product_name;not null"`
	Quantity     int              `gorm:"column:quantity;not null"`
	PricePerUnit *decimal.Decimal `gorm:"column:price_per_unit;type:numeric(12,2)"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
