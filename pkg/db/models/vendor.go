package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is read-only from the reconciliation core's perspective.
type Vendor struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyName       string    `gorm:"column:company_name;not null"`
	ContactPersonName string    `gorm:"column:contact_person_name;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
