// Package pricing holds the per-role listing prices and subscriber counters.
// Neither affects share pricing; both are admin-maintained display data.
package pricing

import (
	"time"

	"shareholder-backend/internal/domain/errs"
	"shareholder-backend/internal/domain/shareholder"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRole  = errs.New(errs.KindInvalid, "invalid_role", "role is not one of the business roles")
	ErrInvalidPrice = errs.New(errs.KindInvalid, "invalid_price", "price must not be negative")
	ErrInvalidCount = errs.New(errs.KindInvalid, "invalid_count", "count must not be negative")
)

// Table: role_prices
type RolePrice struct {
	Role      shareholder.Role `gorm:"primaryKey;column:role;size:32" json:"role"`
	Price     decimal.Decimal  `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RolePrice) TableName() string { return "role_prices" }

// Table: subscriber_counts
type SubscriberCount struct {
	Role      shareholder.Role `gorm:"primaryKey;column:role;size:32" json:"role"`
	Count     int64            `gorm:"column:count;not null;default:0" json:"count"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SubscriberCount) TableName() string { return "subscriber_counts" }
