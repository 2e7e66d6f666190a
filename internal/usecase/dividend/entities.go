package dividend

import (
	"time"

	domain "shareholder-backend/internal/domain/dividend"

	"github.com/shopspring/decimal"
)

type PayOneInput struct {
	ShareholderID uint64
	Month         string
	Gross         decimal.Decimal
	GSTRate       decimal.Decimal
	PaymentMethod string
}

type PayAllInput struct {
	Month         string
	TotalGross    decimal.Decimal
	GSTRate       decimal.Decimal
	PaymentMethod string
}

type PayoutDTO struct {
	DividendID    uint64          `json:"dividend_id"`
	ShareholderID uint64          `json:"shareholder_id"`
	Month         string          `json:"month"`
	Gross         decimal.Decimal `json:"gross"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	Net           decimal.Decimal `json:"net"`
	PaidAt        time.Time       `json:"paid_at"`
}

type PayAllResult struct {
	Count       int                 `json:"count"`
	Month       string              `json:"month"`
	TotalGross  decimal.Decimal     `json:"total_gross"`
	Distributed decimal.Decimal     `json:"distributed"` // Σ gross; may trail TotalGross by rounding
	Allocations []domain.Allocation `json:"allocations"`
}
