package dividend

import (
	"time"

	"shareholder-backend/internal/domain/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount          = errs.New(errs.KindInvalid, "invalid_amount", "amount must be greater than zero")
	ErrMonthRequired          = errs.New(errs.KindInvalid, "month_required", "month is required")
	ErrShareholderNotFound    = errs.New(errs.KindNotFound, "shareholder_not_found", "shareholder not found")
	ErrShareholderNotApproved = errs.New(errs.KindConflict, "shareholder_not_approved", "shareholder is not approved")
	ErrNoApprovedShareholders = errs.New(errs.KindConflict, "no_approved_shareholders", "no approved shareholders")
	ErrNoShares               = errs.New(errs.KindConflict, "no_shares", "approved shareholders hold no shares")
)

type Status string

const StatusPaid Status = "PAID"

// Table: dividends
type Dividend struct {
	ID            uint64          `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	ShareholderID uint64          `gorm:"column:shareholder_id;not null;index:idx_dividends_shareholder" json:"shareholder_id"`
	Month         string          `gorm:"column:month;size:32;not null" json:"month"`
	GrossAmount   decimal.Decimal `gorm:"column:gross_amount;type:decimal(18,2);not null" json:"gross_amount"`
	GSTRate       decimal.Decimal `gorm:"column:gst_rate;type:decimal(6,2);not null;default:0" json:"gst_rate"`
	GSTAmount     decimal.Decimal `gorm:"column:gst_amount;type:decimal(18,2);not null;default:0" json:"gst_amount"`
	NetAmount     decimal.Decimal `gorm:"column:net_amount;type:decimal(18,2);not null" json:"net_amount"`
	PaymentMethod string          `gorm:"column:payment_method;size:64" json:"payment_method"`
	Status        Status          `gorm:"column:status;size:16;not null;default:'PAID'" json:"status"`
	PaidAt        time.Time       `gorm:"column:paid_at;not null" json:"paid_at"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Dividend) TableName() string { return "dividends" }

// NewRecord builds a PAID record for one computed payout, with the gross
// rounded to the stored precision.
func NewRecord(shareholderID uint64, month, paymentMethod string, p Payout, now time.Time) *Dividend {
	return &Dividend{
		ShareholderID: shareholderID,
		Month:         month,
		GrossAmount:   Round2(p.Gross),
		GSTRate:       p.GSTRate,
		GSTAmount:     p.GSTAmount,
		NetAmount:     p.Net,
		PaymentMethod: paymentMethod,
		Status:        StatusPaid,
		PaidAt:        now.UTC(),
	}
}
