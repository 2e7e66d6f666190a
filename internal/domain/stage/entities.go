package stage

import (
	"time"

	"shareholder-backend/internal/domain/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errs.New(errs.KindNotFound, "stage_not_found", "stage not found")
	ErrMissingFields   = errs.New(errs.KindInvalid, "stage_fields_required", "stage, name and price are required")
	ErrEmptyUpdate     = errs.New(errs.KindInvalid, "stage_empty_update", "no fields to update")
	ErrInvalidStatus   = errs.New(errs.KindInvalid, "stage_invalid_status", "status must be one of UPCOMING, RUNNING, SOLD_OUT")
	ErrAlreadyRunning  = errs.New(errs.KindConflict, "stage_already_running", "another stage is already running")
	ErrInvalidBounds   = errs.New(errs.KindInvalid, "stage_invalid_bounds", "minimum subscribers must be below maximum subscribers")
	ErrNegativeNumbers = errs.New(errs.KindInvalid, "stage_negative_values", "price and shares available must not be negative")
)

type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	StatusRunning  Status = "RUNNING"
	StatusSoldOut  Status = "SOLD_OUT"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusRunning, StatusSoldOut:
		return true
	}
	return false
}

// Table: investment_stages
type Stage struct {
	ID              uint64          `gorm:"primaryKey;column:id;autoIncrement" json:"-"`
	Stage           int             `gorm:"column:stage;not null;uniqueIndex:ux_stages_stage" json:"stage"`
	Name            string          `gorm:"column:name;size:128;not null" json:"name"`
	PricePerShare   decimal.Decimal `gorm:"column:price_per_share;type:decimal(18,2);not null" json:"price_per_share"`
	MinSubscribers  int             `gorm:"column:min_subscribers;not null;default:0" json:"min_subscribers"`
	MaxSubscribers  int             `gorm:"column:max_subscribers;not null;default:0" json:"max_subscribers"`
	Status          Status          `gorm:"column:status;size:16;not null;default:'UPCOMING';index" json:"status"`
	SharesAvailable int             `gorm:"column:shares_available;not null;default:0" json:"shares_available"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Stage) TableName() string { return "investment_stages" }

// Applies reports whether subscribers falls in [MinSubscribers, MaxSubscribers).
// A zero MaxSubscribers leaves the band open-ended.
func (s Stage) Applies(subscribers int) bool {
	if subscribers < s.MinSubscribers {
		return false
	}
	return s.MaxSubscribers == 0 || subscribers < s.MaxSubscribers
}

// Fallback values served when no stage is RUNNING.
const (
	FallbackStage = 2
	FallbackName  = "Current Price"
)

var FallbackPrice = decimal.NewFromInt(1200)

// RunningStage is either a stored RUNNING stage or the fallback tier. The
// zero value is the fallback.
type RunningStage struct {
	found *Stage
}

func Found(s Stage) RunningStage { return RunningStage{found: &s} }

func Fallback() RunningStage { return RunningStage{} }

func (r RunningStage) IsFallback() bool { return r.found == nil }

// Stage returns the stored stage and true, or false for the fallback.
func (r RunningStage) Stage() (Stage, bool) {
	if r.found == nil {
		return Stage{}, false
	}
	return *r.found, true
}

func (r RunningStage) Number() int {
	if r.found == nil {
		return FallbackStage
	}
	return r.found.Stage
}

func (r RunningStage) Name() string {
	if r.found == nil {
		return FallbackName
	}
	return r.found.Name
}

func (r RunningStage) PricePerShare() decimal.Decimal {
	if r.found == nil {
		return FallbackPrice
	}
	return r.found.PricePerShare
}
