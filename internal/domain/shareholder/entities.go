package shareholder

import (
	"time"

	"shareholder-backend/internal/domain/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errs.New(errs.KindNotFound, "shareholder_not_found", "shareholder not found")
	ErrUsernameTaken      = errs.New(errs.KindConflict, "username_taken", "username already exists")
	ErrEmailTaken         = errs.New(errs.KindConflict, "email_taken", "email already exists")
	ErrInvalidCredentials = errs.New(errs.KindUnauthorized, "invalid_credentials", "invalid credentials")
	ErrPendingApproval    = errs.New(errs.KindForbidden, "pending_approval", "account pending approval")
	ErrAdminProtected     = errs.New(errs.KindForbidden, "admin_protected", "operation not allowed on the admin account")
	ErrInvalidStatus      = errs.New(errs.KindInvalid, "invalid_status", "status must be one of PENDING, APPROVED, REJECTED")
	ErrInvalidRole        = errs.New(errs.KindInvalid, "invalid_role", "role is not one of the registrable roles")
	ErrInvalidShares      = errs.New(errs.KindInvalid, "invalid_shares", "number of shares must be at least 1")
	ErrNothingToUpdate    = errs.New(errs.KindInvalid, "nothing_to_update", "username or password is required")
	ErrMissingFields      = errs.New(errs.KindInvalid, "missing_fields", "username, email and password are required")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Role string

const (
	RoleDriver      Role = "DRIVER"
	RoleTravelAgent Role = "TRAVEL_AGENT"
	RoleShopsHotels Role = "SHOPS_HOTELS"
	RoleAdmin       Role = "ADMIN"
)

// BusinessRoles are the roles an investor can register under.
var BusinessRoles = []Role{RoleDriver, RoleTravelAgent, RoleShopsHotels}

func (r Role) Registrable() bool {
	for _, br := range BusinessRoles {
		if r == br {
			return true
		}
	}
	return false
}

func (r Role) Valid() bool { return r == RoleAdmin || r.Registrable() }

// Table: shareholders
type Shareholder struct {
	ID            uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Username      string `gorm:"column:username;size:64;not null;uniqueIndex:ux_shareholders_username" json:"username"`
	Email         string `gorm:"column:email;size:191;not null;uniqueIndex:ux_shareholders_email" json:"email"`
	PasswordHash  string `gorm:"column:password_hash;size:100;not null" json:"-"`
	FullName      string `gorm:"column:full_name;size:191;not null" json:"full_name"`
	Phone         string `gorm:"column:phone;size:32" json:"phone"`
	Address       string `gorm:"column:address;type:text" json:"address"`
	NomineeName   string `gorm:"column:nominee_name;size:191" json:"nominee_name"`
	PhotoPath     string `gorm:"column:photo_path;size:255" json:"photo_path,omitempty"`
	SignaturePath string `gorm:"column:signature_path;size:255" json:"signature_path,omitempty"`
	SignatureText string `gorm:"column:signature_text;size:191" json:"signature_text,omitempty"`

	Role            Role            `gorm:"column:role;size:32;not null;index" json:"role"`
	NumShares       int64           `gorm:"column:num_shares;not null;default:0" json:"num_shares"`
	PricePerShare   decimal.Decimal `gorm:"column:price_per_share;type:decimal(18,2);not null" json:"price_per_share"`
	TotalInvestment decimal.Decimal `gorm:"column:total_investment;type:decimal(18,2);not null" json:"total_investment"`
	Stage           int             `gorm:"column:stage;not null" json:"stage"`

	Status     Status     `gorm:"column:status;size:16;not null;default:'PENDING';index" json:"status"`
	ApprovedAt *time.Time `gorm:"column:approved_at" json:"approved_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Shareholder) TableName() string { return "shareholders" }

func (s *Shareholder) IsAdmin() bool { return s.Role == RoleAdmin }

// CanAuthenticate is the approval gate: admins always pass, everyone else
// only once approved.
func (s *Shareholder) CanAuthenticate() bool {
	return s.IsAdmin() || s.Status == StatusApproved
}

// ApplyStatus moves the record to status. ApprovedAt follows the target
// status only, so leaving APPROVED clears it.
func (s *Shareholder) ApplyStatus(status Status, now time.Time) {
	s.Status = status
	if status == StatusApproved {
		t := now.UTC()
		s.ApprovedAt = &t
		return
	}
	s.ApprovedAt = nil
}

// OwnershipDenominator is the fixed share count used for ownership
// percentages on the agreement.
const OwnershipDenominator = 1000

// OwnershipPercent returns numShares / 1000 × 100.
func (s *Shareholder) OwnershipPercent() decimal.Decimal {
	return decimal.NewFromInt(s.NumShares).
		Div(decimal.NewFromInt(OwnershipDenominator)).
		Mul(decimal.NewFromInt(100))
}
