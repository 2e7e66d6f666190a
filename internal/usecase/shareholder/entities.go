package shareholder

import (
	"context"

	domain "shareholder-backend/internal/domain/shareholder"
	"shareholder-backend/internal/domain/stage"
)

// PasswordHasher hashes and checks credentials. Verify reports a mismatch as
// (false, nil).
type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	Verify(ctx context.Context, plain, hash string) (bool, error)
}

// StageResolver yields the stage a new registration is priced at.
type StageResolver interface {
	Running(ctx context.Context) (stage.RunningStage, error)
}

type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	FullName      string
	Phone         string
	Address       string
	NomineeName   string
	PhotoPath     string
	SignaturePath string
	SignatureText string
	Role          domain.Role
	NumShares     int64
}

// CredentialsInput: nil or blank fields are left unchanged.
type CredentialsInput struct {
	Username *string
	Password *string
}

type AdminSeed struct {
	Username string
	Email    string
	Password string
}
