package shareholder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareholder-backend/internal/domain/dividend"
	domain "shareholder-backend/internal/domain/shareholder"
	"shareholder-backend/internal/domain/uow"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Usecase struct {
	repo   domain.Repository
	uow    uow.UnitOfWork
	hasher PasswordHasher
	stages StageResolver
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, hasher PasswordHasher, stages StageResolver, log logrus.FieldLogger) *Usecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Usecase{
		repo:   repo,
		uow:    tx,
		hasher: hasher,
		stages: stages,
		log:    log.WithField("component", "shareholder"),
		now:    time.Now,
	}
}

// Register creates a PENDING shareholder priced at the running stage. Price,
// stage and total investment are fixed here and never recomputed.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*domain.Shareholder, error) {
	if !in.Role.Registrable() {
		return nil, domain.ErrInvalidRole
	}
	if in.NumShares < 1 {
		return nil, domain.ErrInvalidShares
	}
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	if err := ensureFree(ctx, u.repo, username, email, 0); err != nil {
		return nil, err
	}

	running, err := u.stages.Running(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := u.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	price := running.PricePerShare()
	s := &domain.Shareholder{
		Username:        username,
		Email:           email,
		PasswordHash:    hash,
		FullName:        strings.TrimSpace(in.FullName),
		Phone:           strings.TrimSpace(in.Phone),
		Address:         strings.TrimSpace(in.Address),
		NomineeName:     strings.TrimSpace(in.NomineeName),
		PhotoPath:       in.PhotoPath,
		SignaturePath:   in.SignaturePath,
		SignatureText:   strings.TrimSpace(in.SignatureText),
		Role:            in.Role,
		NumShares:       in.NumShares,
		PricePerShare:   price,
		TotalInvestment: dividend.Round2(decimal.NewFromInt(in.NumShares).Mul(price)),
		Stage:           running.Number(),
		Status:          domain.StatusPending,
	}
	if err := u.repo.Create(ctx, s); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent registration
			return nil, u.whichTaken(ctx, email)
		}
		return nil, fmt.Errorf("create shareholder: %w", err)
	}

	u.log.WithFields(logrus.Fields{
		"shareholder_id": s.ID,
		"stage":          s.Stage,
		"fallback_stage": running.IsFallback(),
	}).Info("shareholder registered")
	return s, nil
}

// ensureFree declines when username or email belongs to a shareholder other
// than self. Inside a tx, repo must be the tx-bound one.
func ensureFree(ctx context.Context, repo domain.Repository, username, email string, self uint64) error {
	if username != "" {
		other, err := repo.GetByUsername(ctx, username)
		switch {
		case err == nil && other.ID != self:
			return domain.ErrUsernameTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("lookup username: %w", err)
		}
	}
	if email != "" {
		other, err := repo.GetByEmail(ctx, email)
		switch {
		case err == nil && other.ID != self:
			return domain.ErrEmailTaken
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("lookup email: %w", err)
		}
	}
	return nil
}

func (u *Usecase) whichTaken(ctx context.Context, email string) error {
	if _, err := u.repo.GetByEmail(ctx, email); err == nil {
		return domain.ErrEmailTaken
	}
	return domain.ErrUsernameTaken
}

// Authenticate accepts a username or an email as identifier. A correct
// password on a non-admin account that is not APPROVED yields
// ErrPendingApproval, distinct from ErrInvalidCredentials.
func (u *Usecase) Authenticate(ctx context.Context, identifier, password string) (*domain.Shareholder, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	s, err := u.repo.GetByUsername(ctx, identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s, err = u.repo.GetByEmail(ctx, strings.ToLower(identifier))
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("lookup shareholder: %w", err)
	}

	ok, err := u.hasher.Verify(ctx, password, s.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.CanAuthenticate() {
		return nil, domain.ErrPendingApproval
	}
	return s, nil
}

func (u *Usecase) SetStatus(ctx context.Context, id uint64, status domain.Status) (*domain.Shareholder, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	var out *domain.Shareholder
	err := u.uow.WithinShareholderTx(ctx, id, func(r uow.Repos, s *domain.Shareholder) error {
		from := s.Status
		s.ApplyStatus(status, u.now())
		if err := r.Shareholders.Update(ctx, s.ID, map[string]any{
			"status":      s.Status,
			"approved_at": s.ApprovedAt,
		}); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		u.log.WithFields(logrus.Fields{"shareholder_id": s.ID, "from": from, "to": s.Status}).Info("status changed")
		out = s
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (u *Usecase) UpdateCredentials(ctx context.Context, id uint64, in CredentialsInput) (*domain.Shareholder, error) {
	var username, password string
	if in.Username != nil {
		username = strings.TrimSpace(*in.Username)
	}
	if in.Password != nil {
		password = *in.Password
	}
	if username == "" && password == "" {
		return nil, domain.ErrNothingToUpdate
	}

	var out *domain.Shareholder
	err := u.uow.WithinShareholderTx(ctx, id, func(r uow.Repos, s *domain.Shareholder) error {
		if s.IsAdmin() {
			return domain.ErrAdminProtected
		}
		fields := map[string]any{}
		if username != "" && username != s.Username {
			if err := ensureFree(ctx, r.Shareholders, username, "", s.ID); err != nil {
				return err
			}
			fields["username"] = username
			s.Username = username
		}
		if password != "" {
			hash, err := u.hasher.Hash(ctx, password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fields["password_hash"] = hash
			s.PasswordHash = hash
		}
		out = s
		if len(fields) == 0 {
			return nil
		}
		if err := r.Shareholders.Update(ctx, s.ID, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrUsernameTaken
			}
			return fmt.Errorf("update credentials: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	u.log.WithField("shareholder_id", id).Info("credentials updated")
	return out, nil
}

// Delete removes a non-admin shareholder and its dividend history in one transaction.
func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	err := u.uow.WithinShareholderTx(ctx, id, func(r uow.Repos, s *domain.Shareholder) error {
		if s.IsAdmin() {
			return domain.ErrAdminProtected
		}
		if err := r.Dividends.DeleteByShareholder(ctx, s.ID); err != nil {
			return fmt.Errorf("delete dividends: %w", err)
		}
		if err := r.Shareholders.Delete(ctx, s.ID); err != nil {
			return fmt.Errorf("delete shareholder: %w", err)
		}
		return nil
	})
	if err != nil {
		return notFound(err)
	}
	u.log.WithField("shareholder_id", id).Info("shareholder deleted")
	return nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*domain.Shareholder, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

// List filters by status; an empty status lists everyone.
func (u *Usecase) List(ctx context.Context, status domain.Status) ([]domain.Shareholder, error) {
	if status != "" && !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	out, err := u.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list shareholders: %w", err)
	}
	return out, nil
}

// EnsureAdmin creates the admin account on first boot. An existing username is left alone.
func (u *Usecase) EnsureAdmin(ctx context.Context, seed AdminSeed) error {
	if seed.Username == "" || seed.Password == "" {
		return nil
	}
	_, err := u.repo.GetByUsername(ctx, seed.Username)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := u.hasher.Hash(ctx, seed.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &domain.Shareholder{
		Username:        seed.Username,
		Email:           strings.ToLower(seed.Email),
		PasswordHash:    hash,
		FullName:        "Administrator",
		Role:            domain.RoleAdmin,
		PricePerShare:   decimal.Zero,
		TotalInvestment: decimal.Zero,
		Status:          domain.StatusApproved,
	}
	admin.ApplyStatus(domain.StatusApproved, u.now())
	if err := u.repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	u.log.WithField("username", admin.Username).Info("admin account seeded")
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
