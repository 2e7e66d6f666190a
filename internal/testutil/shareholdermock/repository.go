package shareholdermock

import (
	"context"

	domain "shareholder-backend/internal/domain/shareholder"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Getters without a func return gorm.ErrRecordNotFound; writers are no-ops.
type Repo struct {
	CreateFn           func(ctx context.Context, s *domain.Shareholder) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Shareholder, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Shareholder, error)
	GetByUsernameFn    func(ctx context.Context, username string) (*domain.Shareholder, error)
	GetByEmailFn       func(ctx context.Context, email string) (*domain.Shareholder, error)
	ListFn             func(ctx context.Context, status domain.Status) ([]domain.Shareholder, error)
	ListApprovedFn     func(ctx context.Context) ([]domain.Shareholder, error)
	UpdateFn           func(ctx context.Context, id uint64, fields map[string]any) error
	DeleteFn           func(ctx context.Context, id uint64) error
}

func (m *Repo) Create(ctx context.Context, s *domain.Shareholder) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Shareholder, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Shareholder, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.Shareholder, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.Shareholder, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context, status domain.Status) ([]domain.Shareholder, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) ListApproved(ctx context.Context) ([]domain.Shareholder, error) {
	if m.ListApprovedFn != nil {
		return m.ListApprovedFn(ctx)
	}
	return m.List(ctx, domain.StatusApproved)
}

func (m *Repo) Update(ctx context.Context, id uint64, fields map[string]any) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, fields)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
