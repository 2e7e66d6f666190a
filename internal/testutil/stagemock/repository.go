package stagemock

import (
	"context"

	domain "shareholder-backend/internal/domain/stage"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, s *domain.Stage) error
	GetByNumberFn func(ctx context.Context, number int) (*domain.Stage, error)
	ListRunningFn func(ctx context.Context) ([]domain.Stage, error)
	LockAllFn     func(ctx context.Context) ([]domain.Stage, error)
	ListFn        func(ctx context.Context) ([]domain.Stage, error)
	UpdateFn      func(ctx context.Context, number int, fields map[string]any) error
}

func (m *Repo) Create(ctx context.Context, s *domain.Stage) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByNumber(ctx context.Context, number int) (*domain.Stage, error) {
	if m.GetByNumberFn != nil {
		return m.GetByNumberFn(ctx, number)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListRunning(ctx context.Context) ([]domain.Stage, error) {
	if m.ListRunningFn != nil {
		return m.ListRunningFn(ctx)
	}
	return nil, nil
}

func (m *Repo) LockAll(ctx context.Context) ([]domain.Stage, error) {
	if m.LockAllFn != nil {
		return m.LockAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Stage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Update(ctx context.Context, number int, fields map[string]any) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, number, fields)
	}
	return nil
}
