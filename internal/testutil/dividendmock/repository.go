package dividendmock

import (
	"context"

	domain "shareholder-backend/internal/domain/dividend"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, d *domain.Dividend) error
	CreateBatchFn         func(ctx context.Context, ds []*domain.Dividend) error
	ListByShareholderFn   func(ctx context.Context, shareholderID uint64) ([]domain.Dividend, error)
	ListAllFn             func(ctx context.Context) ([]domain.Dividend, error)
	DeleteByShareholderFn func(ctx context.Context, shareholderID uint64) error
}

func (m *Repo) Create(ctx context.Context, d *domain.Dividend) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) CreateBatch(ctx context.Context, ds []*domain.Dividend) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, ds)
	}
	return nil
}

func (m *Repo) ListByShareholder(ctx context.Context, shareholderID uint64) ([]domain.Dividend, error) {
	if m.ListByShareholderFn != nil {
		return m.ListByShareholderFn(ctx, shareholderID)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Dividend, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) DeleteByShareholder(ctx context.Context, shareholderID uint64) error {
	if m.DeleteByShareholderFn != nil {
		return m.DeleteByShareholderFn(ctx, shareholderID)
	}
	return nil
}
