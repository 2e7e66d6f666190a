package pricingmock

import (
	"context"

	domain "shareholder-backend/internal/domain/pricing"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	ListRolePricesFn        func(ctx context.Context) ([]domain.RolePrice, error)
	UpsertRolePriceFn       func(ctx context.Context, p *domain.RolePrice) error
	ListSubscriberCountsFn  func(ctx context.Context) ([]domain.SubscriberCount, error)
	UpsertSubscriberCountFn func(ctx context.Context, c *domain.SubscriberCount) error
}

func (m *Repo) ListRolePrices(ctx context.Context) ([]domain.RolePrice, error) {
	if m.ListRolePricesFn != nil {
		return m.ListRolePricesFn(ctx)
	}
	return nil, nil
}

func (m *Repo) UpsertRolePrice(ctx context.Context, p *domain.RolePrice) error {
	if m.UpsertRolePriceFn != nil {
		return m.UpsertRolePriceFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListSubscriberCounts(ctx context.Context) ([]domain.SubscriberCount, error) {
	if m.ListSubscriberCountsFn != nil {
		return m.ListSubscriberCountsFn(ctx)
	}
	return nil, nil
}

func (m *Repo) UpsertSubscriberCount(ctx context.Context, c *domain.SubscriberCount) error {
	if m.UpsertSubscriberCountFn != nil {
		return m.UpsertSubscriberCountFn(ctx, c)
	}
	return nil
}
