package pricing

import (
	"context"
	"fmt"

	domain "shareholder-backend/internal/domain/pricing"
	"shareholder-backend/internal/domain/shareholder"

	"github.com/shopspring/decimal"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) ListRolePrices(ctx context.Context) ([]domain.RolePrice, error) {
	out, err := u.repo.ListRolePrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list role prices: %w", err)
	}
	return out, nil
}

func (u *Usecase) SetRolePrice(ctx context.Context, role shareholder.Role, price decimal.Decimal) (*domain.RolePrice, error) {
	if !role.Registrable() {
		return nil, domain.ErrInvalidRole
	}
	if price.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	p := &domain.RolePrice{Role: role, Price: price.Round(2)}
	if err := u.repo.UpsertRolePrice(ctx, p); err != nil {
		return nil, fmt.Errorf("upsert role price: %w", err)
	}
	return p, nil
}

func (u *Usecase) ListSubscriberCounts(ctx context.Context) ([]domain.SubscriberCount, error) {
	out, err := u.repo.ListSubscriberCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriber counts: %w", err)
	}
	return out, nil
}

func (u *Usecase) SetSubscriberCount(ctx context.Context, role shareholder.Role, count int64) (*domain.SubscriberCount, error) {
	if !role.Registrable() {
		return nil, domain.ErrInvalidRole
	}
	if count < 0 {
		return nil, domain.ErrInvalidCount
	}
	c := &domain.SubscriberCount{Role: role, Count: count}
	if err := u.repo.UpsertSubscriberCount(ctx, c); err != nil {
		return nil, fmt.Errorf("upsert subscriber count: %w", err)
	}
	return c, nil
}
