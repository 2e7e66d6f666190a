package pricing

import "context"

type Repository interface {
	ListRolePrices(ctx context.Context) ([]RolePrice, error)
	UpsertRolePrice(ctx context.Context, p *RolePrice) error
	ListSubscriberCounts(ctx context.Context) ([]SubscriberCount, error)
	UpsertSubscriberCount(ctx context.Context, c *SubscriberCount) error
}
