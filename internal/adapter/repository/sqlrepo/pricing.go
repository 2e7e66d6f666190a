package sqlrepo

import (
	"context"

	pricingDomain "shareholder-backend/internal/domain/pricing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PricingRepository struct{ db *gorm.DB }

func NewPricingRepository(db *gorm.DB) *PricingRepository { return &PricingRepository{db: db} }

func (r *PricingRepository) ListRolePrices(ctx context.Context) ([]pricingDomain.RolePrice, error) {
	var out []pricingDomain.RolePrice
	res := r.db.WithContext(ctx).Order("role ASC").Find(&out)
	return out, res.Error
}

func (r *PricingRepository) UpsertRolePrice(ctx context.Context, p *pricingDomain.RolePrice) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "role"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
		}).
		Create(p).Error
}

func (r *PricingRepository) ListSubscriberCounts(ctx context.Context) ([]pricingDomain.SubscriberCount, error) {
	var out []pricingDomain.SubscriberCount
	res := r.db.WithContext(ctx).Order("role ASC").Find(&out)
	return out, res.Error
}

func (r *PricingRepository) UpsertSubscriberCount(ctx context.Context, c *pricingDomain.SubscriberCount) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "role"}},
			DoUpdates: clause.AssignmentColumns([]string{"count", "updated_at"}),
		}).
		Create(c).Error
}
