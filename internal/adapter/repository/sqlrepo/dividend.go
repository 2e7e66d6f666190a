package sqlrepo

import (
	"context"

	dividendDomain "shareholder-backend/internal/domain/dividend"

	"gorm.io/gorm"
)

// batchSize caps rows per INSERT during bulk payouts.
const batchSize = 200

type DividendRepository struct{ db *gorm.DB }

func NewDividendRepository(db *gorm.DB) *DividendRepository { return &DividendRepository{db: db} }

func (r *DividendRepository) Create(ctx context.Context, d *dividendDomain.Dividend) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DividendRepository) CreateBatch(ctx context.Context, ds []*dividendDomain.Dividend) error {
	if len(ds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(ds, batchSize).Error
}

func (r *DividendRepository) ListByShareholder(ctx context.Context, shareholderID uint64) ([]dividendDomain.Dividend, error) {
	var out []dividendDomain.Dividend
	res := r.db.WithContext(ctx).
		Where("shareholder_id = ?", shareholderID).
		Order("paid_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *DividendRepository) ListAll(ctx context.Context) ([]dividendDomain.Dividend, error) {
	var out []dividendDomain.Dividend
	res := r.db.WithContext(ctx).Order("paid_at ASC, id ASC").Find(&out)
	return out, res.Error
}

func (r *DividendRepository) DeleteByShareholder(ctx context.Context, shareholderID uint64) error {
	return r.db.WithContext(ctx).
		Where("shareholder_id = ?", shareholderID).
		Delete(&dividendDomain.Dividend{}).Error
}
