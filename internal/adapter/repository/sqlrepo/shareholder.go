package sqlrepo

import (
	"context"

	shareholderDomain "shareholder-backend/internal/domain/shareholder"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShareholderRepository struct{ db *gorm.DB }

func NewShareholderRepository(db *gorm.DB) *ShareholderRepository {
	return &ShareholderRepository{db: db}
}

func (r *ShareholderRepository) Create(ctx context.Context, s *shareholderDomain.Shareholder) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ShareholderRepository) GetByID(ctx context.Context, id uint64) (*shareholderDomain.Shareholder, error) {
	var out shareholderDomain.Shareholder
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ShareholderRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*shareholderDomain.Shareholder, error) {
	var out shareholderDomain.Shareholder
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *ShareholderRepository) GetByUsername(ctx context.Context, username string) (*shareholderDomain.Shareholder, error) {
	var out shareholderDomain.Shareholder
	res := r.db.WithContext(ctx).Where("username = ?", username).First(&out)
	return &out, res.Error
}

func (r *ShareholderRepository) GetByEmail(ctx context.Context, email string) (*shareholderDomain.Shareholder, error) {
	var out shareholderDomain.Shareholder
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	return &out, res.Error
}

func (r *ShareholderRepository) List(ctx context.Context, status shareholderDomain.Status) ([]shareholderDomain.Shareholder, error) {
	var out []shareholderDomain.Shareholder
	q := r.db.WithContext(ctx).Order("id ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return out, q.Find(&out).Error
}

func (r *ShareholderRepository) ListApproved(ctx context.Context) ([]shareholderDomain.Shareholder, error) {
	return r.List(ctx, shareholderDomain.StatusApproved)
}

func (r *ShareholderRepository) Update(ctx context.Context, id uint64, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&shareholderDomain.Shareholder{}).
		Where("id = ?", id).
		Updates(fields)
	return res.Error
}

func (r *ShareholderRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&shareholderDomain.Shareholder{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
