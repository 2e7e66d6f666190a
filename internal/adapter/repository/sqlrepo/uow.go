package sqlrepo

import (
	"context"

	"shareholder-backend/internal/domain/shareholder"
	"shareholder-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Shareholders: &ShareholderRepository{db: tx},
		Stages:       &StageRepository{db: tx},
		Dividends:    &DividendRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinShareholderTx(ctx context.Context, shareholderID uint64, fn func(r uow.Repos, s *shareholder.Shareholder) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the shareholder row up-front to prevent races
		s, err := r.Shareholders.GetByIDForUpdate(ctx, shareholderID)
		if err != nil {
			return err
		}
		return fn(r, s)
	})
}
