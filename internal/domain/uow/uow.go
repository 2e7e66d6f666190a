package uow

import (
	"context"

	"shareholder-backend/internal/domain/dividend"
	"shareholder-backend/internal/domain/shareholder"
	"shareholder-backend/internal/domain/stage"
)

type Repos struct {
	Shareholders shareholder.Repository
	Stages       stage.Repository
	Dividends    dividend.Repository
}

type UnitOfWork interface {
	// plain tx: commit when fn returns nil, roll back otherwise
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the shareholder row first, then pass it in
	WithinShareholderTx(ctx context.Context, shareholderID uint64, fn func(r Repos, s *shareholder.Shareholder) error) error
}
