package uowmock

import (
	"context"
	"errors"

	"shareholder-backend/internal/domain/shareholder"
	"shareholder-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinShareholderTxFn func(ctx context.Context, id uint64, fn func(r uow.Repos, s *shareholder.Shareholder) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs every tx body directly against repos, with no commit or
// rollback. WithinShareholderTx loads the row through repos.Shareholders.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinShareholderTxFn: func(ctx context.Context, id uint64, fn func(uow.Repos, *shareholder.Shareholder) error) error {
			s, err := repos.Shareholders.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, s)
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinShareholderTx(fn func(context.Context, uint64, func(uow.Repos, *shareholder.Shareholder) error) error) *UoW {
	m.WithinShareholderTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinShareholderTx(ctx context.Context, id uint64, fn func(r uow.Repos, s *shareholder.Shareholder) error) error {
	if m.WithinShareholderTxFn != nil {
		return m.WithinShareholderTxFn(ctx, id, fn)
	}
	return errUnimplemented
}
