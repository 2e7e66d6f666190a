package shareholder

import "context"

type Repository interface {
	Create(ctx context.Context, s *Shareholder) error
	GetByID(ctx context.Context, id uint64) (*Shareholder, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Shareholder, error)
	GetByUsername(ctx context.Context, username string) (*Shareholder, error)
	GetByEmail(ctx context.Context, email string) (*Shareholder, error)

	// List returns shareholders ordered by id; an empty status lists all.
	List(ctx context.Context, status Status) ([]Shareholder, error)
	ListApproved(ctx context.Context) ([]Shareholder, error)

	// Update writes only the given columns.
	Update(ctx context.Context, id uint64, fields map[string]any) error
	Delete(ctx context.Context, id uint64) error
}
