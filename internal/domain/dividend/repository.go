package dividend

import "context"

type Repository interface {
	Create(ctx context.Context, d *Dividend) error
	CreateBatch(ctx context.Context, ds []*Dividend) error
	ListByShareholder(ctx context.Context, shareholderID uint64) ([]Dividend, error)
	// ListAll returns every record, oldest first.
	ListAll(ctx context.Context) ([]Dividend, error)
	DeleteByShareholder(ctx context.Context, shareholderID uint64) error
}
