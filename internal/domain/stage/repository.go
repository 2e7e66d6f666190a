package stage

import "context"

type Repository interface {
	Create(ctx context.Context, s *Stage) error
	GetByNumber(ctx context.Context, number int) (*Stage, error)
	// ListRunning returns every RUNNING stage, lowest stage number first.
	ListRunning(ctx context.Context) ([]Stage, error)
	// LockAll row-locks every stage until the surrounding tx ends and returns
	// them by stage number. Writers that change RUNNING state call it first.
	LockAll(ctx context.Context) ([]Stage, error)
	List(ctx context.Context) ([]Stage, error)
	Update(ctx context.Context, number int, fields map[string]any) error
}
