package sqlrepo

import (
	"context"

	stageDomain "shareholder-backend/internal/domain/stage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StageRepository struct{ db *gorm.DB }

func NewStageRepository(db *gorm.DB) *StageRepository { return &StageRepository{db: db} }

func (r *StageRepository) Create(ctx context.Context, s *stageDomain.Stage) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StageRepository) GetByNumber(ctx context.Context, number int) (*stageDomain.Stage, error) {
	var out stageDomain.Stage
	res := r.db.WithContext(ctx).Where("stage = ?", number).First(&out)
	return &out, res.Error
}

func (r *StageRepository) ListRunning(ctx context.Context) ([]stageDomain.Stage, error) {
	var out []stageDomain.Stage
	res := r.db.WithContext(ctx).
		Where("status = ?", stageDomain.StatusRunning).
		Order("stage ASC").
		Find(&out)
	return out, res.Error
}

func (r *StageRepository) LockAll(ctx context.Context) ([]stageDomain.Stage, error) {
	var out []stageDomain.Stage
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("stage ASC").
		Find(&out)
	return out, res.Error
}

func (r *StageRepository) List(ctx context.Context) ([]stageDomain.Stage, error) {
	var out []stageDomain.Stage
	res := r.db.WithContext(ctx).Order("stage ASC").Find(&out)
	return out, res.Error
}

func (r *StageRepository) Update(ctx context.Context, number int, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&stageDomain.Stage{}).
		Where("stage = ?", number).
		Updates(fields).Error
}
