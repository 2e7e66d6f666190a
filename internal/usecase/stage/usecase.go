package stage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "shareholder-backend/internal/domain/stage"
	"shareholder-backend/internal/domain/uow"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
	log  logrus.FieldLogger
}

func NewUsecase(stages domain.Repository, tx uow.UnitOfWork, log logrus.FieldLogger) *Usecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Usecase{repo: stages, uow: tx, log: log.WithField("component", "stage")}
}

// Running resolves the stage new registrations are priced at.
func (u *Usecase) Running(ctx context.Context) (domain.RunningStage, error) {
	return resolveRunning(ctx, u.repo, u.log)
}

func resolveRunning(ctx context.Context, repo domain.Repository, log logrus.FieldLogger) (domain.RunningStage, error) {
	running, err := repo.ListRunning(ctx)
	if err != nil {
		return domain.RunningStage{}, fmt.Errorf("list running stages: %w", err)
	}
	if len(running) == 0 {
		return domain.Fallback(), nil
	}
	if len(running) > 1 {
		nums := make([]int, 0, len(running))
		for _, s := range running {
			nums = append(nums, s.Stage)
		}
		log.WithField("running", nums).Warn("multiple running stages, using the lowest")
	}
	return domain.Found(running[0]), nil
}

func (u *Usecase) GetRunningStage(ctx context.Context) (RunningStageDTO, error) {
	r, err := u.Running(ctx)
	if err != nil {
		return RunningStageDTO{}, err
	}
	return toRunningDTO(r), nil
}

func (u *Usecase) ListStages(ctx context.Context) ([]domain.Stage, error) {
	out, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	return out, nil
}

// ListApplicable returns the stages whose [min,max) subscriber band holds n.
func (u *Usecase) ListApplicable(ctx context.Context, subscribers int) ([]domain.Stage, error) {
	all, err := u.ListStages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Stage, 0, len(all))
	for _, s := range all {
		if s.Applies(subscribers) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (u *Usecase) UpsertStage(ctx context.Context, in UpsertInput) (*domain.Stage, error) {
	if in.Stage <= 0 {
		return nil, domain.ErrMissingFields
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if (in.PricePerShare != nil && in.PricePerShare.IsNegative()) ||
		(in.SharesAvailable != nil && *in.SharesAvailable < 0) ||
		(in.MinSubscribers != nil && *in.MinSubscribers < 0) ||
		(in.MaxSubscribers != nil && *in.MaxSubscribers < 0) {
		return nil, domain.ErrNegativeNumbers
	}

	var out *domain.Stage
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		existing, err := r.Stages.GetByNumber(ctx, in.Stage)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out, err = u.create(ctx, r, in)
			return err
		case err != nil:
			return fmt.Errorf("get stage %d: %w", in.Stage, err)
		}
		out, err = u.update(ctx, r, existing, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) create(ctx context.Context, r uow.Repos, in UpsertInput) (*domain.Stage, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.PricePerShare == nil {
		return nil, domain.ErrMissingFields
	}
	s := &domain.Stage{
		Stage:         in.Stage,
		Name:          strings.TrimSpace(*in.Name),
		PricePerShare: in.PricePerShare.Round(2),
		Status:        domain.StatusUpcoming,
	}
	if in.Status != nil {
		s.Status = *in.Status
	}
	if in.SharesAvailable != nil {
		s.SharesAvailable = *in.SharesAvailable
	}
	if in.MinSubscribers != nil {
		s.MinSubscribers = *in.MinSubscribers
	}
	if in.MaxSubscribers != nil {
		s.MaxSubscribers = *in.MaxSubscribers
	}
	if err := checkBounds(s.MinSubscribers, s.MaxSubscribers); err != nil {
		return nil, err
	}
	if s.Status == domain.StatusRunning {
		if err := ensureNoOtherRunning(ctx, r.Stages, s.Stage); err != nil {
			return nil, err
		}
	}
	if err := r.Stages.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create stage %d: %w", s.Stage, err)
	}
	u.log.WithFields(logrus.Fields{"stage": s.Stage, "status": s.Status}).Info("stage created")
	return s, nil
}

func (u *Usecase) update(ctx context.Context, r uow.Repos, existing *domain.Stage, in UpsertInput) (*domain.Stage, error) {
	if in.empty() {
		return nil, domain.ErrEmptyUpdate
	}
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrMissingFields
		}
		fields["name"] = name
		existing.Name = name
	}
	if in.PricePerShare != nil {
		p := in.PricePerShare.Round(2)
		fields["price_per_share"] = p
		existing.PricePerShare = p
	}
	if in.SharesAvailable != nil {
		fields["shares_available"] = *in.SharesAvailable
		existing.SharesAvailable = *in.SharesAvailable
	}
	if in.MinSubscribers != nil {
		fields["min_subscribers"] = *in.MinSubscribers
		existing.MinSubscribers = *in.MinSubscribers
	}
	if in.MaxSubscribers != nil {
		fields["max_subscribers"] = *in.MaxSubscribers
		existing.MaxSubscribers = *in.MaxSubscribers
	}
	if in.MinSubscribers != nil || in.MaxSubscribers != nil {
		if err := checkBounds(existing.MinSubscribers, existing.MaxSubscribers); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if *in.Status == domain.StatusRunning && existing.Status != domain.StatusRunning {
			if err := ensureNoOtherRunning(ctx, r.Stages, existing.Stage); err != nil {
				return nil, err
			}
		}
		fields["status"] = *in.Status
		existing.Status = *in.Status
	}

	if err := r.Stages.Update(ctx, existing.Stage, fields); err != nil {
		return nil, fmt.Errorf("update stage %d: %w", existing.Stage, err)
	}
	u.log.WithFields(logrus.Fields{"stage": existing.Stage, "status": existing.Status}).Info("stage updated")
	return existing, nil
}

// zero max means the band is open-ended
func checkBounds(min, max int) error {
	if max > 0 && min >= max {
		return domain.ErrInvalidBounds
	}
	return nil
}

// ensureNoOtherRunning must run inside the upsert tx. The locked read makes
// concurrent promotions of different stages queue behind each other.
func ensureNoOtherRunning(ctx context.Context, repo domain.Repository, number int) error {
	all, err := repo.LockAll(ctx)
	if err != nil {
		return fmt.Errorf("lock stages: %w", err)
	}
	for _, s := range all {
		if s.Status == domain.StatusRunning && s.Stage != number {
			return domain.ErrAlreadyRunning
		}
	}
	return nil
}
