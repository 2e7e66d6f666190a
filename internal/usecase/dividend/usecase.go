package dividend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "shareholder-backend/internal/domain/dividend"
	"shareholder-backend/internal/domain/shareholder"
	"shareholder-backend/internal/domain/uow"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Usecase struct {
	shareholders shareholder.Repository
	dividends    domain.Repository
	uow          uow.UnitOfWork
	metrics      *Metrics
	log          logrus.FieldLogger
	now          func() time.Time
}

func NewUsecase(shareholders shareholder.Repository, dividends domain.Repository, tx uow.UnitOfWork, m *Metrics, log logrus.FieldLogger) *Usecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Usecase{
		shareholders: shareholders,
		dividends:    dividends,
		uow:          tx,
		metrics:      m,
		log:          log.WithField("component", "dividend"),
		now:          time.Now,
	}
}

func (u *Usecase) PayOne(ctx context.Context, in PayOneInput) (*PayoutDTO, error) {
	month := strings.TrimSpace(in.Month)
	if !in.Gross.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if month == "" {
		return nil, domain.ErrMonthRequired
	}

	var rec *domain.Dividend
	// lock the holder so a concurrent status change cannot slip in between check and insert
	err := u.uow.WithinShareholderTx(ctx, in.ShareholderID, func(r uow.Repos, s *shareholder.Shareholder) error {
		if s.Status != shareholder.StatusApproved {
			return domain.ErrShareholderNotApproved
		}
		p := domain.ComputePayout(in.Gross, in.GSTRate)
		rec = domain.NewRecord(s.ID, month, strings.TrimSpace(in.PaymentMethod), p, u.now())
		if err := r.Dividends.Create(ctx, rec); err != nil {
			return fmt.Errorf("create dividend: %w", err)
		}
		return nil
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrShareholderNotFound
	case err != nil:
		return nil, err
	}

	u.metrics.observe(modeSingle, 1, rec.GrossAmount)
	u.log.WithFields(logrus.Fields{
		"shareholder_id": rec.ShareholderID,
		"month":          rec.Month,
		"net":            rec.NetAmount.StringFixed(2),
	}).Info("dividend paid")

	return &PayoutDTO{
		DividendID:    rec.ID,
		ShareholderID: rec.ShareholderID,
		Month:         rec.Month,
		Gross:         rec.GrossAmount,
		GSTRate:       rec.GSTRate,
		GSTAmount:     rec.GSTAmount,
		Net:           rec.NetAmount,
		PaidAt:        rec.PaidAt,
	}, nil
}

// PayAll splits TotalGross across approved non-admin holders by share count,
// all in one transaction: either every record is written or none is.
func (u *Usecase) PayAll(ctx context.Context, in PayAllInput) (*PayAllResult, error) {
	month := strings.TrimSpace(in.Month)
	if !in.TotalGross.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if month == "" {
		return nil, domain.ErrMonthRequired
	}

	var allocs []domain.Allocation
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		approved, err := r.Shareholders.ListApproved(ctx)
		if err != nil {
			return fmt.Errorf("list approved shareholders: %w", err)
		}
		// admins hold no investment and never share in a payout
		holdings := make([]domain.Holding, 0, len(approved))
		for _, s := range approved {
			if s.IsAdmin() {
				continue
			}
			holdings = append(holdings, domain.Holding{ShareholderID: s.ID, NumShares: s.NumShares})
		}
		if len(holdings) == 0 {
			return domain.ErrNoApprovedShareholders
		}
		allocs, err = domain.Allocate(in.TotalGross, in.GSTRate, holdings)
		if err != nil {
			return err
		}

		now := u.now()
		method := strings.TrimSpace(in.PaymentMethod)
		batch := make([]*domain.Dividend, 0, len(allocs))
		for _, a := range allocs {
			batch = append(batch, domain.NewRecord(a.ShareholderID, month, method, a.Payout, now))
		}
		if err := r.Dividends.CreateBatch(ctx, batch); err != nil {
			return fmt.Errorf("create dividend batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	distributed := domain.SumGross(allocs)
	u.metrics.observe(modeBulk, len(allocs), distributed)
	u.log.WithFields(logrus.Fields{
		"month":       month,
		"count":       len(allocs),
		"total":       in.TotalGross.StringFixed(2),
		"distributed": distributed.StringFixed(2),
	}).Info("dividend batch committed")

	return &PayAllResult{
		Count:       len(allocs),
		Month:       month,
		TotalGross:  in.TotalGross,
		Distributed: distributed,
		Allocations: allocs,
	}, nil
}

func (u *Usecase) ListByShareholder(ctx context.Context, shareholderID uint64) ([]domain.Dividend, error) {
	if _, err := u.shareholders.GetByID(ctx, shareholderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShareholderNotFound
		}
		return nil, fmt.Errorf("get shareholder %d: %w", shareholderID, err)
	}
	out, err := u.dividends.ListByShareholder(ctx, shareholderID)
	if err != nil {
		return nil, fmt.Errorf("list dividends: %w", err)
	}
	return out, nil
}
