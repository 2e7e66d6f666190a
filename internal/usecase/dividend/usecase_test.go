package dividend

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	domain "shareholder-backend/internal/domain/dividend"
	"shareholder-backend/internal/domain/errs"
	"shareholder-backend/internal/domain/shareholder"
	"shareholder-backend/internal/domain/uow"
	"shareholder-backend/internal/testutil/dividendmock"
	"shareholder-backend/internal/testutil/shareholdermock"
	"shareholder-backend/internal/testutil/uowmock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 4, 30, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	shareholders *shareholdermock.Repo
	dividends    *dividendmock.Repo
	metrics      *Metrics
}

func (f *fixture) usecase() *Usecase {
	log, _ := test.NewNullLogger()
	tx := uowmock.Passthrough(uow.Repos{Shareholders: f.shareholders, Dividends: f.dividends})
	u := NewUsecase(f.shareholders, f.dividends, tx, f.metrics, log)
	u.now = func() time.Time { return fixedNow }
	return u
}

func newFixture(holders ...shareholder.Shareholder) *fixture {
	byID := map[uint64]shareholder.Shareholder{}
	for _, h := range holders {
		byID[h.ID] = h
	}
	return &fixture{
		shareholders: &shareholdermock.Repo{
			GetByIDFn: func(_ context.Context, id uint64) (*shareholder.Shareholder, error) {
				if h, ok := byID[id]; ok {
					return &h, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
			ListFn: func(_ context.Context, status shareholder.Status) ([]shareholder.Shareholder, error) {
				var out []shareholder.Shareholder
				for _, h := range holders {
					if status == "" || h.Status == status {
						out = append(out, h)
					}
				}
				return out, nil
			},
		},
		dividends: &dividendmock.Repo{},
		metrics:   NewMetrics(prometheus.NewRegistry()),
	}
}

func approved(id uint64, shares int64) shareholder.Shareholder {
	return shareholder.Shareholder{ID: id, Username: "user" + string(rune('a'+id)), NumShares: shares, Status: shareholder.StatusApproved}
}

func TestPayOne(t *testing.T) {
	pending := shareholder.Shareholder{ID: 2, Status: shareholder.StatusPending}

	t.Run("happy path with gst", func(t *testing.T) {
		f := newFixture(approved(1, 10))
		var saved *domain.Dividend
		f.dividends.CreateFn = func(_ context.Context, d *domain.Dividend) error {
			saved = d
			d.ID = 77
			return nil
		}

		got, err := f.usecase().PayOne(context.Background(), PayOneInput{
			ShareholderID: 1, Month: "  March 2025 ", Gross: dec("1000"), GSTRate: dec("18"), PaymentMethod: "UPI",
		})
		require.NoError(t, err)
		require.Equal(t, uint64(77), got.DividendID)
		require.Equal(t, "820.00", got.Net.StringFixed(2))
		require.Equal(t, "180.00", got.GSTAmount.StringFixed(2))
		require.Equal(t, "March 2025", saved.Month)
		require.Equal(t, domain.StatusPaid, saved.Status)
		require.True(t, saved.PaidAt.Equal(fixedNow))
		require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.records.WithLabelValues(modeSingle)))
	})

	t.Run("sub-cent gross is taxed as given and stored rounded", func(t *testing.T) {
		f := newFixture(approved(1, 10))
		var saved *domain.Dividend
		f.dividends.CreateFn = func(_ context.Context, d *domain.Dividend) error {
			saved = d
			return nil
		}
		got, err := f.usecase().PayOne(context.Background(), PayOneInput{
			ShareholderID: 1, Month: "May", Gross: dec("0.005"), GSTRate: dec("50"),
		})
		require.NoError(t, err)
		require.Equal(t, "0.00", got.GSTAmount.StringFixed(2))
		require.Equal(t, "0.01", got.Net.StringFixed(2))
		require.True(t, saved.GrossAmount.Equal(dec("0.01")), "gross = %s", saved.GrossAmount)
	})

	t.Run("negative rate is clamped", func(t *testing.T) {
		f := newFixture(approved(1, 10))
		got, err := f.usecase().PayOne(context.Background(), PayOneInput{
			ShareholderID: 1, Month: "May", Gross: dec("250.50"), GSTRate: dec("-5"),
		})
		require.NoError(t, err)
		require.True(t, got.Net.Equal(dec("250.50")))
		require.True(t, got.GSTRate.IsZero())
	})

	declines := []struct {
		name string
		in   PayOneInput
		want error
	}{
		{"zero amount", PayOneInput{ShareholderID: 1, Month: "May", Gross: decimal.Zero}, domain.ErrInvalidAmount},
		{"negative amount", PayOneInput{ShareholderID: 1, Month: "May", Gross: dec("-1")}, domain.ErrInvalidAmount},
		{"blank month", PayOneInput{ShareholderID: 1, Month: "   ", Gross: dec("10")}, domain.ErrMonthRequired},
		{"unknown shareholder", PayOneInput{ShareholderID: 9, Month: "May", Gross: dec("10")}, domain.ErrShareholderNotFound},
		{"not approved", PayOneInput{ShareholderID: 2, Month: "May", Gross: dec("10")}, domain.ErrShareholderNotApproved},
	}
	for _, tt := range declines {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(approved(1, 10), pending)
			f.dividends.CreateFn = func(context.Context, *domain.Dividend) error {
				t.Fatal("no record may be written")
				return nil
			}
			_, err := f.usecase().PayOne(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.want)
			require.True(t, errs.IsDecline(err))
		})
	}
}

func TestPayAll(t *testing.T) {
	t.Run("proportional split", func(t *testing.T) {
		f := newFixture(approved(1, 1), approved(2, 3), approved(3, 6))
		var batch []*domain.Dividend
		f.dividends.CreateBatchFn = func(_ context.Context, ds []*domain.Dividend) error {
			batch = ds
			return nil
		}

		res, err := f.usecase().PayAll(context.Background(), PayAllInput{Month: "June", TotalGross: dec("100")})
		require.NoError(t, err)
		require.Equal(t, 3, res.Count)
		require.Len(t, batch, 3)

		want := map[uint64]string{1: "10.00", 2: "30.00", 3: "60.00"}
		for _, d := range batch {
			require.Equal(t, want[d.ShareholderID], d.GrossAmount.StringFixed(2))
			require.Equal(t, "June", d.Month)
		}
		require.Equal(t, "100.00", res.Distributed.StringFixed(2))
		require.Equal(t, 3.0, testutil.ToFloat64(f.metrics.records.WithLabelValues(modeBulk)))
	})

	t.Run("remainder is not redistributed", func(t *testing.T) {
		f := newFixture(approved(1, 1), approved(2, 1), approved(3, 1))
		res, err := f.usecase().PayAll(context.Background(), PayAllInput{Month: "June", TotalGross: dec("100")})
		require.NoError(t, err)
		for _, a := range res.Allocations {
			require.Equal(t, "33.33", a.Gross.StringFixed(2))
		}
		require.Equal(t, "99.99", res.Distributed.StringFixed(2))
	})

	t.Run("no approved shareholders", func(t *testing.T) {
		f := newFixture(shareholder.Shareholder{ID: 1, Status: shareholder.StatusPending, NumShares: 5})
		f.dividends.CreateBatchFn = func(context.Context, []*domain.Dividend) error {
			t.Fatal("no batch may be written")
			return nil
		}
		_, err := f.usecase().PayAll(context.Background(), PayAllInput{Month: "June", TotalGross: dec("100")})
		require.ErrorIs(t, err, domain.ErrNoApprovedShareholders)
	})

	t.Run("admin is left out of the split", func(t *testing.T) {
		admin := approved(1, 0)
		admin.Role = shareholder.RoleAdmin

		only := newFixture(admin)
		_, err := only.usecase().PayAll(context.Background(), PayAllInput{Month: "June", TotalGross: dec("100")})
		require.ErrorIs(t, err, domain.ErrNoApprovedShareholders)

		f := newFixture(admin, approved(2, 10))
		var batch []*domain.Dividend
		f.dividends.CreateBatchFn = func(_ context.Context, ds []*domain.Dividend) error {
			batch = ds
			return nil
		}
		res, err := f.usecase().PayAll(context.Background(), PayAllInput{Month: "June", TotalGross: dec("100")})
		require.NoError(t, err)
		require.Equal(t, 1, res.Count)
		require.Len(t, batch, 1)
		require.Equal(t, uint64(2), batch[0].ShareholderID)
		require.Equal(t, "100.00", batch[0].GrossAmount.StringFixed(2))
	})

	t.Run("approved holders without shares", func(t *testing.T) {
		f := newFixture(approved(1, 0))
		_, err := f.usecase().PayAll(context.Background(), PayAllInput{Month: "June", TotalGross: dec("100")})
		require.ErrorIs(t, err, domain.ErrNoShares)
	})

	t.Run("batch failure is a fault", func(t *testing.T) {
		f := newFixture(approved(1, 1))
		boom := errors.New("disk full")
		f.dividends.CreateBatchFn = func(context.Context, []*domain.Dividend) error { return boom }

		res, err := f.usecase().PayAll(context.Background(), PayAllInput{Month: "June", TotalGross: dec("100")})
		require.ErrorIs(t, err, boom)
		require.False(t, errs.IsDecline(err))
		require.Nil(t, res)
		require.Equal(t, 0.0, testutil.ToFloat64(f.metrics.records.WithLabelValues(modeBulk)))
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture(approved(1, 1))
		_, err := f.usecase().PayAll(context.Background(), PayAllInput{Month: "June"})
		require.ErrorIs(t, err, domain.ErrInvalidAmount)
		_, err = f.usecase().PayAll(context.Background(), PayAllInput{TotalGross: dec("1")})
		require.ErrorIs(t, err, domain.ErrMonthRequired)
	})
}

func TestListByShareholder(t *testing.T) {
	f := newFixture(approved(1, 1))
	f.dividends.ListByShareholderFn = func(_ context.Context, id uint64) ([]domain.Dividend, error) {
		return []domain.Dividend{{ID: 5, ShareholderID: id}}, nil
	}
	u := f.usecase()

	out, err := u.ListByShareholder(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 1)

	_, err = u.ListByShareholder(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrShareholderNotFound)
}

func TestExportLedger(t *testing.T) {
	f := newFixture(approved(1, 1), approved(2, 1))
	f.dividends.ListAllFn = func(context.Context) ([]domain.Dividend, error) {
		p := domain.ComputePayout(dec("100"), dec("10"))
		return []domain.Dividend{
			*domain.NewRecord(1, "Jan", "UPI", p, fixedNow),
			*domain.NewRecord(2, "Jan", "NEFT", p, fixedNow),
			*domain.NewRecord(1, "Feb", "UPI", p, fixedNow),
		}, nil
	}

	data, err := f.usecase().ExportLedger(context.Background())
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	rows, err := wb.GetRows(ledgerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, "Username", rows[0][2])
	require.Equal(t, "userb", rows[1][2])
	require.Equal(t, "90", rows[1][7])

	summary, err := wb.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	require.Equal(t, []string{"1", "userb", "2", "200", "180"}, summary[1])
}
