package dividend

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to 2 decimal places.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// ClampRate floors a GST percentage at zero.
func ClampRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}

type Payout struct {
	Gross     decimal.Decimal `json:"gross"`
	GSTRate   decimal.Decimal `json:"gst_rate"`
	GSTAmount decimal.Decimal `json:"gst_amount"`
	Net       decimal.Decimal `json:"net"`
}

// ComputePayout applies GST to a gross amount:
//
//	gstAmount = round2(gross × rate / 100)
//	net       = round2(gross − gstAmount)
//
// gross is kept as given; NewRecord rounds it when the record is built.
func ComputePayout(gross, rate decimal.Decimal) Payout {
	rate = ClampRate(rate)
	gst := Round2(gross.Mul(rate).Div(hundred))
	return Payout{
		Gross:     gross,
		GSTRate:   rate,
		GSTAmount: gst,
		Net:       Round2(gross.Sub(gst)),
	}
}

type Holding struct {
	ShareholderID uint64
	NumShares     int64
}

type Allocation struct {
	ShareholderID uint64 `json:"shareholder_id"`
	NumShares     int64  `json:"num_shares"`
	Payout
}

// Allocate splits total across holdings by share count. Each gross is
// rounded on its own and the remainder is not redistributed, so the sum of
// gross amounts may drift from total by up to one cent per holding.
// Holdings with a zero share total yield ErrNoShares.
func Allocate(total, rate decimal.Decimal, holdings []Holding) ([]Allocation, error) {
	var totalShares int64
	for _, h := range holdings {
		totalShares += h.NumShares
	}
	if totalShares <= 0 {
		return nil, ErrNoShares
	}

	denom := decimal.NewFromInt(totalShares)
	out := make([]Allocation, 0, len(holdings))
	for _, h := range holdings {
		gross := Round2(total.Mul(decimal.NewFromInt(h.NumShares)).Div(denom))
		out = append(out, Allocation{
			ShareholderID: h.ShareholderID,
			NumShares:     h.NumShares,
			Payout:        ComputePayout(gross, rate),
		})
	}
	return out, nil
}

// SumGross totals the gross amounts of an allocation.
func SumGross(allocs []Allocation) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range allocs {
		sum = sum.Add(a.Gross)
	}
	return sum
}
