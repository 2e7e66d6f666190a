package dividend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const (
	modeSingle = "single"
	modeBulk   = "bulk"
)

// Metrics counts committed payouts. A nil *Metrics records nothing.
type Metrics struct {
	records *prometheus.CounterVec
	gross   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dividend_records_total",
			Help: "Dividend records committed, by payout mode.",
		}, []string{"mode"}),
		gross: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dividend_gross_amount_total",
			Help: "Gross dividend amount committed, by payout mode.",
		}, []string{"mode"}),
	}
	reg.MustRegister(m.records, m.gross)
	return m
}

func (m *Metrics) observe(mode string, records int, gross decimal.Decimal) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(mode).Add(float64(records))
	m.gross.WithLabelValues(mode).Add(gross.InexactFloat64())
}
