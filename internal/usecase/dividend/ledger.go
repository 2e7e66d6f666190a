package dividend

import (
	"context"
	"fmt"

	domain "shareholder-backend/internal/domain/dividend"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	ledgerSheet  = "Dividends"
	summarySheet = "Summary"
)

var ledgerHeader = []any{"ID", "Shareholder ID", "Username", "Month", "Gross", "GST %", "GST", "Net", "Method", "Status", "Paid At"}

// ExportLedger renders every dividend record, oldest first, as an XLSX
// workbook with a per-shareholder summary sheet.
func (u *Usecase) ExportLedger(ctx context.Context) ([]byte, error) {
	records, err := u.dividends.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dividends: %w", err)
	}
	holders, err := u.shareholders.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list shareholders: %w", err)
	}
	names := make(map[uint64]string, len(holders))
	for _, s := range holders {
		names[s.ID] = s.Username
	}
	return buildLedger(records, names)
}

type summaryRow struct {
	id    uint64
	count int
	gross decimal.Decimal
	net   decimal.Decimal
}

func buildLedger(records []domain.Dividend, names map[uint64]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(ledgerSheet, "A1", &ledgerHeader); err != nil {
		return nil, err
	}

	var order []uint64
	sums := map[uint64]*summaryRow{}
	for i, d := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			d.ID, d.ShareholderID, names[d.ShareholderID], d.Month,
			d.GrossAmount.InexactFloat64(), d.GSTRate.InexactFloat64(),
			d.GSTAmount.InexactFloat64(), d.NetAmount.InexactFloat64(),
			d.PaymentMethod, string(d.Status), d.PaidAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(ledgerSheet, cell, &row); err != nil {
			return nil, err
		}

		s, ok := sums[d.ShareholderID]
		if !ok {
			s = &summaryRow{id: d.ShareholderID}
			sums[d.ShareholderID] = s
			order = append(order, d.ShareholderID)
		}
		s.count++
		s.gross = s.gross.Add(d.GrossAmount)
		s.net = s.net.Add(d.NetAmount)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	header := []any{"Shareholder ID", "Username", "Payments", "Total Gross", "Total Net"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, id := range order {
		s := sums[id]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{s.id, names[s.id], s.count, s.gross.InexactFloat64(), s.net.InexactFloat64()}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(ledgerSheet, "C", "C", 20)
	_ = f.SetColWidth(ledgerSheet, "K", "K", 20)
	if err := f.SetPanes(ledgerSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
