package report

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	purchasesSheet = "Purchases"
	totalsSheet    = "Totals"

	exportTimeLayout = "2006-01-02 15:04:05"
)

// ExportMonth renders the history of one month as an XLSX workbook with two
// sheets: every purchase and the per-user totals used for reconciliation.
// Timestamps are written in loc; a nil loc means UTC.
func ExportMonth(month string, history []models.PurchaseHistory, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", purchasesSheet); err != nil {
		return nil, fmt.Errorf("error renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return nil, fmt.Errorf("error creating totals sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating header style: %w", err)
	}

	// purchases
	purchaseRows := make([][]any, 0, len(history))
	for _, h := range history {
		purchaseRows = append(purchaseRows, []any{
			h.ID,
			h.Timestamp.In(loc).Format(exportTimeLayout),
			h.UserName,
			h.ProductName,
			h.Price.InexactFloat64(),
		})
	}
	if err = writeTable(f, purchasesSheet, []any{"ID", "Time", "User", "Product", "Price"}, purchaseRows, headerStyle); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(purchasesSheet, "B", "B", 20)
	_ = f.SetColWidth(purchasesSheet, "C", "D", 24)

	// totals
	totals := MonthTotals(history)
	totalRows := make([][]any, 0, len(totals)+1)
	var items int
	grand := decimal.Zero
	for _, t := range totals {
		totalRows = append(totalRows, []any{t.UserID, t.UserName, t.Items, t.Balance.InexactFloat64()})
		items += t.Items
		grand = grand.Add(t.Balance)
	}
	totalRows = append(totalRows, []any{"", "Total " + month, items, grand.InexactFloat64()})
	if err = writeTable(f, totalsSheet, []any{"User ID", "User", "Items", "Amount"}, totalRows, headerStyle); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(totalsSheet, "B", "B", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing %s header: %w", sheet, err)
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("error resolving %s header range: %w", sheet, err)
	}
	if err = f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("error styling %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("error resolving %s row %d: %w", sheet, i+2, err)
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing %s row %d: %w", sheet, i+2, err)
		}
	}

	return nil
}
