package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"printshop/internal/reports"
)

// MonthlyXLSX renders the monthly report as a single-sheet workbook with a
// grand total row.
func MonthlyXLSX(buckets []reports.MonthlyBucket) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	s := "Monthly"
	if err := f.SetSheetName("Sheet1", s); err != nil {
		return nil, err
	}

	styleHeader, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#3b82f6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	styleTotal, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, err
	}

	headers := []string{"Month", "Orders", "Photos", "Total", "Paid", "Unpaid"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(s, cell, h)
		f.SetCellStyle(s, cell, cell, styleHeader)
	}

	row := 2
	var orders, photos int
	for _, b := range buckets {
		total, _ := b.TotalAmount.Float64()
		paid, _ := b.TotalPaid.Float64()
		unpaid, _ := b.TotalUnpaid.Float64()
		values := []interface{}{b.Key, b.OrdersCount, b.Photos, total, paid, unpaid}
		if err := f.SetSheetRow(s, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, err
		}
		orders += b.OrdersCount
		photos += b.Photos
		row++
	}

	f.SetCellValue(s, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(s, fmt.Sprintf("B%d", row), orders)
	f.SetCellValue(s, fmt.Sprintf("C%d", row), photos)
	if row > 2 {
		for _, col := range []string{"D", "E", "F"} {
			f.SetCellFormula(s, fmt.Sprintf("%s%d", col, row), fmt.Sprintf("SUM(%s2:%s%d)", col, col, row-1))
		}
	}
	f.SetCellStyle(s, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), styleTotal)

	f.SetColWidth(s, "A", "A", 12)
	f.SetColWidth(s, "B", "F", 14)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
