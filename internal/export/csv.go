package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"printshop/internal/models"
	"printshop/internal/reports"
)

// BOM lets spreadsheet tools detect UTF-8.
const BOM = "\ufeff"

// EncodeCSV renders rows with every cell quoted, inner quotes doubled and
// CRLF line endings, prefixed by a UTF-8 BOM.
func EncodeCSV(header []string, rows [][]interface{}) []byte {
	var buf bytes.Buffer
	buf.WriteString(BOM)

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	writeRow(&buf, cells)
	for _, row := range rows {
		buf.WriteString("\r\n")
		writeRow(&buf, row)
	}
	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, row []interface{}) {
	for i, cell := range row {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(Cell(cell), `"`, `""`))
		buf.WriteByte('"')
	}
}

// Cell stringifies one value. Money is shown with 2 decimals.
func Cell(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case *string:
		if value == nil {
			return ""
		}
		return *value
	case decimal.Decimal:
		return value.StringFixed(2)
	case float64:
		return strconv.FormatFloat(value, 'f', 2, 64)
	case int:
		return strconv.Itoa(value)
	case bool:
		return strconv.FormatBool(value)
	case time.Time:
		return value.Format(time.RFC3339)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}

// Filename builds "<topic>-<scope>.<ext>".
func Filename(topic, scope, ext string) string {
	return fmt.Sprintf("%s-%s.%s", topic, scope, ext)
}

var orderHeader = []string{
	"Order code", "Customer", "Phone", "Source", "4x6", "A4", "Total", "Paid", "Unpaid",
	"Payment status", "Payment method", "Status", "Readiness", "Urgency", "Type", "Created", "Due", "Notes",
}

func OrdersCSV(orders []models.Order, today time.Time) []byte {
	rows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []interface{}{
			o.OrderCode, o.CustomerName, o.Phone, o.Source, o.Photos4x6, o.PhotosA4,
			o.TotalAmount, o.PaidAmount, o.Unpaid(),
			string(o.PaymentStatus), string(o.PaymentMethod), string(o.Status),
			models.ClassifyReadiness(o, today).Label, string(o.Urgency), string(o.OrderType),
			o.CreatedOn, o.DueDate, o.Notes,
		})
	}
	return EncodeCSV(orderHeader, rows)
}

func CustomersCSV(customers []reports.CustomerSummary) []byte {
	header := []string{"Customer", "Phone", "Orders", "Total", "Paid", "Unpaid", "Last order"}
	rows := make([][]interface{}, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []interface{}{
			c.Name, c.Phone, c.OrdersCount, c.TotalAmount, c.TotalPaid, c.TotalUnpaid, c.LastOrderDate,
		})
	}
	return EncodeCSV(header, rows)
}

func MonthlyCSV(buckets []reports.MonthlyBucket) []byte {
	header := []string{"Month", "Orders", "Photos", "Total", "Paid", "Unpaid"}
	rows := make([][]interface{}, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []interface{}{b.Key, b.OrdersCount, b.Photos, b.TotalAmount, b.TotalPaid, b.TotalUnpaid})
	}
	return EncodeCSV(header, rows)
}
