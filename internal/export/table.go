// Package export serialises schedule views into CSV and XLSX downloads.
package export

import (
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/schedule"
	"github.com/shopspring/decimal"
	"strings"
)

// Table is a header plus rows of cells. Cells are strings, ints or decimals.
type Table struct {
	Header []string
	Rows   [][]interface{}
}

func ScheduleTable(rows []domain.ExportRow) Table {
	t := Table{
		Header: []string{"날짜", "발주처", "낙찰기업", "품목", "수량", "단가", "공급가액"},
		Rows:   make([][]interface{}, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{
			r.Date, r.OrderingParty, r.Vendor, r.Item, r.Quantity, r.UnitPrice, r.SupplyAmount,
		})
	}
	return t
}

// OrderSheetTable lays the order sheet out with one column per delivery day.
func OrderSheetTable(sheet domain.OrderSheet) Table {
	header := []string{"연월", "발주처", "낙찰기업", "no", "식품명", "규격", "속성정보"}
	header = append(header, sheet.Days...)
	header = append(header, "총량", "계약단가", "총합계약단가")

	t := Table{Header: header, Rows: make([][]interface{}, 0, len(sheet.Rows))}
	for _, r := range sheet.Rows {
		row := []interface{}{r.YearMonth, r.OrderingParty, r.Vendor, r.No, r.Item, r.Spec, r.Attributes}
		for _, day := range sheet.Days {
			if q, ok := r.ByDay[day]; ok {
				row = append(row, q)
			} else {
				row = append(row, "")
			}
		}
		row = append(row, r.TotalQuantity, r.UnitPrice, r.TotalAmount)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Filename builds "{YYYY-MM}[-{vendor}]-{kind}.{ext}". The vendor part is left out
// when the filter selects every vendor.
func Filename(ym domain.YearMonth, vendor, kind, ext string) string {
	parts := []string{ym.String()}
	if !schedule.IsAllVendors(vendor) {
		parts = append(parts, sanitize(vendor))
	}
	parts = append(parts, kind)
	return strings.Join(parts, "-") + "." + ext
}

// InvoiceFilename is "{party}_{date}_거래명세표.xlsx".
func InvoiceFilename(party, date string) string {
	return fmt.Sprintf("%s_%s_거래명세표.xlsx", sanitize(party), date)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case decimal.Decimal:
		return c.String()
	default:
		return fmt.Sprint(c)
	}
}
