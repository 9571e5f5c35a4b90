package schedule

import (
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"sort"
	"strconv"
	"time"
)

type orderKey struct {
	party, no, item, spec, attrs, price, vendor string
}

// BuildOrderSheet pivots the month's entries into one row per
// (party, item, spec, unit price, vendor) with a quantity column per delivery day.
// Entries with dates outside ym or unparsable dates are left out.
func BuildOrderSheet(ym domain.YearMonth, byDate ByDate, vendor string) domain.OrderSheet {
	var (
		rows  []*domain.OrderSheetRow
		index = make(map[orderKey]*domain.OrderSheetRow)
		days  = make(map[string]struct{})
	)

	for _, date := range byDate.Dates() {
		t, err := time.Parse(domain.DateLayout, date)
		if err != nil || !ym.Contains(date) {
			continue
		}
		day := t.Format("02")

		for _, e := range byDate[date] {
			if !MatchesVendor(vendor, e.Vendor) {
				continue
			}
			days[day] = struct{}{}

			key := orderKey{
				party:  e.OrderingParty,
				no:     e.ItemNo,
				item:   e.Item,
				spec:   e.Spec,
				attrs:  e.Attributes,
				price:  e.UnitPrice.String(),
				vendor: e.Vendor,
			}
			row, ok := index[key]
			if !ok {
				row = &domain.OrderSheetRow{
					YearMonth:     ym.String(),
					OrderingParty: e.OrderingParty,
					Vendor:        e.Vendor,
					No:            e.ItemNo,
					Item:          e.Item,
					Spec:          e.Spec,
					Attributes:    e.Attributes,
					ByDay:         make(map[string]decimal.Decimal),
					UnitPrice:     e.UnitPrice,
				}
				index[key] = row
				rows = append(rows, row)
			}

			row.ByDay[day] = row.ByDay[day].Add(e.Quantity)
			row.TotalQuantity = row.TotalQuantity.Add(e.Quantity)
		}
	}

	col := collate.New(language.Korean)
	sort.SliceStable(rows, func(i, j int) bool {
		return col.CompareString(rows[i].OrderingParty, rows[j].OrderingParty) < 0
	})

	sheet := domain.OrderSheet{
		YearMonth: ym.String(),
		Days:      sortedDays(days),
		Rows:      make([]domain.OrderSheetRow, 0, len(rows)),
	}
	for _, r := range rows {
		r.TotalAmount = r.TotalQuantity.Mul(r.UnitPrice)
		sheet.Rows = append(sheet.Rows, *r)
	}
	return sheet
}

func sortedDays(days map[string]struct{}) []string {
	res := make([]string, 0, len(days))
	for d := range days {
		res = append(res, d)
	}
	sort.Slice(res, func(i, j int) bool {
		a, _ := strconv.Atoi(res[i])
		b, _ := strconv.Atoi(res[j])
		return a < b
	})
	return res
}
