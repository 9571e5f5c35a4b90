package schedule

import (
	"github.com/joonho-lee-free/tkshcool/internal/domain"
)

// ExportRows flattens the filtered schedule into rows, by ascending date and then
// in the same order the calendar shows the groups.
func ExportRows(byDate ByDate, vendor string, vendors domain.VendorTable) []domain.ExportRow {
	grouped := Aggregate(byDate, vendor, vendors)

	var rows []domain.ExportRow
	for _, date := range byDate.Dates() {
		for _, p := range grouped[date] {
			for _, e := range p.Entries {
				rows = append(rows, domain.ExportRow{
					Date:          e.Date,
					OrderingParty: e.OrderingParty,
					Vendor:        e.Vendor,
					Item:          e.Item,
					Quantity:      e.Quantity,
					UnitPrice:     e.UnitPrice,
					SupplyAmount:  e.SupplyAmount,
				})
			}
		}
	}
	return rows
}
