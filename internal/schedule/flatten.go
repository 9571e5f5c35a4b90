// Package schedule turns award documents into calendar schedules, invoices and
// export rows. Everything here is a pure transform over in-memory values.
package schedule

import (
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"sort"
	"strings"
	"time"
)

// ByDate maps a delivery date ("YYYY-MM-DD") to the entries delivered that day.
type ByDate map[string][]domain.ScheduleEntry

// InMonth reports whether doc belongs to ym, either by its id prefix or by its
// year-month field.
func InMonth(doc domain.AwardDocument, ym domain.YearMonth) bool {
	return strings.HasPrefix(doc.ID, ym.DocIDPrefix()) || doc.YearMonth == ym.String()
}

// Flatten expands every item delivery of the month's documents into one entry per
// (date, party, vendor, item). Dates that parse but fall outside ym are dropped;
// unparsable dates are kept under their raw key.
func Flatten(docs []domain.AwardDocument, ym domain.YearMonth, policy domain.SupplyPolicy) ByDate {
	out := make(ByDate)

	for _, doc := range monthDocs(docs, ym) {
		for _, item := range doc.Items {
			for date, del := range item.Deliveries {
				if isDate(date) && !ym.Contains(date) {
					continue
				}
				out[date] = append(out[date], domain.ScheduleEntry{
					OrderingParty: doc.OrderingParty,
					Vendor:        doc.VendorOf(item),
					Date:          date,
					ItemNo:        item.No,
					Item:          item.Name,
					Spec:          item.Spec,
					Attributes:    item.Attributes,
					Quantity:      del.Quantity,
					UnitPrice:     del.UnitPrice,
					SupplyAmount:  del.Amount(policy),
				})
			}
		}
	}

	return out
}

// Vendors lists the vendors seen in the month, led by the "all" filter value.
func Vendors(docs []domain.AwardDocument, ym domain.YearMonth) []string {
	res := []string{constants.AllVendors}
	seen := make(map[string]struct{})
	add := func(vendor string) {
		if vendor == "" {
			return
		}
		if _, ok := seen[vendor]; ok {
			return
		}
		seen[vendor] = struct{}{}
		res = append(res, vendor)
	}
	for _, doc := range monthDocs(docs, ym) {
		add(doc.Vendor)
		for _, it := range doc.Items {
			add(it.Vendor)
		}
	}
	return res
}

// Dates returns the keys of b in ascending order.
func (b ByDate) Dates() []string {
	dates := make([]string, 0, len(b))
	for d := range b {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// monthDocs keeps ym's documents, ordered by id so that entry order never depends
// on the store.
func monthDocs(docs []domain.AwardDocument, ym domain.YearMonth) []domain.AwardDocument {
	res := make([]domain.AwardDocument, 0, len(docs))
	for _, doc := range docs {
		if InMonth(doc, ym) {
			res = append(res, doc)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

func isDate(s string) bool {
	_, err := time.Parse(domain.DateLayout, s)
	return err == nil
}
