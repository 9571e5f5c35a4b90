package schedule

import (
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"sort"
	"strings"
)

// Grouped maps a date to its per-party entry groups, in display order.
type Grouped map[string][]domain.PartyEntries

// IsAllVendors reports whether filter selects every vendor.
func IsAllVendors(filter string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || strings.EqualFold(filter, constants.AllVendors) || filter == constants.AllVendorsKo
}

// MatchesVendor reports whether vendor passes filter.
func MatchesVendor(filter, vendor string) bool {
	return IsAllVendors(filter) || strings.TrimSpace(filter) == strings.TrimSpace(vendor)
}

// Aggregate filters each date's entries by vendor, orders them by vendor priority
// and then by ordering party name, and groups them by ordering party. Dates left
// without entries are omitted.
func Aggregate(byDate ByDate, vendor string, vendors domain.VendorTable) Grouped {
	// collators keep internal buffers and are not safe for concurrent use
	col := collate.New(language.Korean)

	out := make(Grouped, len(byDate))
	for date, entries := range byDate {
		if groups := aggregateDate(entries, vendor, vendors, col); len(groups) > 0 {
			out[date] = groups
		}
	}
	return out
}

func aggregateDate(entries []domain.ScheduleEntry, vendor string, vendors domain.VendorTable, col *collate.Collator) []domain.PartyEntries {
	filtered := make([]domain.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if MatchesVendor(vendor, e.Vendor) {
			filtered = append(filtered, e)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return entryLess(filtered[i], filtered[j], vendors, col)
	})

	var (
		groups []domain.PartyEntries
		index  = make(map[string]int)
	)
	for _, e := range filtered {
		i, ok := index[e.OrderingParty]
		if !ok {
			i = len(groups)
			index[e.OrderingParty] = i
			groups = append(groups, domain.PartyEntries{OrderingParty: e.OrderingParty})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	return groups
}

// entryLess puts listed vendors first in list order, and breaks ties by party name
// under Korean collation.
func entryLess(a, b domain.ScheduleEntry, vendors domain.VendorTable, col *collate.Collator) bool {
	ra, rb := vendors.Rank(a.Vendor), vendors.Rank(b.Vendor)
	if ra != rb {
		switch {
		case ra < 0:
			return false
		case rb < 0:
			return true
		default:
			return ra < rb
		}
	}
	return col.CompareString(a.OrderingParty, b.OrderingParty) < 0
}
