package schedule

import (
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"time"
)

const defaultUnitSuffix = "kg"

var (
	fullWeekColumns = []string{"일", "월", "화", "수", "목", "금", "토"}
	weekdayColumns  = []string{"월", "화", "수", "목", "금"}
)

type ProjectOpts struct {
	Mode       domain.CalendarMode
	UnitSuffix string
	Vendors    domain.VendorTable
}

// Columns is the header row for mode.
func Columns(mode domain.CalendarMode) []string {
	if mode == domain.CalendarWeekdays {
		return append([]string(nil), weekdayColumns...)
	}
	return append([]string(nil), fullWeekColumns...)
}

// LeadingBlanks is the number of empty cells before the first day of the month.
// In weekday mode a month starting on a weekend has none.
func LeadingBlanks(first time.Weekday, mode domain.CalendarMode) int {
	if mode != domain.CalendarWeekdays {
		return int(first)
	}
	if first == time.Saturday || first == time.Sunday {
		return 0
	}
	return int(first) - 1
}

// Project lays grouped entries out on the month grid.
func Project(ym domain.YearMonth, grouped Grouped, opts ProjectOpts) []domain.CalendarCell {
	suffix := opts.UnitSuffix
	if suffix == "" {
		suffix = defaultUnitSuffix
	}

	first := ym.First()
	blanks := LeadingBlanks(first.Weekday(), opts.Mode)

	cells := make([]domain.CalendarCell, 0, blanks+ym.Days())
	for i := 0; i < blanks; i++ {
		wd := i
		if opts.Mode == domain.CalendarWeekdays {
			wd = i + 1
		}
		cells = append(cells, domain.CalendarCell{Blank: true, Weekday: wd})
	}

	for day := first; day.Month() == ym.Month; day = day.AddDate(0, 0, 1) {
		wd := day.Weekday()
		if opts.Mode == domain.CalendarWeekdays && (wd == time.Saturday || wd == time.Sunday) {
			continue
		}

		date := day.Format(domain.DateLayout)
		cells = append(cells, domain.CalendarCell{
			Date:    date,
			Day:     day.Day(),
			Weekday: int(wd),
			Groups:  schoolGroups(grouped[date], suffix, opts.Vendors),
		})
	}

	return cells
}

// BuildCalendar runs aggregation and projection for one month view.
func BuildCalendar(ym domain.YearMonth, byDate ByDate, vendor string, opts ProjectOpts) domain.Calendar {
	mode := opts.Mode
	if mode == "" {
		mode = domain.CalendarFullWeek
		opts.Mode = mode
	}

	return domain.Calendar{
		Month:   ym.String(),
		Vendor:  vendor,
		Mode:    mode,
		Columns: Columns(mode),
		Cells:   Project(ym, Aggregate(byDate, vendor, opts.Vendors), opts),
	}
}

func schoolGroups(parties []domain.PartyEntries, suffix string, vendors domain.VendorTable) []domain.SchoolGroup {
	if len(parties) == 0 {
		return nil
	}

	groups := make([]domain.SchoolGroup, 0, len(parties))
	for _, p := range parties {
		g := domain.SchoolGroup{OrderingParty: p.OrderingParty}
		if len(p.Entries) > 0 {
			g.Vendor = p.Entries[0].Vendor
			g.Color = vendors.Color(g.Vendor)
		}

		seen := make(map[string]struct{}, len(p.Entries))
		for _, e := range p.Entries {
			line := fmt.Sprintf("%s (%s%s)", e.Item, e.Quantity.String(), suffix)
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}
			g.Lines = append(g.Lines, line)
		}

		groups = append(groups, g)
	}
	return groups
}
