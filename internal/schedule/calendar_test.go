package schedule

import (
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func blanks(cells []domain.CalendarCell) int {
	n := 0
	for _, c := range cells {
		if c.Blank {
			n++
		}
	}
	return n
}

func TestLeadingBlanks(t *testing.T) {
	tests := []struct {
		first time.Weekday
		week  int
		wd    int
	}{
		{first: time.Sunday, week: 0, wd: 0},
		{first: time.Monday, week: 1, wd: 0},
		{first: time.Wednesday, week: 3, wd: 2},
		{first: time.Friday, week: 5, wd: 4},
		{first: time.Saturday, week: 6, wd: 0},
	}
	for _, tt := range tests {
		t.Run(tt.first.String(), func(t *testing.T) {
			assert.Equal(t, tt.week, LeadingBlanks(tt.first, domain.CalendarFullWeek))
			assert.Equal(t, tt.wd, LeadingBlanks(tt.first, domain.CalendarWeekdays))
		})
	}
}

func TestProject_MonthStartingSunday(t *testing.T) {
	// June 2025 has 30 days and starts on a Sunday.
	require.Equal(t, time.Sunday, june.First().Weekday())

	full := Project(june, nil, ProjectOpts{Mode: domain.CalendarFullWeek})
	assert.Equal(t, 0, blanks(full))
	assert.Len(t, full, 30)
	assert.Equal(t, "2025-06-01", full[0].Date)
	assert.Equal(t, 0, full[0].Weekday)

	weekdays := Project(june, nil, ProjectOpts{Mode: domain.CalendarWeekdays})
	assert.Equal(t, 0, blanks(weekdays))
	assert.Len(t, weekdays, 21)
	assert.Equal(t, "2025-06-02", weekdays[0].Date)
	for _, c := range weekdays {
		assert.NotEqual(t, int(time.Saturday), c.Weekday)
		assert.NotEqual(t, int(time.Sunday), c.Weekday)
	}
}

func TestProject_MidweekStart(t *testing.T) {
	// October 2025 starts on a Wednesday.
	oct := domain.YearMonth{Year: 2025, Month: time.October}

	full := Project(oct, nil, ProjectOpts{Mode: domain.CalendarFullWeek})
	assert.Equal(t, 3, blanks(full))
	assert.Len(t, full, 3+31)
	assert.Equal(t, "2025-10-01", full[3].Date)
	assert.Equal(t, 3, full[3].Weekday)

	weekdays := Project(oct, nil, ProjectOpts{Mode: domain.CalendarWeekdays})
	require.Equal(t, 2, blanks(weekdays))
	assert.Equal(t, 1, weekdays[0].Weekday)
	assert.Equal(t, 2, weekdays[1].Weekday)
	assert.Equal(t, "2025-10-01", weekdays[2].Date)
	assert.Len(t, weekdays, 2+23)
}

func TestProject_Lines(t *testing.T) {
	grouped := Grouped{
		"2025-06-10": {
			{OrderingParty: "OakSchool", Entries: []domain.ScheduleEntry{
				{Vendor: "이가에프엔비", Item: "Rice", Quantity: dec(5)},
				{Vendor: "이가에프엔비", Item: "Rice", Quantity: dec(5)},
				{Vendor: "이가에프엔비", Item: "Rice", Quantity: dec(6)},
			}},
			{OrderingParty: "Pine", Entries: []domain.ScheduleEntry{
				{Vendor: "Acme", Item: "Beans", Quantity: dec(2)},
			}},
		},
	}

	cells := Project(june, grouped, ProjectOpts{Mode: domain.CalendarFullWeek, Vendors: testVendors})
	cell := cells[9]
	require.Equal(t, "2025-06-10", cell.Date)
	require.Len(t, cell.Groups, 2)

	assert.Equal(t, domain.SchoolGroup{
		OrderingParty: "OakSchool",
		Vendor:        "이가에프엔비",
		Color:         "#000000",
		Lines:         []string{"Rice (5kg)", "Rice (6kg)"},
	}, cell.Groups[0])
	assert.Equal(t, "#111827", cell.Groups[1].Color)
	assert.Equal(t, []string{"Beans (2kg)"}, cell.Groups[1].Lines)

	boxes := Project(june, grouped, ProjectOpts{UnitSuffix: "box"})
	assert.Equal(t, []string{"Beans (2box)"}, boxes[9].Groups[1].Lines)
}

func TestBuildCalendar(t *testing.T) {
	docs := []domain.AwardDocument{
		doc("OakSchool", "이가에프엔비", item("Rice", map[string]domain.DeliveryOnDate{
			"2025-06-10": delivery(5, 1000),
			"2025-06-14": delivery(1, 1000),
		})),
	}
	byDate := Flatten(docs, june, domain.SupplyStored)

	cal := BuildCalendar(june, byDate, "ALL", ProjectOpts{Mode: domain.CalendarWeekdays, Vendors: testVendors})
	assert.Equal(t, "2025-06", cal.Month)
	assert.Equal(t, []string{"월", "화", "수", "목", "금"}, cal.Columns)

	var withGroups []string
	for _, c := range cal.Cells {
		if len(c.Groups) > 0 {
			withGroups = append(withGroups, c.Date)
		}
	}
	// the 14th is a Saturday
	assert.Equal(t, []string{"2025-06-10"}, withGroups)

	def := BuildCalendar(june, byDate, "", ProjectOpts{})
	assert.Equal(t, domain.CalendarFullWeek, def.Mode)
	assert.Len(t, def.Columns, 7)
}
