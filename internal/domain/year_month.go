package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	YearMonthLayout = "2006-01"
)

// YearMonth is a calendar month. The zero value is not a valid month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth accepts "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(YearMonthLayout, strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, fmt.Errorf("ParseYearMonth %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// ParseYearMonthCode accepts the four digit document prefix "YYMM" (20YY).
func ParseYearMonthCode(code string) (YearMonth, error) {
	t, err := time.Parse("0601", code)
	if err != nil {
		return YearMonth{}, fmt.Errorf("ParseYearMonthCode %q: %w", code, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Code is the document id prefix: two-digit year and two-digit month.
func (ym YearMonth) Code() string {
	return fmt.Sprintf("%02d%02d", ym.Year%100, int(ym.Month))
}

// First is the first day of the month in UTC.
func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (ym YearMonth) Days() int {
	return ym.First().AddDate(0, 1, -1).Day()
}

// Contains reports whether date ("YYYY-MM-DD") parses and falls inside the month.
func (ym YearMonth) Contains(date string) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return t.Year() == ym.Year && t.Month() == ym.Month
}

// DocID builds the school document id "{YY}{MM}_{party}".
func (ym YearMonth) DocID(party string) string {
	return ym.Code() + "_" + strings.TrimSpace(party)
}

// DocIDPrefix is the id prefix shared by every school document of the month.
func (ym YearMonth) DocIDPrefix() string {
	return ym.Code() + "_"
}
