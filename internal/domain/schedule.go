package domain

import (
	"github.com/shopspring/decimal"
)

// ScheduleEntry is one (date, ordering party, vendor, item) delivery line.
type ScheduleEntry struct {
	OrderingParty string          `json:"ordering_party"`
	Vendor        string          `json:"vendor"`
	Date          string          `json:"date"`
	ItemNo        string          `json:"item_no,omitempty"`
	Item          string          `json:"item"`
	Spec          string          `json:"spec,omitempty"`
	Attributes    string          `json:"attributes,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	SupplyAmount  decimal.Decimal `json:"supply_amount"`
}

// PartyEntries is the aggregator's output unit: one ordering party's entries on
// one date, in priority order.
type PartyEntries struct {
	OrderingParty string          `json:"ordering_party"`
	Entries       []ScheduleEntry `json:"entries"`
}

type SchoolGroup struct {
	OrderingParty string   `json:"ordering_party"`
	Vendor        string   `json:"vendor"`
	Color         string   `json:"color,omitempty"`
	Lines         []string `json:"lines"`
}

// CalendarCell is one grid cell. Blank cells only pad the first week.
type CalendarCell struct {
	Blank   bool          `json:"blank"`
	Date    string        `json:"date,omitempty"`
	Day     int           `json:"day,omitempty"`
	Weekday int           `json:"weekday"`
	Groups  []SchoolGroup `json:"groups,omitempty"`
}

type CalendarMode string

const (
	CalendarFullWeek CalendarMode = "week"
	CalendarWeekdays CalendarMode = "weekdays"
)

type Calendar struct {
	Month   string         `json:"month"`
	Vendor  string         `json:"vendor"`
	Mode    CalendarMode   `json:"mode"`
	Columns []string       `json:"columns"`
	Cells   []CalendarCell `json:"cells"`
}

type InvoiceLine struct {
	Item         string          `json:"item"`
	Spec         string          `json:"spec,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SupplyAmount decimal.Decimal `json:"supply_amount"`
}

// Invoice is the 거래명세표 for one ordering party on one date.
type Invoice struct {
	Date     string          `json:"date"`
	Receiver Receiver        `json:"receiver"`
	Supplier VendorProfile   `json:"supplier"`
	Lines    []InvoiceLine   `json:"lines"`
	Total    decimal.Decimal `json:"total"`
}

type Receiver struct {
	OrderingParty string   `json:"ordering_party"`
	Business      Business `json:"business"`
}

// ExportRow is one row of the filtered delivery export.
type ExportRow struct {
	Date          string          `json:"date"`
	OrderingParty string          `json:"ordering_party"`
	Vendor        string          `json:"vendor"`
	Item          string          `json:"item"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	SupplyAmount  decimal.Decimal `json:"supply_amount"`
}

// OrderSheetRow is one line of the monthly order sheet (발주서) pivot.
type OrderSheetRow struct {
	YearMonth     string                     `json:"year_month"`
	OrderingParty string                     `json:"ordering_party"`
	Vendor        string                     `json:"vendor"`
	No            string                     `json:"no,omitempty"`
	Item          string                     `json:"item"`
	Spec          string                     `json:"spec,omitempty"`
	Attributes    string                     `json:"attributes,omitempty"`
	ByDay         map[string]decimal.Decimal `json:"by_day"`
	TotalQuantity decimal.Decimal            `json:"total_quantity"`
	UnitPrice     decimal.Decimal            `json:"unit_price"`
	TotalAmount   decimal.Decimal            `json:"total_amount"`
}

type OrderSheet struct {
	YearMonth string          `json:"year_month"`
	Days      []string        `json:"days"`
	Rows      []OrderSheetRow `json:"rows"`
}

type ErrorResponse struct {
	Message interface{} `json:"message"`
	Code    int         `json:"code"`
}
