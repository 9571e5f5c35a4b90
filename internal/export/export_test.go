package export

import (
	"bytes"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"testing"
)

var june = domain.YearMonth{Year: 2025, Month: 6}

func TestWriteCSV(t *testing.T) {
	table := ScheduleTable([]domain.ExportRow{
		{
			Date:          "2025-06-10",
			OrderingParty: `Oak "North" School`,
			Vendor:        "이가에프엔비",
			Item:          "Rice, white",
			Quantity:      decimal.NewFromFloat(5.5),
			UnitPrice:     decimal.NewFromInt(1000),
			SupplyAmount:  decimal.NewFromInt(5500),
		},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	want := "\uFEFF" +
		`"날짜","발주처","낙찰기업","품목","수량","단가","공급가액"` + "\n" +
		`"2025-06-10","Oak ""North"" School","이가에프엔비","Rice, white","5.5","1000","5500"` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Table{Header: []string{"a"}}))
	assert.Equal(t, "\uFEFF\"a\"\n", buf.String())
}

func TestOrderSheetTable(t *testing.T) {
	sheet := domain.OrderSheet{
		YearMonth: "2025-06",
		Days:      []string{"02", "10"},
		Rows: []domain.OrderSheetRow{{
			YearMonth:     "2025-06",
			OrderingParty: "가람초",
			Vendor:        "Acme",
			No:            "1",
			Item:          "Rice",
			ByDay:         map[string]decimal.Decimal{"10": decimal.NewFromInt(3)},
			TotalQuantity: decimal.NewFromInt(3),
			UnitPrice:     decimal.NewFromInt(100),
			TotalAmount:   decimal.NewFromInt(300),
		}},
	}

	table := OrderSheetTable(sheet)
	assert.Equal(t, []string{"연월", "발주처", "낙찰기업", "no", "식품명", "규격", "속성정보", "02", "10", "총량", "계약단가", "총합계약단가"}, table.Header)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	require.Len(t, row, len(table.Header))
	assert.Equal(t, "", row[7])
	assert.Equal(t, "3", cellString(row[8]))
	assert.Equal(t, "300", cellString(row[11]))
}

func TestWriteXLSX(t *testing.T) {
	table := ScheduleTable([]domain.ExportRow{
		{Date: "2025-06-10", OrderingParty: "OakSchool", Vendor: "Acme", Item: "Rice",
			Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(1000), SupplyAmount: decimal.NewFromInt(5000)},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "납품", table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"납품"}, f.GetSheetList())
	rows, err := f.GetRows("납품")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "날짜", rows[0][0])
	assert.Equal(t, []string{"2025-06-10", "OakSchool", "Acme", "Rice", "5", "1000", "5000"}, rows[1])
}

func TestWriteInvoiceXLSX(t *testing.T) {
	inv := domain.Invoice{
		Date:     "2025-06-10",
		Receiver: domain.Receiver{OrderingParty: "OakSchool", Business: domain.Business{Address: "Seoul"}},
		Supplier: domain.VendorProfile{Name: "이가에프엔비", Phone: "02-000-0000"},
		Lines: []domain.InvoiceLine{
			{Item: "Rice", Spec: "10kg", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(1000), SupplyAmount: decimal.NewFromInt(5000)},
		},
		Total: decimal.NewFromInt(5000),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInvoiceXLSX(&buf, inv))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	date, err := f.GetCellValue(InvoiceSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", date)

	supplier, _ := f.GetCellValue(InvoiceSheet, "B3")
	assert.Equal(t, "이가에프엔비", supplier)
	receiver, _ := f.GetCellValue(InvoiceSheet, "B9")
	assert.Equal(t, "OakSchool", receiver)

	header, _ := f.GetCellValue(InvoiceSheet, "A14")
	assert.Equal(t, "번호", header)
	item, _ := f.GetCellValue(InvoiceSheet, "B15")
	assert.Equal(t, "Rice", item)
	totalLabel, _ := f.GetCellValue(InvoiceSheet, "A17")
	assert.Equal(t, "합계", totalLabel)
	total, _ := f.GetCellValue(InvoiceSheet, "F17")
	assert.Equal(t, "5000", total)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		vendor string
		want   string
	}{
		{vendor: "ALL", want: "2025-06-발주서.csv"},
		{vendor: "전체", want: "2025-06-발주서.csv"},
		{vendor: "", want: "2025-06-발주서.csv"},
		{vendor: "이가에프엔비", want: "2025-06-이가에프엔비-발주서.csv"},
		{vendor: "A/B", want: "2025-06-A_B-발주서.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(june, tt.vendor, "발주서", "csv"))
		})
	}

	assert.Equal(t, "OakSchool_2025-06-10_거래명세표.xlsx", InvoiceFilename("OakSchool", "2025-06-10"))
}
