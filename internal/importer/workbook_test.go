package importer

import (
	"bytes"
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"strings"
	"testing"
)

const orderFile = "2506_가람초_발주서_이가에프엔비.xlsx"

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    Source
		wantErr bool
	}{
		{
			name: "2506_가람초_발주서_이가에프엔비.xlsx",
			want: Source{YearMonth: domain.YearMonth{Year: 2025, Month: 6}, OrderingParty: "가람초", Vendor: "이가에프엔비"},
		},
		{
			name: "/tmp/upload/2412_하늘초_발주서_에스에이치유통_업로드용.xlsx",
			want: Source{YearMonth: domain.YearMonth{Year: 2024, Month: 12}, OrderingParty: "하늘초", Vendor: "에스에이치유통"},
		},
		{name: "2506_가람초_계약단가.xlsx", wantErr: true},
		{name: "june_가람초_발주서_A.xlsx", wantErr: true},
		{name: "2506__발주서_A.xlsx", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilename(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, constants.ErrBadFilename)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	src, err := ParseFilename(orderFile)
	require.NoError(t, err)
	assert.Equal(t, "2506_가람초", src.DocID())
	assert.Equal(t, "2506_가람초_계약단가.xlsx", PriceListName(src))
	assert.True(t, IsWorkbook(orderFile))
	assert.True(t, IsWorkbook("2506_가람초_발주서_A.XLS"))
	assert.False(t, IsWorkbook("2506_가람초_발주서_A.csv"))
}

func TestParseOrderWorkbook(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"6월 발주서"},
		[]interface{}{},
		[]interface{}{"NO", "식품명", "규격/단위", "속성정보", 6.02, 6.1, 6.31, "계약단가"},
		[]interface{}{1, "쌀", "10kg", "국내산", 2, nil, 1, 3.5},
		[]interface{}{2, "두부", "1모", nil, 0, nil, nil, 2000},
		[]interface{}{3, "소금", "1kg", nil, nil, 1, nil, nil},
		[]interface{}{nil, nil},
	)
	prices := PriceList{"소금": decimal.NewFromInt(1200)}

	doc, err := ParseOrderWorkbook(buf, orderFile, prices)
	require.NoError(t, err)

	assert.Equal(t, "2506_가람초", doc.ID)
	assert.Equal(t, "2025-06", doc.YearMonth)
	assert.Equal(t, "가람초", doc.OrderingParty)
	assert.Equal(t, "이가에프엔비", doc.Vendor)
	require.Len(t, doc.Items, 2)

	rice := doc.Items[0]
	assert.Equal(t, "1", rice.No)
	assert.Equal(t, "쌀", rice.Name)
	assert.Equal(t, "10kg", rice.Spec)
	assert.Equal(t, "국내산", rice.Attributes)
	assert.Equal(t, "3500", rice.UnitPrice.String())
	require.Len(t, rice.Deliveries, 1)
	del := rice.Deliveries["2025-06-02"]
	assert.Equal(t, "2", del.Quantity.String())
	assert.Equal(t, "3500", del.UnitPrice.String())
	require.NotNil(t, del.SupplyAmount)
	assert.Equal(t, "7000", del.SupplyAmount.String())

	salt := doc.Items[1]
	assert.Equal(t, "소금", salt.Name)
	require.Contains(t, salt.Deliveries, "2025-06-10")
	assert.Equal(t, "1200", salt.Deliveries["2025-06-10"].SupplyAmount.String())
}

func TestParseOrderWorkbook_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]interface{}
		wantErr error
	}{
		{
			name:    "no header",
			rows:    [][]interface{}{{"번호", "식품명"}, {1, "쌀"}},
			wantErr: constants.ErrNoHeaderRow,
		},
		{
			name:    "no item column",
			rows:    [][]interface{}{{"NO", "품명", 6.02}, {1, "쌀", 3}},
			wantErr: constants.ErrNoItemColumn,
		},
		{
			name:    "no deliveries",
			rows:    [][]interface{}{{"NO", "식품명", 6.02}, {1, "쌀", 0}},
			wantErr: constants.ErrNoItems,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrderWorkbook(workbook(t, tt.rows...), orderFile, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := ParseOrderWorkbook(bytes.NewBufferString("not a workbook"), orderFile, nil)
	assert.Error(t, err)
}

func TestParsePriceList(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"계약단가 내역"},
		[]interface{}{},
		[]interface{}{},
		[]interface{}{"번호", " 식품 공통코드명 ", "①예정단가", "②입찰단가"},
		[]interface{}{1, "소금", 1300, "1,200"},
		[]interface{}{2, "쌀", 3600, 3500},
		[]interface{}{3, "", 0, 0},
	)

	prices, err := ParsePriceList(buf)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "1200", prices["소금"].String())
	assert.Equal(t, "3500", prices["쌀"].String())

	_, err = ParsePriceList(workbook(t, []interface{}{"식품 공통코드명", "②입찰단가"}))
	assert.ErrorIs(t, err, constants.ErrNoPriceColumns)
}

func TestHeaderDate(t *testing.T) {
	ym := domain.YearMonth{Year: 2025, Month: 6}

	tests := []struct {
		header string
		text   bool
		want   string
		ok     bool
	}{
		{header: "6.02", want: "2025-06-02", ok: true},
		{header: "6.1", want: "2025-06-10", ok: true},
		{header: "6.3", want: "2025-06-30", ok: true},
		{header: "6.31", ok: false},
		{header: "12.31", want: "2025-12-31", ok: true},
		{header: "13", ok: false},
		{header: "0.5", ok: false},
		{header: "6", ok: false},
		{header: "6.1", text: true, want: "2025-06-01", ok: true},
		{header: "6.02", text: true, want: "2025-06-02", ok: true},
		{header: "6.10", text: true, want: "2025-06-10", ok: true},
		{header: "6월 3일", text: true, want: "2025-06-03", ok: true},
		{header: "6.31", text: true, ok: false},
		{header: "13.1", text: true, ok: false},
		{header: "6", text: true, ok: false},
		{header: "식품명", text: true, ok: false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/text=%t", tt.header, tt.text), func(t *testing.T) {
			got, ok := headerDate(tt.header, tt.text, ym)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrderWorkbook_TextDateHeaders(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"NO", "식품명", "6.1", 6.1, "계약단가"},
		[]interface{}{1, "쌀", 2, 3, 3500},
	)

	doc, err := ParseOrderWorkbook(buf, orderFile, nil)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)

	dels := doc.Items[0].Deliveries
	require.Len(t, dels, 2)
	assert.Equal(t, "2", dels["2025-06-01"].Quantity.String())
	assert.Equal(t, "3", dels["2025-06-10"].Quantity.String())
}

func TestParseOrderWorkbook_HTMLTable(t *testing.T) {
	page := `
<html><body>
<table>
  <tr><th>NO</th><th>식품명</th><th>규격</th><th>6.02</th><th>6.03</th><th>계약단가</th></tr>
  <tr><td>1</td><td> 쌀 </td><td>10kg</td><td>2</td><td></td><td>3,500</td></tr>
  <tr><td>2</td><td>nan</td><td></td><td>1</td><td></td><td></td></tr>
</table>
</body></html>`

	doc, err := ParseOrderWorkbook(strings.NewReader("\uFEFF"+page), "2506_가람초_발주서_이가에프엔비.xls", nil)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "쌀", doc.Items[0].Name)
	assert.Equal(t, "7000", doc.Items[0].Deliveries["2025-06-02"].SupplyAmount.String())
}
