package importer

import (
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	headerMarker   = "NO"
	itemHeader     = "식품명"
	specHeader     = "규격"
	attrsHeader    = "속성정보"
	priceHeader    = "계약단가"
	priceListRow   = 3
	priceListName  = "식품 공통코드명"
	priceListPrice = "②입찰단가"
)

// Prices below this are taken to be in thousands of won.
var thousandsBelow = decimal.NewFromInt(1000)

// PriceList maps an item name to its contract unit price.
type PriceList map[string]decimal.Decimal

type columns struct {
	no, item, spec, attrs, price int
	dates                        map[int]string
}

// ParseOrderWorkbook reads the active sheet of an order workbook. The header row is
// the first whose first cell contains "NO"; every header that reads as M.DD becomes
// a delivery date of the month in filename. prices fills in unit prices when the
// workbook has no 계약단가 column or leaves a cell empty.
func ParseOrderWorkbook(r io.Reader, filename string, prices PriceList) (domain.AwardDocument, error) {
	src, err := ParseFilename(filename)
	if err != nil {
		return domain.AwardDocument{}, err
	}

	g, err := readRows(r)
	if err != nil {
		return domain.AwardDocument{}, fmt.Errorf("importer.ParseOrderWorkbook %s: %w", filename, err)
	}
	rows := g.rows

	headerIdx := -1
	for i, row := range rows {
		if len(row) > 0 && strings.Contains(row[0], headerMarker) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return domain.AwardDocument{}, fmt.Errorf("importer.ParseOrderWorkbook %s: %w", filename, constants.ErrNoHeaderRow)
	}

	cols := findColumns(rows[headerIdx], func(col int) bool { return g.isText(headerIdx, col) }, src.YearMonth)
	if cols.item < 0 {
		return domain.AwardDocument{}, fmt.Errorf("importer.ParseOrderWorkbook %s: %w", filename, constants.ErrNoItemColumn)
	}

	doc := domain.AwardDocument{
		ID:            src.DocID(),
		YearMonth:     src.YearMonth.String(),
		OrderingParty: src.OrderingParty,
		Vendor:        src.Vendor,
	}

	for _, row := range rows[headerIdx+1:] {
		name := cell(row, cols.item)
		if name == "" || strings.EqualFold(name, "nan") {
			continue
		}

		price := unitPrice(cell(row, cols.price), name, prices)
		item := domain.ItemEntry{
			No:         cell(row, cols.no),
			Name:       name,
			Spec:       cell(row, cols.spec),
			Attributes: cell(row, cols.attrs),
			UnitPrice:  &price,
			Deliveries: make(map[string]domain.DeliveryOnDate),
		}

		for idx, date := range cols.dates {
			q, ok := parseNumber(cell(row, idx))
			if !ok || !q.IsPositive() {
				continue
			}
			amount := q.Mul(price).Round(0)
			item.Deliveries[date] = domain.DeliveryOnDate{
				Quantity:     q,
				UnitPrice:    price,
				SupplyAmount: &amount,
			}
		}

		if len(item.Deliveries) > 0 {
			doc.Items = append(doc.Items, item)
		}
	}

	if len(doc.Items) == 0 {
		return domain.AwardDocument{}, fmt.Errorf("importer.ParseOrderWorkbook %s: %w", filename, constants.ErrNoItems)
	}
	return doc, nil
}

// ParsePriceList reads a contract price workbook whose header sits on the fourth row.
func ParsePriceList(r io.Reader) (PriceList, error) {
	g, err := readRows(r)
	if err != nil {
		return nil, fmt.Errorf("importer.ParsePriceList: %w", err)
	}
	rows := g.rows
	if len(rows) <= priceListRow {
		return nil, fmt.Errorf("importer.ParsePriceList: %w", constants.ErrNoPriceColumns)
	}

	nameCol, priceCol := -1, -1
	for i, h := range rows[priceListRow] {
		switch strings.TrimSpace(h) {
		case priceListName:
			nameCol = i
		case priceListPrice:
			priceCol = i
		}
	}
	if nameCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("importer.ParsePriceList: %w", constants.ErrNoPriceColumns)
	}

	prices := make(PriceList)
	for _, row := range rows[priceListRow+1:] {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		if p, ok := parseNumber(cell(row, priceCol)); ok {
			prices[name] = p
		}
	}
	return prices, nil
}

func activeRows(r io.Reader) (grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return grid{}, err
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return grid{}, err
	}

	text := make([][]bool, len(rows))
	for i, row := range rows {
		text[i] = make([]bool, len(row))
		for j := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return grid{}, err
			}
			typ, err := f.GetCellType(sheet, name)
			if err != nil {
				return grid{}, err
			}
			text[i][j] = typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString
		}
	}
	return grid{rows: rows, text: text}, nil
}

func findColumns(header []string, isText func(col int) bool, ym domain.YearMonth) columns {
	cols := columns{no: 0, item: -1, spec: -1, attrs: -1, price: -1, dates: make(map[int]string)}
	for i, raw := range header {
		h := strings.TrimSpace(raw)
		switch {
		case cols.item < 0 && strings.Contains(h, itemHeader):
			cols.item = i
		case cols.spec < 0 && strings.Contains(h, specHeader):
			cols.spec = i
		case cols.attrs < 0 && strings.Contains(h, attrsHeader):
			cols.attrs = i
		case cols.price < 0 && strings.Contains(h, priceHeader):
			cols.price = i
		default:
			if date, ok := headerDate(h, isText(i), ym); ok {
				cols.dates[i] = date
			}
		}
	}
	return cols
}

// headerDate reads a delivery-date header in ym's year. A numeric cell holds M.DD as
// a number, so 6.1 is the tenth. A text cell such as "6.1" or "6월 1일" is split on
// the dot, so it is the first.
func headerDate(h string, text bool, ym domain.YearMonth) (string, bool) {
	var month, day int
	if text {
		h = strings.NewReplacer("월", ".", "일", "", " ", "").Replace(h)
		m, d, ok := strings.Cut(strings.ReplaceAll(h, "..", "."), ".")
		if !ok {
			return "", false
		}
		var errM, errD error
		month, errM = strconv.Atoi(m)
		day, errD = strconv.Atoi(d)
		if errM != nil || errD != nil {
			return "", false
		}
	} else {
		v, err := strconv.ParseFloat(h, 64)
		if err != nil {
			return "", false
		}
		month = int(v)
		day = int(math.Round((v - float64(month)) * 100))
	}

	if month < 1 || month > 12 || day < 1 {
		return "", false
	}
	t := time.Date(ym.Year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return "", false
	}
	return t.Format(domain.DateLayout), true
}

func unitPrice(raw, name string, prices PriceList) decimal.Decimal {
	p, ok := parseNumber(raw)
	if !ok {
		p = prices[name]
	}
	if p.LessThan(thousandsBelow) {
		p = p.Mul(thousandsBelow)
	}
	return p
}

func parseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
