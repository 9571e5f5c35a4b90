// Package importer reads the monthly order workbooks (발주서) and contract price
// lists into award documents.
package importer

import (
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"path/filepath"
	"strings"
)

const (
	OrderMarker = "발주서"
	PriceMarker = "계약단가"
)

// Source identifies the document an order workbook belongs to.
type Source struct {
	YearMonth     domain.YearMonth
	OrderingParty string
	Vendor        string
}

func (s Source) DocID() string {
	return s.YearMonth.DocID(s.OrderingParty)
}

// ParseFilename reads "{YYMM}_{school}_발주서_{vendor}[_...].xlsx".
func ParseFilename(name string) (Source, error) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	parts := strings.Split(stem, "_")
	if len(parts) < 4 || parts[2] != OrderMarker {
		return Source{}, fmt.Errorf("importer.ParseFilename %q: %w", name, constants.ErrBadFilename)
	}

	ym, err := domain.ParseYearMonthCode(parts[0])
	if err != nil {
		return Source{}, fmt.Errorf("importer.ParseFilename %q: %w", name, constants.ErrBadFilename)
	}

	src := Source{
		YearMonth:     ym,
		OrderingParty: strings.TrimSpace(parts[1]),
		Vendor:        strings.TrimSpace(parts[3]),
	}
	if src.OrderingParty == "" || src.Vendor == "" {
		return Source{}, fmt.Errorf("importer.ParseFilename %q: %w", name, constants.ErrBadFilename)
	}
	return src, nil
}

// PriceListName is the price workbook expected next to an order workbook.
func PriceListName(src Source) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", src.YearMonth.Code(), src.OrderingParty, PriceMarker)
}

// IsWorkbook reports whether name has a workbook extension (.xlsx, or .xls, which
// may be an HTML table).
func IsWorkbook(name string) bool {
	ext := filepath.Ext(name)
	return strings.EqualFold(ext, ".xlsx") || strings.EqualFold(ext, ".xls")
}
