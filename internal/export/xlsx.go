package export

import (
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"io"
)

const InvoiceSheet = "거래명세표"

// WriteXLSX writes t as a single-sheet workbook named sheet.
func WriteXLSX(w io.Writer, sheet string, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}

	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	for i, row := range t.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	return nil
}

// WriteInvoiceXLSX writes the invoice with the supplier block, the receiver block,
// the item lines and the total, top to bottom.
func WriteInvoiceXLSX(w io.Writer, inv domain.Invoice) error {
	rows := [][]interface{}{
		{"거래일자", inv.Date},
		nil,
		{"공급자", inv.Supplier.Name},
		{"대표자", inv.Supplier.Representative},
		{"사업자등록번호", inv.Supplier.RegistrationNo},
		{"주소", inv.Supplier.Address},
		{"전화", inv.Supplier.Phone},
		nil,
		{"공급받는자", inv.Receiver.OrderingParty},
		{"사업자등록번호", inv.Receiver.Business.RegistrationNo},
		{"주소", inv.Receiver.Business.Address},
		{"전화", inv.Receiver.Business.Phone},
		nil,
		{"번호", "품명", "규격", "수량", "단가", "공급가액"},
	}
	for i, l := range inv.Lines {
		rows = append(rows, []interface{}{i + 1, l.Item, l.Spec, l.Quantity, l.UnitPrice, l.SupplyAmount})
	}
	rows = append(rows, nil, []interface{}{"합계", "", "", "", "", inv.Total})

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), InvoiceSheet); err != nil {
		return fmt.Errorf("export.WriteInvoiceXLSX: %w", err)
	}
	for i, row := range rows {
		if err := setRow(f, InvoiceSheet, i+1, row); err != nil {
			return fmt.Errorf("export.WriteInvoiceXLSX: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteInvoiceXLSX: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, row []interface{}) error {
	for col, v := range row {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, xlsxValue(v)); err != nil {
			return err
		}
	}
	return nil
}

// xlsxValue stores decimals as numbers so spreadsheets can sum them.
func xlsxValue(v interface{}) interface{} {
	if d, ok := v.(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return v
}
