package controller

import (
	"github.com/joonho-lee-free/tkshcool/internal/export"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/labstack/echo/v4"
	"io"
	"net/http"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

type exportQuery struct {
	Month  string `query:"month" validate:"required,datetime=2006-01"`
	Vendor string `query:"vendor"`
	Format string `query:"format" validate:"omitempty,oneof=json csv xlsx"`
}

// Export downloads the filtered delivery rows as CSV (default) or XLSX, or lists
// them as JSON.
func (c *Controller) Export(ctx echo.Context) error {
	var q exportQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}
	ym, err := parseMonth(q.Month)
	if err != nil {
		return err
	}

	rows, err := c.schedules.ExportRows(ctx.Request().Context(), ym, q.Vendor)
	if err != nil {
		return err
	}

	if q.Format == formatJSON {
		return ctx.JSON(http.StatusOK, rows)
	}

	return writeTable(ctx, export.ScheduleTable(rows), func(ext string) string {
		return export.Filename(ym, q.Vendor, "schedule", ext)
	}, "schedule", q.Format)
}

func (c *Controller) GetOrderSheet(ctx echo.Context) error {
	var q exportQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}
	ym, err := parseMonth(q.Month)
	if err != nil {
		return err
	}

	sheet, err := c.schedules.OrderSheet(ctx.Request().Context(), ym, q.Vendor)
	if err != nil {
		return err
	}
	if q.Format == formatJSON {
		return ctx.JSON(http.StatusOK, sheet)
	}

	return writeTable(ctx, export.OrderSheetTable(*sheet), func(ext string) string {
		return export.Filename(ym, q.Vendor, "order-sheet", ext)
	}, "발주서", q.Format)
}

// writeTable answers with the table as a CSV or XLSX attachment.
func writeTable(ctx echo.Context, t export.Table, filename func(ext string) string, sheet, format string) error {
	switch format {
	case "", formatCSV:
		return attachment(ctx, filename(formatCSV), constants.MIMECSV, func(w io.Writer) error {
			return export.WriteCSV(w, t)
		})
	case formatXLSX:
		return attachment(ctx, filename(formatXLSX), constants.MIMEXLSX, func(w io.Writer) error {
			return export.WriteXLSX(w, sheet, t)
		})
	default:
		return constants.ErrBadFormat
	}
}
