package controller

import (
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/labstack/echo/v4"
	"net/http"
	"time"
)

type calendarQuery struct {
	Month  string `query:"month" validate:"required,datetime=2006-01"`
	Vendor string `query:"vendor"`
	Mode   string `query:"mode" validate:"omitempty,oneof=week weekdays"`
}

func (c *Controller) GetCalendar(ctx echo.Context) error {
	var q calendarQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}
	ym, err := parseMonth(q.Month)
	if err != nil {
		return err
	}

	cal, err := c.schedules.Calendar(ctx.Request().Context(), ym, q.Vendor, domain.CalendarMode(q.Mode))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, cal)
}

func (c *Controller) GetVendors(ctx echo.Context) error {
	var q monthQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}
	ym, err := parseMonth(q.Month)
	if err != nil {
		return err
	}

	vendors, err := c.schedules.Vendors(ctx.Request().Context(), ym)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, vendors)
}

type pageQuery struct {
	Month  string `query:"month" validate:"omitempty,datetime=2006-01"`
	Vendor string `query:"vendor"`
	Mode   string `query:"mode" validate:"omitempty,oneof=week weekdays"`
}

type calendarPage struct {
	*domain.Calendar
	Vendors []string
	Weeks   [][]domain.CalendarCell
}

// CalendarPage renders the month grid as HTML. The month defaults to the current one.
func (c *Controller) CalendarPage(ctx echo.Context) error {
	var q pageQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}
	if q.Month == "" {
		q.Month = time.Now().Format(domain.YearMonthLayout)
	}
	ym, err := parseMonth(q.Month)
	if err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	cal, err := c.schedules.Calendar(reqCtx, ym, q.Vendor, domain.CalendarMode(q.Mode))
	if err != nil {
		return err
	}
	vendors, err := c.schedules.Vendors(reqCtx, ym)
	if err != nil {
		return err
	}

	return ctx.Render(http.StatusOK, "calendar.gohtml", calendarPage{
		Calendar: cal,
		Vendors:  vendors,
		Weeks:    weeks(cal.Cells, len(cal.Columns)),
	})
}

func weeks(cells []domain.CalendarCell, width int) [][]domain.CalendarCell {
	var out [][]domain.CalendarCell
	for start := 0; start < len(cells); start += width {
		end := start + width
		if end > len(cells) {
			end = len(cells)
		}
		out = append(out, cells[start:end])
	}
	return out
}
