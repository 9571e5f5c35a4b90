package controller

import (
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/export"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/labstack/echo/v4"
	"io"
	"net/http"
)

type invoiceQuery struct {
	Month  string `query:"month" validate:"required,datetime=2006-01"`
	School string `query:"school" validate:"required"`
	Date   string `query:"date" validate:"required,datetime=2006-01-02"`
}

func (c *Controller) invoice(ctx echo.Context) (*domain.Invoice, error) {
	var q invoiceQuery
	if err := ctx.Bind(&q); err != nil {
		return nil, err
	}
	ym, err := parseMonth(q.Month)
	if err != nil {
		return nil, err
	}

	return c.schedules.Invoice(ctx.Request().Context(), ym, q.School, q.Date)
}

func (c *Controller) GetInvoice(ctx echo.Context) error {
	inv, err := c.invoice(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, inv)
}

func (c *Controller) GetInvoiceXLSX(ctx echo.Context) error {
	inv, err := c.invoice(ctx)
	if err != nil {
		return err
	}

	filename := export.InvoiceFilename(inv.Receiver.OrderingParty, inv.Date)
	return attachment(ctx, filename, constants.MIMEXLSX, func(w io.Writer) error {
		return export.WriteInvoiceXLSX(w, *inv)
	})
}
