package controller

import (
	"bytes"
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/service/importing"
	"github.com/joonho-lee-free/tkshcool/internal/service/schedule"
	"github.com/labstack/echo/v4"
	"io"
	"net/http"
	"net/url"
)

type Controller struct {
	schedules *schedule.Service
	imports   *importing.Service
}

func NewController(schedules *schedule.Service, imports *importing.Service) *Controller {
	return &Controller{schedules: schedules, imports: imports}
}

type monthQuery struct {
	Month  string `query:"month" validate:"required,datetime=2006-01"`
	Vendor string `query:"vendor"`
}

func parseMonth(month string) (domain.YearMonth, error) {
	ym, err := domain.ParseYearMonth(month)
	if err != nil {
		return domain.YearMonth{}, fmt.Errorf("%w: %s", constants.ErrBadMonth, err.Error())
	}
	return ym, nil
}

// attachment renders a download whose body is produced by write.
func attachment(ctx echo.Context, filename, contentType string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	return ctx.Blob(http.StatusOK, contentType, buf.Bytes())
}
