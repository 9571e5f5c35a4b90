package controller

import (
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/importer"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/service/importing"
	"github.com/labstack/echo/v4"
	"io"
	"mime/multipart"
	"net/http"
)

const (
	formWorkbooks = "workbooks"
	formPrices    = "prices"
)

// ImportWorkbooks stores every uploaded order workbook. An optional "prices" file
// supplies unit prices the workbooks leave out.
func (c *Controller) ImportWorkbooks(ctx echo.Context) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}

	files := form.File[formWorkbooks]
	if len(files) == 0 {
		return constants.ErrEmptyUpload
	}

	var prices importer.PriceList
	if fh := form.File[formPrices]; len(fh) > 0 {
		f, err := fh[0].Open()
		if err != nil {
			return err
		}
		defer f.Close()

		if prices, err = importer.ParsePriceList(f); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		}
	}

	uploads := make([]importing.Upload, 0, len(files))
	for _, fh := range files {
		data, err := readUpload(fh)
		if err != nil {
			return fmt.Errorf("controller.ImportWorkbooks %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, importing.Upload{Name: fh.Filename, Data: data, Prices: prices})
	}

	results, err := c.imports.ImportAll(ctx.Request().Context(), uploads)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, results)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
