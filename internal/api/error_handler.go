package api

import (
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"github.com/labstack/echo/v4"
	"net/http"
)

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		msg  interface{} = err.Error()
		code             = http.StatusInternalServerError
		vErr validator.ValidationErrors
		hErr *echo.HTTPError
	)

	switch {
	case errors.As(err, &vErr):
		fields := make(map[string]string, len(vErr))
		for _, fe := range vErr {
			fields[fe.Field()] = fieldMessage(fe)
		}
		code, msg = http.StatusBadRequest, fields
	case errors.As(err, &hErr):
		code, msg = hErr.Code, hErr.Message
	default:
		for e := err; e != nil; e = errors.Unwrap(e) {
			if ce, ok := e.(*constants.CodedError); ok {
				code = ce.Code()
				break
			}
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Errorf(c.Request().Context(), "%s %s: %s", c.Request().Method, c.Path(), err.Error())
	}

	_ = c.JSON(code, domain.ErrorResponse{
		Message: msg,
		Code:    code,
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must be formatted as " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}
