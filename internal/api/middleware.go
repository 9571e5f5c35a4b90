package api

import (
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"github.com/labstack/echo/v4"
	"strings"
)

func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(constants.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return constants.ErrUnauthorized
		}

		if err := svc.authService.VerifyAdmin(token); err != nil {
			return err
		}

		return next(ctx)
	}
}

func requestIDToContext(c echo.Context, id string) {
	req := c.Request()
	c.SetRequest(req.WithContext(logger.ToContext(req.Context(), constants.CtxKeyRequestID, id)))
}
