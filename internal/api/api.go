package api

import (
	"context"
	"github.com/google/uuid"
	"github.com/joonho-lee-free/tkshcool/internal/api/controller"
	"github.com/joonho-lee-free/tkshcool/internal/config"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store"
	"github.com/joonho-lee-free/tkshcool/internal/service/auth"
	"github.com/joonho-lee-free/tkshcool/internal/service/importing"
	"github.com/joonho-lee-free/tkshcool/internal/service/schedule"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"net/http"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type APIService struct {
	router           *echo.Echo
	scheduleService  *schedule.Service
	importingService *importing.Service
	authService      *auth.Service
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// ServeHTTP lets the service be driven directly by httptest.
func (svc *APIService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.router.ServeHTTP(w, r)
}

func NewAPIService(cfg *config.Config, store store.Store) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.INFO)
	if cfg.Development() {
		svc.router.Logger.SetLevel(log.DEBUG)
	}

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = NewJSONSerializer()
	svc.router.Renderer = renderer
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:        uuid.NewString,
		RequestIDHandler: requestIDToContext,
	}))
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{echo.HeaderContentType, constants.HeaderAuthorization},
	}))

	svc.scheduleService = schedule.NewScheduleService(store, schedule.Options{
		SchoolCollection: cfg.SchoolCollection,
		VendorCollection: cfg.VendorCollection,
		Vendors:          cfg.Vendors,
		UnitSuffix:       cfg.UnitSuffix,
		SupplyPolicy:     cfg.SupplyPolicy,
	})
	svc.importingService = importing.NewImportingService(store, cfg.SchoolCollection, cfg.ImportWorkers)
	svc.authService = auth.NewService(cfg.SecretKey)

	cntrl := controller.NewController(svc.scheduleService, svc.importingService)

	svc.router.GET("/", cntrl.CalendarPage)
	svc.router.GET("/healthz", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "ok")
	})

	api := svc.router.Group("/api/v1")
	api.GET("/calendar", cntrl.GetCalendar)
	api.GET("/vendors", cntrl.GetVendors)
	api.GET("/invoice", cntrl.GetInvoice)
	api.GET("/invoice.xlsx", cntrl.GetInvoiceXLSX)
	api.GET("/export", cntrl.Export)
	api.GET("/order-sheet", cntrl.GetOrderSheet)

	admin := api.Group("/admin", svc.AdminMiddleware)
	admin.POST("/import", cntrl.ImportWorkbooks)

	return svc, nil
}
