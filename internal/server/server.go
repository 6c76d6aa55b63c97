package server

import (
	"log/slog"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Newはechoを組み立てて返す（起動はmain側）。
func New(
	cfg config.Config,
	log *slog.Logger,
	menuH *handler.MenuHandler,
	cartH *handler.CartHandler,
	authH *handler.AuthHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	RegisterRoutes(e, cfg, menuH, cartH, authH)
	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
