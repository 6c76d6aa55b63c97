package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	menuH *handler.MenuHandler,
	cartH *handler.CartHandler,
	authH *handler.AuthHandler,
) {
	menuH.RegisterRoutes(e, cfg)
	cartH.RegisterRoutes(e, cfg)
	authH.RegisterRoutes(e, cfg)
}
