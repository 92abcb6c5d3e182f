package server

import (
	"flowershop/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, productH *handler.ProductHandler, orderH *handler.OrderHandler) {
	productH.RegisterRoutes(e)
	orderH.RegisterRoutes(e)
}
