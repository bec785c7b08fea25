package server

import (
	"menutotem/internal/config"
	"menutotem/internal/handler"
	"menutotem/internal/repository"

	"github.com/labstack/echo/v4"
)

// Handlersはルート登録対象をまとめたもの
type Handlers struct {
	Auth       *handler.AuthHandler
	Product    *handler.ProductHandler
	Order      *handler.OrderHandler
	Kitchen    *handler.KitchenHandler
	Restaurant *handler.RestaurantHandler
	QRCode     *handler.QRCodeHandler
	Billing    *handler.BillingHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.Product.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.Kitchen.RegisterRoutes(e, cfg, userRepo)
	h.Restaurant.RegisterRoutes(e, cfg, userRepo)
	h.QRCode.RegisterRoutes(e, cfg, userRepo)
	h.Billing.RegisterRoutes(e, cfg, userRepo)
}
