package handler

import (
	"net/http"

	"menutotem/internal/config"
	"menutotem/internal/middleware"
	"menutotem/internal/repository"
	"menutotem/internal/usecase"

	"github.com/labstack/echo/v4"
)

// キッチン画面用。UIが30秒ごとにレーンをポーリングする。
type KitchenHandler struct {
	uc *usecase.KitchenUsecase
}

// DI
func NewKitchenHandler(uc *usecase.KitchenUsecase) *KitchenHandler {
	return &KitchenHandler{uc: uc}
}

func (h *KitchenHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/staff/kitchen")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.StaffRestaurantGuard())

	g.GET("/orders", h.lane)
	g.POST("/orders/:id/advance", h.advance)
}

func (h *KitchenHandler) lane(c echo.Context) error {
	restaurantID, ok := getRestaurantIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	limit, err := parseLimitParam(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Lane(c.Request().Context(), restaurantID, c.QueryParam("status"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KitchenHandler) advance(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	restaurantID, ok := getRestaurantIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Advance(c.Request().Context(), userID, restaurantID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
