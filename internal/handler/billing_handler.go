package handler

import (
	"net/http"

	"menutotem/internal/config"
	"menutotem/internal/middleware"
	"menutotem/internal/repository"
	"menutotem/internal/usecase"

	"github.com/labstack/echo/v4"
)

type BillingHandler struct {
	uc *usecase.BillingUsecase
}

func NewBillingHandler(uc *usecase.BillingUsecase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

func (h *BillingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/staff/billing")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.StaffRestaurantGuard())

	g.GET("/subscription", h.checkSubscription)
	g.POST("/checkout", h.createCheckout)
	g.POST("/portal", h.createPortal)
}

func (h *BillingHandler) checkSubscription(c echo.Context) error {
	restaurantID, ok := getRestaurantIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.CheckSubscription(c.Request().Context(), restaurantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type createCheckoutRequest struct {
	Tier string `json:"tier"`
}

func (h *BillingHandler) createCheckout(c echo.Context) error {
	restaurantID, ok := getRestaurantIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req createCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateCheckout(c.Request().Context(), restaurantID, req.Tier)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BillingHandler) createPortal(c echo.Context) error {
	restaurantID, ok := getRestaurantIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.CreatePortal(c.Request().Context(), restaurantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
