package handler

import (
	"net/http"

	"menutotem/internal/config"
	"menutotem/internal/middleware"
	"menutotem/internal/repository"
	"menutotem/internal/usecase"

	"github.com/labstack/echo/v4"
)

type QRCodeHandler struct {
	uc *usecase.QRCodeUsecase
}

// DI
func NewQRCodeHandler(uc *usecase.QRCodeUsecase) *QRCodeHandler {
	return &QRCodeHandler{uc: uc}
}

type QRCreateRequest struct {
	Label string `json:"label"`
}

func (h *QRCodeHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	//読み取り後の解決。認証なし。
	e.GET("/qr/:token", h.resolve)

	g := e.Group("/staff/qrcodes")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.StaffRestaurantGuard())

	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("/:id", h.deactivate)
}

func (h *QRCodeHandler) resolve(c echo.Context) error {
	out, err := h.uc.Resolve(c.Request().Context(), c.Param("token"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *QRCodeHandler) list(c echo.Context) error {
	restaurantID, ok := getRestaurantIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	outs, err := h.uc.List(c.Request().Context(), restaurantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *QRCodeHandler) create(c echo.Context) error {
	restaurantID, ok := getRestaurantIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req QRCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), restaurantID, req.Label)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *QRCodeHandler) deactivate(c echo.Context) error {
	restaurantID, ok := getRestaurantIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Deactivate(c.Request().Context(), restaurantID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deactivated"})
}
