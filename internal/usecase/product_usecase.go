package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"menutotem/internal/domain/model"
	repo "menutotem/internal/repository"

	"github.com/google/uuid"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo    repo.ProductRepository
	restaurantRepo repo.RestaurantRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, restaurantRepo repo.RestaurantRepository) *ProductUsecase {
	return &ProductUsecase{
		productRepo:    productRepo,
		restaurantRepo: restaurantRepo,
	}
}

type ProductOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	IsAvailable bool   `json:"is_available"`
}

type MenuOutput struct {
	RestaurantID   string          `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant_name"`
	LogoURL        string          `json:"logo_url"`
	Products       []ProductOutput `json:"products"`
}

type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	IsAvailable bool   `json:"is_available"`
}

// PublicMenuはトーテム/QRメニュー画面のデータ。認証なし。
// 公開中（is_available=true）の商品だけを返す。
func (u *ProductUsecase) PublicMenu(ctx context.Context, slug string, category string) (MenuOutput, error) {
	if strings.TrimSpace(slug) == "" {
		return MenuOutput{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	rest, err := u.restaurantRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return MenuOutput{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
	}
	if err != nil {
		return MenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !rest.IsActive {
		return MenuOutput{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
	}

	products, _, err := u.productRepo.List(ctx, repo.ProductListQuery{
		RestaurantID:  rest.ID,
		Category:      category,
		OnlyAvailable: true,
	})
	if err != nil {
		return MenuOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		outs = append(outs, toProductOutput(p))
	}

	return MenuOutput{
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
		LogoURL:        rest.LogoURL,
		Products:       outs,
	}, nil
}

// Listはスタッフ向けの商品一覧（非公開も含む）。
func (u *ProductUsecase) List(ctx context.Context, restaurantID string, category string, page int, limit int) ([]ProductOutput, int64, error) {
	if restaurantID == "" {
		return []ProductOutput{}, 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	products, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		RestaurantID: restaurantID,
		Category:     category,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return []ProductOutput{}, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		outs = append(outs, toProductOutput(p))
	}
	return outs, total, nil
}

func (u *ProductUsecase) Create(ctx context.Context, restaurantID string, in ProductInput) (ProductOutput, error) {
	if restaurantID == "" {
		return ProductOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateProductInput(in); err != nil {
		return ProductOutput{}, err
	}

	p := model.Product{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		PriceCents:   in.PriceCents,
		ImageURL:     in.ImageURL,
		Category:     in.Category,
		IsAvailable:  in.IsAvailable,
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProductOutput(created), nil
}

func (u *ProductUsecase) Update(ctx context.Context, restaurantID string, productID string, in ProductInput) error {
	if restaurantID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateProductInput(in); err != nil {
		return err
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//他レストランの商品は「存在しない扱い」
	if p.RestaurantID != restaurantID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.PriceCents = in.PriceCents
	p.ImageURL = in.ImageURL
	p.Category = in.Category
	p.IsAvailable = in.IsAvailable

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) Delete(ctx context.Context, restaurantID string, productID string) error {
	if restaurantID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.RestaurantID != restaurantID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.productRepo.SoftDelete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.PriceCents < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid price_cents")
	}
	return nil
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		IsAvailable: p.IsAvailable,
	}
}
