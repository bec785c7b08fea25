package usecase

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"menutotem/internal/domain/model"
	repo "menutotem/internal/repository"

	"github.com/google/uuid"
)

type RestaurantUsecase struct {
	restaurantRepo repo.RestaurantRepository
}

// DI
func NewRestaurantUsecase(restaurantRepo repo.RestaurantRepository) *RestaurantUsecase {
	return &RestaurantUsecase{restaurantRepo: restaurantRepo}
}

type RestaurantInput struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	LogoURL string `json:"logo_url"`
}

type RestaurantOutput struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Slug               string `json:"slug"`
	LogoURL            string `json:"logo_url"`
	SubscriptionStatus string `json:"subscription_status"`
	SubscriptionTier   string `json:"subscription_tier"`
	IsActive           bool   `json:"is_active"`
}

// slugはURLに入るので英数とハイフンだけ
var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func (u *RestaurantUsecase) Create(ctx context.Context, in RestaurantInput) (RestaurantOutput, error) {
	name := strings.TrimSpace(in.Name)
	slug := strings.TrimSpace(in.Slug)

	if name == "" {
		return RestaurantOutput{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if !slugRe.MatchString(slug) {
		return RestaurantOutput{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	//slug重複チェック
	if _, err := u.restaurantRepo.FindBySlug(ctx, slug); err == nil {
		return RestaurantOutput{}, NewHTTPError(http.StatusConflict, "slug already used")
	} else if err != repo.ErrNotFound {
		return RestaurantOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rest := model.Restaurant{
		ID:                 uuid.NewString(),
		Name:               name,
		Slug:               slug,
		LogoURL:            in.LogoURL,
		SubscriptionStatus: model.SubscriptionInactive,
		IsActive:           true,
	}

	created, err := u.restaurantRepo.Create(ctx, rest)
	if err != nil {
		return RestaurantOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toRestaurantOutput(created), nil
}

func (u *RestaurantUsecase) Get(ctx context.Context, id string) (RestaurantOutput, error) {
	if id == "" {
		return RestaurantOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	rest, err := u.restaurantRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return RestaurantOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return RestaurantOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toRestaurantOutput(rest), nil
}

func (u *RestaurantUsecase) Update(ctx context.Context, id string, in RestaurantInput) error {
	if id == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name := strings.TrimSpace(in.Name)
	slug := strings.TrimSpace(in.Slug)
	if name == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if !slugRe.MatchString(slug) {
		return NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	rest, err := u.restaurantRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//slugを変える場合は重複チェック
	if slug != rest.Slug {
		if _, err := u.restaurantRepo.FindBySlug(ctx, slug); err == nil {
			return NewHTTPError(http.StatusConflict, "slug already used")
		} else if err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	rest.Name = name
	rest.Slug = slug
	rest.LogoURL = in.LogoURL

	if err := u.restaurantRepo.Update(ctx, rest); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *RestaurantUsecase) List(ctx context.Context, page int, limit int) ([]RestaurantOutput, int64, error) {
	rests, total, err := u.restaurantRepo.List(ctx, page, limit)
	if err != nil {
		return []RestaurantOutput{}, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]RestaurantOutput, 0, len(rests))
	for _, rest := range rests {
		outs = append(outs, toRestaurantOutput(rest))
	}
	return outs, total, nil
}

func toRestaurantOutput(r model.Restaurant) RestaurantOutput {
	return RestaurantOutput{
		ID:                 r.ID,
		Name:               r.Name,
		Slug:               r.Slug,
		LogoURL:            r.LogoURL,
		SubscriptionStatus: string(r.SubscriptionStatus),
		SubscriptionTier:   r.SubscriptionTier,
		IsActive:           r.IsActive,
	}
}
