package usecase_test

import (
	"context"
	"testing"
	"time"

	"menutotem/internal/config"
	"menutotem/internal/domain/model"
	"menutotem/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) IncrementTokenVersion(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type RefreshTokenRepoMock struct{ mock.Mock }

func (m *RefreshTokenRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *RefreshTokenRepoMock) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error {
	args := m.Called(ctx, tokenID, revokedAt)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteAllByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteByID(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// 検証は全部通すスタブ（入力検証自体はvalidator側のテストで見る）
type passValidator struct{}

func (passValidator) ValidateRegister(ctx context.Context, email string, password string) error {
	return nil
}
func (passValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	return nil
}
func (passValidator) ValidateRefresh(ctx context.Context, refreshToken string, userAgent string) error {
	return nil
}
func (passValidator) ValidateLogout(ctx context.Context) error { return nil }
func (passValidator) ValidateForceLogout(ctx context.Context, targetUserID string) error {
	return nil
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, rts, passValidator{})

	user := &model.User{
		ID:           "user-1",
		Email:        "staff@example.com",
		PasswordHash: mustHash(t, "password123"),
		Role:         model.RoleStaff,
		RestaurantID: "rest-1",
		TokenVersion: 3,
		IsActive:     true,
	}
	users.On("FindByEmail", mock.Anything, "staff@example.com").Return(user, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)
	rts.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		return rt.UserID == "user-1" && rt.TokenHash != "" && rt.UserAgent == "totem-ua"
	})).Return(nil)

	out, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "staff@example.com",
		Password: "password123",
	}, "totem-ua")

	assert.NoError(t, err)
	assert.NotEmpty(t, out.RefreshTokenPlain)
	assert.NotEmpty(t, out.CsrfTokenPlain)
	assert.Equal(t, "user-1", out.Body.User.ID)
	assert.Equal(t, 3, out.Body.Token.TokenVersion)

	//JWTのclaimsを確認
	tok, err := jwt.Parse(out.Body.Token.AccessToken, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "STAFF", claims["role"])
	assert.Equal(t, "rest-1", claims["restaurant_id"])
	assert.Equal(t, float64(3), claims["tv"])

	rts.AssertExpectations(t)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, new(RefreshTokenRepoMock), passValidator{})

	user := &model.User{
		ID:           "user-1",
		Email:        "staff@example.com",
		PasswordHash: mustHash(t, "password123"),
		IsActive:     true,
	}
	users.On("FindByEmail", mock.Anything, "staff@example.com").Return(user, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "staff@example.com",
		Password: "wrong",
	}, "")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestAuthUsecase_Login_InactiveUser(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, new(RefreshTokenRepoMock), passValidator{})

	user := &model.User{
		ID:           "user-1",
		Email:        "staff@example.com",
		PasswordHash: mustHash(t, "password123"),
		IsActive:     false,
	}
	users.On("FindByEmail", mock.Anything, "staff@example.com").Return(user, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "staff@example.com",
		Password: "password123",
	}, "")
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestAuthUsecase_Refresh_RotatesToken(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, rts, passValidator{})

	rt := &model.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		UserAgent: "totem-ua",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	rts.On("FindByTokenHash", mock.Anything, mock.Anything).Return(rt, nil)
	users.On("FindByID", mock.Anything, "user-1").Return(&model.User{
		ID: "user-1", Role: model.RoleStaff, RestaurantID: "rest-1", IsActive: true,
	}, nil)
	rts.On("MarkUsed", mock.Anything, "rt-1", mock.Anything).Return(nil)
	rts.On("Create", mock.Anything, mock.MatchedBy(func(newRT *model.RefreshToken) bool {
		return newRT.UserID == "user-1" && newRT.ID != "rt-1"
	})).Return(nil)

	out, err := uc.Refresh(context.Background(), "some-refresh-token", "totem-ua")
	assert.NoError(t, err)
	assert.NotEmpty(t, out.RefreshTokenPlain)
	assert.NotEmpty(t, out.CsrfTokenPlain)
	assert.NotEmpty(t, out.Body.AccessToken)

	rts.AssertExpectations(t)
}

// used済みtokenの再提示はreplay。全refreshを破棄する。
func TestAuthUsecase_Refresh_ReplayDetection(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, rts, passValidator{})

	usedAt := time.Now().Add(-time.Minute)
	rt := &model.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
		UsedAt:    &usedAt,
	}
	rts.On("FindByTokenHash", mock.Anything, mock.Anything).Return(rt, nil)
	rts.On("DeleteAllByUserID", mock.Anything, "user-1").Return(nil)

	_, err := uc.Refresh(context.Background(), "replayed-token", "")
	assert.ErrorIs(t, err, usecase.ErrSecurityIncident)

	rts.AssertCalled(t, "DeleteAllByUserID", mock.Anything, "user-1")
}

func TestAuthUsecase_Refresh_Expired(t *testing.T) {
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(testConfig(), new(UserRepoMock), rts, passValidator{})

	rt := &model.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	rts.On("FindByTokenHash", mock.Anything, mock.Anything).Return(rt, nil)
	rts.On("DeleteByID", mock.Anything, "rt-1").Return(nil)

	_, err := uc.Refresh(context.Background(), "expired-token", "")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestAuthUsecase_Register_StaffRequiresRestaurant(t *testing.T) {
	uc := usecase.NewAuthUsecase(testConfig(), new(UserRepoMock), new(RefreshTokenRepoMock), passValidator{})

	_, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Email:    "staff@example.com",
		Password: "password123",
		Role:     "STAFF",
	})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, new(RefreshTokenRepoMock), passValidator{})

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "staff@example.com" &&
			u.Role == model.RoleStaff &&
			u.RestaurantID == "rest-1" &&
			u.PasswordHash != "password123" &&
			u.IsActive
	})).Return(nil)

	out, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Email:        "staff@example.com",
		Password:     "password123",
		RestaurantID: "rest-1",
		Role:         "STAFF",
	})
	assert.NoError(t, err)
	assert.Equal(t, "staff@example.com", out.User.Email)

	users.AssertExpectations(t)
}

func TestAuthUsecase_ForceLogout_BumpsTokenVersion(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, rts, passValidator{})

	users.On("IncrementTokenVersion", mock.Anything, "user-1").Return(nil)
	rts.On("DeleteAllByUserID", mock.Anything, "user-1").Return(nil)
	users.On("FindByID", mock.Anything, "user-1").Return(&model.User{ID: "user-1", TokenVersion: 4}, nil)

	out, err := uc.ForceLogout(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 4, out.NewTokenVersion)

	users.AssertExpectations(t)
	rts.AssertExpectations(t)
}
