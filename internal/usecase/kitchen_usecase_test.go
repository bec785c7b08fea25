package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"menutotem/internal/domain/model"
	repo "menutotem/internal/repository"
	"menutotem/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestKitchenUsecase_Lane_Success(t *testing.T) {
	repos := NewTxReposMock()
	uc := usecase.NewKitchenUsecase(NewTxManagerMock(repos), new(AuditRepoMock))

	s := model.OrderStatusNew
	repos.OrderRepo.On("List", mock.Anything, repo.OrderListFilter{RestaurantID: "rest-1", Status: &s}).Return([]model.Order{
		{ID: "o-1", RestaurantID: "rest-1", Status: s},
	}, nil)
	repos.OrderItemRepo.On("ListByOrderID", mock.Anything, "o-1").Return([]model.OrderItem{}, nil)
	repos.ProductRepo.On("FindByIDs", mock.Anything, []string{}).Return([]model.Product{}, nil)

	outs, err := uc.Lane(context.Background(), "rest-1", "new", 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(outs))
	assert.Equal(t, "new", outs[0].Status)
}

func TestKitchenUsecase_Lane_LimitPassedThrough(t *testing.T) {
	repos := NewTxReposMock()
	uc := usecase.NewKitchenUsecase(NewTxManagerMock(repos), new(AuditRepoMock))

	s := model.OrderStatusReady
	repos.OrderRepo.On("List", mock.Anything, repo.OrderListFilter{RestaurantID: "rest-1", Status: &s, Limit: 20}).Return([]model.Order{}, nil)

	_, err := uc.Lane(context.Background(), "rest-1", "ready", 20)
	assert.NoError(t, err)

	repos.OrderRepo.AssertExpectations(t)
}

func TestKitchenUsecase_Lane_InvalidStatus(t *testing.T) {
	uc := usecase.NewKitchenUsecase(NewTxManagerMock(NewTxReposMock()), new(AuditRepoMock))

	_, err := uc.Lane(context.Background(), "rest-1", "waiting", 0)
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestKitchenUsecase_Advance_SuccessorMapping(t *testing.T) {
	cases := []struct {
		from model.OrderStatus
		to   model.OrderStatus
	}{
		{model.OrderStatusNew, model.OrderStatusPreparing},
		{model.OrderStatusPreparing, model.OrderStatusReady},
		{model.OrderStatusReady, model.OrderStatusDelivered},
	}

	for _, c := range cases {
		repos := NewTxReposMock()
		audit := new(AuditRepoMock)
		uc := usecase.NewKitchenUsecase(NewTxManagerMock(repos), audit)

		before := time.Now().Add(-time.Minute)
		stored := time.Now()
		repos.OrderRepo.On("FindByID", mock.Anything, "o-1").Return(model.Order{ID: "o-1", RestaurantID: "rest-1", Status: c.from, UpdatedAt: before}, nil).Once()
		repos.OrderRepo.On("UpdateStatus", mock.Anything, "o-1", c.to).Return(nil)
		//更新後の再取得はDBが刻んだupdated_atを持つ
		repos.OrderRepo.On("FindByID", mock.Anything, "o-1").Return(model.Order{ID: "o-1", RestaurantID: "rest-1", Status: c.to, UpdatedAt: stored}, nil)
		audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
			return l.Action == model.AuditActionUpdateOrderStatus &&
				l.BeforeJSON == `{"status":"`+string(c.from)+`"}` &&
				l.AfterJSON == `{"status":"`+string(c.to)+`"}`
		})).Return(nil)

		out, err := uc.Advance(context.Background(), "user-1", "rest-1", "o-1")
		assert.NoError(t, err, "from=%s", c.from)
		assert.Equal(t, string(c.from), out.FromStatus)
		assert.Equal(t, string(c.to), out.ToStatus)
		//返すのは保存済みのupdated_at。更新前より必ず後
		assert.Equal(t, stored, out.UpdatedAt)
		assert.True(t, out.UpdatedAt.After(before))

		repos.OrderRepo.AssertExpectations(t)
		audit.AssertExpectations(t)
	}
}

func TestKitchenUsecase_Advance_DeliveredIsTerminalNoop(t *testing.T) {
	repos := NewTxReposMock()
	audit := new(AuditRepoMock)
	uc := usecase.NewKitchenUsecase(NewTxManagerMock(repos), audit)

	updatedAt := time.Now().Add(-time.Hour)
	repos.OrderRepo.On("FindByID", mock.Anything, "o-1").Return(model.Order{
		ID:           "o-1",
		RestaurantID: "rest-1",
		Status:       model.OrderStatusDelivered,
		UpdatedAt:    updatedAt,
	}, nil)

	out, err := uc.Advance(context.Background(), "user-1", "rest-1", "o-1")
	assert.NoError(t, err)
	assert.Equal(t, "delivered", out.FromStatus)
	assert.Equal(t, "delivered", out.ToStatus)
	assert.Equal(t, updatedAt, out.UpdatedAt)

	//終端では更新も監査ログも走らない
	repos.OrderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 他レストランの注文は進められない（404扱い）
func TestKitchenUsecase_Advance_OtherRestaurantNotFound(t *testing.T) {
	repos := NewTxReposMock()
	audit := new(AuditRepoMock)
	uc := usecase.NewKitchenUsecase(NewTxManagerMock(repos), audit)

	repos.OrderRepo.On("FindByID", mock.Anything, "o-9").Return(model.Order{
		ID:           "o-9",
		RestaurantID: "rest-2",
		Status:       model.OrderStatusNew,
	}, nil)

	_, err := uc.Advance(context.Background(), "user-1", "rest-1", "o-9")
	assertHTTPStatus(t, err, http.StatusNotFound)

	repos.OrderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestKitchenUsecase_Advance_NotFound(t *testing.T) {
	repos := NewTxReposMock()
	uc := usecase.NewKitchenUsecase(NewTxManagerMock(repos), new(AuditRepoMock))

	repos.OrderRepo.On("FindByID", mock.Anything, "missing").Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.Advance(context.Background(), "user-1", "rest-1", "missing")
	assertHTTPStatus(t, err, http.StatusNotFound)
}
