package usecase_test

import (
	"context"

	"menutotem/internal/domain/model"
	repo "menutotem/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type RestaurantRepoMock struct{ mock.Mock }

func (m *RestaurantRepoMock) Create(ctx context.Context, r model.Restaurant) (model.Restaurant, error) {
	args := m.Called(ctx, r)
	created, _ := args.Get(0).(model.Restaurant)
	return created, args.Error(1)
}

func (m *RestaurantRepoMock) FindByID(ctx context.Context, id string) (model.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

func (m *RestaurantRepoMock) FindBySlug(ctx context.Context, slug string) (model.Restaurant, error) {
	args := m.Called(ctx, slug)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

func (m *RestaurantRepoMock) Update(ctx context.Context, r model.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RestaurantRepoMock) List(ctx context.Context, page int, limit int) ([]model.Restaurant, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Restaurant)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *RestaurantRepoMock) UpdateSubscription(ctx context.Context, id string, status model.SubscriptionStatus, tier string) error {
	args := m.Called(ctx, id, status, tier)
	return args.Error(0)
}

type QRCodeRepoMock struct{ mock.Mock }

func (m *QRCodeRepoMock) Create(ctx context.Context, qr model.QRCode) (model.QRCode, error) {
	args := m.Called(ctx, qr)
	created, _ := args.Get(0).(model.QRCode)
	return created, args.Error(1)
}

func (m *QRCodeRepoMock) ListByRestaurantID(ctx context.Context, restaurantID string) ([]model.QRCode, error) {
	args := m.Called(ctx, restaurantID)
	items, _ := args.Get(0).([]model.QRCode)
	return items, args.Error(1)
}

func (m *QRCodeRepoMock) FindByToken(ctx context.Context, token string) (model.QRCode, error) {
	args := m.Called(ctx, token)
	qr, _ := args.Get(0).(model.QRCode)
	return qr, args.Error(1)
}

func (m *QRCodeRepoMock) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// TransactionManager mock
// =====================

// 各repoのmockをそのままTxReposとして渡す。
type TxReposMock struct {
	OrderRepo      *OrderRepoMock
	OrderItemRepo  *OrderItemRepoMock
	ProductRepo    *ProductRepoMock
	RestaurantRepo *RestaurantRepoMock
	QRCodeRepo     *QRCodeRepoMock
}

func NewTxReposMock() *TxReposMock {
	return &TxReposMock{
		OrderRepo:      new(OrderRepoMock),
		OrderItemRepo:  new(OrderItemRepoMock),
		ProductRepo:    new(ProductRepoMock),
		RestaurantRepo: new(RestaurantRepoMock),
		QRCodeRepo:     new(QRCodeRepoMock),
	}
}

func (m *TxReposMock) Orders() repo.OrderRepository           { return m.OrderRepo }
func (m *TxReposMock) OrderItems() repo.OrderItemRepository   { return m.OrderItemRepo }
func (m *TxReposMock) Products() repo.ProductRepository       { return m.ProductRepo }
func (m *TxReposMock) Restaurants() repo.RestaurantRepository { return m.RestaurantRepo }
func (m *TxReposMock) QRCodes() repo.QRCodeRepository         { return m.QRCodeRepo }

// WithinTxはコールバックをそのまま実行する（commit/rollbackはしない）。
type TxManagerMock struct {
	Repos *TxReposMock
}

func NewTxManagerMock(repos *TxReposMock) *TxManagerMock {
	return &TxManagerMock{Repos: repos}
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}
