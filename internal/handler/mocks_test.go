package handler

import (
	"context"
	"net/http"

	"mini-inventory/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

// MockInventoryService is a mock implementation of InventoryService.
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) List(ctx context.Context) ([]model.ProductView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductView), args.Error(1)
}

func (m *MockInventoryService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockInventoryService) Create(ctx context.Context, fields model.ProductFields) (model.Product, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockInventoryService) Update(ctx context.Context, product model.Product) (model.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockInventoryService) Save(ctx context.Context, intent model.SaveIntent) (model.Product, error) {
	args := m.Called(ctx, intent)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockInventoryService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryService) SetQuantity(ctx context.Context, id string, quantity int) (model.Product, error) {
	args := m.Called(ctx, id, quantity)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockInventoryService) AdjustQuantity(ctx context.Context, id string, delta int) (model.Product, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockInventoryService) SelectForEdit(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockInventoryService) CancelEdit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInventoryService) Editing(ctx context.Context) (*model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockInventoryService) Maintenance(ctx context.Context, id string) (model.MaintenanceView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.MaintenanceView), args.Error(1)
}

func (m *MockInventoryService) StockReport(ctx context.Context) (model.StockReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.StockReport), args.Error(1)
}

// MockActivityService is a mock implementation of ActivityService.
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Recent(ctx context.Context, limit int) ([]model.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockActivityService) ForProduct(ctx context.Context, productID string, limit int) ([]model.Event, error) {
	args := m.Called(ctx, productID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

// withURLParam attaches a chi route parameter to the request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
