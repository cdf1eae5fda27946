package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.opentelemetry.io/otel/trace/noop"
)

// MockUserUseCase simula o use case de usuários
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	args := m.Called(ctx, req)
	if user, ok := args.Get(0).(*User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserUseCase) ListUsers(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]User), args.Error(1)
}

// MockItemUseCase simula o use case de itens
type MockItemUseCase struct {
	mock.Mock
}

func (m *MockItemUseCase) CreateItem(ctx context.Context, req ItemRequest) (*Item, error) {
	args := m.Called(ctx, req)
	if item, ok := args.Get(0).(*Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemUseCase) GetItem(ctx context.Context, id string) (*Item, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemUseCase) ListItems(ctx context.Context) ([]Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockItemUseCase) UpdateItem(ctx context.Context, id string, req ItemRequest) (*Item, error) {
	args := m.Called(ctx, id, req)
	if item, ok := args.Get(0).(*Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemUseCase) DeleteItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderUseCase simula o use case de pedidos
type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	args := m.Called(ctx, req)
	if order, ok := args.Get(0).(*Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderUseCase) GetOrder(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderUseCase) ListOrders(ctx context.Context) ([]Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockOrderUseCase) UpdateOrder(ctx context.Context, id string, req OrderRequest) (*Order, error) {
	args := m.Called(ctx, id, req)
	if order, ok := args.Get(0).(*Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderUseCase) DeleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	r := gin.New()
	r.POST("/register", handler.Register)

	user := NewUser("user-1", "alice", "x", nil, RoleSeller)
	mockUseCase.On("Register", mock.Anything, mock.AnythingOfType("main.RegisterRequest")).Return(user, nil)

	w := performRequest(r, http.MethodPost, "/register", gin.H{"name": "alice", "password": "x", "role": "seller"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp["user_id"])
	assert.Equal(t, "seller", resp["role"])
}

func TestUserHandler_Register_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	r := gin.New()
	r.POST("/register", handler.Register)

	mockUseCase.On("Register", mock.Anything, mock.AnythingOfType("main.RegisterRequest")).
		Return(nil, fmt.Errorf("user %q already exists: %w", "alice", ErrConflict))

	w := performRequest(r, http.MethodPost, "/register", gin.H{"name": "alice", "password": "x"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_Register_MissingPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	r := gin.New()
	r.POST("/register", handler.Register)

	w := performRequest(r, http.MethodPost, "/register", gin.H{"name": "alice"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "Register")
}

func TestUserHandler_ListUsers_IncludesPassword(t *testing.T) {
	// A listagem expõe o campo password, como a API legada sempre fez
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	r := gin.New()
	r.GET("/users", handler.ListUsers)

	mockUseCase.On("ListUsers", mock.Anything).Return([]User{*NewUser("user-1", "alice", "secret", nil, RoleSeller)}, nil)

	w := performRequest(r, http.MethodGet, "/users", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"password":"secret"`)
}

func TestItemHandler_GetItem_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockItemUseCase)
	handler := NewItemHandler(mockUseCase)

	r := gin.New()
	r.GET("/items/:id", handler.GetItem)

	mockUseCase.On("GetItem", mock.Anything, "unknown").
		Return(nil, fmt.Errorf("item not found: %w", ErrNotFound))

	w := performRequest(r, http.MethodGet, "/items/unknown", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemHandler_DeleteItem(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockItemUseCase)
	handler := NewItemHandler(mockUseCase)

	r := gin.New()
	r.DELETE("/items/:id", handler.DeleteItem)

	mockUseCase.On("DeleteItem", mock.Anything, "item-1").Return(nil)

	w := performRequest(r, http.MethodDelete, "/items/item-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "item deleted", resp["message"])
}

func TestItemHandler_CreateItem_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockItemUseCase)
	handler := NewItemHandler(mockUseCase)

	r := gin.New()
	r.POST("/items", handler.CreateItem)

	created := NewItem("item-1", "Novel", "a paperback", 10, "novel.png", 2, "cat-1", "seller-1")
	mockUseCase.On("CreateItem", mock.Anything, ItemRequest{
		Name: "Novel", Description: "a paperback", Price: 10, ImageURL: "novel.png",
		Quantity: 2, CategoryID: "cat-1", SellerID: "seller-1",
	}).Return(created, nil)

	w := performRequest(r, http.MethodPost, "/items", gin.H{
		"name": "Novel", "description": "a paperback", "price": 10,
		"image_url": "novel.png", "quantity": 2, "category_id": "cat-1", "seller_id": "seller-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Item
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "item-1", resp.ID)
	assert.Equal(t, "Novel", resp.Name)
	assert.Equal(t, 2, resp.Quantity)
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockOrderUseCase)
	tracer := noop.NewTracerProvider().Tracer("test")
	handler := NewOrderHandler(mockUseCase, tracer)

	r := gin.New()
	r.POST("/orders", handler.CreateOrder)

	order := NewOrder("order-1", "buyer-1", "cart-1", "item-1")
	order.PaymentToken = "tok-1"
	mockUseCase.On("CreateOrder", mock.Anything, OrderRequest{BuyerID: "buyer-1", CartID: "cart-1", ItemID: "item-1"}).
		Return(order, nil)

	w := performRequest(r, http.MethodPost, "/orders", gin.H{
		"buyer_id": "buyer-1", "cart_id": "cart-1", "item_id": "item-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Order
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "order-1", resp.ID)
	assert.Equal(t, "tok-1", resp.PaymentToken)
}

func TestOrderHandler_CreateOrder_OutOfStock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockOrderUseCase)
	tracer := noop.NewTracerProvider().Tracer("test")
	handler := NewOrderHandler(mockUseCase, tracer)

	r := gin.New()
	r.POST("/orders", handler.CreateOrder)

	mockUseCase.On("CreateOrder", mock.Anything, mock.AnythingOfType("main.OrderRequest")).
		Return(nil, fmt.Errorf("item not found or out of stock: %w", ErrNotFound))

	w := performRequest(r, http.MethodPost, "/orders", gin.H{
		"buyer_id": "buyer-1", "cart_id": "cart-1", "item_id": "item-1",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_CreateOrder_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockUseCase := new(MockOrderUseCase)
	tracer := noop.NewTracerProvider().Tracer("test")
	handler := NewOrderHandler(mockUseCase, tracer)

	r := gin.New()
	r.POST("/orders", handler.CreateOrder)

	w := performRequest(r, http.MethodPost, "/orders", gin.H{"buyer_id": "buyer-1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "CreateOrder")
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", HealthCheck)

	w := performRequest(r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
