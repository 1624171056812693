package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"yenesuq/internal/models"
	"yenesuq/internal/services"
	"yenesuq/internal/storage"
)

func newOrderService(mockBackend *MockBackend) (*services.OrderService, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	auth := services.NewAuthService(store, mockBackend)
	return services.NewOrderService(mockBackend, auth), store
}

func TestOrderHistoryRequiresLogin(t *testing.T) {
	mockBackend := new(MockBackend)
	orders, _ := newOrderService(mockBackend)

	_, err := orders.History(context.Background())
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
	mockBackend.AssertNotCalled(t, "FetchOrders", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderHistoryLive(t *testing.T) {
	mockBackend := new(MockBackend)
	orders, store := newOrderService(mockBackend)

	assert.NoError(t, store.Set(storage.KeyToken, "token-abc"))
	assert.NoError(t, store.Set(storage.KeyUserID, "12"))

	mockBackend.On("FetchOrders", mock.Anything, "token-abc", "12").Return([]models.Order{
		{ID: 1, OrderNumber: "YS-2026-100", TotalAmount: 980.5, OrderStatus: "processing"},
	}, nil)

	result, err := orders.History(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, services.SourceLive, result.Source)
	assert.Len(t, result.Data, 1)
	assert.Equal(t, "YS-2026-100", result.Data[0].OrderNumber)
}

func TestOrderHistoryFallback(t *testing.T) {
	mockBackend := new(MockBackend)
	orders, store := newOrderService(mockBackend)

	assert.NoError(t, store.Set(storage.KeyToken, "token-abc"))
	assert.NoError(t, store.Set(storage.KeyUserID, "12"))
	mockBackend.On("FetchOrders", mock.Anything, "token-abc", "12").Return(nil, assert.AnError)

	result, err := orders.History(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, services.SourceFallback, result.Source)
	assert.Error(t, result.Err)
	assert.Len(t, result.Data, 3)
	assert.Equal(t, "YS-2024-001", result.Data[0].OrderNumber)
}
