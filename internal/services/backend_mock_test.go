package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"yenesuq/internal/backend"
	"yenesuq/internal/models"
)

// MockBackend is a testify mock of backend.Client shared by the service tests.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Login(ctx context.Context, email, password string) (*backend.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if result, ok := args.Get(0).(*backend.LoginResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) Register(ctx context.Context, req backend.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBackend) FetchUser(ctx context.Context, token string) (*models.UserDetails, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*models.UserDetails); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) UpdateBankDetails(ctx context.Context, token string, userID int, bankName, accountNumber string) error {
	args := m.Called(ctx, token, userID, bankName, accountNumber)
	return args.Error(0)
}

func (m *MockBackend) FetchCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]models.Category); ok {
		return categories, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) FetchProducts(ctx context.Context, query backend.ProductQuery) ([]models.Product, error) {
	args := m.Called(ctx, query)
	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) FetchProduct(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) FetchApprovedSellerProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) FetchOrders(ctx context.Context, token, userID string) ([]models.Order, error) {
	args := m.Called(ctx, token, userID)
	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) FetchOrdersByReferral(ctx context.Context, token, referralCode string) ([]models.Order, error) {
	args := m.Called(ctx, token, referralCode)
	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*backend.CheckoutResult, error) {
	args := m.Called(ctx, req)
	if result, ok := args.Get(0).(*backend.CheckoutResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) CreatePayment(ctx context.Context, req backend.PaymentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
