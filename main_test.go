package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"

	"yenesuq/internal/backend"
	"yenesuq/internal/models"
	"yenesuq/internal/storage"
)

var errStubNotWired = errors.New("backend operation not wired in this test")

// stubBackend implements backend.Client with overridable function fields, so
// each test wires only the operations its flow touches.
type stubBackend struct {
	login           func(email, password string) (*backend.LoginResult, error)
	fetchCategories func() ([]models.Category, error)
	fetchProducts   func(query backend.ProductQuery) ([]models.Product, error)
	fetchSeller     func() ([]models.Product, error)
	fetchOrders     func(token, userID string) ([]models.Order, error)
	createCheckout  func(req models.CheckoutRequest) (*backend.CheckoutResult, error)
	createPayment   func(req backend.PaymentRequest) error
}

func (s *stubBackend) Login(_ context.Context, email, password string) (*backend.LoginResult, error) {
	if s.login == nil {
		return nil, errStubNotWired
	}
	return s.login(email, password)
}

func (s *stubBackend) Register(context.Context, backend.RegisterRequest) error {
	return errStubNotWired
}

func (s *stubBackend) FetchUser(context.Context, string) (*models.UserDetails, error) {
	return nil, errStubNotWired
}

func (s *stubBackend) UpdateBankDetails(context.Context, string, int, string, string) error {
	return errStubNotWired
}

func (s *stubBackend) FetchCategories(context.Context) ([]models.Category, error) {
	if s.fetchCategories == nil {
		return nil, errStubNotWired
	}
	return s.fetchCategories()
}

func (s *stubBackend) FetchProducts(_ context.Context, query backend.ProductQuery) ([]models.Product, error) {
	if s.fetchProducts == nil {
		return nil, errStubNotWired
	}
	return s.fetchProducts(query)
}

func (s *stubBackend) FetchProduct(context.Context, int) (*models.Product, error) {
	return nil, errStubNotWired
}

func (s *stubBackend) FetchApprovedSellerProducts(context.Context) ([]models.Product, error) {
	if s.fetchSeller == nil {
		return nil, errStubNotWired
	}
	return s.fetchSeller()
}

func (s *stubBackend) FetchOrders(_ context.Context, token, userID string) ([]models.Order, error) {
	if s.fetchOrders == nil {
		return nil, errStubNotWired
	}
	return s.fetchOrders(token, userID)
}

func (s *stubBackend) FetchOrdersByReferral(context.Context, string, string) ([]models.Order, error) {
	return nil, errStubNotWired
}

func (s *stubBackend) CreateCheckout(_ context.Context, req models.CheckoutRequest) (*backend.CheckoutResult, error) {
	if s.createCheckout == nil {
		return nil, errStubNotWired
	}
	return s.createCheckout(req)
}

func (s *stubBackend) CreatePayment(_ context.Context, req backend.PaymentRequest) error {
	if s.createPayment == nil {
		return errStubNotWired
	}
	return s.createPayment(req)
}

func setupApp(client backend.Client) (*storage.MemoryStore, func(req *http.Request) (*http.Response, error)) {
	loadConfig()
	store := storage.NewMemoryStore()
	app := NewApp(store, client, nil)
	return store, func(req *http.Request) (*http.Response, error) {
		return app.Test(req, -1)
	}
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestLogStorefrontEventAcks(t *testing.T) {
	msg := amqp.Delivery{Type: "cart.updated", Body: []byte(`{"count":2}`)}
	assert.NoError(t, logStorefrontEvent(msg))
}

func TestHealthEndpoint(t *testing.T) {
	_, do := setupApp(&stubBackend{})

	resp, err := do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])
}

func TestOrdersRequireLogin(t *testing.T) {
	_, do := setupApp(&stubBackend{})

	resp, err := do(httptest.NewRequest(http.MethodGet, "/api/orders/", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "/login", body["redirect"])
}

func TestProductsFallbackResponse(t *testing.T) {
	client := &stubBackend{
		fetchSeller:   func() ([]models.Product, error) { return []models.Product{}, nil },
		fetchProducts: func(backend.ProductQuery) ([]models.Product, error) { return nil, errStubNotWired },
	}
	_, do := setupApp(client)

	resp, err := do(httptest.NewRequest(http.MethodGet, "/api/catalog/products", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "fallback", body["source"])
	assert.NotEmpty(t, body["data"])
	assert.NotEmpty(t, body["error"])
}

func TestGuestShoppingFlow(t *testing.T) {
	var checkoutReq models.CheckoutRequest
	var paymentReq backend.PaymentRequest
	client := &stubBackend{
		createCheckout: func(req models.CheckoutRequest) (*backend.CheckoutResult, error) {
			checkoutReq = req
			return &backend.CheckoutResult{CheckoutID: "chk-100", GuestID: req.GuestID}, nil
		},
		createPayment: func(req backend.PaymentRequest) error {
			paymentReq = req
			return nil
		},
	}
	_, do := setupApp(client)

	// Add to cart
	resp, err := do(jsonRequest(http.MethodPost, "/api/cart/items", map[string]interface{}{
		"product": map[string]interface{}{
			"id":    1,
			"title": "Premium Smartphone",
			"price": 500.0,
			"stock": models.StockIn,
		},
		"quantity": 2,
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Badge count
	resp, err = do(httptest.NewRequest(http.MethodGet, "/api/cart/count", nil))
	assert.NoError(t, err)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["count"])

	// Quote: 1000 subtotal, 75 service fee, 100 delivery fee
	resp, err = do(httptest.NewRequest(http.MethodGet, "/api/checkout/quote", nil))
	assert.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(1175), body["total"])

	// Checkout
	resp, err = do(jsonRequest(http.MethodPost, "/api/checkout/", map[string]interface{}{
		"customer_name":    "Abebe Kebede",
		"customer_email":   "abebe@example.com",
		"customer_phone":   "+251911234567",
		"shipping_address": "Bole, Addis Ababa",
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "chk-100", body["checkout_id"])
	assert.Equal(t, "/payment", body["redirect"])
	assert.Nil(t, checkoutReq.UserID)
	assert.NotEmpty(t, checkoutReq.GuestID)

	// Cart is now empty
	resp, err = do(httptest.NewRequest(http.MethodGet, "/api/cart/count", nil))
	assert.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(0), body["count"])

	// Payment screen shows the stashed total
	resp, err = do(httptest.NewRequest(http.MethodGet, "/api/payment/", nil))
	assert.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(1175), body["total_price"])
	assert.NotEmpty(t, body["bank_accounts"])

	// Submit the proof of payment
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	assert.NoError(t, writer.WriteField("payment_method", "Bank Transfer"))
	part, err := writer.CreateFormFile("payment_screenshot", "proof.png")
	assert.NoError(t, err)
	_, err = part.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0})
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/payment/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err = do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "/orders", body["redirect"])
	assert.Equal(t, "chk-100", paymentReq.Draft.CheckoutID)
	assert.Equal(t, float64(1175), paymentReq.Draft.TotalPrice)
}

func TestLoginThenOrders(t *testing.T) {
	client := &stubBackend{
		login: func(email, password string) (*backend.LoginResult, error) {
			if password != "secret123" {
				return nil, fmt.Errorf("invalid credentials")
			}
			return &backend.LoginResult{
				Token: "token-abc",
				User:  models.UserDetails{ID: 12, Name: "Abebe Kebede", Email: email},
			}, nil
		},
		fetchOrders: func(token, userID string) ([]models.Order, error) {
			if token != "token-abc" || userID != "12" {
				return nil, fmt.Errorf("wrong credentials forwarded")
			}
			return []models.Order{{ID: 1, OrderNumber: "YS-2026-100"}}, nil
		},
	}
	_, do := setupApp(client)

	resp, err := do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "abebe@example.com",
		"password": "secret123",
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = do(httptest.NewRequest(http.MethodGet, "/api/orders/", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "live", body["source"])
}

func TestLogoutLocksOrders(t *testing.T) {
	client := &stubBackend{
		login: func(email, password string) (*backend.LoginResult, error) {
			return &backend.LoginResult{Token: "token-abc", User: models.UserDetails{ID: 12}}, nil
		},
	}
	_, do := setupApp(client)

	resp, err := do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "abebe@example.com",
		"password": "secret123",
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = do(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = do(httptest.NewRequest(http.MethodGet, "/api/orders/", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
