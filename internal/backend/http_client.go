package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"yenesuq/internal/models"
)

// DefaultBaseURL is the production backend the storefront talks to.
const DefaultBaseURL = "https://backend.yeniesuq.com"

// HTTPClient is the net/http implementation of Client.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the given base URL. An empty base URL
// selects the production backend.
func NewHTTPClient(baseURL string) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// envelope is the common success/message wrapper of backend responses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Data    json.RawMessage `json:"data"`
	Orders  json.RawMessage `json:"orders"`
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	return resp, nil
}

// decode reads the response body into out, surfacing the backend's message
// on non-2xx statuses.
func decode(resp *http.Response, path string, out any) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		if json.Unmarshal(body, &env) == nil && env.Message != "" {
			return fmt.Errorf("backend rejected %s: %s", path, env.Message)
		}
		return fmt.Errorf("backend returned status %d for %s", resp.StatusCode, path)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unexpected response format from %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path, token string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", path, err)
	}
	resp, err := c.do(ctx, http.MethodPost, path, token, bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	return decode(resp, path, out)
}

func (c *HTTPClient) getJSON(ctx context.Context, path, token string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, token, nil, "")
	if err != nil {
		return err
	}
	return decode(resp, path, out)
}

// Login authenticates against the backend and returns the issued token with
// the user profile.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var env envelope
	if err := c.postJSON(ctx, "/api/user/login", "", payload, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Token == "" {
		if env.Message != "" {
			return nil, fmt.Errorf("login failed: %s", env.Message)
		}
		return nil, fmt.Errorf("login failed")
	}
	result := &LoginResult{Token: env.Token}
	if len(env.User) > 0 {
		if err := json.Unmarshal(env.User, &result.User); err != nil {
			return nil, fmt.Errorf("unexpected login user payload: %w", err)
		}
	}
	return result, nil
}

// Register creates a new account.
func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	var env envelope
	if err := c.postJSON(ctx, "/api/user/register", "", req, &env); err != nil {
		return err
	}
	if !env.Success {
		if env.Message != "" {
			return fmt.Errorf("registration failed: %s", env.Message)
		}
		return fmt.Errorf("registration failed")
	}
	return nil
}

// FetchUser retrieves the authenticated user's profile.
func (c *HTTPClient) FetchUser(ctx context.Context, token string) (*models.UserDetails, error) {
	var env envelope
	if err := c.getJSON(ctx, "/api/user", token, &env); err != nil {
		return nil, err
	}
	if !env.Success || len(env.Data) == 0 {
		return nil, fmt.Errorf("failed to fetch user details")
	}
	var user models.UserDetails
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("unexpected user payload: %w", err)
	}
	return &user, nil
}

// UpdateBankDetails updates the user's payout bank name and account number.
func (c *HTTPClient) UpdateBankDetails(ctx context.Context, token string, userID int, bankName, accountNumber string) error {
	payload := map[string]string{"bank_name": bankName, "account_number": accountNumber}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal bank details: %w", err)
	}
	path := fmt.Sprintf("/api/user/user/%d", userID)
	resp, err := c.do(ctx, http.MethodPut, path, token, bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	var env envelope
	if err := decode(resp, path, &env); err != nil {
		return err
	}
	if !env.Success {
		if env.Message != "" {
			return fmt.Errorf("failed to update bank details: %s", env.Message)
		}
		return fmt.Errorf("failed to update bank details")
	}
	return nil
}

// FetchCategories lists the catalog categories with their subcategories.
func (c *HTTPClient) FetchCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, "/api/catitem/", "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FetchProducts lists products, filtered per query.
func (c *HTTPClient) FetchProducts(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	params := url.Values{}
	if query.Mode != "" {
		params.Set("mode", query.Mode)
	}
	if query.Subcat > 0 {
		params.Set("subcat", strconv.Itoa(query.Subcat))
	}
	if query.Latest {
		params.Set("latest", "true")
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	path := "/api/prod"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var products []models.Product
	if err := c.getJSON(ctx, path, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchProduct retrieves a single product's detail.
func (c *HTTPClient) FetchProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := c.getJSON(ctx, fmt.Sprintf("/api/prod/%d", id), "", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FetchApprovedSellerProducts lists seller products approved for the shop.
func (c *HTTPClient) FetchApprovedSellerProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "/api/sellerproduct/approved", "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) fetchOrderList(ctx context.Context, path, token string) ([]models.Order, error) {
	var env envelope
	if err := c.getJSON(ctx, path, token, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("failed to fetch orders: %s", env.Message)
		}
		return nil, fmt.Errorf("failed to fetch orders")
	}
	var orders []models.Order
	if len(env.Orders) > 0 {
		if err := json.Unmarshal(env.Orders, &orders); err != nil {
			return nil, fmt.Errorf("unexpected orders payload: %w", err)
		}
	}
	return orders, nil
}

// FetchOrders lists the orders placed by a user.
func (c *HTTPClient) FetchOrders(ctx context.Context, token, userID string) ([]models.Order, error) {
	return c.fetchOrderList(ctx, "/api/orders/user/"+url.PathEscape(userID), token)
}

// FetchOrdersByReferral lists orders attributed to a referral code.
func (c *HTTPClient) FetchOrdersByReferral(ctx context.Context, token, referralCode string) ([]models.Order, error) {
	return c.fetchOrderList(ctx, "/api/payments/orders/by-referral/"+url.PathEscape(referralCode), token)
}

// CreateCheckout posts an order-creation request and returns the identifiers
// the payment step needs.
func (c *HTTPClient) CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*CheckoutResult, error) {
	var result CheckoutResult
	if err := c.postJSON(ctx, "/api/checkout/create", "", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreatePayment submits the multipart payment with the proof screenshot.
func (c *HTTPClient) CreatePayment(ctx context.Context, req PaymentRequest) error {
	items, err := json.Marshal(req.Draft.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"guest_id":         req.Draft.GuestID,
		"payment_method":   req.PaymentMethod,
		"cart_items":       string(items),
		"total_price":      strconv.FormatFloat(req.Draft.TotalPrice, 'f', -1, 64),
		"shipping_address": req.Draft.ShippingAddress,
		"customer_name":    req.Draft.CustomerName,
		"customer_email":   req.Draft.CustomerEmail,
		"customer_phone":   req.Draft.CustomerPhone,
		"service_fee":      strconv.FormatFloat(req.Draft.ServiceFee, 'f', -1, 64),
		"delivery_fee":     strconv.FormatFloat(req.Draft.DeliveryFee, 'f', -1, 64),
		"referral_code":    req.Draft.ReferralCode,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile("payment_screenshot", req.Filename)
	if err != nil {
		return fmt.Errorf("failed to attach payment screenshot: %w", err)
	}
	if _, err := part.Write(req.Screenshot); err != nil {
		return fmt.Errorf("failed to write payment screenshot: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart payload: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/payments/create", "", &buf, writer.FormDataContentType())
	if err != nil {
		return err
	}
	return decode(resp, "/api/payments/create", nil)
}
