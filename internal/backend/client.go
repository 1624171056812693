// Package backend is the typed client for the remote Yene Suq REST API.
// Every storefront screen reads through it; it performs no retries and no
// caching, leaving fallback handling to the services.
package backend

import (
	"context"

	"yenesuq/internal/models"
)

// LoginResult is the successful response of the login endpoint.
type LoginResult struct {
	Token string             `json:"token"`
	User  models.UserDetails `json:"user"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"required"`
	Password       string  `json:"password" validate:"required,min=6"`
	Agent          bool    `json:"agent"`
	ReferredByCode *string `json:"referred_by_code"`
}

// ProductQuery carries the filters of the product listing endpoint.
type ProductQuery struct {
	Mode   string // for_user or for_seller
	Subcat int    // subcategory id, 0 = unfiltered
	Latest bool   // newest-first, used by new arrivals
	Limit  int    // 0 = no limit
}

// CheckoutResult is the identifying data returned by checkout creation.
type CheckoutResult struct {
	CheckoutID string `json:"checkout_id"`
	GuestID    string `json:"guest_id"`
	Message    string `json:"message"`
}

// PaymentRequest is the multipart payment submission: the stashed checkout
// draft plus the proof-of-payment screenshot.
type PaymentRequest struct {
	Draft         models.CheckoutDraft
	PaymentMethod string
	Screenshot    []byte
	Filename      string
}

// Client defines the backend operations the storefront consumes.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, req RegisterRequest) error

	FetchUser(ctx context.Context, token string) (*models.UserDetails, error)
	UpdateBankDetails(ctx context.Context, token string, userID int, bankName, accountNumber string) error

	FetchCategories(ctx context.Context) ([]models.Category, error)
	FetchProducts(ctx context.Context, query ProductQuery) ([]models.Product, error)
	FetchProduct(ctx context.Context, id int) (*models.Product, error)
	FetchApprovedSellerProducts(ctx context.Context) ([]models.Product, error)

	FetchOrders(ctx context.Context, token, userID string) ([]models.Order, error)
	FetchOrdersByReferral(ctx context.Context, token, referralCode string) ([]models.Order, error)

	CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*CheckoutResult, error)
	CreatePayment(ctx context.Context, req PaymentRequest) error
}
