package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"yenesuq/internal/backend"
	"yenesuq/internal/models"
	"yenesuq/internal/storage"
	"yenesuq/pkg/events"
)

// MaxScreenshotSize is the client-side cap on the proof-of-payment image.
const MaxScreenshotSize = 2 * 1024 * 1024

// DefaultPaymentMethod is the only method currently accepted.
const DefaultPaymentMethod = "Bank Transfer"

// BankAccount is a manual-transfer destination shown on the payment screen.
type BankAccount struct {
	Name    string `json:"name"`
	Account string `json:"account"`
}

// PaymentService submits the manual bank-transfer proof for a stashed
// checkout draft. It never fetches checkout state from the backend: a
// missing draft field is a validation error.
type PaymentService struct {
	store    storage.Store
	client   backend.Client
	mqClient *events.Client
	accounts []BankAccount
	holder   string
}

// NewPaymentService creates a PaymentService with the configured bank
// account list. mqClient may be nil.
func NewPaymentService(store storage.Store, client backend.Client, mqClient *events.Client, accounts []BankAccount, holder string) *PaymentService {
	return &PaymentService{
		store:    store,
		client:   client,
		mqClient: mqClient,
		accounts: accounts,
		holder:   holder,
	}
}

// BankAccounts returns the transfer destinations and the account holder.
func (s *PaymentService) BankAccounts() ([]BankAccount, string) {
	return s.accounts, s.holder
}

// Draft loads the stashed checkout draft, failing with a validation error
// when any required field is absent.
func (s *PaymentService) Draft() (*models.CheckoutDraft, error) {
	draft := &models.CheckoutDraft{
		CheckoutID:      s.get(storage.KeyCheckoutID),
		GuestID:         s.get(storage.KeyDraftGuestID),
		UserID:          s.get(storage.KeyDraftUserID),
		ReferralCode:    s.get(storage.KeyReferralCode),
		CustomerName:    s.get(storage.KeyCustomerName),
		CustomerEmail:   s.get(storage.KeyCustomerEmail),
		CustomerPhone:   s.get(storage.KeyCustomerPhone),
		ShippingAddress: s.get(storage.KeyShippingAddress),
	}
	if raw := s.get(storage.KeyTotalPrice); raw != "" {
		total, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable total price", ErrValidation)
		}
		draft.TotalPrice = total
	}
	if raw := s.get(storage.KeyServiceFee); raw != "" {
		fee, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable service fee", ErrValidation)
		}
		draft.ServiceFee = fee
	}
	if raw := s.get(storage.KeyDeliveryFee); raw != "" {
		fee, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable delivery fee", ErrValidation)
		}
		draft.DeliveryFee = fee
	}
	if raw := s.get(storage.KeyCartItems); raw != "" {
		if err := json.Unmarshal([]byte(raw), &draft.Items); err != nil {
			return nil, fmt.Errorf("%w: unreadable cart snapshot", ErrValidation)
		}
	}

	var missing []string
	if draft.GuestID == "" {
		missing = append(missing, "guest_id")
	}
	if len(draft.Items) == 0 {
		missing = append(missing, "cart_items")
	}
	if draft.TotalPrice <= 0 {
		missing = append(missing, "total_price")
	}
	if draft.ShippingAddress == "" {
		missing = append(missing, "shipping_address")
	}
	if draft.CustomerName == "" {
		missing = append(missing, "customer_name")
	}
	if draft.CustomerEmail == "" {
		missing = append(missing, "customer_email")
	}
	if draft.CustomerPhone == "" {
		missing = append(missing, "customer_phone")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: checkout data is incomplete (missing %s)", ErrValidation, strings.Join(missing, ", "))
	}
	return draft, nil
}

// Submit validates the screenshot and the stashed draft, then posts the
// multipart payment. All validation happens before any network call.
func (s *PaymentService) Submit(ctx context.Context, method, filename string, screenshot []byte) error {
	if len(screenshot) == 0 {
		return fmt.Errorf("%w: please upload the payment screenshot", ErrValidation)
	}
	if len(screenshot) > MaxScreenshotSize {
		return fmt.Errorf("%w: file size must be less than 2MB", ErrValidation)
	}
	if !strings.HasPrefix(http.DetectContentType(screenshot), "image/") {
		return fmt.Errorf("%w: please upload a valid image file", ErrValidation)
	}
	if method == "" {
		method = DefaultPaymentMethod
	}

	draft, err := s.Draft()
	if err != nil {
		return err
	}

	err = s.client.CreatePayment(ctx, backend.PaymentRequest{
		Draft:         *draft,
		PaymentMethod: method,
		Screenshot:    screenshot,
		Filename:      filename,
	})
	if err != nil {
		return fmt.Errorf("failed to submit payment: %w", err)
	}

	if err := s.mqClient.Publish(events.PaymentSubmitted, map[string]interface{}{
		"checkout_id": draft.CheckoutID,
		"guest_id":    draft.GuestID,
		"method":      method,
		"total":       draft.TotalPrice,
	}); err != nil {
		log.Printf("Warning: failed to publish payment event for %s: %v", draft.CheckoutID, err)
	}
	return nil
}

func (s *PaymentService) get(key string) string {
	value, _ := s.store.Get(key)
	return value
}
