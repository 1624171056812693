package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"yenesuq/internal/backend"
	"yenesuq/internal/models"
	"yenesuq/internal/storage"
	"yenesuq/pkg/events"
)

// DefaultServiceFee is the flat per-order service charge in birr.
const DefaultServiceFee = 75.0

// Delivery fee tiers: 10% of the subtotal below the threshold, 6% at or
// above it.
const (
	deliveryTierThreshold = 10000.0
	deliveryRateLow       = 0.10
	deliveryRateHigh      = 0.06
)

// DeliveryFee computes the tiered delivery fee for a cart subtotal.
func DeliveryFee(subtotal float64) float64 {
	if subtotal < deliveryTierThreshold {
		return subtotal * deliveryRateLow
	}
	return subtotal * deliveryRateHigh
}

// CheckoutService turns the cart into a backend order. On success it stashes
// every field the payment screen needs into the local store and clears the
// cart.
type CheckoutService struct {
	store      storage.Store
	client     backend.Client
	cart       *CartService
	mqClient   *events.Client
	validate   *validator.Validate
	serviceFee float64
}

// NewCheckoutService creates a CheckoutService. serviceFee <= 0 selects the
// default. mqClient may be nil.
func NewCheckoutService(store storage.Store, client backend.Client, cart *CartService, mqClient *events.Client, serviceFee float64) *CheckoutService {
	if serviceFee <= 0 {
		serviceFee = DefaultServiceFee
	}
	return &CheckoutService{
		store:      store,
		client:     client,
		cart:       cart,
		mqClient:   mqClient,
		validate:   validator.New(),
		serviceFee: serviceFee,
	}
}

// Quote recomputes the fee breakdown from the current cart contents.
func (s *CheckoutService) Quote() (*models.Quote, error) {
	subtotal, err := s.cart.Subtotal()
	if err != nil {
		return nil, err
	}
	return s.quoteFor(subtotal), nil
}

func (s *CheckoutService) quoteFor(subtotal float64) *models.Quote {
	deliveryFee := DeliveryFee(subtotal)
	return &models.Quote{
		Subtotal:    subtotal,
		ServiceFee:  s.serviceFee,
		DeliveryFee: deliveryFee,
		Total:       subtotal + s.serviceFee + deliveryFee,
	}
}

// Submit validates the customer info and the cart, posts the order-creation
// request and persists the checkout draft. Validation failures never reach
// the network.
func (s *CheckoutService) Submit(ctx context.Context, info models.CheckoutInfo) (*models.CheckoutDraft, error) {
	if err := s.validate.Struct(info); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				fields = append(fields, e.Field())
			}
			return nil, fmt.Errorf("%w: missing or invalid fields: %s", ErrValidation, strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	items, err := s.cart.Items()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: the cart must not be empty", ErrValidation)
	}

	quote := s.quoteFor(models.CartSubtotal(items))
	if quote.Total <= 0 {
		return nil, fmt.Errorf("%w: order total must be positive", ErrValidation)
	}

	userID, loggedIn := s.store.Get(storage.KeyUserID)
	var guestID string
	if !loggedIn {
		guestID = s.guestID()
	}

	request := models.CheckoutRequest{
		CustomerName:    info.CustomerName,
		CustomerEmail:   info.CustomerEmail,
		CustomerPhone:   info.CustomerPhone,
		ShippingAddress: info.ShippingAddress,
		GuestID:         guestID,
		DeliveryFee:     quote.DeliveryFee,
		ServiceFee:      quote.ServiceFee,
		TotalPrice:      quote.Total,
		Items:           make([]models.CheckoutItem, 0, len(items)),
	}
	if info.ReferralCode != "" {
		request.ReferralCode = &info.ReferralCode
	}
	if loggedIn {
		request.UserID = &userID
	}
	for _, item := range items {
		request.Items = append(request.Items, models.CheckoutItem{
			ProductID: item.ID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	result, err := s.client.CreateCheckout(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	draftGuestID := result.GuestID
	if draftGuestID == "" {
		draftGuestID = guestID
	}
	draft := &models.CheckoutDraft{
		CheckoutID:      result.CheckoutID,
		GuestID:         draftGuestID,
		UserID:          userID,
		ReferralCode:    info.ReferralCode,
		CustomerName:    info.CustomerName,
		CustomerEmail:   info.CustomerEmail,
		CustomerPhone:   info.CustomerPhone,
		ShippingAddress: info.ShippingAddress,
		TotalPrice:      quote.Total,
		ServiceFee:      quote.ServiceFee,
		DeliveryFee:     quote.DeliveryFee,
		Items:           items,
	}
	if err := s.stashDraft(draft); err != nil {
		return nil, err
	}
	if err := s.cart.Clear(); err != nil {
		return nil, err
	}

	if err := s.mqClient.Publish(events.CheckoutCreated, map[string]interface{}{
		"checkout_id": draft.CheckoutID,
		"guest_id":    draft.GuestID,
		"total":       draft.TotalPrice,
	}); err != nil {
		log.Printf("Warning: failed to publish checkout event for %s: %v", draft.CheckoutID, err)
	}

	return draft, nil
}

// guestID returns the persistent guest identity, generating one on first use.
func (s *CheckoutService) guestID() string {
	if existing, ok := s.store.Get(storage.KeyGuestID); ok && existing != "" {
		return existing
	}
	guestID := newGuestID()
	if err := s.store.Set(storage.KeyGuestID, guestID); err != nil {
		log.Printf("Warning: failed to persist guest id: %v", err)
	}
	return guestID
}

// stashDraft persists every field the payment screen requires, one key per
// field to match the local-storage layout the UI reads.
func (s *CheckoutService) stashDraft(draft *models.CheckoutDraft) error {
	items, err := json.Marshal(draft.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	userID := draft.UserID
	if userID == "" {
		userID = "null"
	}

	values := map[string]string{
		storage.KeyCheckoutID:      draft.CheckoutID,
		storage.KeyDraftGuestID:    draft.GuestID,
		storage.KeyDraftUserID:     userID,
		storage.KeyReferralCode:    draft.ReferralCode,
		storage.KeyCustomerName:    draft.CustomerName,
		storage.KeyCustomerEmail:   draft.CustomerEmail,
		storage.KeyCustomerPhone:   draft.CustomerPhone,
		storage.KeyShippingAddress: draft.ShippingAddress,
		storage.KeyTotalPrice:      strconv.FormatFloat(draft.TotalPrice, 'f', -1, 64),
		storage.KeyServiceFee:      strconv.FormatFloat(draft.ServiceFee, 'f', -1, 64),
		storage.KeyDeliveryFee:     strconv.FormatFloat(draft.DeliveryFee, 'f', -1, 64),
		storage.KeyCartItems:       string(items),
	}
	for key, value := range values {
		if err := s.store.Set(key, value); err != nil {
			return fmt.Errorf("failed to stash checkout draft: %w", err)
		}
	}
	return nil
}
