package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"

	"yenesuq/internal/models"
	"yenesuq/internal/storage"
	"yenesuq/pkg/events"
)

// CartService owns the locally persisted cart. Every mutation re-serializes
// the whole list under the cart key, so store subscribers (the badge) see
// each change, and publishes a cart.updated event.
type CartService struct {
	store    storage.Store
	mqClient *events.Client
}

// NewCartService creates a new CartService. mqClient may be nil.
func NewCartService(store storage.Store, mqClient *events.Client) *CartService {
	return &CartService{
		store:    store,
		mqClient: mqClient,
	}
}

// AddResult reports what an Add did so the UI can phrase its notice.
type AddResult struct {
	Item    models.CartItem `json:"item"`
	Merged  bool            `json:"merged"`
	Warning string          `json:"warning,omitempty"`
}

// Add puts a product into the cart. Out-of-stock products are rejected and
// limited stock produces a warning. A product already in the cart (by id)
// has its quantity merged rather than duplicated.
func (s *CartService) Add(product models.Product, quantity int) (*AddResult, error) {
	if product.Stock == models.StockOut {
		return nil, fmt.Errorf("%w: %s is out of stock", ErrValidation, product.Title)
	}
	if math.IsNaN(product.Price) || math.IsInf(product.Price, 0) {
		return nil, fmt.Errorf("%w: invalid price for %s", ErrValidation, product.Title)
	}
	if quantity < 1 {
		quantity = 1
	}

	items, err := s.Items()
	if err != nil {
		return nil, err
	}

	result := &AddResult{}
	if product.Stock == models.StockLimited {
		result.Warning = fmt.Sprintf("%s has limited stock", product.Title)
	}

	merged := false
	for i := range items {
		if items[i].ID == product.ID {
			items[i].Quantity += quantity
			result.Item = items[i]
			merged = true
			break
		}
	}
	if !merged {
		item := models.CartItem{
			ID:         product.ID,
			Title:      product.Title,
			Price:      product.Price,
			Quantity:   quantity,
			Image:      product.ImageURL,
			ProductFor: product.ProductFor,
		}
		items = append(items, item)
		result.Item = item
	}
	result.Merged = merged

	if err := s.save(items); err != nil {
		return nil, err
	}
	return result, nil
}

// Remove deletes an item by id. Removing an absent id is not an error.
func (s *CartService) Remove(id int) error {
	items, err := s.Items()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return s.save(kept)
}

// SetQuantity sets an item's quantity from direct input, floored at 1.
func (s *CartService) SetQuantity(id, quantity int) error {
	return s.updateQuantity(id, func(int) int { return quantity })
}

// AdjustQuantity applies a stepper delta to an item's quantity, floored at 1.
func (s *CartService) AdjustQuantity(id, delta int) error {
	return s.updateQuantity(id, func(current int) int { return current + delta })
}

func (s *CartService) updateQuantity(id int, next func(current int) int) error {
	items, err := s.Items()
	if err != nil {
		return err
	}
	found := false
	for i := range items {
		if items[i].ID == id {
			quantity := next(items[i].Quantity)
			if quantity < 1 {
				quantity = 1
			}
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: item %d is not in the cart", ErrValidation, id)
	}
	return s.save(items)
}

// Clear empties the persisted cart.
func (s *CartService) Clear() error {
	if err := s.store.Delete(storage.KeyCart); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.publishCount(0)
	return nil
}

// Items returns the current cart contents. A missing or corrupt cart key
// yields an empty cart.
func (s *CartService) Items() ([]models.CartItem, error) {
	raw, ok := s.store.Get(storage.KeyCart)
	if !ok || raw == "" {
		return []models.CartItem{}, nil
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("Discarding unreadable cart contents: %v", err)
		return []models.CartItem{}, nil
	}
	return items, nil
}

// Count returns the badge count: the sum of all quantities.
func (s *CartService) Count() (int, error) {
	items, err := s.Items()
	if err != nil {
		return 0, err
	}
	return models.CartCount(items), nil
}

// Subtotal returns the sum of line totals.
func (s *CartService) Subtotal() (float64, error) {
	items, err := s.Items()
	if err != nil {
		return 0, err
	}
	return models.CartSubtotal(items), nil
}

func (s *CartService) save(items []models.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.store.Set(storage.KeyCart, string(raw)); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	s.publishCount(models.CartCount(items))
	return nil
}

func (s *CartService) publishCount(count int) {
	if err := s.mqClient.Publish(events.CartUpdated, map[string]interface{}{"count": count}); err != nil {
		log.Printf("Warning: failed to publish cart update: %v", err)
	}
}
