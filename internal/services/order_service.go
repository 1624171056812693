package services

import (
	"context"
	"fmt"
	"log"

	"yenesuq/internal/backend"
	"yenesuq/internal/models"
)

// OrderService serves the order-history screen.
type OrderService struct {
	client backend.Client
	auth   *AuthService
}

// NewOrderService creates a new OrderService.
func NewOrderService(client backend.Client, auth *AuthService) *OrderService {
	return &OrderService{
		client: client,
		auth:   auth,
	}
}

// History lists the authenticated user's orders. A missing token is an
// authentication error (the UI redirects to login); a backend failure yields
// the fallback dataset.
func (s *OrderService) History(ctx context.Context) (Result[[]models.Order], error) {
	token, ok := s.auth.Token()
	if !ok {
		return Result[[]models.Order]{}, fmt.Errorf("%w: please login to view your orders", ErrUnauthenticated)
	}
	userID, ok := s.auth.UserID()
	if !ok {
		return Result[[]models.Order]{}, fmt.Errorf("%w: please login to view your orders", ErrUnauthenticated)
	}

	orders, err := s.client.FetchOrders(ctx, token, userID)
	if err != nil {
		log.Printf("Error fetching orders for user %s: %v", userID, err)
		return fallback(mockOrders(), err), nil
	}
	return live(orders), nil
}
