package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"yenesuq/internal/services"
)

// OrderHandler serves the order-history screen.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
}

// HandleGetOrders lists the authenticated user's orders, serving the
// fallback dataset when the backend is unreachable.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	result, err := h.service.History(c.Context())
	if err != nil {
		log.Printf("Error fetching order history: %v", err)
		return fail(c, "Please login to view your orders", err)
	}
	return c.JSON(resultBody(result))
}
