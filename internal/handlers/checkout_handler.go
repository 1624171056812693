package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"yenesuq/internal/models"
	"yenesuq/internal/services"
)

// CheckoutHandler serves the checkout screen.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Get("/quote", h.HandleQuote)
	checkoutRoutes.Post("/", h.HandleSubmit)
}

// HandleQuote returns the fee breakdown for the current cart.
func (h *CheckoutHandler) HandleQuote(c *fiber.Ctx) error {
	quote, err := h.service.Quote()
	if err != nil {
		log.Printf("Error computing checkout quote: %v", err)
		return fail(c, "Could not compute totals", err)
	}
	return c.JSON(quote)
}

// HandleSubmit validates the customer info and creates the backend order.
// On success the checkout draft is stashed and the cart cleared; the UI
// proceeds to the payment screen.
func (h *CheckoutHandler) HandleSubmit(c *fiber.Ctx) error {
	var info models.CheckoutInfo
	if err := c.BodyParser(&info); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	draft, err := h.service.Submit(c.Context(), info)
	if err != nil {
		log.Printf("Error submitting checkout: %v", err)
		return fail(c, "Checkout failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Checkout successful",
		"checkout_id": draft.CheckoutID,
		"guest_id":    draft.GuestID,
		"total_price": draft.TotalPrice,
		"redirect":    "/payment",
	})
}
