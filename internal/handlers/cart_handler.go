package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"yenesuq/internal/models"
	"yenesuq/internal/services"
)

// CartHandler exposes the cart screen operations.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/count", h.HandleGetCount)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the cart contents with the subtotal and badge count.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, err := h.service.Items()
	if err != nil {
		log.Printf("Error reading cart: %v", err)
		return fail(c, "Could not read cart", err)
	}
	return c.JSON(fiber.Map{
		"items":    items,
		"subtotal": models.CartSubtotal(items),
		"count":    models.CartCount(items),
	})
}

// HandleGetCount returns the badge count only.
func (h *CartHandler) HandleGetCount(c *fiber.Ctx) error {
	count, err := h.service.Count()
	if err != nil {
		return fail(c, "Could not read cart", err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// AddItemRequest is the request body for adding a product to the cart.
type AddItemRequest struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// HandleAddItem adds a product to the cart, merging quantities when the
// product is already present.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	result, err := h.service.Add(req.Product, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %d to cart: %v", req.Product.ID, err)
		return fail(c, "Could not add item to cart", err)
	}

	message := result.Item.Title + " added to cart"
	if result.Merged {
		message = "Updated " + result.Item.Title + " quantity in cart"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"item":    result.Item,
		"merged":  result.Merged,
		"warning": result.Warning,
	})
}

// UpdateQuantityRequest carries either an absolute quantity or a stepper
// delta; quantities are floored at 1 either way.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
	Delta    *int `json:"delta"`
}

// HandleUpdateQuantity changes an item's quantity.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item id",
		})
	}

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	switch {
	case req.Quantity != nil:
		err = h.service.SetQuantity(id, *req.Quantity)
	case req.Delta != nil:
		err = h.service.AdjustQuantity(id, *req.Delta)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Either quantity or delta is required",
		})
	}
	if err != nil {
		return fail(c, "Could not update quantity", err)
	}
	return c.JSON(fiber.Map{"message": "Quantity updated"})
}

// HandleRemoveItem removes one item from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item id",
		})
	}
	if err := h.service.Remove(id); err != nil {
		return fail(c, "Could not remove item", err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(); err != nil {
		return fail(c, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
