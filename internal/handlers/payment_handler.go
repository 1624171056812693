package handlers

import (
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"yenesuq/internal/services"
)

// PaymentHandler serves the manual bank-transfer payment screen.
type PaymentHandler struct {
	service *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers the payment routes with the Fiber app.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentRoutes := router.Group("/payment")
	paymentRoutes.Get("/", h.HandleGetPayment)
	paymentRoutes.Post("/", h.HandleSubmit)
}

// HandleGetPayment returns the transfer destinations and the stashed totals
// the screen displays.
func (h *PaymentHandler) HandleGetPayment(c *fiber.Ctx) error {
	accounts, holder := h.service.BankAccounts()
	body := fiber.Map{
		"payment_method": services.DefaultPaymentMethod,
		"bank_accounts":  accounts,
		"account_holder": holder,
	}
	draft, err := h.service.Draft()
	if err != nil {
		// The screen still renders; submission will re-check the draft.
		body["error"] = err.Error()
	} else {
		body["total_price"] = draft.TotalPrice
		body["checkout_id"] = draft.CheckoutID
	}
	return c.JSON(body)
}

// HandleSubmit accepts the multipart payment submission with the
// proof-of-payment screenshot.
func (h *PaymentHandler) HandleSubmit(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("payment_screenshot")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please upload the payment screenshot",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening payment screenshot: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read the payment screenshot",
			"error":   err.Error(),
		})
	}
	defer file.Close()

	screenshot, err := io.ReadAll(io.LimitReader(file, services.MaxScreenshotSize+1))
	if err != nil {
		log.Printf("Error reading payment screenshot: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read the payment screenshot",
			"error":   err.Error(),
		})
	}

	method := c.FormValue("payment_method")
	if err := h.service.Submit(c.Context(), method, fileHeader.Filename, screenshot); err != nil {
		log.Printf("Error submitting payment: %v", err)
		return fail(c, "Error submitting payment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Payment submitted successfully",
		"redirect": "/orders",
	})
}
