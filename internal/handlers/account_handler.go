package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"yenesuq/internal/services"
)

// AccountHandler serves the account screen: profile, bank-detail updates and
// referred-order lookups.
type AccountHandler struct {
	service *services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterRoutes registers the account routes with the Fiber app.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	accountRoutes := router.Group("/account")
	accountRoutes.Get("/", h.HandleGetProfile)
	accountRoutes.Put("/bank", h.HandleUpdateBankDetails)
	accountRoutes.Get("/referred-orders", h.HandleGetReferredOrders)
}

// HandleGetProfile fetches the user's details.
func (h *AccountHandler) HandleGetProfile(c *fiber.Ctx) error {
	result, err := h.service.Profile(c.Context())
	if err != nil {
		log.Printf("Error fetching profile: %v", err)
		return fail(c, "Failed to fetch user details", err)
	}
	return c.JSON(resultBody(result))
}

// BankDetailsRequest is the request body for a bank-detail update.
type BankDetailsRequest struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
}

// HandleUpdateBankDetails updates the payout bank details.
func (h *AccountHandler) HandleUpdateBankDetails(c *fiber.Ctx) error {
	var req BankDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing bank details request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.UpdateBankDetails(c.Context(), req.BankName, req.AccountNumber); err != nil {
		log.Printf("Error updating bank details: %v", err)
		return fail(c, "Failed to update bank details", err)
	}
	return c.JSON(fiber.Map{"message": "Bank details updated successfully"})
}

// HandleGetReferredOrders lists the orders attributed to the agent's
// referral code.
func (h *AccountHandler) HandleGetReferredOrders(c *fiber.Ctx) error {
	orders, err := h.service.ReferredOrders(c.Context())
	if err != nil {
		log.Printf("Error fetching referred orders: %v", err)
		return fail(c, "Could not load referred orders", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}
