package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"yenesuq/internal/services"
)

// CatalogHandler serves the browsing screens: categories, shop, subcategory
// listings, new arrivals and product detail.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	catalogRoutes := router.Group("/catalog")
	catalogRoutes.Get("/categories", h.HandleCategories)
	catalogRoutes.Get("/products", h.HandleProducts)
	catalogRoutes.Get("/products/new-arrivals", h.HandleNewArrivals)
	catalogRoutes.Get("/products/:id", h.HandleProductDetail)
	catalogRoutes.Get("/subcategories/:id/products", h.HandleSubcategoryProducts)
}

// HandleCategories lists the catalog categories with subcategories.
func (h *CatalogHandler) HandleCategories(c *fiber.Ctx) error {
	result := h.service.Categories(c.Context())
	return c.JSON(resultBody(result))
}

// HandleProducts lists shop products, filtered by audience mode and an
// optional search query.
func (h *CatalogHandler) HandleProducts(c *fiber.Ctx) error {
	mode := c.Query("mode")
	query := c.Query("q")
	result := h.service.Products(c.Context(), mode, query)
	return c.JSON(resultBody(result))
}

// HandleNewArrivals lists the latest products.
func (h *CatalogHandler) HandleNewArrivals(c *fiber.Ctx) error {
	result := h.service.NewArrivals(c.Context())
	return c.JSON(resultBody(result))
}

// HandleProductDetail retrieves a single product.
func (h *CatalogHandler) HandleProductDetail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
		})
	}
	result := h.service.ProductDetail(c.Context(), id)
	return c.JSON(resultBody(result))
}

// HandleSubcategoryProducts lists the products of one subcategory.
func (h *CatalogHandler) HandleSubcategoryProducts(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid subcategory id",
		})
	}
	result := h.service.SubcategoryProducts(c.Context(), id)
	return c.JSON(resultBody(result))
}
