package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"yenesuq/internal/backend"
	"yenesuq/internal/models"
)

// Source says where a fetch result came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Result is the outcome of a catalog fetch. On backend failure Data holds
// the documented fallback dataset, Source is SourceFallback and Err keeps
// the original error, so screens always render something.
type Result[T any] struct {
	Data   T
	Source Source
	Err    error
}

func live[T any](data T) Result[T] {
	return Result[T]{Data: data, Source: SourceLive}
}

func fallback[T any](data T, err error) Result[T] {
	return Result[T]{Data: data, Source: SourceFallback, Err: err}
}

const imagePlaceholder = "/placeholder.svg?height=300&width=300"

// CatalogService serves the browsing screens: categories, shop, subcategory
// listings, new arrivals and product detail. Each operation is a single
// fetch with the shared fallback behavior; there are no retries.
type CatalogService struct {
	client  backend.Client
	baseURL string
}

// NewCatalogService creates a CatalogService. baseURL is used to absolutize
// relative image paths returned by the backend.
func NewCatalogService(client backend.Client, baseURL string) *CatalogService {
	if baseURL == "" {
		baseURL = backend.DefaultBaseURL
	}
	return &CatalogService{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Categories lists the catalog categories with subcategories.
func (s *CatalogService) Categories(ctx context.Context) Result[[]models.Category] {
	categories, err := s.client.FetchCategories(ctx)
	if err != nil {
		log.Printf("Error fetching categories: %v", err)
		return fallback(mockCategories(), err)
	}
	for i := range categories {
		categories[i].Image = s.imageURL(categories[i].Image)
		for j := range categories[i].Subcats {
			categories[i].Subcats[j].Image = s.imageURL(categories[i].Subcats[j].Image)
		}
	}
	return live(categories)
}

// Products lists shop products for the given audience mode, merging approved
// seller products into the for_user listing. A seller-listing failure only
// logs a warning; the main listing failure triggers the fallback dataset.
// The search query filters title, description and category locally.
func (s *CatalogService) Products(ctx context.Context, mode, searchQuery string) Result[[]models.Product] {
	if mode == "" {
		mode = models.ForUser
	}

	var sellerProducts []models.Product
	if mode == models.ForUser {
		approved, err := s.client.FetchApprovedSellerProducts(ctx)
		if err != nil {
			log.Printf("Warning: failed to fetch seller products: %v", err)
		} else {
			for i := range approved {
				approved[i].ProductFor = models.ForUser
			}
			sellerProducts = approved
		}
	}

	products, err := s.client.FetchProducts(ctx, backend.ProductQuery{Mode: mode})
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		mocks := filterByMode(mockProducts(), mode)
		s.normalize(mocks)
		return fallback(filterBySearch(mocks, searchQuery), fmt.Errorf("failed to fetch products for %s: %w", mode, err))
	}

	combined := append(products, sellerProducts...)
	s.normalize(combined)
	return live(filterBySearch(combined, searchQuery))
}

// SubcategoryProducts lists the products of one subcategory.
func (s *CatalogService) SubcategoryProducts(ctx context.Context, subcatID int) Result[[]models.Product] {
	products, err := s.client.FetchProducts(ctx, backend.ProductQuery{Subcat: subcatID})
	if err != nil {
		log.Printf("Error fetching subcategory %d products: %v", subcatID, err)
		mocks := mockSubcategoryProducts()
		s.normalize(mocks)
		return fallback(mocks, err)
	}
	s.normalize(products)
	return live(products)
}

// NewArrivals lists the four latest products.
func (s *CatalogService) NewArrivals(ctx context.Context) Result[[]models.Product] {
	products, err := s.client.FetchProducts(ctx, backend.ProductQuery{Latest: true, Limit: 4})
	if err != nil {
		log.Printf("Error fetching new arrivals: %v", err)
		mocks := mockNewArrivals()
		s.normalize(mocks)
		return fallback(mocks, err)
	}
	s.normalize(products)
	return live(products)
}

// ProductDetail retrieves one product with its full image list and
// location-based price/stock overrides applied.
func (s *CatalogService) ProductDetail(ctx context.Context, id int) Result[*models.Product] {
	product, err := s.client.FetchProduct(ctx, id)
	if err != nil {
		log.Printf("Error fetching product %d: %v", id, err)
		mock := mockProductDetail(id)
		s.normalizeDetail(mock)
		return fallback(mock, err)
	}
	s.normalizeDetail(product)
	return live(product)
}

// normalize fills Title and ImageURL on listing products.
func (s *CatalogService) normalize(products []models.Product) {
	for i := range products {
		if products[i].Title == "" {
			products[i].Title = products[i].Name
		}
		products[i].ImageURL = s.imageURL(products[i].Image)
		if products[i].Image == "" && products[i].ImageURL == imagePlaceholder && len(products[i].Images) > 0 {
			products[i].ImageURL = products[i].Images[0]
		}
	}
}

// normalizeDetail fills Images and applies the location overrides. The
// "Addis Ababa" entry wins when present.
func (s *CatalogService) normalizeDetail(product *models.Product) {
	if product == nil {
		return
	}
	if product.Title == "" {
		product.Title = product.Name
	}

	if len(product.Images) == 0 {
		if paths, ok := parseImageList(product.Image); ok {
			product.Images = make([]string, 0, len(paths))
			for _, path := range paths {
				product.Images = append(product.Images, s.absolutize(path))
			}
		} else {
			product.Images = []string{s.imageURL(product.Image)}
		}
	}
	product.ImageURL = product.Images[0]

	if product.LocationPrices != "" {
		var prices map[string]float64
		if err := json.Unmarshal([]byte(product.LocationPrices), &prices); err != nil {
			log.Printf("Warning: unreadable location prices for %s: %v", product.Title, err)
		} else if price, ok := prices["Addis Ababa"]; ok {
			product.Price = price
		}
	}
	if product.LocationStock != "" {
		var stock map[string]string
		if err := json.Unmarshal([]byte(product.LocationStock), &stock); err != nil {
			log.Printf("Warning: unreadable location stock for %s: %v", product.Title, err)
		} else if status, ok := stock["Addis Ababa"]; ok && status != "" {
			product.Stock = status
		}
	}
}

// imageURL normalizes the backend image field to an absolute URL. The field
// may be a quoted list like ['a.jpg','b.jpg'], an absolute URL, a bare path
// or empty.
func (s *CatalogService) imageURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return imagePlaceholder
	}
	if paths, ok := parseImageList(raw); ok {
		if len(paths) == 0 {
			return imagePlaceholder
		}
		return s.absolutize(paths[0])
	}
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return s.absolutize(raw)
}

func (s *CatalogService) absolutize(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.baseURL + path
}

// parseImageList decodes a JSON-ish array of image paths, tolerating the
// single-quoted form the backend emits.
func parseImageList(raw string) ([]string, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	var paths []string
	if err := json.Unmarshal([]byte(strings.ReplaceAll(trimmed, "'", `"`)), &paths); err != nil {
		return nil, false
	}
	return paths, true
}

func filterByMode(products []models.Product, mode string) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, product := range products {
		if product.ProductFor == mode {
			filtered = append(filtered, product)
		}
	}
	return filtered
}

func filterBySearch(products []models.Product, query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products
	}
	filtered := make([]models.Product, 0, len(products))
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Title), query) ||
			strings.Contains(strings.ToLower(product.Description), query) ||
			strings.Contains(strings.ToLower(product.Category), query) {
			filtered = append(filtered, product)
		}
	}
	return filtered
}
