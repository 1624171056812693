package models

// Stock status values used by the backend catalog.
const (
	StockIn      = "in_stock"
	StockLimited = "limited_stock"
	StockOut     = "out_of_stock"
)

// Product audience filters accepted by the product listing endpoint.
const (
	ForUser   = "for_user"
	ForSeller = "for_seller"
)

// Product represents a catalog product as served by the backend.
// Image carries the raw backend value (a quoted list, an absolute URL or a
// bare path); ImageURL and Images hold the normalized absolute URLs.
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Name        string   `json:"name,omitempty"` // some endpoints use name instead of title
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"catItems,omitempty"`
	Stock       string   `json:"stock,omitempty"`
	ProductFor  string   `json:"productfor,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Image       string   `json:"image,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Images      []string `json:"images,omitempty"`

	// Per-location overrides, JSON-encoded maps keyed by location name.
	LocationPrices string `json:"location_prices,omitempty"`
	LocationStock  string `json:"location_stock,omitempty"`
	LocationName   string `json:"location_name,omitempty"`
}
