package models

// CartItem is a single line in the locally persisted cart.
type CartItem struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Image      string  `json:"image"`
	ProductFor string  `json:"productfor,omitempty"`
}

// LineTotal returns price * quantity for this item.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartSubtotal sums the line totals of all items.
func CartSubtotal(items []CartItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	return subtotal
}

// CartCount sums the quantities of all items.
func CartCount(items []CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
