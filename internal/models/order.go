package models

// OrderItem is a single line of a placed order.
type OrderItem struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// Order represents a customer order fetched from the backend.
type Order struct {
	ID              int         `json:"id"`
	OrderNumber     string      `json:"order_number"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentStatus   string      `json:"payment_status"` // pending, paid, failed, refunded
	OrderStatus     string      `json:"order_status"`   // processing, confirmed, shipped, delivered, cancelled
	CreatedAt       string      `json:"created_at"`
	Items           []OrderItem `json:"items"`
	ShippingAddress string      `json:"shipping_address"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryFee     float64     `json:"delivery_fee"`
	ServiceFee      float64     `json:"service_fee"`
}
