package models

// CheckoutInfo is the customer-supplied part of a checkout submission.
type CheckoutInfo struct {
	CustomerName    string `json:"customer_name" validate:"required"`
	CustomerEmail   string `json:"customer_email" validate:"required,email"`
	CustomerPhone   string `json:"customer_phone" validate:"required"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
	ReferralCode    string `json:"referral_code"`
}

// CheckoutItem is the wire shape the checkout endpoint expects per item.
type CheckoutItem struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CheckoutRequest is the payload posted to the backend checkout endpoint.
type CheckoutRequest struct {
	ReferralCode    *string        `json:"referral_code"`
	CustomerName    string         `json:"customer_name"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerPhone   string         `json:"customer_phone"`
	ShippingAddress string         `json:"shipping_address"`
	GuestID         string         `json:"guest_id"`
	UserID          *string        `json:"user_id"`
	DeliveryFee     float64        `json:"delivery_fee"`
	ServiceFee      float64        `json:"service_fee"`
	TotalPrice      float64        `json:"total_price"`
	Items           []CheckoutItem `json:"items"`
}

// CheckoutDraft is the bundle of fields stashed in the local store after a
// successful checkout; the payment screen requires all of them.
type CheckoutDraft struct {
	CheckoutID      string     `json:"checkout_id"`
	GuestID         string     `json:"guest_id"`
	UserID          string     `json:"user_id"`
	ReferralCode    string     `json:"referral_code"`
	CustomerName    string     `json:"customer_name"`
	CustomerEmail   string     `json:"customer_email"`
	CustomerPhone   string     `json:"customer_phone"`
	ShippingAddress string     `json:"shipping_address"`
	TotalPrice      float64    `json:"total_price"`
	ServiceFee      float64    `json:"service_fee"`
	DeliveryFee     float64    `json:"delivery_fee"`
	Items           []CartItem `json:"cart_items"`
}

// Quote is the fee breakdown derived from the current cart contents.
type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	ServiceFee  float64 `json:"service_fee"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}
