package storage

import "sync"

// Well-known keys of the local store. These mirror the keys the mobile UI
// reads, including the checkout draft fields bridging checkout and payment.
const (
	KeyToken    = "token"
	KeyUserID   = "userId"
	KeyUserData = "userData"
	KeySellerID = "sellerId"
	KeyCart     = "cart"
	KeyGuestID  = "guestId"

	KeyCheckoutID      = "checkout_id"
	KeyDraftGuestID    = "guest_id"
	KeyDraftUserID     = "user_id"
	KeyReferralCode    = "referral_code"
	KeyCustomerName    = "customer_name"
	KeyCustomerEmail   = "customer_email"
	KeyCustomerPhone   = "customer_phone"
	KeyShippingAddress = "shipping_address"
	KeyTotalPrice      = "total_price"
	KeyCartItems       = "cart_items"
	KeyServiceFee      = "service_fee"
	KeyDeliveryFee     = "delivery_fee"
)

// Store is the device-local persistence layer of the storefront. Values are
// opaque strings; callers JSON-encode structured data. Subscribe registers an
// observer notified with the key after every successful Set or Delete, which
// replaces polling for cross-screen refreshes such as the cart badge.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Subscribe(fn func(key string)) (unsubscribe func())
}

// subscribers implements the observer list shared by Store implementations.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(key string)
}

func (s *subscribers) add(fn func(key string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func(key string))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

func (s *subscribers) notify(key string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}
