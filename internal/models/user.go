package models

// UserDetails is the account profile served by the backend.
type UserDetails struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	WalletBalance float64 `json:"wallet_balance"`
	BankName      string  `json:"bank_name,omitempty"`
	AccountNumber string  `json:"account_number,omitempty"`
	Agent         bool    `json:"agent,omitempty"`
	ReferralCode  string  `json:"referral_code,omitempty"`
}
