package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"yenesuq/internal/backend"
	"yenesuq/internal/models"
	"yenesuq/internal/storage"
)

// ErrRefreshInFlight is returned when a profile refresh is requested while
// another one is still running; the guard prevents re-entrant fetches.
var ErrRefreshInFlight = errors.New("profile refresh already in progress")

// AccountService serves the account screen: profile, bank-detail updates and
// referred-order lookups.
type AccountService struct {
	store    storage.Store
	client   backend.Client
	auth     *AuthService
	fetching atomic.Bool
}

// NewAccountService creates a new AccountService.
func NewAccountService(store storage.Store, client backend.Client, auth *AuthService) *AccountService {
	return &AccountService{
		store:  store,
		client: client,
		auth:   auth,
	}
}

// Profile fetches the user's details, caching them locally. A missing token
// is an authentication error; a backend failure yields the fallback profile.
// Only one fetch runs at a time.
func (s *AccountService) Profile(ctx context.Context) (Result[*models.UserDetails], error) {
	if !s.fetching.CompareAndSwap(false, true) {
		return Result[*models.UserDetails]{}, ErrRefreshInFlight
	}
	defer s.fetching.Store(false)

	token, ok := s.auth.Token()
	if !ok {
		return Result[*models.UserDetails]{}, fmt.Errorf("%w: no token found", ErrUnauthenticated)
	}

	user, err := s.client.FetchUser(ctx, token)
	if err != nil {
		log.Printf("Error fetching user details: %v", err)
		return fallback(mockUserDetails(), err), nil
	}

	s.cacheUser(user)
	return live(user), nil
}

// UpdateBankDetails updates the payout bank details, optimistically patching
// the cached profile on success.
func (s *AccountService) UpdateBankDetails(ctx context.Context, bankName, accountNumber string) error {
	if bankName == "" || accountNumber == "" {
		return fmt.Errorf("%w: bank name and account number are required", ErrValidation)
	}
	token, ok := s.auth.Token()
	if !ok {
		return fmt.Errorf("%w: authentication required", ErrUnauthenticated)
	}
	user, ok := s.cachedUser()
	if !ok {
		return fmt.Errorf("%w: authentication required", ErrUnauthenticated)
	}

	if err := s.client.UpdateBankDetails(ctx, token, user.ID, bankName, accountNumber); err != nil {
		return err
	}

	user.BankName = bankName
	user.AccountNumber = accountNumber
	s.cacheUser(user)
	return nil
}

// ReferredOrders lists the orders attributed to the agent's referral code.
func (s *AccountService) ReferredOrders(ctx context.Context) ([]models.Order, error) {
	token, ok := s.auth.Token()
	if !ok {
		return nil, fmt.Errorf("%w: authentication required", ErrUnauthenticated)
	}
	user, ok := s.cachedUser()
	if !ok || user.ReferralCode == "" {
		return nil, fmt.Errorf("%w: no referral code found for your account", ErrValidation)
	}

	orders, err := s.client.FetchOrdersByReferral(ctx, token, user.ReferralCode)
	if err != nil {
		return nil, fmt.Errorf("could not load referred orders: %w", err)
	}
	return orders, nil
}

func (s *AccountService) cachedUser() (*models.UserDetails, bool) {
	raw, ok := s.store.Get(storage.KeyUserData)
	if !ok || raw == "" {
		return nil, false
	}
	var user models.UserDetails
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Printf("Discarding unreadable cached user data: %v", err)
		return nil, false
	}
	return &user, true
}

func (s *AccountService) cacheUser(user *models.UserDetails) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.store.Set(storage.KeyUserData, string(raw)); err != nil {
		log.Printf("Warning: failed to cache user data: %v", err)
	}
}
