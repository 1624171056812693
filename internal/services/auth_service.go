package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"yenesuq/internal/backend"
	"yenesuq/internal/models"
	"yenesuq/internal/storage"
)

// AuthService handles login/registration passthrough and the locally stored
// session. Tokens are opaque bearer credentials issued by the backend; the
// storefront only checks their presence.
type AuthService struct {
	store    storage.Store
	client   backend.Client
	validate *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(store storage.Store, client backend.Client) *AuthService {
	return &AuthService{
		store:    store,
		client:   client,
		validate: validator.New(),
	}
}

// Login authenticates against the backend and stores the session keys.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.UserDetails, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(storage.KeyToken, result.Token); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	// Some login responses omit the user object; UserID then recovers the id
	// from the token claims instead of a stored zero.
	if result.User.ID != 0 {
		if err := s.store.Set(storage.KeyUserID, strconv.Itoa(result.User.ID)); err != nil {
			return nil, fmt.Errorf("failed to store session: %w", err)
		}
		if raw, err := json.Marshal(result.User); err == nil {
			if err := s.store.Set(storage.KeyUserData, string(raw)); err != nil {
				log.Printf("Warning: failed to cache user data: %v", err)
			}
		}
	}
	return &result.User, nil
}

// Register creates a new account; the user logs in afterwards.
func (s *AuthService) Register(ctx context.Context, req backend.RegisterRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.client.Register(ctx, req)
}

// Logout clears the session keys.
func (s *AuthService) Logout() error {
	for _, key := range []string{storage.KeyToken, storage.KeySellerID, storage.KeyUserID, storage.KeyUserData} {
		if err := s.store.Delete(key); err != nil {
			return fmt.Errorf("failed to clear session key %s: %w", key, err)
		}
	}
	return nil
}

// Token returns the stored bearer token, if any.
func (s *AuthService) Token() (string, bool) {
	token, ok := s.store.Get(storage.KeyToken)
	return token, ok && token != ""
}

// UserID returns the stored user id. When the key is absent but a token is
// present, the JWT claims are decoded without verification purely to recover
// the id for display.
func (s *AuthService) UserID() (string, bool) {
	if userID, ok := s.store.Get(storage.KeyUserID); ok && userID != "" {
		return userID, true
	}
	token, ok := s.Token()
	if !ok {
		return "", false
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return "", false
	}
	for _, name := range []string{"user_id", "id"} {
		switch id := claims[name].(type) {
		case string:
			if id != "" {
				return id, true
			}
		case float64:
			return strconv.Itoa(int(id)), true
		}
	}
	return "", false
}

// GuestID returns the persistent guest identity, generating one on first use.
func (s *AuthService) GuestID() (string, error) {
	if existing, ok := s.store.Get(storage.KeyGuestID); ok && existing != "" {
		return existing, nil
	}
	guestID := newGuestID()
	if err := s.store.Set(storage.KeyGuestID, guestID); err != nil {
		return "", fmt.Errorf("failed to persist guest id: %w", err)
	}
	return guestID, nil
}

func newGuestID() string {
	return "guest-" + uuid.NewString()
}
