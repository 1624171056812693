package services_test

import (
	"context"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"yenesuq/internal/backend"
	"yenesuq/internal/models"
	"yenesuq/internal/services"
	"yenesuq/internal/storage"
)

func newAuthService(mockBackend *MockBackend) (*services.AuthService, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return services.NewAuthService(store, mockBackend), store
}

func TestLoginStoresSession(t *testing.T) {
	mockBackend := new(MockBackend)
	auth, store := newAuthService(mockBackend)

	mockBackend.On("Login", mock.Anything, "abebe@example.com", "secret123").Return(&backend.LoginResult{
		Token: "token-abc",
		User:  models.UserDetails{ID: 12, Name: "Abebe Kebede", Email: "abebe@example.com"},
	}, nil)

	user, err := auth.Login(context.Background(), "abebe@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "Abebe Kebede", user.Name)

	token, ok := store.Get(storage.KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "token-abc", token)
	userID, _ := store.Get(storage.KeyUserID)
	assert.Equal(t, "12", userID)
	cached, _ := store.Get(storage.KeyUserData)
	assert.Contains(t, cached, "Abebe Kebede")
}

func TestLoginWithoutUserPayloadRecoversIDFromToken(t *testing.T) {
	mockBackend := new(MockBackend)
	auth, store := newAuthService(mockBackend)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": float64(42)}).
		SignedString([]byte("irrelevant"))
	assert.NoError(t, err)

	mockBackend.On("Login", mock.Anything, "abebe@example.com", "secret123").Return(&backend.LoginResult{
		Token: token,
	}, nil)

	_, err = auth.Login(context.Background(), "abebe@example.com", "secret123")
	assert.NoError(t, err)

	_, ok := store.Get(storage.KeyUserID)
	assert.False(t, ok, "a zero user id must not be persisted")
	_, ok = store.Get(storage.KeyUserData)
	assert.False(t, ok)

	userID, ok := auth.UserID()
	assert.True(t, ok)
	assert.Equal(t, "42", userID)
}

func TestLoginRequiresCredentials(t *testing.T) {
	mockBackend := new(MockBackend)
	auth, _ := newAuthService(mockBackend)

	_, err := auth.Login(context.Background(), "", "secret123")
	assert.ErrorIs(t, err, services.ErrValidation)
	mockBackend.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterValidation(t *testing.T) {
	mockBackend := new(MockBackend)
	auth, _ := newAuthService(mockBackend)

	err := auth.Register(context.Background(), backend.RegisterRequest{
		Name:     "Abebe Kebede",
		Email:    "not-an-email",
		Phone:    "+251911234567",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, services.ErrValidation)
	mockBackend.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestLogoutClearsSession(t *testing.T) {
	auth, store := newAuthService(new(MockBackend))

	assert.NoError(t, store.Set(storage.KeyToken, "token-abc"))
	assert.NoError(t, store.Set(storage.KeyUserID, "12"))
	assert.NoError(t, store.Set(storage.KeyUserData, "{}"))
	assert.NoError(t, store.Set(storage.KeySellerID, "3"))
	assert.NoError(t, store.Set(storage.KeyCart, "[]"))

	assert.NoError(t, auth.Logout())

	for _, key := range []string{storage.KeyToken, storage.KeyUserID, storage.KeyUserData, storage.KeySellerID} {
		_, ok := store.Get(key)
		assert.False(t, ok, key)
	}
	_, ok := store.Get(storage.KeyCart)
	assert.True(t, ok, "logout must not touch the cart")
}

func TestUserIDRecoveredFromToken(t *testing.T) {
	auth, store := newAuthService(new(MockBackend))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": float64(42)}).
		SignedString([]byte("irrelevant"))
	assert.NoError(t, err)
	assert.NoError(t, store.Set(storage.KeyToken, token))

	userID, ok := auth.UserID()
	assert.True(t, ok)
	assert.Equal(t, "42", userID)
}

func TestUserIDPrefersStoredValue(t *testing.T) {
	auth, store := newAuthService(new(MockBackend))

	assert.NoError(t, store.Set(storage.KeyUserID, "7"))
	userID, ok := auth.UserID()
	assert.True(t, ok)
	assert.Equal(t, "7", userID)
}

func TestGuestIDPersists(t *testing.T) {
	auth, _ := newAuthService(new(MockBackend))

	first, err := auth.GuestID()
	assert.NoError(t, err)
	assert.Contains(t, first, "guest-")

	second, err := auth.GuestID()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
