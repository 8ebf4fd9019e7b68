package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, "nuria@atelierworks.app",
		[]string{"admin"}, []string{"manage-leads", "manage-invoices"})
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "nuria@atelierworks.app", claims.Email)
	assert.Contains(t, claims.Permissions, "manage-invoices")
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "a@b.c", nil, nil)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestAccessTokenExpires(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "a@b.c", nil, nil)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	parsed, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "estudio-norte", Slugify("Estudio Norte"))
	assert.Equal(t, "atelier-23", Slugify("  Atelier  #23!  "))
	assert.Equal(t, "casa-blanca", Slugify("Casa---Blanca"))
}

func TestReferenceGenerators(t *testing.T) {
	inv := GenerateInvoiceNo("INV-")
	assert.Len(t, inv, len("INV-")+8)
	assert.Equal(t, "INV-", inv[:4])

	pre := GeneratePreBudgetReference("PRE-")
	assert.Equal(t, "PRE-", pre[:4])

	assert.NotEqual(t, GenerateSKU(), GenerateSKU())
}
