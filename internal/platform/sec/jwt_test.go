// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanctorale/sanctorale/internal/platform/sec"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

/*
TestTokenService_RoundTrip signs and verifies a token with custom claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "sanctorale.test")

	token, err := service.GenerateAccessToken("42", "curator", "editor", []string{"delete saints"}, time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "curator", claims.Username)
	assert.Equal(t, "editor", claims.Role)
	assert.Equal(t, []string{"delete saints"}, claims.Permissions)
}

/*
TestTokenService_Rejections covers expiry, foreign keys and wrong issuers.
*/
func TestTokenService_Rejections(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "sanctorale.test")

	expired, err := service.GenerateAccessToken("1", "u", "admin", nil, -time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	other := newKey(t)
	foreign, err := sec.NewTokenServiceFromKeys(other, &other.PublicKey, "sanctorale.test").
		GenerateAccessToken("1", "u", "admin", nil, time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(foreign)
	assert.Error(t, err)

	wrongIssuer, err := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "elsewhere").
		GenerateAccessToken("1", "u", "admin", nil, time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(wrongIssuer)
	assert.Error(t, err)

	_, err = service.VerifyToken("not-a-jwt")
	assert.Error(t, err)
}

/*
TestTokenService_VerifyOnly refuses to sign without a private key.
*/
func TestTokenService_VerifyOnly(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenServiceFromKeys(nil, &key.PublicKey, "sanctorale.test")

	_, err := service.GenerateAccessToken("1", "u", "admin", nil, time.Minute)
	assert.ErrorIs(t, err, sec.ErrSigningDisabled)
}

/*
TestUserRole_IsValid accepts only the known roles.
*/
func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, sec.RoleAdmin.IsValid())
	assert.True(t, sec.RoleEditor.IsValid())
	assert.True(t, sec.RoleViewer.IsValid())
	assert.False(t, sec.UserRole("root").IsValid())
}
