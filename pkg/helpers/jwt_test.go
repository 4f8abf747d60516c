package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	tok, exp, err := m.GenerateAccessToken("user-1")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "user-1", claims.Subject)
}

func TestJWTManager_RejectsOtherSecret(t *testing.T) {
	tok, _, err := NewJWTManager("secret-a", time.Hour).GenerateAccessToken("user-1")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).ParseAccessToken(tok)
	require.Error(t, err)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	tok, _, err := m.GenerateAccessToken("user-1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccessToken(tok)
	require.Error(t, err)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	_, err := NewJWTManager("secret", time.Hour).ParseAccessToken("not.a.token")
	require.Error(t, err)
}
