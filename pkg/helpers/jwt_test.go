package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	tok, exp, err := m.Generate("user-1", "CC12345")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "CC12345", claims.DocumentID)
}

func TestJWT_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	tok, _, err := m.Generate("user-1", "CC12345")
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	m := NewJWTManager("right-secret", time.Hour)
	tok, _, err := m.Generate("user-1", "CC12345")
	require.NoError(t, err)

	other := NewJWTManager("wrong-secret", time.Hour)
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestJWT_Malformed(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	_, err := m.Parse("not.a.token")
	assert.Error(t, err)
}
