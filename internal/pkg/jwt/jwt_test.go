package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type staticID string

func (s staticID) Generate() string { return string(s) }

func newSymmetric(t *testing.T, clk *fixedClock) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:    []byte(strings.Repeat("k", 64)),
		Issuer:    "talentflow",
		Audiences: []string{"talentflow-web"},
		TTL:       15 * time.Minute,
		Clock:     clk,
		UUID:      staticID("0190b6a4-0000-7000-8000-000000000001"),
	})
	require.NoError(t, err)

	return s
}

func TestNewHS512_ShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS512(Config{Secret: []byte("short")})
	assert.ErrorIs(t, err, ErrSigningKeyTooShort)
}

func TestSymmetric_RoundTrip(t *testing.T) {
	t.Parallel()

	clk := &fixedClock{now: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	s := newSymmetric(t, clk)

	token, err := s.Generate(Subject{UserID: 42, Email: "ana@example.com", UserType: "employee"})
	require.NoError(t, err)

	clm, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), clm.UserID)
	assert.Equal(t, "42", clm.Subject)
	assert.Equal(t, "ana@example.com", clm.UserEmail)
	assert.Equal(t, "employee", clm.UserType)
	assert.Equal(t, "0190b6a4-0000-7000-8000-000000000001", clm.ID)
	assert.Equal(t, 10*time.Minute, clm.TTL(clk.now.Add(5*time.Minute)))
}

func TestSymmetric_Expired(t *testing.T) {
	t.Parallel()

	clk := &fixedClock{now: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	s := newSymmetric(t, clk)

	token, err := s.Generate(Subject{UserID: 1, UserType: "admin"})
	require.NoError(t, err)

	clk.now = clk.now.Add(time.Hour)
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSymmetric_Tampered(t *testing.T) {
	t.Parallel()

	s := newSymmetric(t, &fixedClock{now: time.Now()})

	token, err := s.Generate(Subject{UserID: 1, UserType: "company"})
	require.NoError(t, err)

	_, err = s.Verify(token + "x")
	assert.Error(t, err)
}

func TestAuthContext(t *testing.T) {
	t.Parallel()

	assert.Nil(t, GetAuth(context.Background()))

	ctx := SetAuth(context.Background(), Claims{UserID: 9, UserType: "company"})
	clm := GetAuth(ctx)
	require.NotNil(t, clm)
	assert.Equal(t, "company", clm.UserType)
}
