package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/hash"
	"github.com/shandysiswandi/talentflow/internal/pkg/otp"
	"github.com/shandysiswandi/talentflow/internal/pkg/testkit"
)

func newStore(t *testing.T, cfg Config) *RedisStore {
	t.Helper()

	rdb := testkit.Redis(t)
	now := clock.Fixed(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	return NewRedisStore(rdb, otp.NewHOTP("TalentFlow"), hash.NewHMACSHA256("test-secret"), now, cfg)
}

func TestRedisStore_IssueAndVerify(t *testing.T) {
	s := newStore(t, Config{})
	ctx := context.Background()

	code, err := s.Issue(ctx, PurposeRegistration, "Ana@Example.com", 6)
	require.NoError(t, err)
	assert.Len(t, code.Value, 6)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC), code.ExpiresAt)

	// case and surrounding space of the email do not matter
	require.NoError(t, s.Verify(ctx, PurposeRegistration, " ana@example.com ", code.Value))

	// consumed
	assert.ErrorIs(t, s.Verify(ctx, PurposeRegistration, "ana@example.com", code.Value), ErrExpired)
}

func TestRedisStore_PurposeIsolation(t *testing.T) {
	s := newStore(t, Config{})
	ctx := context.Background()

	code, err := s.Issue(ctx, PurposeManagerEmail, "rh@empresa.pt", 5)
	require.NoError(t, err)
	assert.Len(t, code.Value, 5)

	assert.ErrorIs(t, s.Verify(ctx, PurposeRegistration, "rh@empresa.pt", code.Value), ErrExpired)
	assert.NoError(t, s.Verify(ctx, PurposeManagerEmail, "rh@empresa.pt", code.Value))
}

func TestRedisStore_WrongCodeThenLockout(t *testing.T) {
	s := newStore(t, Config{MaxAttempts: 2})
	ctx := context.Background()

	code, err := s.Issue(ctx, PurposeRegistration, "joao@example.com", 6)
	require.NoError(t, err)

	wrong := "000000"
	if code.Value == wrong {
		wrong = "111111"
	}

	err = s.Verify(ctx, PurposeRegistration, "joao@example.com", wrong)
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.True(t, goerror.IsCode(err, goerror.CodeInvalidInput))

	assert.ErrorIs(t, s.Verify(ctx, PurposeRegistration, "joao@example.com", wrong), ErrInvalidCode)
	assert.ErrorIs(t, s.Verify(ctx, PurposeRegistration, "joao@example.com", code.Value), ErrTooManyAttempts)
	assert.ErrorIs(t, s.Verify(ctx, PurposeRegistration, "joao@example.com", code.Value), ErrExpired)
}

func TestRedisStore_ReissueInvalidatesPrevious(t *testing.T) {
	s := newStore(t, Config{})
	ctx := context.Background()

	first, err := s.Issue(ctx, PurposeRegistration, "rui@example.com", 6)
	require.NoError(t, err)

	s.clock = clock.Fixed(time.Date(2026, 3, 2, 9, 1, 0, 0, time.UTC))
	second, err := s.Issue(ctx, PurposeRegistration, "rui@example.com", 6)
	require.NoError(t, err)

	if first.Value != second.Value {
		assert.ErrorIs(t, s.Verify(ctx, PurposeRegistration, "rui@example.com", first.Value), ErrInvalidCode)
	}
	assert.NoError(t, s.Verify(ctx, PurposeRegistration, "rui@example.com", second.Value))
}

func TestRedisStore_DailyLimit(t *testing.T) {
	s := newStore(t, Config{DailyLimit: 2})
	ctx := context.Background()

	for range 2 {
		_, err := s.Issue(ctx, PurposeRegistration, "limit@example.com", 6)
		require.NoError(t, err)
	}

	_, err := s.Issue(ctx, PurposeRegistration, "limit@example.com", 6)
	assert.ErrorIs(t, err, ErrDailyLimit)

	_, err = s.Issue(ctx, PurposeRegistration, "other@example.com", 6)
	assert.NoError(t, err)
}
