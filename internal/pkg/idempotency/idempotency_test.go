package idempotency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/talentflow/internal/pkg/testkit"
)

func TestTracker_Exec(t *testing.T) {
	client := testkit.Redis(t)
	tr := New(client)
	ctx := context.Background()

	t.Run("runs once then reports completed", func(t *testing.T) {
		calls := 0
		fn := func(context.Context) error { calls++; return nil }

		require.NoError(t, tr.Exec(ctx, "assign", "k-1", fn))
		assert.ErrorIs(t, tr.Exec(ctx, "assign", "k-1", fn), ErrAlreadyCompleted)
		assert.Equal(t, 1, calls)
	})

	t.Run("failure is remembered", func(t *testing.T) {
		errBoom := errors.New("boom")

		err := tr.Exec(ctx, "assign", "k-2", func(context.Context) error { return errBoom })
		assert.ErrorIs(t, err, errBoom)

		err = tr.Exec(ctx, "assign", "k-2", func(context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrAlreadyFailed)
	})

	t.Run("scopes are independent", func(t *testing.T) {
		fn := func(context.Context) error { return nil }

		require.NoError(t, tr.Exec(ctx, "a", "same", fn))
		require.NoError(t, tr.Exec(ctx, "b", "same", fn))
	})

	t.Run("in progress", func(t *testing.T) {
		err := tr.Exec(ctx, "assign", "k-3", func(ctx context.Context) error {
			return tr.Exec(ctx, "assign", "k-3", func(context.Context) error { return nil })
		})
		assert.ErrorIs(t, err, ErrAlreadyInProgress)
	})
}

func TestTracker_Exec_MissingKey(t *testing.T) {
	t.Parallel()

	tr := New(nil)
	err := tr.Exec(context.Background(), "assign", "  ", func(context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrMissingKey)
}
