package otpflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
)

type manualTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }

func (m *manualTicker) Stop() { m.stopped.Store(true) }

type tickerRecorder struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (r *tickerRecorder) factory(time.Duration) Ticker {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := &manualTicker{ch: make(chan time.Time)}
	r.tickers = append(r.tickers, t)
	return t
}

func (r *tickerRecorder) last() *manualTicker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.tickers) == 0 {
		return nil
	}
	return r.tickers[len(r.tickers)-1]
}

func okVerify(context.Context, string, string) error { return nil }

func newTestFlow(t *testing.T, cfg Config) (*Flow, *tickerRecorder) {
	t.Helper()

	rec := &tickerRecorder{}
	if cfg.Verify == nil {
		cfg.Verify = okVerify
	}
	if cfg.Resend == nil {
		cfg.Resend = func(context.Context, string) error { return nil }
	}
	cfg.NewTicker = rec.factory

	f, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(f.Close)

	return f, rec
}

func fill(f *Flow, code string) {
	for i, r := range code {
		f.SetDigit(i, string(r))
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrMissingVerifier)

	f, err := New(Config{Verify: okVerify})
	require.NoError(t, err)
	defer f.Close()

	st := f.State()
	assert.Equal(t, DefaultLength, st.Length)
	assert.Equal(t, []string{"", "", "", "", "", ""}, st.Digits)
	assert.False(t, st.Complete)
}

func TestFlow_SetDigit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		index      int
		raw        string
		wantDigits []string
		wantFocus  Focus
	}{
		{
			name:       "digit advances focus",
			index:      0,
			raw:        "7",
			wantDigits: []string{"7", "", "", "", ""},
			wantFocus:  Focus{Index: 1, Moved: true},
		},
		{
			name:       "keeps last digit of multiple",
			index:      2,
			raw:        "12a",
			wantDigits: []string{"", "", "2", "", ""},
			wantFocus:  Focus{Index: 3, Moved: true},
		},
		{
			name:       "non digits clear the cell",
			index:      1,
			raw:        "ab",
			wantDigits: []string{"", "", "", "", ""},
			wantFocus:  Focus{Index: 0},
		},
		{
			name:       "last cell keeps focus",
			index:      4,
			raw:        "9",
			wantDigits: []string{"", "", "", "", "9"},
			wantFocus:  Focus{Index: 0},
		},
		{
			name:       "out of range is ignored",
			index:      5,
			raw:        "1",
			wantDigits: []string{"", "", "", "", ""},
			wantFocus:  Focus{Index: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, _ := newTestFlow(t, Config{Length: 5})

			got := f.SetDigit(tt.index, tt.raw)

			assert.Equal(t, tt.wantFocus, got)
			assert.Equal(t, tt.wantDigits, f.State().Digits)
		})
	}
}

func TestFlow_SetDigit_ClearKeepsOthers(t *testing.T) {
	t.Parallel()

	f, _ := newTestFlow(t, Config{})
	fill(f, "123456")

	f.SetDigit(3, "")

	assert.Equal(t, []string{"1", "2", "3", "", "5", "6"}, f.State().Digits)
	assert.False(t, f.IsComplete())
}

func TestFlow_IsComplete(t *testing.T) {
	t.Parallel()

	f, _ := newTestFlow(t, Config{})
	fill(f, "12345")
	assert.False(t, f.IsComplete())

	f.SetDigit(5, "6")
	assert.True(t, f.IsComplete())
	assert.Equal(t, "123456", f.Code())
}

func TestFlow_HandlePaste(t *testing.T) {
	t.Parallel()

	t.Run("strips and truncates", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFlow(t, Config{})
		got := f.HandlePaste("12a3456789")

		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, f.State().Digits)
		assert.False(t, got.Moved)
	})

	t.Run("mixed input", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFlow(t, Config{})
		f.HandlePaste("12a3456")

		assert.Equal(t, "123456", f.Code())
		assert.True(t, f.IsComplete())
	})

	t.Run("short paste focuses first empty cell", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFlow(t, Config{})
		f.SetDigit(4, "9")
		got := f.HandlePaste("4-2")

		assert.Equal(t, Focus{Index: 2, Moved: true}, got)
		assert.Equal(t, []string{"4", "2", "", "", "9", ""}, f.State().Digits)
	})

	t.Run("no digits is a no-op", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFlow(t, Config{})
		f.SetDigit(0, "1")
		got := f.HandlePaste("abc")

		assert.Equal(t, Focus{Index: 1}, got)
		assert.Equal(t, []string{"1", "", "", "", "", ""}, f.State().Digits)
	})
}

func TestFlow_HandleKey(t *testing.T) {
	t.Parallel()

	f, _ := newTestFlow(t, Config{Length: 5})
	fill(f, "12")

	assert.Equal(t, Focus{Index: 1, Moved: true}, f.HandleKey(2, KeyBackspace))
	assert.Equal(t, Focus{Index: 1}, f.HandleKey(1, KeyBackspace), "non empty cell keeps focus")
	assert.Equal(t, Focus{Index: 1}, f.HandleKey(0, KeyArrowLeft))
	assert.Equal(t, Focus{Index: 1, Moved: true}, f.HandleKey(0, KeyArrowRight))
	assert.Equal(t, Focus{Index: 1}, f.HandleKey(4, KeyArrowRight))
	assert.Equal(t, Focus{Index: 3, Moved: true}, f.HandleKey(4, KeyArrowLeft))

	f.HandleKey(0, KeyBackspace)
	assert.Equal(t, []string{"1", "2", "", "", ""}, f.State().Digits)
}

func TestFlow_Submit(t *testing.T) {
	t.Parallel()

	t.Run("incomplete code is ignored", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		f, _ := newTestFlow(t, Config{Verify: func(context.Context, string, string) error {
			calls.Inc()
			return nil
		}})
		fill(f, "12345")

		assert.False(t, f.Submit(context.Background()))
		assert.Zero(t, calls.Load())
	})

	t.Run("failure keeps digits", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFlow(t, Config{Verify: func(context.Context, string, string) error {
			return errors.New("invalid code")
		}})
		fill(f, "123456")

		assert.False(t, f.Submit(context.Background()))

		st := f.State()
		assert.Equal(t, "invalid code", st.Error)
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, st.Digits)
		assert.False(t, st.Sending)
		assert.False(t, st.Verified)
	})

	t.Run("server failure uses fallback", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFlow(t, Config{Verify: func(context.Context, string, string) error {
			return goerror.NewServer(errors.New("db down"))
		}})
		fill(f, "123456")
		f.Submit(context.Background())

		assert.Equal(t, MsgVerifyFailed, f.State().Error)
	})

	t.Run("business failure uses its message", func(t *testing.T) {
		t.Parallel()

		f, _ := newTestFlow(t, Config{Verify: func(context.Context, string, string) error {
			return goerror.NewBusiness("Invalid verification code", goerror.CodeInvalidInput)
		}})
		fill(f, "123456")
		f.Submit(context.Background())

		assert.Equal(t, "Invalid verification code", f.State().Error)
	})

	t.Run("success clears error", func(t *testing.T) {
		t.Parallel()

		var fail atomic.Bool
		fail.Store(true)
		var gotID, gotCode string
		f, _ := newTestFlow(t, Config{
			Identifier: "ana@example.com",
			Verify: func(_ context.Context, id, code string) error {
				gotID, gotCode = id, code
				if fail.Load() {
					return errors.New("invalid code")
				}
				return nil
			},
		})
		fill(f, "654321")

		assert.False(t, f.Submit(context.Background()))
		fail.Store(false)
		assert.True(t, f.Submit(context.Background()))

		st := f.State()
		assert.Empty(t, st.Error)
		assert.True(t, st.Verified)
		assert.Equal(t, "ana@example.com", gotID)
		assert.Equal(t, "654321", gotCode)
	})
}

func TestFlow_Resend_Cooldown(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	f, rec := newTestFlow(t, Config{Resend: func(context.Context, string) error {
		calls.Inc()
		return nil
	}})

	require.True(t, f.Resend(context.Background()))
	st := f.State()
	assert.Equal(t, 30, st.Cooldown)
	assert.True(t, st.Resent)
	assert.False(t, st.CanResend)

	for i := 0; i < 15; i++ {
		f.Tick()
	}
	assert.Equal(t, 15, f.State().Cooldown)

	assert.False(t, f.Resend(context.Background()))
	assert.Equal(t, 15, f.State().Cooldown)
	assert.EqualValues(t, 1, calls.Load())

	for i := 0; i < 15; i++ {
		f.Tick()
	}
	assert.Equal(t, 0, f.State().Cooldown)
	assert.False(t, f.Tick())
	assert.Equal(t, 0, f.State().Cooldown)

	first := rec.last()
	assert.Eventually(t, first.stopped.Load, time.Second, 5*time.Millisecond)

	assert.True(t, f.State().CanResend)
	assert.True(t, f.Resend(context.Background()))
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, 30, f.State().Cooldown)
	assert.NotSame(t, first, rec.last())
}

func TestFlow_Resend_CustomCooldown(t *testing.T) {
	t.Parallel()

	f, _ := newTestFlow(t, Config{Cooldown: 5 * time.Second})
	f.Resend(context.Background())

	assert.Equal(t, 5, f.State().Cooldown)
}

func TestFlow_Resend_SubSecondCooldownRoundsUp(t *testing.T) {
	t.Parallel()

	f, rec := newTestFlow(t, Config{Cooldown: 1500 * time.Millisecond})
	require.True(t, f.Resend(context.Background()))

	assert.Equal(t, 2, f.State().Cooldown)
	assert.NotNil(t, rec.last())
	assert.False(t, f.Resend(context.Background()))

	g, _ := newTestFlow(t, Config{Cooldown: 200 * time.Millisecond})
	require.True(t, g.Resend(context.Background()))
	assert.Equal(t, 1, g.State().Cooldown)
}

func TestFlow_ResendAllowedWhileSubmitting(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	var resends atomic.Int32
	f, _ := newTestFlow(t, Config{
		Verify: func(context.Context, string, string) error {
			close(started)
			<-release
			return nil
		},
		Resend: func(context.Context, string) error {
			resends.Inc()
			return nil
		},
	})

	fill(f, "123456")
	done := make(chan bool)
	go func() { done <- f.Submit(context.Background()) }()
	<-started

	st := f.State()
	assert.True(t, st.Sending)
	assert.True(t, st.CanResend)
	assert.True(t, f.Resend(context.Background()))
	assert.EqualValues(t, 1, resends.Load())

	close(release)
	assert.True(t, <-done)
}

func TestFlow_Resend_Failure(t *testing.T) {
	t.Parallel()

	f, rec := newTestFlow(t, Config{Resend: func(context.Context, string) error {
		return errors.New("")
	}})

	assert.False(t, f.Resend(context.Background()))

	st := f.State()
	assert.Equal(t, MsgResendFailed, st.Error)
	assert.Equal(t, 0, st.Cooldown)
	assert.False(t, st.Resending)
	assert.False(t, st.Resent)
	assert.Nil(t, rec.last())
}

func TestFlow_SubmitFailureKeepsCooldown(t *testing.T) {
	t.Parallel()

	f, _ := newTestFlow(t, Config{Verify: func(context.Context, string, string) error {
		return errors.New("invalid code")
	}})

	f.Resend(context.Background())
	f.Tick()
	fill(f, "111111")
	f.Submit(context.Background())

	st := f.State()
	assert.Equal(t, 29, st.Cooldown)
	assert.Equal(t, "invalid code", st.Error)
}

func TestFlow_Resend_InFlightIsExclusive(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	f, _ := newTestFlow(t, Config{Resend: func(context.Context, string) error {
		calls.Inc()
		close(started)
		<-release
		return nil
	}})

	done := make(chan bool)
	go func() { done <- f.Resend(context.Background()) }()
	<-started

	assert.True(t, f.State().Resending)
	assert.False(t, f.Resend(context.Background()))

	close(release)
	assert.True(t, <-done)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFlow_TickerDrivesCooldown(t *testing.T) {
	t.Parallel()

	f, rec := newTestFlow(t, Config{Cooldown: 2 * time.Second})
	require.True(t, f.Resend(context.Background()))

	tk := rec.last()
	tk.ch <- time.Now()
	assert.Eventually(t, func() bool { return f.State().Cooldown == 1 }, time.Second, 5*time.Millisecond)

	tk.ch <- time.Now()
	assert.Eventually(t, func() bool { return f.State().Cooldown == 0 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, tk.stopped.Load, time.Second, 5*time.Millisecond)
}

func TestFlow_CloseStopsTicker(t *testing.T) {
	t.Parallel()

	f, rec := newTestFlow(t, Config{})
	require.True(t, f.Resend(context.Background()))

	f.Close()

	assert.Eventually(t, rec.last().stopped.Load, time.Second, 5*time.Millisecond)
	assert.False(t, f.Tick())
	assert.False(t, f.Resend(context.Background()))
	assert.Equal(t, 0, f.State().Cooldown)
}

func TestFlow_StaleResponseAfterClose(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	f, _ := newTestFlow(t, Config{Verify: func(context.Context, string, string) error {
		close(started)
		<-release
		return errors.New("invalid code")
	}})
	fill(f, "123456")

	done := make(chan bool)
	go func() { done <- f.Submit(context.Background()) }()
	<-started

	f.Close()
	close(release)

	assert.False(t, <-done)
	st := f.State()
	assert.Empty(t, st.Error)
	assert.False(t, st.Sending)
}

func TestFlow_StaleResponseAfterReset(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	f, _ := newTestFlow(t, Config{Verify: func(context.Context, string, string) error {
		close(started)
		<-release
		return nil
	}})
	fill(f, "123456")

	done := make(chan bool)
	go func() { done <- f.Submit(context.Background()) }()
	<-started

	f.Reset()
	close(release)

	assert.False(t, <-done)
	assert.False(t, f.State().Verified)
	assert.Equal(t, []string{"", "", "", "", "", ""}, f.State().Digits)
}

func TestFlow_Restore(t *testing.T) {
	t.Parallel()

	f, _ := newTestFlow(t, Config{Length: 5, Code: "12"})
	assert.Equal(t, []string{"1", "2", "", "", ""}, f.State().Digits)

	f.Restore("98765")
	assert.True(t, f.IsComplete())
	assert.Equal(t, "98765", f.Code())
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "ab@example.com", want: "ab***@example.com"},
		{in: "a@example.com", want: "a***@example.com"},
		{in: "joana.silva@example.com", want: "jo***@example.com"},
		{in: "@example.com", want: "***@example.com"},
		{in: "no-at-sign", want: "no-at-sign"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskEmail(tt.in), tt.in)
	}
}
