package otpflow

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
)

const (
	// DefaultLength is the code length used by employee registration.
	DefaultLength = 6

	// DefaultCooldown is the lockout after a successful resend.
	DefaultCooldown = 30 * time.Second

	// MsgVerifyFailed is shown when a verify failure carries no message.
	MsgVerifyFailed = "Não foi possível validar o código."

	// MsgResendFailed is shown when a resend failure carries no message.
	MsgResendFailed = "Não foi possível reenviar o código."
)

// ErrMissingVerifier is returned by New when Config.Verify is nil.
var ErrMissingVerifier = errors.New("otpflow: verify func is required")

// VerifyFunc checks code for identifier.
type VerifyFunc func(ctx context.Context, identifier, code string) error

// ResendFunc asks for a new code to be sent to identifier.
type ResendFunc func(ctx context.Context, identifier string) error

// Key is a navigation key pressed inside a code cell.
type Key string

const (
	KeyBackspace  Key = "Backspace"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// Config parameterizes a Flow.
type Config struct {
	Length     int
	Identifier string
	Verify     VerifyFunc
	Resend     ResendFunc
	Cooldown   time.Duration
	NewTicker  TickerFactory
	// Code restores a previously typed code.
	Code string
}

// Focus tells the UI which cell to focus after an input event.
type Focus struct {
	Index int  `json:"index"`
	Moved bool `json:"moved"`
}

// State is a point-in-time snapshot of a Flow.
type State struct {
	Digits    []string `json:"digits"`
	Length    int      `json:"length"`
	Focus     int      `json:"focus"`
	Cooldown  int      `json:"cooldown"`
	Sending   bool     `json:"sending"`
	Resending bool     `json:"resending"`
	Resent    bool     `json:"resent"`
	Verified  bool     `json:"verified"`
	Complete  bool     `json:"complete"`
	CanResend bool     `json:"can_resend"`
	Error     string   `json:"error,omitempty"`
}

// Flow is the state machine behind a one-time code prompt: a fixed-length
// digit buffer with focus hints, a resend cooldown and remote verification.
//
// All methods are safe for concurrent use. Remote calls run without holding
// the lock; their results are dropped if the flow was closed or reset while
// they were in flight.
type Flow struct {
	mu sync.Mutex

	identifier string
	verify     VerifyFunc
	resend     ResendFunc
	cooldownS  int
	newTicker  TickerFactory

	digits    []string
	focus     int
	cooldown  int
	sending   bool
	resending bool
	resent    bool
	verified  bool
	errMsg    string
	closed    bool

	gen      atomic.Uint64
	stopTick chan struct{}
}

// New creates a Flow from cfg.
func New(cfg Config) (*Flow, error) {
	if cfg.Verify == nil {
		return nil, ErrMissingVerifier
	}

	if cfg.Length < 1 {
		cfg.Length = DefaultLength
	}

	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}

	if cfg.NewTicker == nil {
		cfg.NewTicker = NewTimeTicker
	}

	f := &Flow{
		identifier: cfg.Identifier,
		verify:     cfg.Verify,
		resend:     cfg.Resend,
		cooldownS:  cooldownSeconds(cfg.Cooldown),
		newTicker:  cfg.NewTicker,
		digits:     make([]string, cfg.Length),
	}

	if cfg.Code != "" {
		f.restore(cfg.Code)
	}

	return f, nil
}

// cooldownSeconds rounds d up to whole seconds.
func cooldownSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

// Identifier returns the address the code was sent to.
func (f *Flow) Identifier() string {
	return f.identifier
}

// SetDigit writes raw into cell i. Non-digits are stripped and only the last
// remaining digit is kept. An empty result clears the cell.
func (f *Flow) SetDigit(i int, raw string) Focus {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || i < 0 || i >= len(f.digits) {
		return Focus{Index: f.focus}
	}

	d := onlyDigits(raw)
	if d == "" {
		f.digits[i] = ""
		return Focus{Index: f.focus}
	}

	f.digits[i] = d[len(d)-1:]
	if i < len(f.digits)-1 {
		return f.moveFocus(i + 1)
	}

	return Focus{Index: f.focus}
}

// HandlePaste fills the buffer from cell 0 with the digits of text.
func (f *Flow) HandlePaste(text string) Focus {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := onlyDigits(text)
	if len(d) > len(f.digits) {
		d = d[:len(f.digits)]
	}

	if f.closed || d == "" {
		return Focus{Index: f.focus}
	}

	for i := range len(d) {
		f.digits[i] = d[i : i+1]
	}

	if len(d) < len(f.digits) {
		return f.moveFocus(len(d))
	}

	return Focus{Index: f.focus}
}

// HandleKey applies a navigation key pressed in cell i. It never mutates digits.
func (f *Flow) HandleKey(i int, key Key) Focus {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || i < 0 || i >= len(f.digits) {
		return Focus{Index: f.focus}
	}

	switch key {
	case KeyBackspace:
		if f.digits[i] == "" && i > 0 {
			return f.moveFocus(i - 1)
		}
	case KeyArrowLeft:
		if i > 0 {
			return f.moveFocus(i - 1)
		}
	case KeyArrowRight:
		if i < len(f.digits)-1 {
			return f.moveFocus(i + 1)
		}
	}

	return Focus{Index: f.focus}
}

// IsComplete reports whether every cell holds a digit.
func (f *Flow) IsComplete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.isComplete()
}

// Code returns the digits joined together.
func (f *Flow) Code() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return strings.Join(f.digits, "")
}

// Submit verifies the typed code. It returns true only when the verifier
// accepted it; incomplete codes and duplicate submits are ignored.
func (f *Flow) Submit(ctx context.Context) bool {
	f.mu.Lock()
	if f.closed || f.sending || !f.isComplete() {
		f.mu.Unlock()
		return false
	}
	f.sending = true
	code := strings.Join(f.digits, "")
	gen := f.gen.Load()
	f.mu.Unlock()

	err := f.verify(ctx, f.identifier, code)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stale(gen) {
		return false
	}

	f.sending = false
	if err != nil {
		f.errMsg = message(err, MsgVerifyFailed)
		return false
	}

	f.errMsg = ""
	f.verified = true
	return true
}

// Resend requests a new code and starts the cooldown. It is a no-op while the
// cooldown runs or another resend is in flight.
func (f *Flow) Resend(ctx context.Context) bool {
	f.mu.Lock()
	if f.closed || f.cooldown > 0 || f.resending || f.resend == nil {
		f.mu.Unlock()
		return false
	}
	f.resending = true
	gen := f.gen.Load()
	f.mu.Unlock()

	err := f.resend(ctx, f.identifier)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stale(gen) {
		return false
	}

	f.resending = false
	if err != nil {
		f.errMsg = message(err, MsgResendFailed)
		return false
	}

	f.resent = true
	f.errMsg = ""
	f.cooldown = f.cooldownS
	f.startTicker()
	return true
}

// Tick advances the cooldown by one second. It returns false once the
// cooldown has reached zero and the ticker was stopped.
func (f *Flow) Tick() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false
	}

	if f.cooldown > 0 {
		f.cooldown--
	}

	if f.cooldown == 0 {
		f.stopTicker()
		return false
	}

	return true
}

// Restore loads a previously typed code into the buffer.
func (f *Flow) Restore(code string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}

	f.restore(code)
}

// Reset clears the buffer and error, as when the prompt is reopened. A
// running cooldown keeps going.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gen.Inc()
	f.digits = make([]string, len(f.digits))
	f.focus = 0
	f.errMsg = ""
	f.sending = false
	f.resending = false
	f.verified = false
}

// Close stops the cooldown ticker. Pending remote results are discarded.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}

	f.closed = true
	f.gen.Inc()
	f.stopTicker()
	f.digits = make([]string, len(f.digits))
	f.cooldown = 0
	f.sending = false
	f.resending = false
}

// State returns a snapshot of the flow.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return State{
		Digits:    slices.Clone(f.digits),
		Length:    len(f.digits),
		Focus:     f.focus,
		Cooldown:  f.cooldown,
		Sending:   f.sending,
		Resending: f.resending,
		Resent:    f.resent,
		Verified:  f.verified,
		Complete:  f.isComplete(),
		CanResend: !f.closed && f.cooldown == 0 && !f.resending && f.resend != nil,
		Error:     f.errMsg,
	}
}

func (f *Flow) isComplete() bool {
	return !slices.Contains(f.digits, "")
}

func (f *Flow) moveFocus(i int) Focus {
	f.focus = i
	return Focus{Index: i, Moved: true}
}

func (f *Flow) restore(code string) {
	d := onlyDigits(code)
	for i := range f.digits {
		if i < len(d) {
			f.digits[i] = d[i : i+1]
		} else {
			f.digits[i] = ""
		}
	}
}

func (f *Flow) stale(gen uint64) bool {
	return f.closed || gen != f.gen.Load()
}

// startTicker must be called with f.mu held.
func (f *Flow) startTicker() {
	f.stopTicker()

	stop := make(chan struct{})
	f.stopTick = stop
	t := f.newTicker(time.Second)

	go func() {
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C():
				if !f.Tick() {
					return
				}
			}
		}
	}()
}

// stopTicker must be called with f.mu held.
func (f *Flow) stopTicker() {
	if f.stopTick != nil {
		close(f.stopTick)
		f.stopTick = nil
	}
}

func message(err error, fallback string) string {
	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		return goerror.Message(err, fallback)
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return fallback
}
