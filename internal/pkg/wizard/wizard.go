package wizard

import (
	"fmt"
	"slices"
	"sync"
)

// Navigator performs the actual route change. Calls are fire and forget.
type Navigator interface {
	NavigateTo(path string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(path string)

// NavigateTo calls f(path).
func (f NavigatorFunc) NavigateTo(path string) { f(path) }

// PathFunc builds the route for a step number.
type PathFunc func(step int) string

// EmployeeRegisterPath is the route layout of the employee registration wizard.
func EmployeeRegisterPath(step int) string {
	return fmt.Sprintf("/employee-register/step%d", step)
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithPath overrides the step route layout.
func WithPath(fn PathFunc) Option {
	return func(t *Tracker) {
		if fn != nil {
			t.path = fn
		}
	}
}

// Tracker keeps the completed steps of a forward-gated wizard and performs
// deferred navigation once a pending step becomes reachable.
//
// Step N is reachable iff N == 1 or N-1 has been completed. Navigation requests
// that fail this guard are dropped silently.
type Tracker struct {
	mu        sync.Mutex
	completed []int
	pending   int
	nav       Navigator
	path      PathFunc
}

// New creates an empty Tracker that navigates through nav.
func New(nav Navigator, opts ...Option) *Tracker {
	t := &Tracker{
		nav:  nav,
		path: EmployeeRegisterPath,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// CompleteStep marks step as completed. When next is given and non-zero it
// becomes the pending navigation target, replacing any earlier one.
//
// The pending target is reconciled only after the completed set is committed.
func (t *Tracker) CompleteStep(step int, next ...int) {
	if step < 1 {
		return
	}

	t.mu.Lock()
	if i, found := slices.BinarySearch(t.completed, step); !found {
		t.completed = slices.Insert(t.completed, i, step)
	}
	if len(next) > 0 && next[0] > 0 {
		t.pending = next[0]
	}
	t.mu.Unlock()

	t.reconcile()
}

// CanAccessStep reports whether step passes the access guard.
func (t *Tracker) CanAccessStep(step int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.canAccess(step)
}

// GoToStep navigates to step if it is reachable and does nothing otherwise.
func (t *Tracker) GoToStep(step int) bool {
	if !t.CanAccessStep(step) {
		return false
	}

	t.navigate(step)
	return true
}

// CompletedSteps returns the completed steps in ascending order.
func (t *Tracker) CompletedSteps() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Clone(t.completed)
}

// PendingStep returns the deferred navigation target, if any.
func (t *Tracker) PendingStep() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.pending, t.pending > 0
}

// AccessibleSteps returns every step in [1, total] that passes the guard.
func (t *Tracker) AccessibleSteps(total int) []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	steps := make([]int, 0, total)
	for s := 1; s <= total; s++ {
		if t.canAccess(s) {
			steps = append(steps, s)
		}
	}

	return steps
}

// Path returns the route of step.
func (t *Tracker) Path(step int) string {
	return t.path(step)
}

func (t *Tracker) canAccess(step int) bool {
	if step == 1 {
		return true
	}

	_, found := slices.BinarySearch(t.completed, step-1)
	return found
}

// reconcile fires the pending navigation at most once per pending target.
func (t *Tracker) reconcile() {
	t.mu.Lock()
	step := t.pending
	if step == 0 || !t.canAccess(step) {
		t.mu.Unlock()
		return
	}
	t.pending = 0
	t.mu.Unlock()

	t.navigate(step)
}

func (t *Tracker) navigate(step int) {
	if t.nav == nil {
		return
	}

	t.nav.NavigateTo(t.path(step))
}
