package wizard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingNavigator) NavigateTo(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingNavigator) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func TestTracker_CanAccessStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		completed []int
		step      int
		want      bool
	}{
		{name: "first step always open", completed: nil, step: 1, want: true},
		{name: "first step open with progress", completed: []int{1, 2, 3}, step: 1, want: true},
		{name: "second step locked", completed: nil, step: 2, want: false},
		{name: "second step after first", completed: []int{1}, step: 2, want: true},
		{name: "gap is not bridged", completed: []int{1}, step: 3, want: false},
		{name: "only predecessor matters", completed: []int{2}, step: 3, want: true},
		{name: "zero step", completed: []int{1}, step: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := New(nil)
			for _, s := range tt.completed {
				tr.CompleteStep(s)
			}

			assert.Equal(t, tt.want, tr.CanAccessStep(tt.step))
		})
	}
}

func TestTracker_CompleteStep_IdempotentAndSorted(t *testing.T) {
	t.Parallel()

	tr := New(nil)
	tr.CompleteStep(3)
	tr.CompleteStep(1)
	tr.CompleteStep(3)
	tr.CompleteStep(2)
	tr.CompleteStep(1)

	assert.Equal(t, []int{1, 2, 3}, tr.CompletedSteps())
}

func TestTracker_CompleteStep_IgnoresInvalidStep(t *testing.T) {
	t.Parallel()

	tr := New(nil)
	tr.CompleteStep(0, 1)
	tr.CompleteStep(-2)

	assert.Empty(t, tr.CompletedSteps())
	_, ok := tr.PendingStep()
	assert.False(t, ok)
}

func TestTracker_DeferredNavigationFiresOnce(t *testing.T) {
	t.Parallel()

	nav := &recordingNavigator{}
	tr := New(nav)

	tr.CompleteStep(1)
	tr.CompleteStep(2, 3)

	assert.Equal(t, []string{"/employee-register/step3"}, nav.Paths())
	_, ok := tr.PendingStep()
	assert.False(t, ok)

	tr.CompleteStep(2)
	assert.Len(t, nav.Paths(), 1)
}

func TestTracker_PendingWaitsForGuard(t *testing.T) {
	t.Parallel()

	nav := &recordingNavigator{}
	tr := New(nav)

	tr.CompleteStep(2, 4)
	assert.Empty(t, nav.Paths())
	pending, ok := tr.PendingStep()
	assert.True(t, ok)
	assert.Equal(t, 4, pending)

	tr.CompleteStep(3)
	assert.Equal(t, []string{"/employee-register/step4"}, nav.Paths())
	_, ok = tr.PendingStep()
	assert.False(t, ok)
}

func TestTracker_NewCompletionOverwritesPending(t *testing.T) {
	t.Parallel()

	nav := &recordingNavigator{}
	tr := New(nav)

	tr.CompleteStep(1, 5)
	tr.CompleteStep(1, 4)

	pending, ok := tr.PendingStep()
	assert.True(t, ok)
	assert.Equal(t, 4, pending)
	assert.Empty(t, nav.Paths())

	tr.CompleteStep(2)
	tr.CompleteStep(3)
	assert.Equal(t, []string{"/employee-register/step4"}, nav.Paths())
}

func TestTracker_ReachableTargetNavigatesAtOnce(t *testing.T) {
	t.Parallel()

	nav := &recordingNavigator{}
	tr := New(nav)

	tr.CompleteStep(3, 5)
	tr.CompleteStep(3, 4)

	assert.Equal(t, []string{"/employee-register/step4"}, nav.Paths())
	_, ok := tr.PendingStep()
	assert.False(t, ok)
}

func TestTracker_CompleteWithoutNextKeepsPending(t *testing.T) {
	t.Parallel()

	tr := New(nil)
	tr.CompleteStep(5, 7)
	tr.CompleteStep(1)

	pending, ok := tr.PendingStep()
	assert.True(t, ok)
	assert.Equal(t, 7, pending)
}

func TestTracker_GoToStep(t *testing.T) {
	t.Parallel()

	nav := &recordingNavigator{}
	tr := New(nav)

	assert.False(t, tr.GoToStep(2))
	assert.Empty(t, nav.Paths())

	assert.True(t, tr.GoToStep(1))
	tr.CompleteStep(1)
	assert.True(t, tr.GoToStep(2))

	assert.Equal(t, []string{"/employee-register/step1", "/employee-register/step2"}, nav.Paths())
}

func TestTracker_WithPath(t *testing.T) {
	t.Parallel()

	var got []string
	tr := New(NavigatorFunc(func(p string) { got = append(got, p) }), WithPath(func(step int) string {
		return "/company/request/" + string(rune('0'+step))
	}))

	tr.CompleteStep(1, 2)

	assert.Equal(t, []string{"/company/request/2"}, got)
	assert.Equal(t, "/company/request/2", tr.Path(2))
}

func TestTracker_AccessibleSteps(t *testing.T) {
	t.Parallel()

	tr := New(nil)
	tr.CompleteStep(1)
	tr.CompleteStep(3)

	assert.Equal(t, []int{1, 2, 4}, tr.AccessibleSteps(4))
}

func TestTracker_ConcurrentCompletion(t *testing.T) {
	t.Parallel()

	nav := &recordingNavigator{}
	tr := New(nav)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(step int) {
			defer wg.Done()
			tr.CompleteStep(step%4 + 1)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []int{1, 2, 3, 4}, tr.CompletedSteps())
}
