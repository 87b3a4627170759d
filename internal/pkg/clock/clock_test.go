package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday(t *testing.T) {
	t.Parallel()

	lisbon := time.FixedZone("WEST", 3600)
	now := time.Date(2026, 3, 2, 23, 45, 10, 99, lisbon)

	got := Today(Fixed(now))

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, lisbon), got)
	assert.Equal(t, lisbon, got.Location())
}

func TestTimeClocker(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := New().Now()

	assert.False(t, got.Before(before))
}
