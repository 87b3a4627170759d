package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	t.Parallel()

	day := func(s string) *time.Time {
		v, err := time.Parse(time.DateOnly, s)
		if err != nil {
			t.Fatal(err)
		}
		return &v
	}
	today := time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  RequestStatus
	}{
		{name: "no dates", want: RequestStatusPending},
		{name: "starts later", start: day("2026-05-05"), end: day("2026-06-01"), want: RequestStatusPending},
		{name: "starts today", start: day("2026-05-04"), end: day("2026-06-01"), want: RequestStatusActive},
		{name: "ends today", start: day("2026-04-01"), end: day("2026-05-04"), want: RequestStatusActive},
		{name: "open ended", start: day("2026-04-01"), want: RequestStatusActive},
		{name: "ended", start: day("2026-03-01"), end: day("2026-05-03"), want: RequestStatusPast},
		{name: "only end in past", end: day("2026-05-01"), want: RequestStatusPast},
		{name: "only end ahead", end: day("2026-05-10"), want: RequestStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ComputeStatus(tt.start, tt.end, today))
		})
	}
}

func TestRequestStatus_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ativa", RequestStatusActive.Label())
	assert.Equal(t, "Pendente", RequestStatusPending.Label())
	assert.Equal(t, "Passada", RequestStatusPast.Label())
	assert.Equal(t, "Indefinida", RequestStatus("").Label())
}
