package entity

import "time"

type RequestStatus string

const (
	RequestStatusActive  RequestStatus = "ACTIVE"
	RequestStatusPending RequestStatus = "PENDING"
	RequestStatusPast    RequestStatus = "PAST"
)

// Label is the Portuguese badge text of s.
func (s RequestStatus) Label() string {
	switch s {
	case RequestStatusActive:
		return "Ativa"
	case RequestStatusPending:
		return "Pendente"
	case RequestStatusPast:
		return "Passada"
	default:
		return "Indefinida"
	}
}

// ComputeStatus places today relative to the request period. Dates are
// compared by calendar day; a request without dates is pending.
func ComputeStatus(start, end *time.Time, today time.Time) RequestStatus {
	day := dayOf(today)

	if start != nil && day.Before(dayOf(*start)) {
		return RequestStatusPending
	}
	if end != nil && day.After(dayOf(*end)) {
		return RequestStatusPast
	}
	if start == nil {
		return RequestStatusPending
	}

	return RequestStatusActive
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type RequestRole struct {
	Role     string
	Quantity int
	Salary   *float64
}

type Request struct {
	ID          int64
	CompanyID   int64
	TeamName    string
	Description string
	Location    string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	Roles       []RequestRole
}
