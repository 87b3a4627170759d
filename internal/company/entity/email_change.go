package entity

import "github.com/shandysiswandi/talentflow/internal/pkg/otpflow"

// EmailChange is an open manager email confirmation.
type EmailChange struct {
	ID        string
	CompanyID int64
	Email     string
	Flow      *otpflow.Flow
}

// Close releases the flow ticker.
func (e *EmailChange) Close() {
	e.Flow.Close()
}
