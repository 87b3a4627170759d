package inbound

import (
	"net/http"

	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/registration/usecase"
)

type CredentialsRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type PersonalRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date" example:"1990-04-25"`
}

type PreferencesRequest struct {
	Functions       []string `json:"functions"`
	Competences     []string `json:"competences"`
	GeoAreas        []string `json:"geo_areas"`
	ActivitySectors []string `json:"activity_sectors"`
}

type GoToStepRequest struct {
	Step int `json:"step"`
}

type OTPDigitRequest struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

type OTPPasteRequest struct {
	Text string `json:"text"`
}

type OTPKeyRequest struct {
	Index int    `json:"index"`
	Key   string `json:"key" example:"Backspace"`
}

type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ResendRequest struct {
	Email string `json:"email"`
}

type StepData struct {
	Email           string   `json:"email,omitempty"`
	DisplayName     string   `json:"display_name,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	BirthDate       string   `json:"birth_date,omitempty"`
	Functions       []string `json:"functions,omitempty"`
	Competences     []string `json:"competences,omitempty"`
	GeoAreas        []string `json:"geo_areas,omitempty"`
	ActivitySectors []string `json:"activity_sectors,omitempty"`
	Code            string   `json:"code,omitempty"`
}

type OTPState struct {
	otpflow.State
	MaskedEmail string `json:"masked_email"`
}

type ProgressResponse struct {
	SessionID       string    `json:"session_id"`
	CompletedSteps  []int     `json:"completed_steps"`
	PendingStep     int       `json:"pending_step,omitempty"`
	CurrentPath     string    `json:"current_path,omitempty"`
	AccessibleSteps []int     `json:"accessible_steps"`
	Data            StepData  `json:"data"`
	OTP             *OTPState `json:"otp,omitempty"`
}

type CreateSessionResponse struct {
	SessionID string           `json:"session_id"`
	Progress  ProgressResponse `json:"progress"`
}

func (CreateSessionResponse) StatusCode() int {
	return http.StatusCreated
}

func (CreateSessionResponse) Message() string {
	return "Registration session created"
}

type GoToStepResponse struct {
	Moved    bool             `json:"moved"`
	Progress ProgressResponse `json:"progress"`
}

type OTPResponse struct {
	Focus    otpflow.Focus    `json:"focus"`
	Progress ProgressResponse `json:"progress"`
}

type OTPSubmitResponse struct {
	Verified bool             `json:"verified"`
	Progress ProgressResponse `json:"progress"`
}

type DeleteSessionResponse struct{}

func (DeleteSessionResponse) StatusCode() int {
	return http.StatusNoContent
}

type VerifyResponse struct{}

func (VerifyResponse) Message() string {
	return "Account verified"
}

type ResendResponse struct{}

func (ResendResponse) Message() string {
	return "If the account is pending, a new code was sent"
}

func toProgress(p *usecase.Progress) ProgressResponse {
	resp := ProgressResponse{
		SessionID:       p.SessionID,
		CompletedSteps:  p.CompletedSteps,
		PendingStep:     p.PendingStep,
		CurrentPath:     p.CurrentPath,
		AccessibleSteps: p.AccessibleSteps,
		Data: StepData{
			Email:           p.Data.Email,
			DisplayName:     p.Data.DisplayName,
			Phone:           p.Data.Phone,
			BirthDate:       p.Data.BirthDate,
			Functions:       p.Data.Functions,
			Competences:     p.Data.Competences,
			GeoAreas:        p.Data.GeoAreas,
			ActivitySectors: p.Data.ActivitySectors,
			Code:            p.Data.Code,
		},
	}
	if resp.CompletedSteps == nil {
		resp.CompletedSteps = []int{}
	}
	if p.OTP != nil {
		resp.OTP = &OTPState{State: p.OTP.State, MaskedEmail: p.OTP.MaskedEmail}
	}

	return resp
}
