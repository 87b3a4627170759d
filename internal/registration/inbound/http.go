package inbound

import (
	"context"

	"github.com/shandysiswandi/talentflow/internal/pkg/router"
	"github.com/shandysiswandi/talentflow/internal/registration/usecase"
)

type uc interface {
	CreateSession(ctx context.Context) (*usecase.Progress, error)
	GetSession(ctx context.Context, id string) (*usecase.Progress, error)
	DeleteSession(ctx context.Context, id string) error
	GoToStep(ctx context.Context, in usecase.GoToStepInput) (*usecase.GoToStepOutput, error)

	SubmitCredentials(ctx context.Context, in usecase.CredentialsInput) (*usecase.Progress, error)
	SubmitPersonal(ctx context.Context, in usecase.PersonalInput) (*usecase.Progress, error)
	SubmitPreferences(ctx context.Context, in usecase.PreferencesInput) (*usecase.Progress, error)

	OTPDigit(ctx context.Context, in usecase.OTPDigitInput) (*usecase.OTPOutput, error)
	OTPPaste(ctx context.Context, in usecase.OTPPasteInput) (*usecase.OTPOutput, error)
	OTPKey(ctx context.Context, in usecase.OTPKeyInput) (*usecase.OTPOutput, error)
	OTPSubmit(ctx context.Context, sessionID string) (*usecase.OTPSubmitOutput, error)
	OTPResend(ctx context.Context, sessionID string) (*usecase.OTPSubmitOutput, error)

	Verify(ctx context.Context, in usecase.VerifyInput) error
	Resend(ctx context.Context, in usecase.ResendInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/registration/sessions", end.CreateSession)
	r.GET("/api/v1/registration/sessions/:id", end.GetSession)
	r.DELETE("/api/v1/registration/sessions/:id", end.DeleteSession)
	r.POST("/api/v1/registration/sessions/:id/goto", end.GoToStep)

	r.POST("/api/v1/registration/sessions/:id/steps/1", end.SubmitCredentials)
	r.POST("/api/v1/registration/sessions/:id/steps/2", end.SubmitPersonal)
	r.POST("/api/v1/registration/sessions/:id/steps/3", end.SubmitPreferences)

	r.POST("/api/v1/registration/sessions/:id/otp/digits", end.OTPDigit)
	r.POST("/api/v1/registration/sessions/:id/otp/paste", end.OTPPaste)
	r.POST("/api/v1/registration/sessions/:id/otp/keys", end.OTPKey)
	r.POST("/api/v1/registration/sessions/:id/otp/submit", end.OTPSubmit)
	r.POST("/api/v1/registration/sessions/:id/otp/resend", end.OTPResend)

	r.POST("/api/v1/registration/verify", end.Verify)
	r.POST("/api/v1/registration/resend", end.Resend)
}
