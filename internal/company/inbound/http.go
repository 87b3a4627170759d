package inbound

import (
	"context"

	"github.com/shandysiswandi/talentflow/internal/company/entity"
	"github.com/shandysiswandi/talentflow/internal/company/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
)

type uc interface {
	GetProfile(ctx context.Context, in usecase.GetProfileInput) (*entity.Profile, error)
	UpdateManager(ctx context.Context, in usecase.UpdateManagerInput) (*entity.Profile, error)

	StartEmailChange(ctx context.Context, in usecase.StartEmailChangeInput) (*usecase.EmailChangeOutput, error)
	EmailDigit(ctx context.Context, in usecase.EmailDigitInput) (*usecase.EmailChangeOutput, error)
	EmailPaste(ctx context.Context, in usecase.EmailPasteInput) (*usecase.EmailChangeOutput, error)
	EmailKey(ctx context.Context, in usecase.EmailKeyInput) (*usecase.EmailChangeOutput, error)
	SubmitEmailChange(ctx context.Context, id string) (*usecase.EmailChangeOutput, error)
	ResendEmailChange(ctx context.Context, id string) (*usecase.EmailChangeOutput, error)
	CancelEmailChange(ctx context.Context, id string) error

	ListRequests(ctx context.Context) ([]usecase.RequestView, error)
	CreateRequest(ctx context.Context, in usecase.CreateRequestInput) (*usecase.RequestView, error)
}

// RegisterHTTPEndpoint wires the company profile routes. All of them need an
// authenticated company account.
func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/company/profile", end.GetProfile)
	r.PUT("/api/v1/company/manager", end.UpdateManager)

	r.POST("/api/v1/company/manager/email", end.StartEmailChange)
	r.POST("/api/v1/company/manager/email/:id/digits", end.EmailDigit)
	r.POST("/api/v1/company/manager/email/:id/paste", end.EmailPaste)
	r.POST("/api/v1/company/manager/email/:id/keys", end.EmailKey)
	r.POST("/api/v1/company/manager/email/:id/submit", end.SubmitEmailChange)
	r.POST("/api/v1/company/manager/email/:id/resend", end.ResendEmailChange)
	r.DELETE("/api/v1/company/manager/email/:id", end.CancelEmailChange)

	r.GET("/api/v1/company/requests", end.ListRequests)
	r.POST("/api/v1/company/requests", end.CreateRequest)
}
