package inbound

import (
	"context"

	"github.com/shandysiswandi/talentflow/internal/pkg/router"
	"github.com/shandysiswandi/talentflow/internal/staffing/usecase"
)

type uc interface {
	ListAdmins(ctx context.Context, in usecase.ListAdminsInput) (*usecase.ListAdminsOutput, error)
	AssignAdmin(ctx context.Context, in usecase.AssignAdminInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/staffing/requests/:id/admins", end.ListAdmins)
	r.POST("/api/v1/staffing/requests/:id/admin", end.AssignAdmin)
}
