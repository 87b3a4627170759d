package inbound

import (
	"context"

	"github.com/shandysiswandi/talentflow/internal/identity/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*usecase.MeOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/identity/login", end.Login)
	r.POST("/api/v1/identity/logout", end.Logout) // need authenticated
	r.GET("/api/v1/identity/me", end.Me)          // need authenticated
}
