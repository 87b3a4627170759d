package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/talentflow/internal/identity/entity"
	"github.com/shandysiswandi/talentflow/internal/identity/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for sign in and the current account.
type HTTPEndpoint struct {
	uc uc
}

// Login authenticates an account and returns an access token.
// @Summary Authenticate account
// @Description Validates credentials of an active account and returns a bearer token carrying the user type.
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 403 {object} router.errorResponse "Account not active"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken: resp.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   resp.ExpiresIn,
		UserType:    resp.UserType,
	}, nil
}

// Logout revokes the bearer token of the request.
// @Summary Sign out
// @Tags Identity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse "Logged out"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// Me returns the authenticated account.
// @Summary Current account
// @Description Returns the account type, display name and, for employees, the profile sections.
// @Tags Identity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=MeResponse} "Current account"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Account not allowed"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/me [get]
func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	resp, err := h.uc.Me(r.Context())
	if err != nil {
		return nil, err
	}

	return MeResponse{
		Authenticated: true,
		UserID:        resp.UserID,
		UserType:      string(resp.UserType),
		Email:         resp.Email,
		DisplayName:   resp.DisplayName,
		Tabs: lo.Map(resp.Tabs, func(t entity.ProfileTab, _ int) ProfileTab {
			return ProfileTab{Slug: t.Slug, Label: t.Label, Path: "/candidato/" + t.Slug}
		}),
	}, nil
}
