package inbound

import (
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
	"github.com/shandysiswandi/talentflow/internal/staffing/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

// ListAdmins lists the admins a request can be handed to.
// @Summary List assignable admins
// @Description The current admin comes first and is never filtered out by search.
// @Tags Staffing
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param search query string false "Name filter"
// @Success 200 {object} router.successResponse{data=ListAdminsResponse} "Admins"
// @Failure 403 {object} router.errorResponse "Account not allowed"
// @Failure 404 {object} router.errorResponse "Request not found"
// @Router /api/v1/staffing/requests/{id}/admins [get]
func (h *HTTPEndpoint) ListAdmins(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListAdmins(r.Context(), usecase.ListAdminsInput{
		RequestID: id,
		Search:    r.GetQuery("search"),
	})
	if err != nil {
		return nil, err
	}

	return toListAdmins(resp), nil
}

// AssignAdmin assigns an admin to a request.
// @Summary Assign admin
// @Description Retries must reuse the Idempotency-Key of the first attempt.
// @Tags Staffing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param Idempotency-Key header string true "Client generated key"
// @Param request body AssignAdminRequest true "Admin"
// @Success 200 {object} router.successResponse{data=AssignAdminResponse} "Assigned"
// @Failure 404 {object} router.errorResponse "Request or admin not found"
// @Failure 409 {object} router.errorResponse "Already assigned or in progress"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/staffing/requests/{id}/admin [post]
func (h *HTTPEndpoint) AssignAdmin(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req AssignAdminRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err = h.uc.AssignAdmin(r.Context(), usecase.AssignAdminInput{
		RequestID:      id,
		AdminID:        req.AdminID,
		IdempotencyKey: r.Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return nil, err
	}

	return AssignAdminResponse{RequestID: id, AdminID: req.AdminID}, nil
}
