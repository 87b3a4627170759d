package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/talentflow/internal/company/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
)

// HTTPEndpoint exposes the company profile page.
type HTTPEndpoint struct {
	uc uc
}

// GetProfile returns the authenticated company profile.
// @Summary Company profile
// @Description Served from cache unless force is true.
// @Tags Company
// @Produce json
// @Security BearerAuth
// @Param force query bool false "Skip the cache"
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Account not allowed"
// @Failure 500 {object} router.errorResponse "Profile could not be loaded"
// @Router /api/v1/company/profile [get]
func (h *HTTPEndpoint) GetProfile(r *router.Request) (any, error) {
	force, err := r.GetQueryBool("force")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.GetProfile(r.Context(), usecase.GetProfileInput{Force: force})
	if err != nil {
		return nil, err
	}

	return toProfile(resp), nil
}

// UpdateManager saves the manager contact.
// @Summary Update manager
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateManagerRequest true "Manager contact"
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Updated profile"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/company/manager [put]
func (h *HTTPEndpoint) UpdateManager(r *router.Request) (any, error) {
	var req UpdateManagerRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.UpdateManager(r.Context(), usecase.UpdateManagerInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Position: req.Position,
	})
	if err != nil {
		return nil, err
	}

	return toProfile(resp), nil
}

// StartEmailChange sends a five digit code to the new manager email.
// @Summary Start manager email change
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StartEmailChangeRequest true "New email"
// @Success 201 {object} router.successResponse{data=EmailChangeResponse} "Code sent"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many codes today"
// @Router /api/v1/company/manager/email [post]
func (h *HTTPEndpoint) StartEmailChange(r *router.Request) (any, error) {
	var req StartEmailChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.StartEmailChange(r.Context(), usecase.StartEmailChangeInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return StartEmailChangeResponse{toEmailChange(resp)}, nil
}

// EmailDigit types into one code cell.
// @Summary Manager email code cell
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change ID"
// @Param request body EmailDigitRequest true "Cell input"
// @Success 200 {object} router.successResponse{data=EmailChangeResponse} "State"
// @Failure 404 {object} router.errorResponse "Confirmation not found"
// @Router /api/v1/company/manager/email/{id}/digits [post]
func (h *HTTPEndpoint) EmailDigit(r *router.Request) (any, error) {
	var req EmailDigitRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.EmailDigit(r.Context(), usecase.EmailDigitInput{
		ChangeID: r.GetParam("id"),
		Index:    req.Index,
		Value:    req.Value,
	})
	if err != nil {
		return nil, err
	}

	return toEmailChange(resp), nil
}

// EmailPaste fills the code cells from pasted text.
// @Summary Manager email code paste
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change ID"
// @Param request body EmailPasteRequest true "Pasted text"
// @Success 200 {object} router.successResponse{data=EmailChangeResponse} "State"
// @Failure 404 {object} router.errorResponse "Confirmation not found"
// @Router /api/v1/company/manager/email/{id}/paste [post]
func (h *HTTPEndpoint) EmailPaste(r *router.Request) (any, error) {
	var req EmailPasteRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.EmailPaste(r.Context(), usecase.EmailPasteInput{
		ChangeID: r.GetParam("id"),
		Text:     req.Text,
	})
	if err != nil {
		return nil, err
	}

	return toEmailChange(resp), nil
}

// EmailKey applies a navigation key in a code cell.
// @Summary Manager email code key
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change ID"
// @Param request body EmailKeyRequest true "Key press"
// @Success 200 {object} router.successResponse{data=EmailChangeResponse} "State"
// @Failure 404 {object} router.errorResponse "Confirmation not found"
// @Router /api/v1/company/manager/email/{id}/keys [post]
func (h *HTTPEndpoint) EmailKey(r *router.Request) (any, error) {
	var req EmailKeyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.EmailKey(r.Context(), usecase.EmailKeyInput{
		ChangeID: r.GetParam("id"),
		Index:    req.Index,
		Key:      otpflow.Key(req.Key),
	})
	if err != nil {
		return nil, err
	}

	return toEmailChange(resp), nil
}

// SubmitEmailChange checks the code and saves the new email.
// @Summary Confirm manager email
// @Description A rejected code returns verified false with the message in state.error.
// @Tags Company
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change ID"
// @Success 200 {object} router.successResponse{data=EmailChangeResponse} "Result"
// @Failure 404 {object} router.errorResponse "Confirmation not found"
// @Router /api/v1/company/manager/email/{id}/submit [post]
func (h *HTTPEndpoint) SubmitEmailChange(r *router.Request) (any, error) {
	resp, err := h.uc.SubmitEmailChange(r.Context(), r.GetParam("id"))
	if err != nil {
		return nil, err
	}

	return toEmailChange(resp), nil
}

// ResendEmailChange sends a new code and starts the cooldown.
// @Summary Resend manager email code
// @Tags Company
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change ID"
// @Success 200 {object} router.successResponse{data=EmailChangeResponse} "State"
// @Failure 404 {object} router.errorResponse "Confirmation not found"
// @Router /api/v1/company/manager/email/{id}/resend [post]
func (h *HTTPEndpoint) ResendEmailChange(r *router.Request) (any, error) {
	resp, err := h.uc.ResendEmailChange(r.Context(), r.GetParam("id"))
	if err != nil {
		return nil, err
	}

	return toEmailChange(resp), nil
}

// CancelEmailChange closes the confirmation prompt.
// @Summary Cancel manager email change
// @Tags Company
// @Security BearerAuth
// @Param id path string true "Change ID"
// @Success 204 "Closed"
// @Failure 404 {object} router.errorResponse "Confirmation not found"
// @Router /api/v1/company/manager/email/{id} [delete]
func (h *HTTPEndpoint) CancelEmailChange(r *router.Request) (any, error) {
	if err := h.uc.CancelEmailChange(r.Context(), r.GetParam("id")); err != nil {
		return nil, err
	}

	return CancelEmailChangeResponse{}, nil
}

// ListRequests returns the staffing requests of the company.
// @Summary Company requests
// @Tags Company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=[]RequestResponse} "Requests"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/company/requests [get]
func (h *HTTPEndpoint) ListRequests(r *router.Request) (any, error) {
	resp, err := h.uc.ListRequests(r.Context())
	if err != nil {
		return nil, err
	}

	return lo.Map(resp, func(v usecase.RequestView, _ int) RequestResponse {
		return toRequest(v)
	}), nil
}

// CreateRequest creates a staffing request.
// @Summary Create request
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequestRequest true "Request"
// @Success 201 {object} router.successResponse{data=RequestResponse} "Created"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/company/requests [post]
func (h *HTTPEndpoint) CreateRequest(r *router.Request) (any, error) {
	var req CreateRequestRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateRequest(r.Context(), usecase.CreateRequestInput{
		TeamName:    req.TeamName,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Roles: lo.Map(req.Roles, func(rr RoleRequest, _ int) usecase.RoleInput {
			return usecase.RoleInput{Role: rr.Role, Quantity: rr.Quantity, Salary: rr.Salary}
		}),
	})
	if err != nil {
		return nil, err
	}

	return CreateRequestResponse{toRequest(*resp)}, nil
}
