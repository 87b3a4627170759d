package inbound

import (
	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
	"github.com/shandysiswandi/talentflow/internal/registration/usecase"
)

// HTTPEndpoint exposes the employee registration wizard.
type HTTPEndpoint struct {
	uc uc
}

// CreateSession starts a registration wizard.
// @Summary Start registration
// @Tags Registration
// @Produce json
// @Success 201 {object} router.successResponse{data=CreateSessionResponse} "Session created"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registration/sessions [post]
func (h *HTTPEndpoint) CreateSession(r *router.Request) (any, error) {
	resp, err := h.uc.CreateSession(r.Context())
	if err != nil {
		return nil, err
	}

	return CreateSessionResponse{SessionID: resp.SessionID, Progress: toProgress(resp)}, nil
}

// GetSession returns the wizard progress.
// @Summary Registration progress
// @Description Completed, pending and accessible steps, data entered so far and the code prompt state.
// @Tags Registration
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} router.successResponse{data=ProgressResponse} "Progress"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Router /api/v1/registration/sessions/{id} [get]
func (h *HTTPEndpoint) GetSession(r *router.Request) (any, error) {
	resp, err := h.uc.GetSession(r.Context(), r.GetParam("id"))
	if err != nil {
		return nil, err
	}

	return toProgress(resp), nil
}

// DeleteSession abandons the wizard.
// @Summary Abandon registration
// @Tags Registration
// @Param id path string true "Session ID"
// @Success 204 "Session removed"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Router /api/v1/registration/sessions/{id} [delete]
func (h *HTTPEndpoint) DeleteSession(r *router.Request) (any, error) {
	if err := h.uc.DeleteSession(r.Context(), r.GetParam("id")); err != nil {
		return nil, err
	}

	return DeleteSessionResponse{}, nil
}

// GoToStep moves the wizard to a reachable step.
// @Summary Navigate to step
// @Description Steps whose predecessor is not complete are ignored and moved is false.
// @Tags Registration
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body GoToStepRequest true "Target step"
// @Success 200 {object} router.successResponse{data=GoToStepResponse} "Navigation result"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Router /api/v1/registration/sessions/{id}/goto [post]
func (h *HTTPEndpoint) GoToStep(r *router.Request) (any, error) {
	var req GoToStepRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.GoToStep(r.Context(), usecase.GoToStepInput{
		SessionID: r.GetParam("id"),
		Step:      req.Step,
	})
	if err != nil {
		return nil, err
	}

	return GoToStepResponse{Moved: resp.Moved, Progress: toProgress(resp.Progress)}, nil
}

// SubmitCredentials saves step 1.
// @Summary Registration credentials
// @Tags Registration
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body CredentialsRequest true "Email and password"
// @Success 200 {object} router.successResponse{data=ProgressResponse} "Progress"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/registration/sessions/{id}/steps/1 [post]
func (h *HTTPEndpoint) SubmitCredentials(r *router.Request) (any, error) {
	var req CredentialsRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitCredentials(r.Context(), usecase.CredentialsInput{
		SessionID:       r.GetParam("id"),
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return nil, err
	}

	return toProgress(resp), nil
}

// SubmitPersonal saves step 2.
// @Summary Registration personal data
// @Tags Registration
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body PersonalRequest true "Personal data"
// @Success 200 {object} router.successResponse{data=ProgressResponse} "Progress"
// @Failure 403 {object} router.errorResponse "Previous step not complete"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/registration/sessions/{id}/steps/2 [post]
func (h *HTTPEndpoint) SubmitPersonal(r *router.Request) (any, error) {
	var req PersonalRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitPersonal(r.Context(), usecase.PersonalInput{
		SessionID: r.GetParam("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		return nil, err
	}

	return toProgress(resp), nil
}

// SubmitPreferences saves step 3, creates the pending account and sends the code.
// @Summary Registration preferences
// @Tags Registration
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body PreferencesRequest true "Preferences"
// @Success 200 {object} router.successResponse{data=ProgressResponse} "Progress"
// @Failure 403 {object} router.errorResponse "Previous step not complete"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many codes today"
// @Router /api/v1/registration/sessions/{id}/steps/3 [post]
func (h *HTTPEndpoint) SubmitPreferences(r *router.Request) (any, error) {
	var req PreferencesRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitPreferences(r.Context(), usecase.PreferencesInput{
		SessionID:       r.GetParam("id"),
		Functions:       req.Functions,
		Competences:     req.Competences,
		GeoAreas:        req.GeoAreas,
		ActivitySectors: req.ActivitySectors,
	})
	if err != nil {
		return nil, err
	}

	return toProgress(resp), nil
}

// OTPDigit types into one code cell.
// @Summary Code cell input
// @Tags Registration
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body OTPDigitRequest true "Cell input"
// @Success 200 {object} router.successResponse{data=OTPResponse} "Focus and state"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 409 {object} router.errorResponse "Verification not started"
// @Router /api/v1/registration/sessions/{id}/otp/digits [post]
func (h *HTTPEndpoint) OTPDigit(r *router.Request) (any, error) {
	var req OTPDigitRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPDigit(r.Context(), usecase.OTPDigitInput{
		SessionID: r.GetParam("id"),
		Index:     req.Index,
		Value:     req.Value,
	})
	if err != nil {
		return nil, err
	}

	return OTPResponse{Focus: resp.Focus, Progress: toProgress(resp.Progress)}, nil
}

// OTPPaste fills the code cells from pasted text.
// @Summary Code paste
// @Tags Registration
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body OTPPasteRequest true "Pasted text"
// @Success 200 {object} router.successResponse{data=OTPResponse} "Focus and state"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 409 {object} router.errorResponse "Verification not started"
// @Router /api/v1/registration/sessions/{id}/otp/paste [post]
func (h *HTTPEndpoint) OTPPaste(r *router.Request) (any, error) {
	var req OTPPasteRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPPaste(r.Context(), usecase.OTPPasteInput{
		SessionID: r.GetParam("id"),
		Text:      req.Text,
	})
	if err != nil {
		return nil, err
	}

	return OTPResponse{Focus: resp.Focus, Progress: toProgress(resp.Progress)}, nil
}

// OTPKey applies a navigation key in a code cell.
// @Summary Code cell key
// @Tags Registration
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body OTPKeyRequest true "Key press"
// @Success 200 {object} router.successResponse{data=OTPResponse} "Focus and state"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 409 {object} router.errorResponse "Verification not started"
// @Router /api/v1/registration/sessions/{id}/otp/keys [post]
func (h *HTTPEndpoint) OTPKey(r *router.Request) (any, error) {
	var req OTPKeyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPKey(r.Context(), usecase.OTPKeyInput{
		SessionID: r.GetParam("id"),
		Index:     req.Index,
		Key:       otpflow.Key(req.Key),
	})
	if err != nil {
		return nil, err
	}

	return OTPResponse{Focus: resp.Focus, Progress: toProgress(resp.Progress)}, nil
}

// OTPSubmit verifies the typed code and activates the account.
// @Summary Code submit
// @Description A rejected code returns verified false with the message in otp.error.
// @Tags Registration
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} router.successResponse{data=OTPSubmitResponse} "Verification result"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 409 {object} router.errorResponse "Verification not started"
// @Router /api/v1/registration/sessions/{id}/otp/submit [post]
func (h *HTTPEndpoint) OTPSubmit(r *router.Request) (any, error) {
	resp, err := h.uc.OTPSubmit(r.Context(), r.GetParam("id"))
	if err != nil {
		return nil, err
	}

	return OTPSubmitResponse{Verified: resp.Verified, Progress: toProgress(resp.Progress)}, nil
}

// OTPResend sends a new code and starts the cooldown.
// @Summary Code resend
// @Tags Registration
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} router.successResponse{data=OTPSubmitResponse} "State after resend"
// @Failure 404 {object} router.errorResponse "Session not found"
// @Failure 409 {object} router.errorResponse "Verification not started"
// @Router /api/v1/registration/sessions/{id}/otp/resend [post]
func (h *HTTPEndpoint) OTPResend(r *router.Request) (any, error) {
	resp, err := h.uc.OTPResend(r.Context(), r.GetParam("id"))
	if err != nil {
		return nil, err
	}

	return OTPSubmitResponse{Verified: resp.Verified, Progress: toProgress(resp.Progress)}, nil
}

// Verify activates a pending account without a wizard session.
// @Summary Verify account
// @Tags Registration
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Email and code"
// @Success 200 {object} router.successResponse "Account verified"
// @Failure 410 {object} router.errorResponse "Code expired"
// @Failure 422 {object} router.errorResponse "Invalid code"
// @Failure 429 {object} router.errorResponse "Too many attempts"
// @Router /api/v1/registration/verify [post]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Verify(r.Context(), usecase.VerifyInput{Email: req.Email, Code: req.Code}); err != nil {
		return nil, err
	}

	return VerifyResponse{}, nil
}

// Resend sends a new code to a pending account.
// @Summary Resend code
// @Tags Registration
// @Accept json
// @Produce json
// @Param request body ResendRequest true "Email"
// @Success 200 {object} router.successResponse "Accepted"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many codes today"
// @Router /api/v1/registration/resend [post]
func (h *HTTPEndpoint) Resend(r *router.Request) (any, error) {
	var req ResendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Resend(r.Context(), usecase.ResendInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return ResendResponse{}, nil
}
