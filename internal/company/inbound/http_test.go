package inbound

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/talentflow/internal/company/entity"
	"github.com/shandysiswandi/talentflow/internal/company/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/pkg/testkit"
)

type fakeUC struct {
	profileIn usecase.GetProfileInput
	createIn  usecase.CreateRequestInput
	cancelled string
}

func (f *fakeUC) GetProfile(_ context.Context, in usecase.GetProfileInput) (*entity.Profile, error) {
	f.profileIn = in
	return &entity.Profile{CompanyID: 7, Name: "Hotel Atlântico", Manager: entity.Manager{Name: "Rita Costa"}}, nil
}

func (f *fakeUC) UpdateManager(_ context.Context, in usecase.UpdateManagerInput) (*entity.Profile, error) {
	return &entity.Profile{CompanyID: 7, Manager: entity.Manager{Name: in.Name}}, nil
}

func (f *fakeUC) StartEmailChange(_ context.Context, in usecase.StartEmailChangeInput) (*usecase.EmailChangeOutput, error) {
	return &usecase.EmailChangeOutput{ChangeID: "chg-1", MaskedEmail: otpflow.MaskEmail(in.Email), State: otpflow.State{Length: 5}}, nil
}

func (f *fakeUC) EmailDigit(_ context.Context, in usecase.EmailDigitInput) (*usecase.EmailChangeOutput, error) {
	return &usecase.EmailChangeOutput{ChangeID: in.ChangeID, Focus: otpflow.Focus{Index: in.Index + 1, Moved: true}}, nil
}

func (f *fakeUC) EmailPaste(_ context.Context, in usecase.EmailPasteInput) (*usecase.EmailChangeOutput, error) {
	return &usecase.EmailChangeOutput{ChangeID: in.ChangeID}, nil
}

func (f *fakeUC) EmailKey(_ context.Context, in usecase.EmailKeyInput) (*usecase.EmailChangeOutput, error) {
	return &usecase.EmailChangeOutput{ChangeID: in.ChangeID}, nil
}

func (f *fakeUC) SubmitEmailChange(_ context.Context, id string) (*usecase.EmailChangeOutput, error) {
	return &usecase.EmailChangeOutput{ChangeID: id, State: otpflow.State{Verified: true}}, nil
}

func (f *fakeUC) ResendEmailChange(_ context.Context, id string) (*usecase.EmailChangeOutput, error) {
	return &usecase.EmailChangeOutput{ChangeID: id}, nil
}

func (f *fakeUC) CancelEmailChange(_ context.Context, id string) error {
	f.cancelled = id
	return nil
}

func (f *fakeUC) ListRequests(context.Context) ([]usecase.RequestView, error) {
	return []usecase.RequestView{}, nil
}

func (f *fakeUC) CreateRequest(_ context.Context, in usecase.CreateRequestInput) (*usecase.RequestView, error) {
	f.createIn = in
	if in.TeamName == "" {
		return nil, goerror.NewInvalidInput(nil, "team_name", "Indique o nome da requisição.")
	}
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return &usecase.RequestView{
		Request:     entity.Request{ID: 900, TeamName: in.TeamName, StartDate: &start},
		Status:      entity.RequestStatusPending,
		StatusLabel: "Pendente",
	}, nil
}

var company = &jwt.Subject{UserID: 7, Email: "rh@atlantico.pt", UserType: "company"}

func TestHTTPEndpoint_Profile(t *testing.T) {
	t.Parallel()

	h := testkit.NewHTTP(t)
	uc := &fakeUC{}
	RegisterHTTPEndpoint(h.Router, uc)

	rec := h.Do(t, http.MethodGet, "/api/v1/company/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.Do(t, http.MethodGet, "/api/v1/company/profile?force=true", "", company)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.profileIn.Force)
	data := testkit.Decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "7", data["company_id"])
	assert.Equal(t, "Rita Costa", data["manager"].(map[string]any)["name"])

	rec = h.Do(t, http.MethodGet, "/api/v1/company/profile?force=maybe", "", company)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPEndpoint_EmailChange(t *testing.T) {
	t.Parallel()

	h := testkit.NewHTTP(t)
	uc := &fakeUC{}
	RegisterHTTPEndpoint(h.Router, uc)

	rec := h.Do(t, http.MethodPost, "/api/v1/company/manager/email", `{"email":"nova@atlantico.pt"}`, company)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := testkit.Decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "chg-1", data["change_id"])
	assert.Equal(t, "no***@atlantico.pt", data["masked_email"])
	assert.Equal(t, float64(5), data["state"].(map[string]any)["length"])

	rec = h.Do(t, http.MethodPost, "/api/v1/company/manager/email/chg-1/digits", `{"index":0,"value":"4"}`, company)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"index": float64(1), "moved": true}, testkit.Decode(t, rec)["data"].(map[string]any)["focus"])

	rec = h.Do(t, http.MethodPost, "/api/v1/company/manager/email/chg-1/submit", "", company)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, testkit.Decode(t, rec)["data"].(map[string]any)["state"].(map[string]any)["verified"])

	rec = h.Do(t, http.MethodDelete, "/api/v1/company/manager/email/chg-1", "", company)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "chg-1", uc.cancelled)
}

func TestHTTPEndpoint_Requests(t *testing.T) {
	t.Parallel()

	h := testkit.NewHTTP(t)
	uc := &fakeUC{}
	RegisterHTTPEndpoint(h.Router, uc)

	rec := h.Do(t, http.MethodGet, "/api/v1/company/requests", "", company)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, testkit.Decode(t, rec)["data"])

	rec = h.Do(t, http.MethodPost, "/api/v1/company/requests", `{"team_name":"","roles":[]}`, company)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, map[string]any{"team_name": "Indique o nome da requisição."}, testkit.Decode(t, rec)["error"])

	rec = h.Do(t, http.MethodPost, "/api/v1/company/requests",
		`{"team_name":"Verão","start_date":"2026-06-01","roles":[{"role":"Cozinheiro","quantity":2,"salary":950.5}]}`, company)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := testkit.Decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "900", data["id"])
	assert.Equal(t, "2026-06-01T00:00:00", data["start_date"])
	assert.Nil(t, data["end_date"])
	assert.Equal(t, "Pendente", data["status_label"])
	require.Len(t, uc.createIn.Roles, 1)
	assert.Equal(t, 950.5, *uc.createIn.Roles[0].Salary)
}
