package inbound

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
	"github.com/shandysiswandi/talentflow/internal/pkg/testkit"
	"github.com/shandysiswandi/talentflow/internal/staffing/usecase"
)

type fakeUC struct {
	listIn   usecase.ListAdminsInput
	assignIn usecase.AssignAdminInput
}

func (f *fakeUC) ListAdmins(_ context.Context, in usecase.ListAdminsInput) (*usecase.ListAdminsOutput, error) {
	f.listIn = in
	if in.Search == "zz" {
		return &usecase.ListAdminsOutput{Admins: []usecase.AdminView{}, EmptyMessage: "Nenhum administrador disponível."}, nil
	}
	return &usecase.ListAdminsOutput{Admins: []usecase.AdminView{
		{ID: 1, Name: "Ana Lopes", Count: 7, Current: true},
		{ID: 2, Name: "Bruno Reis", Count: 1},
	}}, nil
}

func (f *fakeUC) AssignAdmin(_ context.Context, in usecase.AssignAdminInput) error {
	f.assignIn = in
	if in.AdminID == 1 {
		return goerror.NewBusiness("Administrador já atribuído.", goerror.CodeConflict)
	}
	return nil
}

var admin = &jwt.Subject{UserID: 1, Email: "ana@talentflow.pt", UserType: "admin"}

func TestHTTPEndpoint_ListAdmins(t *testing.T) {
	t.Parallel()

	h := testkit.NewHTTP(t)
	uc := &fakeUC{}
	RegisterHTTPEndpoint(h.Router, uc)

	rec := h.Do(t, http.MethodGet, "/api/v1/staffing/requests/100/admins?search=%20ana%20", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.ListAdminsInput{RequestID: 100, Search: "ana"}, uc.listIn)

	data := testkit.Decode(t, rec)["data"].(map[string]any)
	admins := data["admins"].([]any)
	require.Len(t, admins, 2)
	assert.Equal(t, map[string]any{"id": "1", "name": "Ana Lopes", "count": float64(7), "current": true}, admins[0])
	assert.NotContains(t, data, "empty_message")

	rec = h.Do(t, http.MethodGet, "/api/v1/staffing/requests/100/admins?search=zz", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	data = testkit.Decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, []any{}, data["admins"])
	assert.Equal(t, "Nenhum administrador disponível.", data["empty_message"])

	rec = h.Do(t, http.MethodGet, "/api/v1/staffing/requests/abc/admins", "", admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPEndpoint_AssignAdmin(t *testing.T) {
	t.Parallel()

	h := testkit.NewHTTP(t)
	uc := &fakeUC{}
	RegisterHTTPEndpoint(h.Router, uc)

	token, err := h.JWT.Generate(*admin)
	require.NoError(t, err)

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/staffing/requests/100/admin", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Idempotency-Key", "assign-100-2")
		return h.Send(req)
	}

	rec := send(`{"admin_id":"2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.AssignAdminInput{RequestID: 100, AdminID: 2, IdempotencyKey: "assign-100-2"}, uc.assignIn)
	assert.Equal(t, map[string]any{"request_id": "100", "admin_id": "2"}, testkit.Decode(t, rec)["data"])

	rec = send(`{"admin_id":"1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Administrador já atribuído.", testkit.Decode(t, rec)["message"])
}
