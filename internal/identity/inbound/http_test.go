package inbound

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shandysiswandi/talentflow/internal/identity/entity"
	"github.com/shandysiswandi/talentflow/internal/identity/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
	"github.com/shandysiswandi/talentflow/internal/pkg/testkit"
)

type fakeUC struct {
	loginIn   usecase.LoginInput
	loggedOut bool
}

func (f *fakeUC) Login(_ context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error) {
	f.loginIn = in
	if in.Password != "ok" {
		return nil, goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized)
	}
	return &usecase.LoginOutput{AccessToken: "tok", ExpiresIn: 900, UserType: "company"}, nil
}

func (f *fakeUC) Logout(context.Context) error {
	f.loggedOut = true
	return nil
}

func (f *fakeUC) Me(ctx context.Context) (*usecase.MeOutput, error) {
	clm := jwt.GetAuth(ctx)
	return &usecase.MeOutput{
		UserID:      clm.UserID,
		UserType:    entity.UserType(clm.UserType),
		Email:       clm.UserEmail,
		DisplayName: "Ana Silva",
		Tabs:        entity.EmployeeProfileTabs[:1],
	}, nil
}

func TestHTTPEndpoint(t *testing.T) {
	t.Parallel()

	h := testkit.NewHTTP(t)
	uc := &fakeUC{}
	RegisterHTTPEndpoint(h.Router, uc)

	rec := h.Do(t, http.MethodPost, "/api/v1/identity/login", `{"email":"rh@empresa.pt","password":"ok"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{
		"access_token": "tok",
		"token_type":   "Bearer",
		"expires_in":   float64(900),
		"user_type":    "company",
	}, testkit.Decode(t, rec)["data"])
	assert.Equal(t, "rh@empresa.pt", uc.loginIn.Email)

	rec = h.Do(t, http.MethodPost, "/api/v1/identity/login", `{"email":"rh@empresa.pt","password":"bad"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.Do(t, http.MethodPost, "/api/v1/identity/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, uc.loggedOut)

	sub := &jwt.Subject{UserID: 9, Email: "ana@example.com", UserType: "employee"}
	rec = h.Do(t, http.MethodPost, "/api/v1/identity/logout", "", sub)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.loggedOut)

	rec = h.Do(t, http.MethodGet, "/api/v1/identity/me", "", sub)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := testkit.Decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, "9", data["user_id"])
	assert.Equal(t, "employee", data["user_type"])
	assert.Equal(t, []any{map[string]any{"slug": "dados-pessoais", "label": "Dados Pessoais", "path": "/candidato/dados-pessoais"}}, data["tabs"])
}
