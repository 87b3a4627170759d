package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/talentflow/internal/company/entity"
	"github.com/shandysiswandi/talentflow/internal/company/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
)

const requestDateLayout = "2006-01-02T15:04:05"

type ManagerResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
}

type ProfileResponse struct {
	CompanyID int64           `json:"company_id,string"`
	Name      string          `json:"name"`
	NIF       string          `json:"nif"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Website   string          `json:"website"`
	Manager   ManagerResponse `json:"manager"`
}

func toProfile(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		CompanyID: p.CompanyID,
		Name:      p.Name,
		NIF:       p.NIF,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		Website:   p.Website,
		Manager: ManagerResponse{
			Name:     p.Manager.Name,
			Email:    p.Manager.Email,
			Phone:    p.Manager.Phone,
			Position: p.Manager.Position,
		},
	}
}

type UpdateManagerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
}

type StartEmailChangeRequest struct {
	Email string `json:"email"`
}

type EmailDigitRequest struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

type EmailPasteRequest struct {
	Text string `json:"text"`
}

type EmailKeyRequest struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
}

type EmailChangeResponse struct {
	ChangeID    string        `json:"change_id"`
	MaskedEmail string        `json:"masked_email"`
	Focus       otpflow.Focus `json:"focus"`
	State       otpflow.State `json:"state"`
}

func toEmailChange(o *usecase.EmailChangeOutput) EmailChangeResponse {
	return EmailChangeResponse{
		ChangeID:    o.ChangeID,
		MaskedEmail: o.MaskedEmail,
		Focus:       o.Focus,
		State:       o.State,
	}
}

type StartEmailChangeResponse struct {
	EmailChangeResponse
}

func (StartEmailChangeResponse) StatusCode() int {
	return http.StatusCreated
}

func (StartEmailChangeResponse) Message() string {
	return "Código enviado"
}

type CancelEmailChangeResponse struct{}

func (CancelEmailChangeResponse) StatusCode() int {
	return http.StatusNoContent
}

type RoleRequest struct {
	Role     string   `json:"role"`
	Quantity int      `json:"quantity"`
	Salary   *float64 `json:"salary"`
}

type CreateRequestRequest struct {
	TeamName    string        `json:"team_name"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	StartDate   string        `json:"start_date" example:"2026-06-01"`
	EndDate     string        `json:"end_date" example:"2026-09-30"`
	Roles       []RoleRequest `json:"roles"`
}

type RoleResponse struct {
	Role     string   `json:"role"`
	Quantity int      `json:"quantity"`
	Salary   *float64 `json:"salary"`
}

type RequestResponse struct {
	ID             int64          `json:"id,string"`
	TeamName       string         `json:"team_name"`
	Description    string         `json:"description"`
	Location       string         `json:"location"`
	LocationLabel  string         `json:"location_label"`
	StartDate      *string        `json:"start_date"`
	EndDate        *string        `json:"end_date"`
	CreatedAt      time.Time      `json:"created_at"`
	Status         string         `json:"status"`
	StatusLabel    string         `json:"status_label"`
	StartDateLabel string         `json:"start_date_label"`
	EndDateLabel   string         `json:"end_date_label"`
	CreatedAtLabel string         `json:"created_at_label"`
	Roles          []RoleResponse `json:"roles"`
}

type CreateRequestResponse struct {
	RequestResponse
}

func (CreateRequestResponse) StatusCode() int {
	return http.StatusCreated
}

func (CreateRequestResponse) Message() string {
	return "Requisição criada"
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(requestDateLayout)
	return &s
}

func toRequest(v usecase.RequestView) RequestResponse {
	roles := make([]RoleResponse, 0, len(v.Roles))
	for _, r := range v.Roles {
		roles = append(roles, RoleResponse{Role: r.Role, Quantity: r.Quantity, Salary: r.Salary})
	}

	return RequestResponse{
		ID:             v.ID,
		TeamName:       v.TeamName,
		Description:    v.Description,
		Location:       v.Location,
		LocationLabel:  v.LocationLabel,
		StartDate:      formatDate(v.StartDate),
		EndDate:        formatDate(v.EndDate),
		CreatedAt:      v.CreatedAt,
		Status:         string(v.Status),
		StatusLabel:    v.StatusLabel,
		StartDateLabel: v.StartDateLabel,
		EndDateLabel:   v.EndDateLabel,
		CreatedAtLabel: v.CreatedAtLabel,
		Roles:          roles,
	}
}
