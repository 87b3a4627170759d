package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/talentflow/internal/staffing/usecase"
)

const headerIdempotencyKey = "Idempotency-Key"

type AdminResponse struct {
	ID      int64  `json:"id,string"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Current bool   `json:"current"`
}

type ListAdminsResponse struct {
	Admins       []AdminResponse `json:"admins"`
	EmptyMessage string          `json:"empty_message,omitempty"`
}

func toListAdmins(o *usecase.ListAdminsOutput) ListAdminsResponse {
	return ListAdminsResponse{
		Admins: lo.Map(o.Admins, func(a usecase.AdminView, _ int) AdminResponse {
			return AdminResponse{ID: a.ID, Name: a.Name, Count: a.Count, Current: a.Current}
		}),
		EmptyMessage: o.EmptyMessage,
	}
}

type AssignAdminRequest struct {
	AdminID int64 `json:"admin_id,string" example:"12"`
}

type AssignAdminResponse struct {
	RequestID int64 `json:"request_id,string"`
	AdminID   int64 `json:"admin_id,string"`
}

func (AssignAdminResponse) Message() string {
	return "Administrador atribuído"
}
