package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/talentflow/internal/company/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/display"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
)

const (
	msgTeamNameRequired = "Indique o nome da requisição."
	msgRolesRequired    = "Adicione pelo menos uma função."
	msgRoleBlank        = "Preencha a função em todas as caixas."
	msgInvalidDate      = "Data inválida."
	msgEndBeforeStart   = "A data de fim não pode ser anterior à data de início."

	locationFallback = "Local não definido"
)

type RequestView struct {
	entity.Request
	LocationLabel  string
	Status         entity.RequestStatus
	StatusLabel    string
	StartDateLabel string
	EndDateLabel   string
	CreatedAtLabel string
}

func (s *Usecase) view(r entity.Request, today time.Time) RequestView {
	status := entity.ComputeStatus(r.StartDate, r.EndDate, today)

	loc := strings.TrimSpace(r.Location)
	if loc == "" {
		loc = locationFallback
	}

	return RequestView{
		Request:        r,
		LocationLabel:  loc,
		Status:         status,
		StatusLabel:    status.Label(),
		StartDateLabel: display.ShortDate(r.StartDate),
		EndDateLabel:   display.ShortDate(r.EndDate),
		CreatedAtLabel: display.ShortDate(&r.CreatedAt),
	}
}

func (s *Usecase) ListRequests(ctx context.Context) ([]RequestView, error) {
	ctx, span := s.startSpan(ctx, "ListRequests")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "company.requests", "read")
	if err != nil {
		return nil, err
	}

	reqs, err := s.repoDB.ListRequests(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list requests", "company_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	today := s.clock.Now()
	return lo.Map(reqs, func(r entity.Request, _ int) RequestView {
		return s.view(r, today)
	}), nil
}

type RoleInput struct {
	Role     string
	Quantity int
	Salary   *float64
}

type CreateRequestInput struct {
	TeamName    string
	Description string
	Location    string
	// StartDate and EndDate are optional YYYY-MM-DD values.
	StartDate string
	EndDate   string
	Roles     []RoleInput
}

// validateInfo checks the general information step.
func validateInfo(in CreateRequestInput) (start, end *time.Time, err error) {
	if strings.TrimSpace(in.TeamName) == "" {
		return nil, nil, goerror.NewInvalidInput(nil, "team_name", msgTeamNameRequired)
	}

	parse := func(field, v string) (*time.Time, error) {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, nil
		}
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return nil, goerror.NewInvalidInput(nil, field, msgInvalidDate)
		}
		return &t, nil
	}

	if start, err = parse("start_date", in.StartDate); err != nil {
		return nil, nil, err
	}
	if end, err = parse("end_date", in.EndDate); err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, goerror.NewInvalidInput(nil, "end_date", msgEndBeforeStart)
	}

	return start, end, nil
}

// normalizeRoles checks the roles step and applies quantity defaults.
func normalizeRoles(roles []RoleInput) ([]entity.RequestRole, error) {
	if len(roles) == 0 {
		return nil, goerror.NewInvalidInput(nil, "roles", msgRolesRequired)
	}

	out := make([]entity.RequestRole, 0, len(roles))
	for _, r := range roles {
		role := strings.TrimSpace(r.Role)
		if role == "" {
			return nil, goerror.NewInvalidInput(nil, "roles", msgRoleBlank)
		}
		out = append(out, entity.RequestRole{
			Role:     role,
			Quantity: max(1, r.Quantity),
			Salary:   r.Salary,
		})
	}

	return out, nil
}

func (s *Usecase) CreateRequest(ctx context.Context, in CreateRequestInput) (*RequestView, error) {
	ctx, span := s.startSpan(ctx, "CreateRequest")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "company.requests", "write")
	if err != nil {
		return nil, err
	}

	start, end, err := validateInfo(in)
	if err != nil {
		return nil, err
	}

	roles, err := normalizeRoles(in.Roles)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	req := entity.Request{
		ID:          s.uid.Generate(),
		CompanyID:   clm.UserID,
		TeamName:    strings.TrimSpace(in.TeamName),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   now,
		Roles:       roles,
	}

	if err := s.repoDB.CreateRequest(ctx, req); err != nil {
		slog.ErrorContext(ctx, "failed to repo create request", "company_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	v := s.view(req, now)
	return &v, nil
}
