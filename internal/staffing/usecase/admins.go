package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/idempotency"
	"github.com/shandysiswandi/talentflow/internal/staffing/entity"
)

const (
	msgNoAdmins = "Nenhum administrador disponível."

	scopeAssign = "staffing.assign"
)

var (
	errRequestNotFound = goerror.NewBusiness("Request not found", goerror.CodeNotFound)
	errAdminNotFound   = goerror.NewBusiness("Administrator not found", goerror.CodeNotFound)
	errAlreadyAssigned = goerror.NewBusiness("Administrador já atribuído.", goerror.CodeConflict)
)

type AdminView struct {
	ID      int64
	Name    string
	Count   int
	Current bool
}

type ListAdminsInput struct {
	RequestID int64
	Search    string
}

type ListAdminsOutput struct {
	// Admins starts with the current admin, when there is one, followed by
	// the others matching the search.
	Admins       []AdminView
	EmptyMessage string
}

func toView(a entity.Admin, current bool) AdminView {
	return AdminView{ID: a.ID, Name: a.Name, Count: a.Count(), Current: current}
}

func (s *Usecase) request(ctx context.Context, id int64) (*entity.Request, error) {
	req, err := s.repoDB.GetRequest(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errRequestNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get request", "request_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}
	return req, nil
}

// ListAdmins returns the admins a request can be assigned to. The current
// admin is always listed first and ignores the search.
func (s *Usecase) ListAdmins(ctx context.Context, in ListAdminsInput) (*ListAdminsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListAdmins")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "staffing.admins", "read"); err != nil {
		return nil, err
	}

	req, err := s.request(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}

	admins, err := s.repoDB.ListAdmins(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list admins", "error", err)
		return nil, goerror.NewServer(err)
	}

	term := strings.ToLower(strings.TrimSpace(in.Search))
	out := &ListAdminsOutput{Admins: []AdminView{}}

	if current, ok := lo.Find(admins, func(a entity.Admin) bool { return req.AdminID != 0 && a.ID == req.AdminID }); ok {
		out.Admins = append(out.Admins, toView(current, true))
	}

	for _, a := range admins {
		if a.ID == req.AdminID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(a.Name), term) {
			continue
		}
		out.Admins = append(out.Admins, toView(a, false))
	}

	if len(out.Admins) == 0 {
		out.EmptyMessage = msgNoAdmins
	}

	return out, nil
}

type AssignAdminInput struct {
	RequestID      int64  `validate:"required,gt=0"`
	AdminID        int64  `validate:"required,gt=0"`
	IdempotencyKey string `validate:"required,max=128"`
}

// AssignAdmin makes AdminID responsible for a request. A retried call with
// the same idempotency key succeeds without assigning again; a key whose
// first attempt failed is spent.
func (s *Usecase) AssignAdmin(ctx context.Context, in AssignAdminInput) error {
	ctx, span := s.startSpan(ctx, "AssignAdmin")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "staffing.assign", "write")
	if err != nil {
		return err
	}

	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err = s.idempotency.Exec(ctx, scopeAssign, in.IdempotencyKey, func(ctx context.Context) error {
		req, err := s.request(ctx, in.RequestID)
		if err != nil {
			return err
		}
		if req.AdminID == in.AdminID {
			return errAlreadyAssigned
		}

		_, err = s.repoDB.GetAdmin(ctx, in.AdminID)
		if errors.Is(err, goerror.ErrNotFound) {
			return errAdminNotFound
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get admin", "admin_id", in.AdminID, "error", err)
			return goerror.NewServer(err)
		}

		if err := s.repoDB.AssignAdmin(ctx, in.RequestID, in.AdminID); err != nil {
			slog.ErrorContext(ctx, "failed to repo assign admin", "request_id", in.RequestID, "error", err)
			return goerror.NewServer(err)
		}

		return nil
	})
	var gerr *goerror.Error
	switch {
	case err == nil:
		slog.InfoContext(ctx, "request admin assigned", "request_id", in.RequestID, "admin_id", in.AdminID, "by", clm.UserID)
		return nil
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		return nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		return goerror.NewBusiness("Atribuição em curso.", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyFailed):
		return goerror.NewBusiness("A atribuição falhou, tente com uma nova chave.", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrMissingKey):
		return goerror.NewInvalidInput(nil, "idempotency_key", "Idempotency-Key header is invalid")
	case errors.As(err, &gerr):
		return err
	default:
		slog.ErrorContext(ctx, "failed to track assignment", "request_id", in.RequestID, "error", err)
		return goerror.NewServer(err)
	}
}
