package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/talentflow/internal/company/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
)

type GetProfileInput struct {
	// Force skips the cache.
	Force bool
}

func (s *Usecase) GetProfile(ctx context.Context, in GetProfileInput) (*entity.Profile, error) {
	ctx, span := s.startSpan(ctx, "GetProfile")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "company.profile", "read")
	if err != nil {
		return nil, err
	}

	if !in.Force {
		p, err := s.repoCache.GetProfile(ctx, clm.UserID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "failed to read cached company profile", "company_id", clm.UserID, "error", err)
		}
	}

	p, err := s.repoDB.GetProfile(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errProfileNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get company profile", "company_id", clm.UserID, "error", err)
		return nil, goerror.NewBusiness(msgProfileLoad, goerror.CodeInternal)
	}

	s.cacheProfile(ctx, p)

	return p, nil
}

type UpdateManagerInput struct {
	Name     string `validate:"required,personname,max=120"`
	Phone    string `validate:"omitempty,digits,min=9,max=15"`
	Position string `validate:"omitempty,max=80"`
}

// UpdateManager saves the manager contact. The email changes only through
// the confirmation flow.
func (s *Usecase) UpdateManager(ctx context.Context, in UpdateManagerInput) (*entity.Profile, error) {
	ctx, span := s.startSpan(ctx, "UpdateManager")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "company.profile", "write")
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Position = strings.TrimSpace(in.Position)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	p, err := s.repoDB.UpdateManager(ctx, clm.UserID, entity.Manager{
		Name:     in.Name,
		Phone:    in.Phone,
		Position: in.Position,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errProfileNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update manager", "company_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.cacheProfile(ctx, p)

	return p, nil
}
