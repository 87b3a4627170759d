package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/talentflow/internal/identity/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/display"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
)

type MeOutput struct {
	UserID      int64
	UserType    entity.UserType
	Email       string
	DisplayName string
	Tabs        []entity.ProfileTab
}

func (s *Usecase) Me(ctx context.Context) (*MeOutput, error) {
	ctx, span := s.startSpan(ctx, "Me")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "identity.me", "read")
	if err != nil {
		return nil, err
	}

	acc, err := s.repoDB.GetAccountByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account of token not found", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &MeOutput{
		UserID:      acc.ID,
		UserType:    acc.UserType,
		Email:       acc.Email,
		DisplayName: display.Name(acc.FirstName, acc.LastName),
	}
	if acc.UserType == entity.UserTypeEmployee {
		out.Tabs = entity.EmployeeProfileTabs
	}

	return out, nil
}
