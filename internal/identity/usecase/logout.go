package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
)

// Logout revokes the current access token until it would have expired.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ttl := clm.TTL(s.clock.Now())
	if clm.ID == "" || ttl <= 0 {
		return nil
	}

	if err := s.repoCache.Revoke(ctx, clm.ID, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to repo revoke token", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
