package usecase

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/talentflow/internal/content/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/display"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
)

func normalizeOptions(in entity.Options) entity.Options {
	out := make(entity.Options, len(entity.OptionNames))
	for _, name := range entity.OptionNames {
		out[name] = display.Selection(in[name])
	}
	return out
}

// GetOptions returns every option list, empty lists included.
func (s *Usecase) GetOptions(ctx context.Context) (entity.Options, error) {
	ctx, span := s.startSpan(ctx, "GetOptions")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, objContent, actRead); err != nil {
		return nil, err
	}

	opts, err := s.repoDB.GetOptions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get options", "error", err)
		return nil, goerror.NewServer(err)
	}

	return normalizeOptions(opts), nil
}

// UpdateOptions replaces the lists present in in. Lists it does not name keep
// their stored values.
func (s *Usecase) UpdateOptions(ctx context.Context, in entity.Options) (entity.Options, error) {
	ctx, span := s.startSpan(ctx, "UpdateOptions")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, objContent, actWrite); err != nil {
		return nil, err
	}

	for name := range in {
		if !slices.Contains(entity.OptionNames, name) {
			return nil, goerror.NewInvalidInput(nil, name, "Unknown option list")
		}
	}

	current, err := s.repoDB.GetOptions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get options", "error", err)
		return nil, goerror.NewServer(err)
	}

	merged := normalizeOptions(current)
	for name, values := range in {
		merged[name] = display.Selection(values)
	}

	if err := s.repoDB.SaveOptions(ctx, merged); err != nil {
		slog.ErrorContext(ctx, "failed to repo save options", "error", err)
		return nil, goerror.NewServer(err)
	}

	return merged, nil
}
