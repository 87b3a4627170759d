package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/talentflow/internal/content/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
)

var errEntryNotFound = goerror.NewBusiness("Content entry not found", goerror.CodeNotFound)

type EntryInput struct {
	Kind        entity.Kind
	Name        string `validate:"required,max=120"`
	Description string `validate:"max=1000"`
	ImageURL    string `validate:"omitempty,url,max=2048"`
	URL         string `validate:"omitempty,url,max=2048"`
	Active      bool
}

func (in *EntryInput) trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.URL = strings.TrimSpace(in.URL)
}

type UpdateEntryInput struct {
	ID int64
	EntryInput
}

func (s *Usecase) checkKind(kind entity.Kind) error {
	if !kind.Valid() {
		return goerror.NewInvalidFormat("Invalid content section")
	}
	return nil
}

func (s *Usecase) ListEntries(ctx context.Context, kind entity.Kind) ([]entity.Entry, error) {
	ctx, span := s.startSpan(ctx, "ListEntries")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, objContent, actRead); err != nil {
		return nil, err
	}
	if err := s.checkKind(kind); err != nil {
		return nil, err
	}

	entries, err := s.repoDB.ListEntries(ctx, kind)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list entries", "kind", kind, "error", err)
		return nil, goerror.NewServer(err)
	}

	if entries == nil {
		entries = []entity.Entry{}
	}

	return entries, nil
}

func (s *Usecase) CreateEntry(ctx context.Context, in EntryInput) (*entity.Entry, error) {
	ctx, span := s.startSpan(ctx, "CreateEntry")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, objContent, actWrite); err != nil {
		return nil, err
	}
	if err := s.checkKind(in.Kind); err != nil {
		return nil, err
	}

	in.trim()
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	e := entity.Entry{
		ID:          s.uid.Generate(),
		Kind:        in.Kind,
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		URL:         in.URL,
		Active:      in.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repoDB.CreateEntry(ctx, e); err != nil {
		slog.ErrorContext(ctx, "failed to repo create entry", "kind", in.Kind, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &e, nil
}

func (s *Usecase) UpdateEntry(ctx context.Context, in UpdateEntryInput) (*entity.Entry, error) {
	ctx, span := s.startSpan(ctx, "UpdateEntry")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, objContent, actWrite); err != nil {
		return nil, err
	}
	if err := s.checkKind(in.Kind); err != nil {
		return nil, err
	}

	in.trim()
	if err := s.validator.Validate(in.EntryInput); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	e, err := s.repoDB.GetEntry(ctx, in.Kind, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errEntryNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get entry", "kind", in.Kind, "id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	e.Name = in.Name
	e.Description = in.Description
	e.ImageURL = in.ImageURL
	e.URL = in.URL
	e.Active = in.Active
	e.UpdatedAt = s.clock.Now()

	if err := s.repoDB.UpdateEntry(ctx, *e); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, errEntryNotFound
		}
		slog.ErrorContext(ctx, "failed to repo update entry", "kind", in.Kind, "id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return e, nil
}

func (s *Usecase) DeleteEntry(ctx context.Context, kind entity.Kind, id int64) error {
	ctx, span := s.startSpan(ctx, "DeleteEntry")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, objContent, actWrite); err != nil {
		return err
	}
	if err := s.checkKind(kind); err != nil {
		return err
	}

	err := s.repoDB.DeleteEntry(ctx, kind, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return errEntryNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete entry", "kind", kind, "id", id, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
