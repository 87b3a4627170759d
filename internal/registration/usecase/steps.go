package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/talentflow/internal/pkg/display"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/registration/entity"
)

type CredentialsInput struct {
	SessionID       string `validate:"required"`
	Email           string `validate:"required,email,max=254"`
	Password        string `validate:"required,password"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// SubmitCredentials stores the login of the future account.
func (s *Usecase) SubmitCredentials(ctx context.Context, in CredentialsInput) (*Progress, error) {
	ctx, span := s.startSpan(ctx, "SubmitCredentials")
	defer span.End()

	sess, err := s.session(in.SessionID)
	if err != nil {
		return nil, err
	}

	in.Email = normalizeEmail(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if sess.AccountID() != 0 {
		if c, _ := sess.Credentials(); c.Email != in.Email {
			return nil, goerror.NewBusiness("Email cannot change after the account was created", goerror.CodeConflict)
		}
	}

	exists, err := s.repoDB.EmailExists(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check email exists", "error", err)
		return nil, goerror.NewServer(err)
	}
	if exists && sess.AccountID() == 0 {
		return nil, errEmailTaken
	}

	pwHash, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	personal, _ := sess.Personal()
	if err := s.syncPendingAccount(ctx, sess, entity.AccountUpdate{PasswordHash: string(pwHash), Personal: personal}); err != nil {
		return nil, err
	}

	sess.SetCredentials(entity.Credentials{Email: in.Email, PasswordHash: string(pwHash)})
	sess.Tracker.CompleteStep(entity.StepCredentials, entity.StepPersonal)

	return s.progress(sess), nil
}

type PersonalInput struct {
	SessionID string `validate:"required"`
	FirstName string `validate:"required,personname,max=80"`
	LastName  string `validate:"required,personname,max=80"`
	Phone     string `validate:"required,digits,min=9,max=15"`
	BirthDate string `validate:"required,ymd"`
}

// SubmitPersonal stores the personal data step.
func (s *Usecase) SubmitPersonal(ctx context.Context, in PersonalInput) (*Progress, error) {
	ctx, span := s.startSpan(ctx, "SubmitPersonal")
	defer span.End()

	sess, err := s.session(in.SessionID)
	if err != nil {
		return nil, err
	}

	if !sess.Tracker.CanAccessStep(entity.StepPersonal) {
		return nil, errStepLocked
	}

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	birth, _ := time.Parse(time.DateOnly, in.BirthDate)
	if !birth.Before(s.clock.Now()) {
		return nil, goerror.NewInvalidInput(nil, "birth_date", "birth_date must be in the past")
	}

	personal := entity.Personal{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		BirthDate: birth,
	}

	cred, _ := sess.Credentials()
	if err := s.syncPendingAccount(ctx, sess, entity.AccountUpdate{PasswordHash: cred.PasswordHash, Personal: personal}); err != nil {
		return nil, err
	}

	sess.SetPersonal(personal)
	sess.Tracker.CompleteStep(entity.StepPersonal, entity.StepPreferences)

	slog.InfoContext(ctx, "registration personal data saved", "session_id", sess.ID)

	return s.progress(sess), nil
}

type PreferencesInput struct {
	SessionID       string   `validate:"required"`
	Functions       []string `validate:"min=1,max=20"`
	Competences     []string `validate:"max=50"`
	GeoAreas        []string `validate:"max=20"`
	ActivitySectors []string `validate:"max=20"`
}

// SubmitPreferences creates the pending account, sends the verification code
// and opens the code prompt.
func (s *Usecase) SubmitPreferences(ctx context.Context, in PreferencesInput) (*Progress, error) {
	ctx, span := s.startSpan(ctx, "SubmitPreferences")
	defer span.End()

	sess, err := s.session(in.SessionID)
	if err != nil {
		return nil, err
	}

	if !sess.Tracker.CanAccessStep(entity.StepPreferences) {
		return nil, errStepLocked
	}

	in.Functions = display.Selection(in.Functions)
	in.Competences = display.Selection(in.Competences)
	in.GeoAreas = display.Selection(in.GeoAreas)
	in.ActivitySectors = display.Selection(in.ActivitySectors)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	cred, okCred := sess.Credentials()
	personal, okPersonal := sess.Personal()
	if !okCred || !okPersonal {
		return nil, errStepLocked
	}

	prefs := entity.Preferences{
		Functions:       in.Functions,
		Competences:     in.Competences,
		GeoAreas:        in.GeoAreas,
		ActivitySectors: in.ActivitySectors,
	}

	if id := sess.AccountID(); id != 0 {
		if err := s.repoDB.UpdatePreferences(ctx, id, prefs); err != nil {
			slog.ErrorContext(ctx, "failed to repo update preferences", "account_id", id, "error", err)
			return nil, goerror.NewServer(err)
		}
	} else {
		id := s.uid.Generate()
		err := s.repoDB.CreateEmployee(ctx, entity.NewEmployee{
			ID:           id,
			Email:        cred.Email,
			PasswordHash: cred.PasswordHash,
			Personal:     personal,
			Preferences:  prefs,
		})
		if errors.Is(err, goerror.ErrConflict) {
			return nil, errEmailTaken
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo create employee", "error", err)
			return nil, goerror.NewServer(err)
		}
		sess.SetAccountID(id)
	}
	sess.SetPreferences(prefs)

	// revisits resend through the flow, subject to its cooldown
	if flow := sess.Flow(); flow != nil {
		flow.Resend(ctx)
	} else {
		if err := s.issueCode(ctx, cred.Email, personalName(personal)); err != nil {
			return nil, err
		}

		flow, err := otpflow.New(otpflow.Config{
			Length:     entity.CodeLength,
			Identifier: cred.Email,
			Cooldown:   s.cooldown,
			NewTicker:  s.newTicker,
			Verify:     s.verifyAndActivate,
			Resend: func(ctx context.Context, email string) error {
				current, _ := sess.Personal()
				return s.issueCode(ctx, email, personalName(current))
			},
		})
		if err != nil {
			return nil, goerror.NewServer(err)
		}
		if sess.SetFlow(flow) != flow {
			flow.Close()
		}
	}

	sess.Tracker.CompleteStep(entity.StepPreferences, entity.StepVerify)

	return s.progress(sess), nil
}
