package usecase

import (
	"context"

	"github.com/shandysiswandi/talentflow/internal/pkg/display"
	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/registration/entity"
)

type StepData struct {
	Email           string
	DisplayName     string
	Phone           string
	BirthDate       string
	Functions       []string
	Competences     []string
	GeoAreas        []string
	ActivitySectors []string
	Code            string
}

type OTPState struct {
	otpflow.State
	MaskedEmail string
}

type Progress struct {
	SessionID       string
	CompletedSteps  []int
	PendingStep     int
	CurrentPath     string
	AccessibleSteps []int
	Data            StepData
	OTP             *OTPState
}

func (s *Usecase) progress(sess *entity.Session) *Progress {
	p := &Progress{
		SessionID:       sess.ID,
		CompletedSteps:  sess.Tracker.CompletedSteps(),
		CurrentPath:     sess.Path(),
		AccessibleSteps: sess.Tracker.AccessibleSteps(entity.TotalSteps),
	}
	if pending, ok := sess.Tracker.PendingStep(); ok {
		p.PendingStep = pending
	}

	if c, ok := sess.Credentials(); ok {
		p.Data.Email = c.Email
	}
	if pd, ok := sess.Personal(); ok {
		p.Data.DisplayName = personalName(pd)
		p.Data.Phone = pd.Phone
		p.Data.BirthDate = display.Date(pd.BirthDate)
	}
	if pr, ok := sess.Preferences(); ok {
		p.Data.Functions = pr.Functions
		p.Data.Competences = pr.Competences
		p.Data.GeoAreas = pr.GeoAreas
		p.Data.ActivitySectors = pr.ActivitySectors
	}
	p.Data.Code = sess.Code()

	if f := sess.Flow(); f != nil {
		p.OTP = &OTPState{State: f.State(), MaskedEmail: otpflow.MaskEmail(f.Identifier())}
	}

	return p
}

func (s *Usecase) CreateSession(ctx context.Context) (*Progress, error) {
	_, span := s.startSpan(ctx, "CreateSession")
	defer span.End()

	sess := s.sessions.CreateWith(entity.NewSession)

	return s.progress(sess), nil
}

func (s *Usecase) GetSession(ctx context.Context, id string) (*Progress, error) {
	_, span := s.startSpan(ctx, "GetSession")
	defer span.End()

	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	return s.progress(sess), nil
}

func (s *Usecase) DeleteSession(ctx context.Context, id string) error {
	_, span := s.startSpan(ctx, "DeleteSession")
	defer span.End()

	if !s.sessions.Delete(id) {
		return errSessionNotFound
	}

	return nil
}

type GoToStepInput struct {
	SessionID string
	Step      int
}

type GoToStepOutput struct {
	Moved    bool
	Progress *Progress
}

// GoToStep navigates to a reachable step; unreachable steps are ignored.
func (s *Usecase) GoToStep(ctx context.Context, in GoToStepInput) (*GoToStepOutput, error) {
	_, span := s.startSpan(ctx, "GoToStep")
	defer span.End()

	sess, err := s.session(in.SessionID)
	if err != nil {
		return nil, err
	}

	moved := sess.Tracker.GoToStep(in.Step)

	return &GoToStepOutput{Moved: moved, Progress: s.progress(sess)}, nil
}
