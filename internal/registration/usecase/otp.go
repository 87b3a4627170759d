package usecase

import (
	"context"

	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/registration/entity"
)

type OTPOutput struct {
	Focus    otpflow.Focus
	Progress *Progress
}

type OTPDigitInput struct {
	SessionID string
	Index     int
	Value     string
}

type OTPPasteInput struct {
	SessionID string
	Text      string
}

type OTPKeyInput struct {
	SessionID string
	Index     int
	Key       otpflow.Key
}

type OTPSubmitOutput struct {
	Verified bool
	Progress *Progress
}

func (s *Usecase) flow(id string) (*entity.Session, *otpflow.Flow, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, nil, err
	}

	f := sess.Flow()
	if f == nil {
		return nil, nil, errNoVerification
	}

	return sess, f, nil
}

func (s *Usecase) OTPDigit(ctx context.Context, in OTPDigitInput) (*OTPOutput, error) {
	_, span := s.startSpan(ctx, "OTPDigit")
	defer span.End()

	sess, f, err := s.flow(in.SessionID)
	if err != nil {
		return nil, err
	}

	focus := f.SetDigit(in.Index, in.Value)
	return &OTPOutput{Focus: focus, Progress: s.progress(sess)}, nil
}

func (s *Usecase) OTPPaste(ctx context.Context, in OTPPasteInput) (*OTPOutput, error) {
	_, span := s.startSpan(ctx, "OTPPaste")
	defer span.End()

	sess, f, err := s.flow(in.SessionID)
	if err != nil {
		return nil, err
	}

	focus := f.HandlePaste(in.Text)
	return &OTPOutput{Focus: focus, Progress: s.progress(sess)}, nil
}

func (s *Usecase) OTPKey(ctx context.Context, in OTPKeyInput) (*OTPOutput, error) {
	_, span := s.startSpan(ctx, "OTPKey")
	defer span.End()

	sess, f, err := s.flow(in.SessionID)
	if err != nil {
		return nil, err
	}

	focus := f.HandleKey(in.Index, in.Key)
	return &OTPOutput{Focus: focus, Progress: s.progress(sess)}, nil
}

// OTPSubmit verifies the typed code. A rejected code is reported through the
// flow state, not as an error.
func (s *Usecase) OTPSubmit(ctx context.Context, sessionID string) (*OTPSubmitOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPSubmit")
	defer span.End()

	sess, f, err := s.flow(sessionID)
	if err != nil {
		return nil, err
	}

	code := f.Code()
	ok := f.Submit(ctx)
	if ok {
		sess.SetCode(code)
		sess.Tracker.CompleteStep(entity.StepVerify)
	}

	return &OTPSubmitOutput{Verified: ok, Progress: s.progress(sess)}, nil
}

func (s *Usecase) OTPResend(ctx context.Context, sessionID string) (*OTPSubmitOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPResend")
	defer span.End()

	sess, f, err := s.flow(sessionID)
	if err != nil {
		return nil, err
	}

	f.Resend(ctx)
	return &OTPSubmitOutput{Verified: f.State().Verified, Progress: s.progress(sess)}, nil
}
