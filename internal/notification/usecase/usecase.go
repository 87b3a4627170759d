package usecase

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/talentflow/internal/notification/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/display"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/mail"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoMail  repoMail
	validator validator.Validator
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoMail   repoMail
	Validator  validator.Validator
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoMail:  dep.RepoMail,
		validator: dep.Validator,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

type SendVerificationCodeInput struct {
	Purpose string `validate:"required"`
	Email   string `validate:"required,email"`
	Name    string
	Code    string `validate:"required,digits"`
}

type verificationView struct {
	Name      string
	Intro     string
	Code      string
	ExpiresAt string
}

func render(v entity.VerificationEmail) (string, error) {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		name = v.Email
	}

	view := verificationView{
		Name:      name,
		Intro:     v.Intro(),
		Code:      v.Code,
		ExpiresAt: v.ExpiresAt.Format("15:04") + " de " + display.Date(v.ExpiresAt),
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "verification_code.html", view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendVerificationCode emails a freshly issued code. An expired code is
// dropped without sending.
func (s *Usecase) SendVerificationCode(ctx context.Context, in entity.VerificationEmail) error {
	ctx, span := s.startSpan(ctx, "SendVerificationCode")
	defer span.End()

	if err := s.validator.Validate(SendVerificationCodeInput{
		Purpose: in.Purpose,
		Email:   in.Email,
		Name:    in.Name,
		Code:    in.Code,
	}); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if !in.ExpiresAt.IsZero() && !s.clock.Now().Before(in.ExpiresAt) {
		slog.WarnContext(ctx, "verification code expired before delivery", "purpose", in.Purpose, "expires_at", in.ExpiresAt)
		return nil
	}

	body, err := render(in)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render verification email", "purpose", in.Purpose, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  in.Subject(),
		HTMLBody: body,
		TextBody: "O seu código de verificação TalentFlow é " + in.Code + ".",
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send verification email", "purpose", in.Purpose, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
