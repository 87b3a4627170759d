package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/talentflow/internal/notification/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/mail"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newUsecase(t *testing.T) (*Usecase, *fakeMail) {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	m := &fakeMail{}
	return New(Dependency{RepoMail: m, Validator: v, Clock: clock.Fixed(now), Instrument: instrument.NewNoop()}), m
}

func TestUsecase_SendVerificationCode(t *testing.T) {
	t.Parallel()

	uc, m := newUsecase(t)

	err := uc.SendVerificationCode(context.Background(), entity.VerificationEmail{
		Purpose:   "registration",
		Email:     "joana@mail.pt",
		Name:      "Joana <Silva>",
		Code:      "123456",
		ExpiresAt: now.Add(10 * time.Minute),
	})
	require.NoError(t, err)
	require.Len(t, m.sent, 1)

	msg := m.sent[0]
	assert.Equal(t, []string{"joana@mail.pt"}, msg.To)
	assert.Equal(t, "Confirme o seu registo na TalentFlow", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "123456")
	assert.Contains(t, msg.HTMLBody, "Joana &lt;Silva&gt;")
	assert.Contains(t, msg.HTMLBody, "10:10 de 04/05/2026")
	assert.Contains(t, msg.TextBody, "123456")
}

func TestUsecase_SendVerificationCode_Edges(t *testing.T) {
	t.Parallel()

	t.Run("name falls back to email", func(t *testing.T) {
		t.Parallel()

		uc, m := newUsecase(t)
		require.NoError(t, uc.SendVerificationCode(context.Background(), entity.VerificationEmail{
			Purpose: "manager_email", Email: "rh@atlantico.pt", Code: "12345",
		}))
		require.Len(t, m.sent, 1)
		assert.Contains(t, m.sent[0].HTMLBody, "Olá rh@atlantico.pt")
		assert.Equal(t, "Confirme o novo email do responsável", m.sent[0].Subject)
	})

	t.Run("expired code is dropped", func(t *testing.T) {
		t.Parallel()

		uc, m := newUsecase(t)
		require.NoError(t, uc.SendVerificationCode(context.Background(), entity.VerificationEmail{
			Purpose: "registration", Email: "joana@mail.pt", Code: "123456", ExpiresAt: now,
		}))
		assert.Empty(t, m.sent)
	})

	t.Run("invalid event", func(t *testing.T) {
		t.Parallel()

		uc, m := newUsecase(t)
		err := uc.SendVerificationCode(context.Background(), entity.VerificationEmail{Purpose: "registration", Email: "nope", Code: "12a"})
		assert.True(t, goerror.IsCode(err, goerror.CodeInvalidInput))
		assert.Empty(t, m.sent)
	})

	t.Run("delivery failure", func(t *testing.T) {
		t.Parallel()

		uc, m := newUsecase(t)
		m.err = errors.New("smtp: 421 try later")
		err := uc.SendVerificationCode(context.Background(), entity.VerificationEmail{Purpose: "registration", Email: "joana@mail.pt", Code: "123456"})
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.TypeServer, gerr.Type())
	})
}
