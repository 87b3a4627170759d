package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/talentflow/internal/notification/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/config"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/goroutine"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/messaging"
	"github.com/shandysiswandi/talentflow/internal/shared/event"
)

type staticID string

func (s staticID) Generate() string { return string(s) }

type fakeUC struct {
	mu   sync.Mutex
	got  []entity.VerificationEmail
	cIDs []string
	err  error
	done chan struct{}
}

func (f *fakeUC) SendVerificationCode(ctx context.Context, in entity.VerificationEmail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, in)
	f.cIDs = append(f.cIDs, instrument.GetCorrelationID(ctx))
	if f.done != nil {
		close(f.done)
		f.done = nil
	}
	return f.err
}

func body(t *testing.T, msg event.VerificationCodeIssuedMessage) []byte {
	t.Helper()
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	return b
}

func TestMQHandler_VerificationCodeIssued(t *testing.T) {
	t.Parallel()

	uc := &fakeUC{}
	h := &MQHandler{uc: uc, uuid: staticID("generated"), ins: instrument.NewNoop()}
	ctx := context.Background()

	err := h.VerificationCodeIssued(ctx, messaging.Message{
		Topic:   event.VerificationCodeIssuedTopic,
		Body:    body(t, event.VerificationCodeIssuedMessage{Purpose: "registration", Email: "joana@mail.pt", Code: "123456"}),
		Headers: map[string]string{messaging.HeaderCorrelationID: "cid-1"},
	})
	require.NoError(t, err)

	require.NoError(t, h.VerificationCodeIssued(ctx, messaging.Message{Body: []byte("{")}))

	require.NoError(t, h.VerificationCodeIssued(ctx, messaging.Message{
		Body: body(t, event.VerificationCodeIssuedMessage{Purpose: "registration", Email: "joana@mail.pt", Code: "654321"}),
	}))

	require.Len(t, uc.got, 2)
	assert.Equal(t, "123456", uc.got[0].Code)
	assert.Equal(t, []string{"cid-1", "generated"}, uc.cIDs)

	uc.err = goerror.NewInvalidInput(nil, "email", "invalid")
	assert.NoError(t, h.VerificationCodeIssued(ctx, messaging.Message{Body: body(t, event.VerificationCodeIssuedMessage{})}))

	uc.err = goerror.NewServer(errors.New("smtp down"))
	assert.Error(t, h.VerificationCodeIssued(ctx, messaging.Message{Body: body(t, event.VerificationCodeIssuedMessage{})}))
}

func TestRegisterMQConsumer(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  notification:\n    concurrency: 2\n"))
	require.NoError(t, err)

	broker := messaging.NewMemory(8)
	t.Cleanup(func() { _ = broker.Close() })

	routine := goroutine.NewManager(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	uc := &fakeUC{done: done}
	RegisterMQConsumer(ctx, cfg, routine, broker, staticID("generated"), uc, instrument.NewNoop())

	msg := messaging.Message{
		Topic: event.VerificationCodeIssuedTopic,
		Body:  body(t, event.VerificationCodeIssuedMessage{Purpose: "registration", Email: "joana@mail.pt", Code: "123456"}),
	}
	require.Eventually(t, func() bool {
		_ = broker.Publish(ctx, msg)
		select {
		case <-done:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, routine.Wait())
}
