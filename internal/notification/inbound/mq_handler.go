package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/talentflow/internal/notification/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/messaging"
	"github.com/shandysiswandi/talentflow/internal/pkg/uid"
	"github.com/shandysiswandi/talentflow/internal/shared/event"
)

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID := msg.Header(messaging.HeaderCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// VerificationCodeIssued mails the code carried by the event. Malformed or
// invalid events are acknowledged and dropped; delivery failures are returned
// so the broker redelivers.
func (h *MQHandler) VerificationCodeIssued(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "VerificationCodeIssued")
	defer span.End()

	var payload event.VerificationCodeIssuedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse verification code issued message", "topic", msg.Topic, "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: verification code issued", "purpose", payload.Purpose)

	err := h.uc.SendVerificationCode(ctx, entity.VerificationEmail{
		Purpose:   payload.Purpose,
		Email:     payload.Email,
		Name:      payload.Name,
		Code:      payload.Code,
		ExpiresAt: payload.ExpiresAt,
	})
	if goerror.IsCode(err, goerror.CodeInvalidInput) {
		slog.WarnContext(ctx, "dropping invalid verification code message", "purpose", payload.Purpose, "error", err)
		return nil
	}

	return err
}
