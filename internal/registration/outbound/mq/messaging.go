package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/messaging"
	"github.com/shandysiswandi/talentflow/internal/pkg/verification"
	"github.com/shandysiswandi/talentflow/internal/registration/usecase"
	"github.com/shandysiswandi/talentflow/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishVerificationCodeIssued(ctx context.Context, msg usecase.VerificationCodeIssuedEvent) error {
	ctx, span := m.ins.Tracer("registration.outbound.mq").Start(ctx, "PublishVerificationCodeIssued")
	defer span.End()

	body, err := json.Marshal(event.VerificationCodeIssuedMessage{
		Purpose:   string(verification.PurposeRegistration),
		Email:     msg.Email,
		Name:      msg.Name,
		Code:      msg.Code,
		ExpiresAt: msg.ExpiresAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.client.Publish(ctx, messaging.Message{
		Topic:   event.VerificationCodeIssuedTopic,
		Key:     []byte(msg.Email),
		Body:    body,
		Headers: map[string]string{messaging.HeaderCorrelationID: instrument.GetCorrelationID(ctx)},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
