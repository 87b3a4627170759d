package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/talentflow/internal/pkg/config"
	"github.com/shandysiswandi/talentflow/internal/pkg/goroutine"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/messaging"
	"github.com/shandysiswandi/talentflow/internal/pkg/uid"
	"github.com/shandysiswandi/talentflow/internal/shared/event"
)

// RegisterMQConsumer starts the consumers listed in
// modules.notification.consumer_names. An empty list starts all of them.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	consumer messaging.Consumer,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	handler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enabled := cfg.GetArray("modules.notification.consumer_names")
	concurrency := max(cfg.GetInt("modules.notification.concurrency"), 1)

	consumers := []struct {
		name    string
		topic   string
		handler messaging.Handler
	}{
		{
			name:    event.VerificationCodeIssuedConsumerNotification,
			topic:   event.VerificationCodeIssuedTopic,
			handler: handler.VerificationCodeIssued,
		},
	}

	for _, c := range consumers {
		if len(enabled) > 0 && !slices.Contains(enabled, c.name) {
			continue
		}

		routine.Go(ctx, c.name, func(ctx context.Context) error {
			slog.InfoContext(ctx, "running consumer", "consumer", c.name, "topic", c.topic)
			return consumer.Consume(ctx, c.topic, c.handler,
				messaging.WithGroup(c.name),
				messaging.WithConcurrency(concurrency),
				messaging.WithMaxInFlight(concurrency*2),
			)
		})
	}
}
