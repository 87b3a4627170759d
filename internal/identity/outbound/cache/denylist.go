package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
)

const denylistPrefix = "identity:denylist:"

// Denylist remembers access tokens revoked before their expiry.
type Denylist struct {
	client redis.UniversalClient
	ins    instrument.Instrumentation
}

func NewDenylist(client redis.UniversalClient, ins instrument.Instrumentation) *Denylist {
	return &Denylist{client: client, ins: ins}
}

func (d *Denylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	ctx, span := d.ins.Tracer("identity.outbound.cache").Start(ctx, "Revoke")
	defer span.End()

	if err := d.client.Set(ctx, denylistPrefix+tokenID, 1, ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, span := d.ins.Tracer("identity.outbound.cache").Start(ctx, "IsRevoked")
	defer span.End()

	n, err := d.client.Exists(ctx, denylistPrefix+tokenID).Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	return n > 0, nil
}
