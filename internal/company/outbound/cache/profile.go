package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/talentflow/internal/company/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const profilePrefix = "company:profile:"

// Profile caches company profiles as JSON.
type Profile struct {
	client redis.UniversalClient
	ins    instrument.Instrumentation
	ttl    time.Duration
}

func NewProfile(client redis.UniversalClient, ins instrument.Instrumentation, ttl time.Duration) *Profile {
	return &Profile{client: client, ins: ins, ttl: ttl}
}

func key(companyID int64) string {
	return profilePrefix + strconv.FormatInt(companyID, 10)
}

func (c *Profile) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// GetProfile returns goerror.ErrNotFound on a cache miss.
func (c *Profile) GetProfile(ctx context.Context, companyID int64) (*entity.Profile, error) {
	ctx, span := c.ins.Tracer("company.outbound.cache").Start(ctx, "GetProfile")
	defer span.End()

	data, err := c.client.Get(ctx, key(companyID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, c.fail(span, err)
	}

	var p entity.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, c.fail(span, err)
	}

	return &p, nil
}

func (c *Profile) SetProfile(ctx context.Context, p *entity.Profile) error {
	ctx, span := c.ins.Tracer("company.outbound.cache").Start(ctx, "SetProfile")
	defer span.End()

	data, err := json.Marshal(p)
	if err != nil {
		return c.fail(span, err)
	}

	if err := c.client.Set(ctx, key(p.CompanyID), data, c.ttl).Err(); err != nil {
		return c.fail(span, err)
	}

	return nil
}
