package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
	"github.com/sendpin/sendpin/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "otp:customer:"

// Cache keeps the msisdn to customer id mapping so repeated sends skip the
// customer directory lookup.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, ttl time.Duration, ins instrument.Instrumentation) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		ins:    ins,
	}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("otp.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (c *Cache) GetCustomerID(ctx context.Context, msisdn string) (_ int64, err error) {
	ctx, span := c.startSpan(ctx, "GetCustomerID")
	defer func() { c.endSpan(span, err) }()

	id, err := c.client.Get(ctx, keyPrefix+msisdn).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, goerror.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (c *Cache) SetCustomerID(ctx context.Context, msisdn string, id int64) (err error) {
	ctx, span := c.startSpan(ctx, "SetCustomerID")
	defer func() { c.endSpan(span, err) }()

	return c.client.Set(ctx, keyPrefix+msisdn, id, c.ttl).Err()
}
