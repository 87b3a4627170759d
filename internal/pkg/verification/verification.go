// Package verification issues and checks the one-time codes emailed during
// registration and manager email changes.
//
// Codes are HOTP values derived from a per-issue secret and counter kept in
// Redis under a key built from the HMAC of the email, so neither the code nor
// the address is stored in clear.
package verification

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/otp"
)

// Purpose scopes codes so a registration code cannot confirm an email change.
type Purpose string

const (
	PurposeRegistration Purpose = "registration"
	PurposeManagerEmail Purpose = "manager_email"
)

const (
	DefaultTTL         = 10 * time.Minute
	DefaultDailyLimit  = 10
	DefaultMaxAttempts = 5
)

var (
	ErrExpired         = goerror.NewBusiness("Verification code expired", goerror.CodeGone)
	ErrInvalidCode     = goerror.NewBusiness("Invalid verification code", goerror.CodeInvalidInput)
	ErrTooManyAttempts = goerror.NewBusiness("Too many attempts, request a new code", goerror.CodeTooManyRequest)
	ErrDailyLimit      = goerror.NewBusiness("Daily verification limit reached, try again tomorrow", goerror.CodeTooManyRequest)
)

// Keyer maps an email to a stable opaque key.
type Keyer interface {
	Key(email string) string
}

// Code is an issued verification code.
type Code struct {
	Value     string
	Digits    int
	ExpiresAt time.Time
}

// Store issues and verifies codes.
type Store interface {
	Issue(ctx context.Context, purpose Purpose, email string, digits int) (Code, error)
	Verify(ctx context.Context, purpose Purpose, email, code string) error
}

// Config holds the limits of a RedisStore. Zero values take the defaults.
type Config struct {
	TTL         time.Duration
	DailyLimit  int64
	MaxAttempts int64
}

// RedisStore is a Store backed by Redis hashes.
type RedisStore struct {
	rdb   redis.UniversalClient
	otp   otp.OTP
	keyer Keyer
	clock clock.Clocker
	cfg   Config
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(rdb redis.UniversalClient, o otp.OTP, keyer Keyer, c clock.Clocker, cfg Config) *RedisStore {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.DailyLimit <= 0 {
		cfg.DailyLimit = DefaultDailyLimit
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}

	return &RedisStore{rdb: rdb, otp: o, keyer: keyer, clock: c, cfg: cfg}
}

func (s *RedisStore) key(purpose Purpose, email string) string {
	return "verification:" + string(purpose) + ":" + s.keyer.Key(email)
}

// Issue replaces any pending code for email with a new one.
func (s *RedisStore) Issue(ctx context.Context, purpose Purpose, email string, digits int) (Code, error) {
	k := s.key(purpose, email)

	var sent *redis.IntCmd
	if _, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		sent = p.Incr(ctx, k+":daily")
		p.ExpireNX(ctx, k+":daily", 24*time.Hour)
		return nil
	}); err != nil {
		return Code{}, err
	}
	if sent.Val() > s.cfg.DailyLimit {
		return Code{}, ErrDailyLimit
	}

	secret, err := s.otp.NewSecret(email)
	if err != nil {
		return Code{}, err
	}

	now := s.clock.Now()
	counter := uint64(now.UnixNano())
	value, err := s.otp.Generate(secret, counter, digits)
	if err != nil {
		return Code{}, err
	}

	if _, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, k)
		p.HSet(ctx, k,
			"secret", secret,
			"counter", strconv.FormatUint(counter, 10),
			"digits", digits,
			"attempts", 0,
		)
		p.Expire(ctx, k, s.cfg.TTL)
		return nil
	}); err != nil {
		return Code{}, err
	}

	return Code{Value: value, Digits: digits, ExpiresAt: now.Add(s.cfg.TTL)}, nil
}

// Verify consumes the pending code when it matches.
func (s *RedisStore) Verify(ctx context.Context, purpose Purpose, email, code string) error {
	k := s.key(purpose, email)

	vals, err := s.rdb.HGetAll(ctx, k).Result()
	if err != nil {
		return err
	}
	if len(vals) == 0 {
		return ErrExpired
	}

	attempts, err := s.rdb.HIncrBy(ctx, k, "attempts", 1).Result()
	if err != nil {
		return err
	}
	if attempts > s.cfg.MaxAttempts {
		if err := s.rdb.Del(ctx, k).Err(); err != nil {
			return err
		}
		return ErrTooManyAttempts
	}

	counter, errC := strconv.ParseUint(vals["counter"], 10, 64)
	digits, errD := strconv.Atoi(vals["digits"])
	if err := errors.Join(errC, errD); err != nil {
		return err
	}

	if !s.otp.Validate(strings.TrimSpace(code), vals["secret"], counter, digits) {
		return ErrInvalidCode
	}

	return s.rdb.Del(ctx, k).Err()
}
