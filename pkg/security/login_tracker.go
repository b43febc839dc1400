package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // window in which attempts are counted
	BlockDuration time.Duration // how long a block lasts
	UseIPTracking bool          // also count and block by IP
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		UseIPTracking: true,
	}
}

// LoginTracker counts failed logins per email (and optionally per IP) in Redis and
// blocks a subject for BlockDuration once it reaches MaxAttempts.
// A nil Redis client disables tracking (fail open).
type LoginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	logger *SecurityLogger
}

func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	if logger == nil {
		logger = DefaultLogger()
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultLoginTrackerConfig().MaxAttempts
	}
	return &LoginTracker{client: client, config: config, logger: logger}
}

// LoginMeta describes where a login attempt came from.
type LoginMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

const (
	subjectEmail = "email"
	subjectIP    = "ip"
)

func attemptsKey(kind, value string) string { return "vericv:login:attempts:" + kind + ":" + value }
func blockKey(kind, value string) string    { return "vericv:login:block:" + kind + ":" + value }

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns the count after increment.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// subjects lists the (kind, value) pairs a login attempt is tracked under.
func (lt *LoginTracker) subjects(email, ip string) [][2]string {
	out := [][2]string{{subjectEmail, normalizeEmail(email)}}
	if lt.config.UseIPTracking && ip != "" {
		out = append(out, [2]string{subjectIP, ip})
	}
	return out
}

// IsBlocked reports whether the email, or the IP when IP tracking is on, is blocked.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	if lt.client == nil {
		return false, nil
	}

	keys := make([]string, 0, 2)
	for _, s := range lt.subjects(email, ip) {
		keys = append(keys, blockKey(s[0], s[1]))
	}
	n, err := lt.client.Exists(ctx, keys...).Result()
	if err != nil {
		return false, fmt.Errorf("check login block: %w", err)
	}
	return n > 0, nil
}

// RecordFailedAttempt counts a failed login and blocks the account once MaxAttempts is reached.
// Returns (blocked, attempts, error).
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email string, meta LoginMeta) (bool, int, error) {
	lt.logger.LogLoginFailed(ctx, email, meta.IP, meta.UserAgent, meta.RequestID, "invalid_credentials")

	if lt.client == nil {
		return false, 0, nil
	}

	ttl := int(lt.config.AttemptWindow.Seconds())
	subjects := lt.subjects(email, meta.IP)

	attempts, err := lt.increment(ctx, attemptsKey(subjects[0][0], subjects[0][1]), ttl)
	if err != nil {
		return false, 0, fmt.Errorf("count failed login: %w", err)
	}
	for _, s := range subjects[1:] {
		_, _ = lt.increment(ctx, attemptsKey(s[0], s[1]), ttl)
	}

	if attempts < lt.config.MaxAttempts {
		return false, attempts, nil
	}
	if err := lt.block(ctx, subjects, meta); err != nil {
		return true, attempts, err
	}
	return true, attempts, nil
}

func (lt *LoginTracker) increment(ctx context.Context, key string, ttlSeconds int) (int, error) {
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

// block sets a block on every subject. Only the email block is required to succeed.
func (lt *LoginTracker) block(ctx context.Context, subjects [][2]string, meta LoginMeta) error {
	ttl := lt.config.BlockDuration
	for i, s := range subjects {
		err := lt.client.Set(ctx, blockKey(s[0], s[1]), "1", ttl).Err()
		if err == nil {
			continue
		}
		if i == 0 {
			return fmt.Errorf("set login block: %w", err)
		}
		lt.logger.zapLogger.Warn("failed to set login block", zap.String("subject_type", s[0]), zap.Error(err))
	}

	lt.logger.LogBlockCreated(ctx, subjectEmail, subjects[0][1], meta.IP, meta.RequestID, int(ttl.Minutes()))
	return nil
}

// ClearAttempts resets the counters after a successful login. Active blocks are left alone.
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email, ip string) error {
	if lt.client == nil {
		return nil
	}

	keys := make([]string, 0, 2)
	for _, s := range lt.subjects(email, ip) {
		keys = append(keys, attemptsKey(s[0], s[1]))
	}
	if err := lt.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear login attempts: %w", err)
	}
	return nil
}
