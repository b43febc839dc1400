package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventRegistered         EventType = "user_registered"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventOwnershipViolation EventType = "ownership_violation"
	EventInvalidToken       EventType = "invalid_token"
	EventBlockCreated       EventType = "block_created"
	EventVerificationChange EventType = "verification_changed"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time              `json:"timestamp"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "email", "ip", "user_id"
	SubjectValue string                 `json:"subject_value,omitempty"` // masked or hashed
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// SecurityLogger provides structured logging for security events
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var (
	defaultLogger *SecurityLogger
	defaultMu     sync.Mutex
)

// NewSecurityLogger wraps an existing zap logger.
func NewSecurityLogger(zapLogger *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   zapLogger,
		serviceName: serviceName,
		environment: environment,
	}
}

// InitSecurityLogger builds a production zap logger and installs it as the default.
func InitSecurityLogger(serviceName, environment string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	sl := NewSecurityLogger(logger, serviceName, environment)
	SetDefaultLogger(sl)
	return sl
}

// SetDefaultLogger replaces the package default.
func SetDefaultLogger(sl *SecurityLogger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = sl
}

// DefaultLogger returns the default security logger, falling back to a no-op logger.
func DefaultLogger() *SecurityLogger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewSecurityLogger(zap.NewNop(), "vericv-backend", "development")
	}
	return defaultLogger
}

// Log writes event at the level its type maps to. Empty optional fields are omitted.
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
		zap.Time("event_time", event.Timestamp),
	}
	for _, f := range []struct{ key, value string }{
		{"subject_type", event.SubjectType},
		{"subject_value", event.SubjectValue},
		{"ip", event.IP},
		{"user_agent", event.UserAgent},
		{"request_id", event.RequestID},
	} {
		if f.value != "" {
			fields = append(fields, zap.String(f.key, f.value))
		}
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	sl.zapLogger.Log(levelFor(event.Event), string(event.Event), fields...)
}

func levelFor(event EventType) zapcore.Level {
	switch event {
	case EventLoginSuccess, EventRegistered, EventVerificationChange:
		return zapcore.InfoLevel
	case EventLoginBlocked, EventBlockCreated, EventOwnershipViolation:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func (sl *SecurityLogger) logLogin(ctx context.Context, event EventType, email, ip, userAgent, requestID string, details map[string]interface{}) {
	sl.Log(ctx, SecurityEvent{
		Event:        event,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      details,
	})
}

// LogLoginFailed logs a failed login attempt
func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, email, ip, userAgent, requestID, reason string) {
	sl.logLogin(ctx, EventLoginFailed, email, ip, userAgent, requestID, map[string]interface{}{"reason": reason})
}

// LogLoginBlocked logs a login refused because the account or IP is blocked
func (sl *SecurityLogger) LogLoginBlocked(ctx context.Context, email, ip, userAgent, requestID string) {
	sl.logLogin(ctx, EventLoginBlocked, email, ip, userAgent, requestID, map[string]interface{}{"reason": "too_many_failed_attempts"})
}

func (sl *SecurityLogger) LogLoginSuccess(ctx context.Context, email, ip, userAgent, requestID string) {
	sl.logLogin(ctx, EventLoginSuccess, email, ip, userAgent, requestID, nil)
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// LogOwnershipViolation logs a mutation attempt on a resource owned by another user.
func (sl *SecurityLogger) LogOwnershipViolation(ctx context.Context, actorID int64, resource string, resourceID int64) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventOwnershipViolation,
		SubjectType:  "user_id",
		SubjectValue: HashValue(strconv.FormatInt(actorID, 10)),
		Details: map[string]interface{}{
			"resource":    resource,
			"resource_id": resourceID,
		},
	})
}

// LogBlockCreated logs when a block is created
func (sl *SecurityLogger) LogBlockCreated(ctx context.Context, subjectType, subjectValue, ip, requestID string, durationMinutes int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventBlockCreated,
		SubjectType:  subjectType,
		SubjectValue: maskValue(subjectType, subjectValue),
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"duration_minutes": durationMinutes},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a truncated SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func maskValue(subjectType, value string) string {
	switch subjectType {
	case "email":
		return MaskEmail(value)
	case "ip":
		return value
	default:
		return HashValue(value)
	}
}

