package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@example.com", MaskEmail("ada@example.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, "***@example.com", MaskEmail("a@example.com"))
}

func TestHashValueIsStable(t *testing.T) {
	assert.Equal(t, HashValue("42"), HashValue("42"))
	assert.NotEqual(t, HashValue("42"), HashValue("43"))
	assert.Len(t, HashValue("42"), 16)
}

func TestLogLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "vericv-test", "test")
	ctx := context.Background()

	sl.LogLoginSuccess(ctx, "ada@example.com", "10.0.0.1", "curl", "req-1")
	sl.LogOwnershipViolation(ctx, 7, "cv", 99)
	sl.LogRateLimitTriggered(ctx, "10.0.0.1", "curl", "req-2", "/v1/auth/login")

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
		assert.Equal(t, "a***@example.com", entries[0].ContextMap()["subject_value"])
		details, ok := entries[1].ContextMap()["details"].(map[string]interface{})
		if assert.True(t, ok) {
			assert.Equal(t, "cv", details["resource"])
			assert.Equal(t, int64(99), details["resource_id"])
		}
	}
}

func TestDefaultLoggerFallsBackToNop(t *testing.T) {
	SetDefaultLogger(nil)
	assert.NotNil(t, DefaultLogger())
}
