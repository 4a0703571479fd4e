package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.InfoLevel, Format: "json", Output: &buf})

	logger.Debug().Msg("hidden")
	logger.Info().Str("k", "v").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, `"message":"shown"`)
}

func TestWithRunIDAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})
	ctx := WithContext(context.Background(), logger)

	ctx = WithRunID(ctx, "3f2a9c1e-run")
	log := WithComponent(ctx, "jsruntime")
	log.Info().Msg("artifact loaded")

	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), `"component":"jsruntime"`)
	assert.Contains(t, buf.String(), `"run_id":"3f2a9c1e-run"`)

	buf.Reset()
	FromContext(ctx).Info().Msg("from ctx")
	assert.NotContains(t, buf.String(), "component", "component stays on the adapter logger")
}

func TestWithRunID_EmptyKeepsContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, WithRunID(ctx, ""))
}

func TestFromContext_NoLoggerIsDisabled(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
