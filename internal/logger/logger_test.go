package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, zerolog.InfoLevel)
	log.Info().Str("window_start", "2024-01-02").Msg("projection computed")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "projection computed", event["message"])
	assert.Equal(t, "2024-01-02", event["window_start"])
	assert.Contains(t, event, "time")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, zerolog.WarnLevel)
	log.Debug().Msg("hidden")
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.DebugLevel)
	log.Debug().Int("rows", 3).Msg("rendered")

	out := buf.String()
	assert.Contains(t, out, "rendered")
	assert.Contains(t, out, "rows=3")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	log := WithRunID(NewJSON(&buf, zerolog.InfoLevel))
	log.Info().Msg("start")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	id, ok := event["run_id"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, zerolog.InfoLevel)
	ctx := WithContext(context.Background(), log)

	fromCtx := FromContext(ctx)
	fromCtx.Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")
}

func TestFromContextDefault(t *testing.T) {
	log := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}
