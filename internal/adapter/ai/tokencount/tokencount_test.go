package tokencount

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountTokens(t *testing.T) {
	t.Parallel()

	counter := NewCounter()

	tests := []struct {
		name     string
		text     string
		model    string
		minCount int
		maxCount int
	}{
		{name: "simple text with gpt-4", text: "Hello, world!", model: "gpt-4", minCount: 3, maxCount: 5},
		{name: "gemini model uses gpt-4 encoding", text: "Hello, world!", model: "gemini-2.5-flash-preview-04-17", minCount: 3, maxCount: 5},
		{name: "prefixed gemini model", text: "The quick brown fox jumps over the lazy dog.", model: "models/gemini-2.0-flash", minCount: 8, maxCount: 12},
		{name: "empty text", text: "", model: "gemini-2.0-flash", minCount: 0, maxCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			count, err := counter.CountTokens(tt.text, tt.model)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, count, tt.minCount)
			assert.LessOrEqual(t, count, tt.maxCount)
		})
	}
}

func TestNormalizeModelName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "gpt-4", normalizeModelName("GEMINI-2.5-FLASH"))
	assert.Equal(t, "gpt-4", normalizeModelName("models/gemma-3"))
	assert.Equal(t, "gpt-3.5-turbo", normalizeModelName("gpt-3.5-turbo-16k"))
}

func TestEstimate_GrowsWithText(t *testing.T) {
	t.Parallel()
	short := EstimateDefault("Analyze Austin", "gemini-2.0-flash")
	long := EstimateDefault(strings.Repeat("Analyze the job market in Austin. ", 20), "gemini-2.0-flash")
	assert.Greater(t, long, short)
}

func TestCounter_CachesEncoding(t *testing.T) {
	t.Parallel()
	counter := NewCounter()
	_, err := counter.CountTokens("a", "gemini-2.0-flash")
	require.NoError(t, err)
	_, err = counter.CountTokens("b", "gemini-1.5-pro")
	require.NoError(t, err)
	counter.mu.RLock()
	defer counter.mu.RUnlock()
	assert.Len(t, counter.encodingCache, 1)
}
