package prompts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemPrompt(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	t.Run("english", func(t *testing.T) {
		prompt := SystemPrompt("en", now)
		assert.Contains(t, prompt, "Shared Services Canada")
		assert.Contains(t, prompt, "search_br_by_fields")
		assert.Contains(t, prompt, now.Format(time.RFC3339))
		assert.Contains(t, prompt, `"query_filters"`)
	})

	t.Run("french", func(t *testing.T) {
		prompt := SystemPrompt("fr", now)
		assert.Contains(t, prompt, "Services partagés Canada")
		assert.Contains(t, prompt, "search_br_by_fields")
		assert.Contains(t, prompt, now.Format(time.RFC3339))
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		assert.Equal(t, SystemPrompt("en", now), SystemPrompt("de", now))
	})
}
