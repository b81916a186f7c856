package notifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	t.Run("short message untouched", func(t *testing.T) {
		chunks := splitMessage("hello", 100)
		assert.Equal(t, []string{"hello"}, chunks)
	})

	t.Run("splits on newline", func(t *testing.T) {
		message := strings.Repeat("line one\n", 20)
		chunks := splitMessage(message, 50)

		assert.Greater(t, len(chunks), 1)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 50)
		}
		// No content lost beyond the separator newlines
		joined := strings.Join(chunks, "\n")
		assert.Equal(t, message, joined)
	})

	t.Run("hard split without newlines", func(t *testing.T) {
		message := strings.Repeat("a", 120)
		chunks := splitMessage(message, 50)

		assert.Len(t, chunks, 3)
		assert.Equal(t, message, strings.Join(chunks, ""))
	})
}
