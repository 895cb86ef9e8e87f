package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBatchSummary(t *testing.T) {
	t.Run("plain line when not a terminal", func(t *testing.T) {
		var buf bytes.Buffer
		renderBatchSummary(&buf, batchResult{converted: 1234, skipped: 5}, false)

		assert.Equal(t, "converted 1,234 rows, skipped 5\n", buf.String())
	})

	t.Run("styled box", func(t *testing.T) {
		var buf bytes.Buffer
		renderBatchSummary(&buf, batchResult{converted: 12, skipped: 3}, true)

		out := buf.String()
		assert.Contains(t, out, "BATCH CONVERSION")
		assert.Contains(t, out, "Converted: 12")
		assert.Contains(t, out, "Skipped:   3")
	})
}
