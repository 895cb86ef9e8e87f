package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// summaryBoxWidth is the width of the styled batch summary box.
const summaryBoxWidth = 40

// renderBatchSummary writes converted/skipped counts to w. When styled is
// true the summary is drawn in a bordered box; otherwise a single plain line
// is written so redirected output stays parseable.
func renderBatchSummary(w io.Writer, result batchResult, styled bool) {
	p := message.NewPrinter(language.BritishEnglish)

	if !styled {
		fmt.Fprintln(w, p.Sprintf("converted %d rows, skipped %d", result.converted, result.skipped))
		return
	}

	titleStyle := lipgloss.NewStyle().Bold(true)
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(summaryBoxWidth)

	var content strings.Builder
	content.WriteString(titleStyle.Render("BATCH CONVERSION"))
	content.WriteString("\n")
	content.WriteString(p.Sprintf("Converted: %d", result.converted))
	content.WriteString("\n")
	content.WriteString(p.Sprintf("Skipped:   %d", result.skipped))

	fmt.Fprintln(w, borderStyle.Render(content.String()))
}
