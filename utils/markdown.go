package utils

import (
	"regexp"
	"strings"
)

// The analysis prompt mandates these markdown shapes; the substitutions
// below give each a semantic class for client styling.
var (
	timeframeHeaderRe = regexp.MustCompile(`(?m)^## (.+?) Timeframe\s*$`)
	summaryHeaderRe   = regexp.MustCompile(`(?m)^### Summary\s*$`)
	outlookHeaderRe   = regexp.MustCompile(`(?m)^### Overall Outlook\s*$`)
	labelBoldRe       = regexp.MustCompile(`\*\*([^*\n]+?):\*\*`)
	plainBoldRe       = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
)

// FormatAnalysisHTML converts the model's markdown analysis into HTML
// with semantic class names. It is NOT idempotent: applying it to
// already-transformed content double-wraps tags. Apply exactly once, to
// raw model output, and only for display — storage keeps the raw text.
func FormatAnalysisHTML(markdown string) string {
	out := timeframeHeaderRe.ReplaceAllString(markdown, `<h2 class="timeframe-header">$1 Timeframe</h2>`)
	out = summaryHeaderRe.ReplaceAllString(out, `<h3 class="summary-header">Summary</h3>`)
	out = outlookHeaderRe.ReplaceAllString(out, `<h3 class="outlook-header">Overall Outlook</h3>`)
	out = labelBoldRe.ReplaceAllString(out, `<strong class="analysis-label">$1:</strong>`)
	out = plainBoldRe.ReplaceAllString(out, `<strong>$1</strong>`)
	out = strings.ReplaceAll(out, "\n", "<br>")
	return out
}
