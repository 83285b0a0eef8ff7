package report

import (
	"fmt"
	"strings"

	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/charmbracelet/glamour"
)

// Markdown renders the report as a markdown document.
func Markdown(r Report) string {
	var b strings.Builder
	s := r.Summary
	left, right := CurrencyLabel(r.LeftCurrency), CurrencyLabel(r.RightCurrency)

	b.WriteString("# Dual Count\n\n")

	if r.Counter() {
		fmt.Fprintf(&b, "| # | %s | %s |\n|---|---|---|\n", left, right)
		for _, row := range r.Rows {
			l, rt := "", ""
			if row.Column == ledger.Left {
				l = escapeCell(row.Description)
			} else {
				rt = escapeCell(row.Description)
			}
			fmt.Fprintf(&b, "| %d | %s | %s |\n", row.ID, l, rt)
		}
		fmt.Fprintf(&b, "\n**%d expenses**: %d %s, %d %s\n", s.Count, s.LeftCount, r.LeftCurrency, s.RightCount, r.RightCurrency)
		return b.String()
	}

	fmt.Fprintf(&b, "| # | Entered | %s | %s |\n|---|---|---:|---:|\n", left, right)
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "| %d | %s %s | %s | %s |\n",
			row.ID,
			escapeCell(row.Description), currencyOf(r, row.Column),
			ledger.FormatAmount(row.Left), ledger.FormatAmount(row.Right))
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** | **%s** |\n",
		ledger.FormatAmount(s.LeftTotal), ledger.FormatAmount(s.RightTotal))

	fmt.Fprintf(&b, "\n**%d expenses** under rate %s %s per %s\n",
		s.Count, ledger.FormatRate(s.Rate), r.LeftCurrency, r.RightCurrency)
	return b.String()
}

// RenderMarkdown renders the markdown report for a terminal using the named
// glamour style ("notty", "dark", "light", ...).
func RenderMarkdown(r Report, style string) (string, error) {
	if style == "" {
		style = "notty"
	}
	out, err := glamour.Render(Markdown(r), style)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

func currencyOf(r Report, c ledger.Column) string {
	if c == ledger.Left {
		return r.LeftCurrency
	}
	return r.RightCurrency
}

// cellEscaper keeps a description inside its table cell.
var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>", "\r", "<br>")

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
