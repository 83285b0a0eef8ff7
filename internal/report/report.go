// Package report renders ledger summaries and exports outside the TUI.
package report

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/Veraticus/dual-count/internal/ledger"
)

// Report is a render-ready snapshot of a ledger.
type Report struct {
	LeftCurrency  string
	RightCurrency string
	Rows          []Row
	Summary       ledger.Summary
}

// Row is one entry with its converted values.
type Row struct {
	Description string
	ID          uint64
	Left        float64
	Right       float64
	Column      ledger.Column
}

// Build derives a report from state. Rows are in insertion order.
func Build(state ledger.State, variant ledger.Variant, leftCurrency, rightCurrency string) Report {
	r := Report{
		LeftCurrency:  leftCurrency,
		RightCurrency: rightCurrency,
		Summary:       ledger.Summarize(state, variant),
		Rows:          make([]Row, 0, len(state.Entries)),
	}
	for _, e := range state.Entries {
		left, right := ledger.Convert(e, state.Rate)
		r.Rows = append(r.Rows, Row{
			ID:          e.ID,
			Column:      e.Column,
			Description: e.Description,
			Left:        left,
			Right:       right,
		})
	}
	return r
}

// Counter reports whether the report was built for the counter variant.
func (r Report) Counter() bool {
	return r.Summary.Variant == ledger.VariantCounter
}

// CurrencyLabel returns code followed by its symbol when the code is a known
// ISO 4217 currency with a distinct symbol, e.g. "CAD ($)".
func CurrencyLabel(code string) string {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil || cur.Grapheme == "" || cur.Grapheme == cur.Code {
		return code
	}
	return fmt.Sprintf("%s (%s)", code, cur.Grapheme)
}

// Text renders a plain summary.
func Text(r Report) string {
	var b strings.Builder
	s := r.Summary

	fmt.Fprintf(&b, "Entries: %d (%s %d, %s %d)\n",
		s.Count, r.LeftCurrency, s.LeftCount, r.RightCurrency, s.RightCount)

	if r.Counter() {
		return b.String()
	}

	fmt.Fprintf(&b, "Rate:    %s %s per %s\n", ledger.FormatRate(s.Rate), r.LeftCurrency, r.RightCurrency)
	fmt.Fprintf(&b, "Sums:    %s %s | %s %s\n",
		r.LeftCurrency, ledger.FormatAmount(s.LeftSum),
		r.RightCurrency, ledger.FormatAmount(s.RightSum))
	fmt.Fprintf(&b, "Totals:  %s %s | %s %s\n",
		r.LeftCurrency, ledger.FormatAmount(s.LeftTotal),
		r.RightCurrency, ledger.FormatAmount(s.RightTotal))
	return b.String()
}
