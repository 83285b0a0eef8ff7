package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/dual-count/internal/ledger"
)

// jsonSummary is the machine-readable summary. Amounts are pre-formatted
// strings so non-finite values survive encoding.
type jsonSummary struct {
	Rate          string     `json:"rate,omitempty"`
	LeftCurrency  string     `json:"left_currency"`
	RightCurrency string     `json:"right_currency"`
	Variant       string     `json:"variant"`
	LeftSum       string     `json:"left_sum,omitempty"`
	RightSum      string     `json:"right_sum,omitempty"`
	LeftTotal     string     `json:"left_total,omitempty"`
	RightTotal    string     `json:"right_total,omitempty"`
	Entries       []jsonNode `json:"entries"`
	Count         int        `json:"count"`
	LeftCount     int        `json:"left_count"`
	RightCount    int        `json:"right_count"`
}

type jsonNode struct {
	Description string        `json:"description"`
	Left        string        `json:"left,omitempty"`
	Right       string        `json:"right,omitempty"`
	ID          uint64        `json:"id"`
	Column      ledger.Column `json:"column"`
}

// WriteJSON writes an indented JSON summary.
func WriteJSON(w io.Writer, r Report) error {
	s := r.Summary
	out := jsonSummary{
		LeftCurrency:  r.LeftCurrency,
		RightCurrency: r.RightCurrency,
		Variant:       s.Variant.String(),
		Count:         s.Count,
		LeftCount:     s.LeftCount,
		RightCount:    s.RightCount,
		Entries:       make([]jsonNode, 0, len(r.Rows)),
	}
	if !r.Counter() {
		out.Rate = ledger.FormatRate(s.Rate)
		out.LeftSum = ledger.FormatAmount(s.LeftSum)
		out.RightSum = ledger.FormatAmount(s.RightSum)
		out.LeftTotal = ledger.FormatAmount(s.LeftTotal)
		out.RightTotal = ledger.FormatAmount(s.RightTotal)
	}
	for _, row := range r.Rows {
		node := jsonNode{ID: row.ID, Column: row.Column, Description: row.Description}
		if !r.Counter() {
			node.Left = ledger.FormatAmount(row.Left)
			node.Right = ledger.FormatAmount(row.Right)
		}
		out.Entries = append(out.Entries, node)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}

// CSVHeader is the first record written by WriteCSV.
var CSVHeader = []string{"id", "column", "description", "left", "right"}

// WriteCSV writes one record per entry with both converted values.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range r.Rows {
		record := []string{
			strconv.FormatUint(row.ID, 10),
			row.Column.String(),
			row.Description,
			ledger.FormatAmount(row.Left),
			ledger.FormatAmount(row.Right),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record %d: %w", row.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
