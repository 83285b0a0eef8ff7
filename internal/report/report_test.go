package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() ledger.State {
	return ledger.Apply(ledger.New(),
		ledger.UpdateDraft{Text: "10", Column: ledger.Left}, ledger.Add{},
		ledger.UpdateDraft{Text: "20", Column: ledger.Right}, ledger.Add{},
	)
}

func TestBuild(t *testing.T) {
	r := Build(scenario(), ledger.VariantDual, "CAD", "RMB")

	require.Len(t, r.Rows, 2)
	assert.Equal(t, uint64(0), r.Rows[0].ID)
	assert.InDelta(t, 10.0, r.Rows[0].Left, 1e-12)
	assert.InDelta(t, 53.5, r.Rows[0].Right, 1e-9)
	assert.InDelta(t, 20/5.35, r.Rows[1].Left, 1e-12)
	assert.InDelta(t, 20.0, r.Rows[1].Right, 1e-12)
	assert.Equal(t, 2, r.Summary.Count)
	assert.False(t, r.Counter())
}

func TestCurrencyLabel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "CAD", want: "CAD ($)"},
		{code: "EUR", want: "EUR (€)"},
		{code: "RMB", want: "RMB"},
		{code: "XYZ", want: "XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrencyLabel(tt.code))
		})
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		variant  ledger.Variant
		contains []string
		excludes []string
	}{
		{
			name:    "dual",
			variant: ledger.VariantDual,
			contains: []string{
				"Entries: 2 (CAD 1, RMB 1)",
				"Rate:    5.35 CAD per RMB",
				"Sums:    CAD 10.00 | RMB 20.00",
				"Totals:  CAD 13.74 | RMB 73.50",
			},
		},
		{
			name:     "counter",
			variant:  ledger.VariantCounter,
			contains: []string{"Entries: 2 (CAD 1, RMB 1)"},
			excludes: []string{"Rate", "Totals"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Text(Build(scenario(), tt.variant, "CAD", "RMB"))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(Build(scenario(), ledger.VariantDual, "CAD", "RMB"))
	assert.Contains(t, md, "# Dual Count")
	assert.Contains(t, md, "| # | Entered | CAD ($) | RMB |")
	assert.Contains(t, md, "| 0 | 10 CAD | 10.00 | 53.50 |")
	assert.Contains(t, md, "| 1 | 20 RMB | 3.74 | 20.00 |")
	assert.Contains(t, md, "**13.74**")
	assert.Contains(t, md, "**2 expenses** under rate 5.35 CAD per RMB")

	state := ledger.Apply(ledger.New(), ledger.UpdateDraft{Text: "a|b", Column: ledger.Right}, ledger.Add{})
	counter := Markdown(Build(state, ledger.VariantCounter, "CAD", "RMB"))
	assert.Contains(t, counter, `| 0 |  | a\|b |`)
	assert.Contains(t, counter, "**1 expenses**: 0 CAD, 1 RMB")
}

func TestMarkdown_MultilineDescription(t *testing.T) {
	state := ledger.Apply(ledger.New(), ledger.UpdateDraft{Text: "lunch\nwith\r\nteam", Column: ledger.Left}, ledger.Add{})

	md := Markdown(Build(state, ledger.VariantCounter, "CAD", "RMB"))
	assert.Contains(t, md, "| 0 | lunch<br>with<br>team |  |")

	md = Markdown(Build(state, ledger.VariantDual, "CAD", "RMB"))
	assert.Contains(t, md, "| 0 | lunch<br>with<br>team CAD | 0.00 | 0.00 |")
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "| 0 ") {
			assert.True(t, strings.HasSuffix(line, "|"), "row %q is cut short", line)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown(Build(scenario(), ledger.VariantDual, "CAD", "RMB"), "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "Dual Count")
	assert.Contains(t, out, "13.74")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Build(scenario(), ledger.VariantDual, "CAD", "RMB")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "dual", got["variant"])
	assert.Equal(t, "5.35", got["rate"])
	assert.Equal(t, "13.74", got["left_total"])
	assert.Equal(t, "73.50", got["right_total"])
	assert.InDelta(t, 2, got["count"], 0)

	entries, ok := got["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 2)
	first := entries[0].(map[string]any)
	assert.Equal(t, "Left", first["column"])
	assert.Equal(t, "53.50", first["right"])
}

func TestWriteJSON_NonFiniteRate(t *testing.T) {
	state := scenario()
	state.Rate = math.Inf(1)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Build(state, ledger.VariantDual, "CAD", "RMB")))
	assert.Contains(t, buf.String(), `"rate": "+Inf"`)
}

func TestWriteJSON_Counter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Build(scenario(), ledger.VariantCounter, "CAD", "RMB")))
	assert.NotContains(t, buf.String(), "rate")
	assert.NotContains(t, buf.String(), "left_total")
}

func TestWriteCSV(t *testing.T) {
	state := ledger.Apply(scenario(), ledger.UpdateDraft{Text: "coffee, large", Column: ledger.Left}, ledger.Add{})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Build(state, ledger.VariantDual, "CAD", "RMB")))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{"0", "Left", "10", "10.00", "53.50"}, records[1])
	assert.Equal(t, []string{"1", "Right", "20", "3.74", "20.00"}, records[2])
	assert.Equal(t, []string{"2", "Left", "coffee, large", "0.00", "0.00"}, records[3])
}
