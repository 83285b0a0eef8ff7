package tui

import (
	"math"
	"testing"

	"github.com/Veraticus/dual-count/internal/ledger"
	tuitest "github.com/Veraticus/dual-count/internal/tui/testing"
	"github.com/Veraticus/dual-count/internal/tui/themes"
	"github.com/stretchr/testify/assert"
)

func TestView_Sections(t *testing.T) {
	tests := []struct {
		name     string
		state    ledger.State
		opts     []Option
		contains []string
		excludes []string
	}{
		{
			name:  "empty dual ledger",
			state: ledger.New(),
			contains: []string{
				"Dual Count",
				"No entries yet",
				"0 expenses",
				"CAD 0.00",
				"RMB 0.00",
				"under rate",
				"5.35",
				"two currencies (CAD and RMB)",
			},
		},
		{
			name: "counter variant shows counts",
			state: ledger.Apply(ledger.New(),
				ledger.UpdateDraft{Text: "abc", Column: ledger.Left}, ledger.Add{},
				ledger.UpdateDraft{Text: "2", Column: ledger.Left}, ledger.Add{},
				ledger.UpdateDraft{Text: "7", Column: ledger.Right}, ledger.Add{},
			),
			opts:     []Option{WithVariant(ledger.VariantCounter)},
			contains: []string{"3 expenses", "CAD 2", "RMB 1", "abc"},
			excludes: []string{"under rate"},
		},
		{
			name: "custom currencies",
			state: ledger.Apply(ledger.New(),
				ledger.UpdateDraft{Text: "1", Column: ledger.Left}, ledger.Add{},
			),
			opts:     []Option{WithCurrencies("EUR", "USD"), WithTheme(themes.CatppuccinMocha)},
			contains: []string{"EUR 1.00", "USD 5.35", "(EUR and USD)"},
			excludes: []string{"CAD"},
		},
		{
			name: "non-numeric entries count as zero",
			state: ledger.Apply(ledger.New(),
				ledger.UpdateDraft{Text: "lunch", Column: ledger.Left}, ledger.Add{},
				ledger.UpdateDraft{Text: "4", Column: ledger.Left}, ledger.Add{},
			),
			contains: []string{"2 expenses", "CAD 4.00", "0.00"},
		},
		{
			name: "zero rate renders without crashing",
			state: ledger.Apply(ledger.New(),
				ledger.UpdateRate{Text: "0"},
				ledger.UpdateDraft{Text: "3", Column: ledger.Right}, ledger.Add{},
			),
			contains: []string{"+Inf", "RMB 3.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tuitest.PlainText(NewModel(tt.state, tt.opts...).View())
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, view, unwanted)
			}
		})
	}
}

func TestView_NaNRate(t *testing.T) {
	state := ledger.New()
	state.Rate = math.NaN()
	state = ledger.Apply(state, ledger.UpdateDraft{Text: "1", Column: ledger.Left}, ledger.Add{})

	view := tuitest.PlainText(NewModel(state).View())
	assert.Contains(t, view, "NaN")
}

func TestView_EntriesInInsertionOrder(t *testing.T) {
	state := ledger.Apply(ledger.New(),
		ledger.UpdateDraft{Text: "111", Column: ledger.Left}, ledger.Add{},
		ledger.UpdateDraft{Text: "222", Column: ledger.Left}, ledger.Add{},
		ledger.UpdateDraft{Text: "333", Column: ledger.Left}, ledger.Add{},
	)

	view := tuitest.PlainText(NewModel(state).View())
	assert.True(t, tuitest.ContainsInOrder(view, "111.00", "222.00", "333.00"))
}

func TestView_WindowResize(t *testing.T) {
	m := NewModel(ledger.New())
	result, cmd := m.Update(tuitest.WindowSize(120, 40))
	assert.Nil(t, cmd)

	resized := result.(Model)
	assert.Equal(t, 120, resized.width)
	assert.Equal(t, 40, resized.height)
	assert.Equal(t, 120, resized.help.Width)
}
