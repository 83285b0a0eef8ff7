package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/charmbracelet/lipgloss"
)

const infoText = "A simple two column spreadsheet for writing expenses in two currencies (%s and %s) side by side."

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderEntries(),
		m.renderInputs(),
		m.renderFooter(),
		m.renderInfo(),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	return m.theme.Title.Render("Dual Count")
}

// renderEntries renders one row per entry in insertion order.
func (m Model) renderEntries() string {
	var b strings.Builder

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Subtitle.Width(6).Render("#"),
		m.theme.ColumnHeader.Render(m.config.LeftCurrency),
		m.theme.ColumnHeader.Render(m.config.RightCurrency),
	))

	if len(m.state.Entries) == 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Subtitle.Render("No entries yet"))
	}

	for i, e := range m.state.Entries {
		b.WriteString("\n")
		b.WriteString(m.renderEntryRow(i, e))
	}

	return m.boxFor(focusEntries).Render(b.String())
}

func (m Model) renderEntryRow(row int, e ledger.Entry) string {
	selectedRow := m.focus == focusEntries && row == m.selectedRow

	marker := "  "
	if selectedRow {
		marker = "> "
	}
	id := m.theme.Subtitle.Width(6).Render(fmt.Sprintf("%s%d", marker, e.ID))

	cells := make([]string, 0, 2)
	for _, c := range []ledger.Column{ledger.Left, ledger.Right} {
		cells = append(cells, m.renderCell(e, c, selectedRow && c == m.selectedCol))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, id, cells[0], cells[1])
}

func (m Model) renderCell(e ledger.Entry, c ledger.Column, selected bool) string {
	style := m.theme.Cell
	switch {
	case selected && m.editing:
		return style.Inherit(m.theme.Editing).Render(m.cellInput.View())
	case selected:
		style = style.Inherit(m.theme.Selected)
	case e.Editing:
		style = style.Inherit(m.theme.Editing)
	case e.Column == c:
		style = style.Inherit(m.theme.Bold)
	default:
		style = style.Inherit(m.theme.Normal)
	}
	return style.Render(m.cellText(e, c))
}

// renderInputs renders the two draft fields side by side.
func (m Model) renderInputs() string {
	left := m.boxFor(focusLeftDraft).Render(m.leftInput.View())
	right := m.boxFor(focusRightDraft).Render(m.rightInput.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// renderFooter renders the entry count and the totals.
func (m Model) renderFooter() string {
	sum := ledger.Summarize(m.state, m.config.Variant)

	if m.config.Variant == ledger.VariantCounter {
		return m.theme.Footer.Render(fmt.Sprintf("%d expenses  %s %d  %s %d",
			sum.Count,
			m.config.LeftCurrency, sum.LeftCount,
			m.config.RightCurrency, sum.RightCount,
		))
	}

	totals := fmt.Sprintf("%d expenses  %s %s  %s %s  under rate ",
		sum.Count,
		m.config.LeftCurrency, ledger.FormatAmount(sum.LeftTotal),
		m.config.RightCurrency, ledger.FormatAmount(sum.RightTotal),
	)
	rate := m.boxFor(focusRate).Render(m.rateInput.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, m.theme.Footer.Render(totals), rate)
}

func (m Model) renderInfo() string {
	return m.theme.Info.Render(fmt.Sprintf(infoText, m.config.LeftCurrency, m.config.RightCurrency))
}

func (m Model) boxFor(f focus) lipgloss.Style {
	if m.focus == f {
		return m.theme.FocusedBox
	}
	return m.theme.Box
}
