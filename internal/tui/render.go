package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/recywise/recywise-tui/internal/wizard"
)

// ---------------------------------------------------------------------------
// Styles, themed on the Catppuccin Mocha palette
// ---------------------------------------------------------------------------

var (
	// Section titles
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	// Header bar (spans full width)
	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	// App name in header
	headerAppStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	// Step position in header
	stepBadgeStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorSurface0).
			Padding(0, 1)

	// Status bar (above footer)
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorSurface0).
			Padding(0, 2)

	errorBarStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Background(colorSurface0).
			Padding(0, 2)

	// Footer bar
	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	// Help key styling; the footer background is applied at render time
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	helpDisabledStyle = lipgloss.NewStyle().
				Foreground(colorOverlay0)

	// Section containers
	listBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	separatorStyle = lipgloss.NewStyle().Foreground(colorSurface2)

	// Form fields
	fieldLabelStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	// Advisory notices (total not at 100, VIN length hint)
	noticeStyle = lipgloss.NewStyle().Foreground(colorWarning)

	// Table styles
	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSubtext0).
				Bold(true)

	tableFooterStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Bold(true)

	creditStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	debitStyle  = lipgloss.NewStyle().Foreground(colorError)
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() string {
	sc := wizard.Resolve(m.state, m.currency)
	header := m.renderHeader(sc)
	body := m.renderBody(sc)
	statusLine := m.renderStatus(sc)
	footer := m.renderFooter(m.footerBindings(sc))
	return m.placeWithFooter(header+"\n\n"+body, statusLine, footer)
}

func (m Model) renderHeader(sc wizard.Screen) string {
	content := headerAppStyle.Render(appName)
	if sc.Step.Valid() {
		badge := fmt.Sprintf("Step %d of %d", int(sc.Step), int(wizard.StepResults))
		content += "  " + stepBadgeStyle.Render(badge)
	}
	if m.width <= 0 {
		return headerBarStyle.Render(content)
	}
	return headerBarStyle.Width(m.width).Render(content)
}

func (m Model) renderBody(sc wizard.Screen) string {
	var parts []string
	if len(sc.Body) > 0 {
		parts = append(parts, strings.Join(sc.Body, "\n"))
	}
	if fields := m.renderFields(sc); fields != "" {
		parts = append(parts, fields)
	}
	if sc.Table != nil {
		parts = append(parts, m.renderTable(sc.Table))
	}
	if sc.Notice != "" {
		parts = append(parts, noticeStyle.Render(sc.Notice))
	}
	return m.renderSection(sc.Title, strings.Join(parts, "\n\n"))
}

// renderFields swaps the live input widget in for each editable field, in
// order, and prints read-only fields as label: value lines.
func (m Model) renderFields(sc wizard.Screen) string {
	if len(sc.Fields) == 0 {
		return ""
	}
	live := m.liveInputs()
	idx := 0
	lines := make([]string, 0, len(sc.Fields))
	for _, f := range sc.Fields {
		if f.Editable && idx < len(live) {
			lines = append(lines, live[idx].View())
			idx++
			continue
		}
		lines = append(lines, fieldLabelStyle.Render(f.Label+":")+" "+f.Value)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTable(t *wizard.Table) string {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = ansi.StringWidth(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if w := ansi.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var hb strings.Builder
	for i, col := range t.Columns {
		if i > 0 {
			hb.WriteString("  ")
		}
		hb.WriteString(tableHeaderStyle.Render(padRight(col, widths[i])))
	}
	lines := []string{hb.String()}

	for _, row := range t.Rows {
		var rb strings.Builder
		for i, cell := range row {
			if i > 0 {
				rb.WriteString("  ")
			}
			rb.WriteString(m.colorizeAmount(cell, padRight(cell, widths[i])))
		}
		lines = append(lines, rb.String())
	}

	if t.Footer != "" {
		lines = append(lines, "", tableFooterStyle.Render(t.Footer))
	}
	return strings.Join(lines, "\n")
}

// colorizeAmount colors money cells by sign and leaves other cells alone.
// Padding happens before styling so column widths stay exact.
func (m Model) colorizeAmount(cell, padded string) string {
	if m.currency == "" {
		return padded
	}
	if strings.HasPrefix(cell, "-"+m.currency) {
		return debitStyle.Render(padded)
	}
	if strings.HasPrefix(cell, m.currency) {
		return creditStyle.Render(padded)
	}
	return padded
}

func (m Model) renderStatus(sc wizard.Screen) string {
	style := statusBarStyle
	text := ""
	switch {
	case sc.Err != "":
		style = errorBarStyle
		text = sc.Err
	case sc.Busy:
		text = sc.BusyText + "..."
	}
	if m.width == 0 {
		return style.Render(text)
	}
	return style.Width(m.width).Render(text)
}

func (m Model) renderFooter(bindings []key.Binding) string {
	// Build help text where every character carries the footer background.
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	dimStyle := helpDisabledStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		if !binding.Enabled() {
			parts = append(parts, dimStyle.Render(help.Key)+space+dimStyle.Render(help.Desc))
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)

	if m.width == 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(m.width).Render(content)
}

// ---------------------------------------------------------------------------
// Section & chrome layout
// ---------------------------------------------------------------------------

func (m Model) renderSection(title, content string) string {
	contentWidth := m.sectionContentWidth()
	header := padRight(titleStyle.Render(title), contentWidth)
	separator := separatorStyle.Render(strings.Repeat("─", contentWidth))
	section := listBoxStyle.Width(m.sectionWidth()).Render(header + "\n" + separator + "\n" + content)
	if m.width == 0 {
		return section
	}
	return lipgloss.Place(m.width, lipgloss.Height(section), lipgloss.Center, lipgloss.Top, section)
}

func (m Model) sectionWidth() int {
	if m.width == 0 {
		return 72
	}
	width := m.width - 4
	if width > 72 {
		width = 72
	}
	if width < 20 {
		width = m.width
	}
	return width
}

func (m Model) sectionContentWidth() int {
	frameH := listBoxStyle.GetHorizontalFrameSize()
	contentWidth := m.sectionWidth() - frameH
	if contentWidth < 1 {
		contentWidth = 1
	}
	return contentWidth
}

func (m Model) placeWithFooter(body, statusLine, footer string) string {
	if m.height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := m.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	// Keep every line full-width so stale frame content cannot show through.
	lines := splitLines(main)
	for i, line := range lines {
		lines[i] = padRight(line, m.width)
	}
	return strings.Join(lines, "\n") + "\n" + statusLine + "\n" + footer
}

// ---------------------------------------------------------------------------
// String utilities
// ---------------------------------------------------------------------------

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
