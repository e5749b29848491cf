package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/status-im/coin-tracker/coin_detail"
	"github.com/status-im/coin-tracker/interfaces"
)

const (
	defaultChartWidth = 60
	descriptionLimit  = 280
	listChrome        = 8
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.themeReady {
		return m.spinner.View() + " Loading..."
	}

	var body string
	var bindings []key.Binding
	switch m.currentView {
	case ViewDetail:
		body, bindings = m.renderDetail(), m.keys.detailHelp()
	case ViewSettings:
		body, bindings = m.renderSettings(), m.keys.settingsHelp()
	default:
		body, bindings = m.renderList(), m.keys.listHelp()
	}

	sections := []string{body}
	if m.notice != "" {
		sections = append(sections, m.styles.StatusBar.Render(m.notice))
	}
	sections = append(sections, m.help.ShortHelpView(bindings))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderList() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Coin Tracker"))
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	state := m.listState
	switch {
	case state.Status == interfaces.SyncStatusLoading && !state.HasCoins():
		b.WriteString(m.spinner.View() + " Loading coins...\n")
		return b.String()
	case state.Status.IsFailure() && !state.HasCoins():
		b.WriteString(s.Error.Render(state.Error))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render("Press r to retry."))
		b.WriteString("\n")
		return b.String()
	case state.Status == interfaces.SyncStatusLoading:
		b.WriteString(s.Muted.Render(m.spinner.View() + " Updating..."))
		b.WriteString("\n")
	case state.Error != "":
		b.WriteString(s.Warning.Render(state.Error))
		b.WriteString("\n")
	}

	if len(m.visible) == 0 {
		if state.HasCoins() {
			b.WriteString(s.Muted.Render("No coins match your search."))
		} else {
			b.WriteString(s.Muted.Render("No coins yet."))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(s.Muted.Render(fmt.Sprintf("  %-3s %-24s %14s %9s %12s", "", "Name", "Price", "24h", "Market Cap")))
	b.WriteString("\n")

	start, end := m.listWindow()
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.visible[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// listWindow returns the visible row range keeping the cursor on screen
func (m Model) listWindow() (int, int) {
	rows := len(m.visible)
	if m.height > listChrome {
		rows = m.height - listChrome
	}
	if rows >= len(m.visible) {
		return 0, len(m.visible)
	}

	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > len(m.visible) {
		start = len(m.visible) - rows
	}
	return start, start + rows
}

func (m Model) renderRow(coin interfaces.Coin, selected bool) string {
	s := m.styles

	star := " "
	if coin.IsFavorite {
		star = s.Favorite.Render("★")
	}
	name := truncate(fmt.Sprintf("%s (%s)", coin.Name, strings.ToUpper(coin.Symbol)), 24)
	change, ok := coin.PriceChange24h()

	row := fmt.Sprintf("%-24s %14s %s %12s",
		name,
		FormatPrice(coin.CurrentPrice),
		s.changeStyle(change, ok).Render(fmt.Sprintf("%9s", FormatPercent(change, ok))),
		FormatCompact(coin.MarketCap),
	)

	cursor := "  "
	if selected {
		cursor = s.Accent.Render("> ")
		row = s.Selected.Render(row)
	}
	return cursor + star + "   " + row
}

func (m Model) renderDetail() string {
	s := m.styles
	state := m.detailState
	var b strings.Builder

	if state.Details == nil {
		b.WriteString(s.Title.Render(state.CoinID))
		b.WriteString("\n")
		switch {
		case state.Status.IsFailure():
			b.WriteString(s.Error.Render(state.Error))
			b.WriteString("\n")
			b.WriteString(s.Muted.Render("Press r to retry."))
		default:
			b.WriteString(m.spinner.View() + " Loading details...")
		}
		b.WriteString("\n")
		return b.String()
	}

	d := state.Details
	market := d.MarketData
	title := fmt.Sprintf("%s (%s)", d.Name, strings.ToUpper(d.Symbol))
	if m.isFavorite(d.ID) {
		title = s.Favorite.Render("★ ") + title
	}
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n")

	if state.Status == interfaces.SyncStatusLoading {
		b.WriteString(s.Muted.Render(m.spinner.View() + " Updating..."))
		b.WriteString("\n")
	} else if state.Error != "" {
		b.WriteString(s.Warning.Render(state.Error))
		b.WriteString("\n")
	}

	change, ok := market.PriceChange24h()
	b.WriteString(s.Text.Render(FormatPrice(market.CurrentPrice.USD())))
	b.WriteString("  ")
	b.WriteString(s.changeStyle(change, ok).Render(FormatPercent(change, ok)))
	b.WriteString("\n")

	stats := fmt.Sprintf("24h High %s   24h Low %s\nMarket Cap %s   Volume %s",
		FormatPrice(market.High24h.USD()),
		FormatPrice(market.Low24h.USD()),
		FormatCompact(market.MarketCap.USD()),
		FormatCompact(market.TotalVolume.USD()),
	)
	b.WriteString(s.Muted.Render(stats))
	b.WriteString("\n\n")

	b.WriteString(m.renderTimeFrames(state.TimeFrame))
	b.WriteString("\n")
	b.WriteString(s.Panel.Render(m.renderChart(state.Chart)))
	b.WriteString("\n")

	if desc := strings.TrimSpace(d.Description.En); desc != "" {
		b.WriteString(s.Muted.Render(truncate(desc, descriptionLimit)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTimeFrames(current float64) string {
	labels := make([]string, 0, len(coin_detail.TimeFrames))
	for _, tf := range coin_detail.TimeFrames {
		if tf.Days == current {
			labels = append(labels, m.styles.Selected.Render(" "+tf.Label+" "))
		} else {
			labels = append(labels, m.styles.Muted.Render(" "+tf.Label+" "))
		}
	}
	return strings.Join(labels, " ")
}

func (m Model) renderChart(points []interfaces.OHLCPoint) string {
	if len(points) < 2 {
		return m.styles.Muted.Render(chartUnavailable)
	}

	width := defaultChartWidth
	if m.width > 8 && m.width-8 < width {
		width = m.width - 8
	}

	strip := RenderCandles(points, width)
	change, ok := RangeChange(points)
	if !ok {
		return m.styles.Text.Render(strip)
	}

	pct, _ := change.Float64()
	style := m.styles.changeStyle(pct, true)
	return style.Render(strip) + "\n" + style.Render(FormatPercent(pct, true)+" over "+coin_detail.LabelForDays(m.detailState.TimeFrame))
}

func (m Model) renderSettings() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(s.Text.Render(fmt.Sprintf("Theme: %s", m.themeService.Mode())))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Clearing local data removes favorites, cached coins and the saved theme."))
	b.WriteString("\n")
	return b.String()
}

func (m Model) isFavorite(coinID string) bool {
	return m.listState.Favorites.Contains(coinID)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
