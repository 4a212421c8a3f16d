package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/kanakku/kanakku/internal/app"
	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/service"
)

// ReportsModel shows a monthly summary and yearly totals per document kind
type ReportsModel struct {
	app   *app.App
	money func(decimal.Decimal) string

	monthStart time.Time
	year       int

	summary *service.Summary
	monthly map[domain.DocumentKind]map[time.Month]decimal.Decimal

	loading bool
	err     error
}

type reportsDataMsg struct {
	summary *service.Summary
	monthly map[domain.DocumentKind]map[time.Month]decimal.Decimal
	err     error
}

// NewReportsModel creates a new reports screen model
func NewReportsModel(a *app.App) tea.Model {
	now := time.Now()
	return &ReportsModel{
		app:        a,
		money:      moneyFormatter(a),
		monthStart: firstOfMonth(now),
		year:       now.Year(),
		loading:    true,
	}
}

func (m *ReportsModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *ReportsModel) loadData() tea.Cmd {
	start := m.monthStart
	year := m.year
	return func() tea.Msg {
		ctx := context.Background()

		summary, err := m.app.ReportService.Summary(ctx, start, start.AddDate(0, 1, 0))
		if err != nil {
			return reportsDataMsg{err: err}
		}

		monthly := make(map[domain.DocumentKind]map[time.Month]decimal.Decimal, len(domain.DocumentKinds))
		for _, kind := range domain.DocumentKinds {
			totals, err := m.app.ReportService.GrandTotalByMonth(ctx, kind, year)
			if err != nil {
				return reportsDataMsg{err: err}
			}
			monthly[kind] = totals
		}

		return reportsDataMsg{summary: summary, monthly: monthly}
	}
}

func (m *ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()

	case reportsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.summary = msg.summary
			m.monthly = msg.monthly
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Left):
			m.monthStart = m.monthStart.AddDate(0, -1, 0)
			m.loading = true
			return m, m.loadData()

		case key.Matches(msg, DefaultKeyMap.Right):
			next := m.monthStart.AddDate(0, 1, 0)
			if !next.After(time.Now()) {
				m.monthStart = next
				m.loading = true
				return m, m.loadData()
			}

		case msg.String() == "[":
			m.year--
			m.loading = true
			return m, m.loadData()

		case msg.String() == "]":
			if m.year < time.Now().Year() {
				m.year++
				m.loading = true
				return m, m.loadData()
			}
		}
	}

	return m, nil
}

func (m *ReportsModel) View() string {
	if m.loading {
		return titleStyle.Render("Reports") + "\n\n  Loading..."
	}

	if m.err != nil {
		return titleStyle.Render("Reports") + "\n\n" + errorLine(m.err)
	}

	var s string
	s += titleStyle.Render("Reports") + "\n"
	s += fmt.Sprintf("  %s\n\n", m.monthStart.Format("January 2006"))

	s += m.renderSummary()
	s += "\n"
	s += m.renderMonthly()

	s += "\n" + helpStyle.Render("  h/l: prev/next month  [/]: prev/next year")
	return s
}

func (m *ReportsModel) renderSummary() string {
	s := lipgloss.NewStyle().Bold(true).Render("  Documents this month") + "\n"

	kinds := m.summary.Kinds()
	if len(kinds) == 0 {
		return s + subtitleStyle.Render("    No documents") + "\n"
	}

	s += subtitleStyle.Render(fmt.Sprintf("    %-15s  %5s  %6s  %9s  %16s  %16s",
		"Kind", "Count", "Drafts", "Finalized", "Tax", "Grand Total")) + "\n"
	for _, ks := range kinds {
		s += fmt.Sprintf("    %-15s  %5d  %6d  %9d  %16s  %16s\n",
			ks.Kind.Label(),
			ks.Count,
			ks.Drafts,
			ks.Finalized,
			m.money(ks.Totals.TotalTax),
			m.money(ks.Totals.GrandTotal),
		)
	}
	return s
}

func (m *ReportsModel) renderMonthly() string {
	s := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("  Finalized totals by month (%d)", m.year),
	) + "\n"

	header := fmt.Sprintf("    %-6s", "Month")
	for _, kind := range domain.DocumentKinds {
		header += fmt.Sprintf("  %16s", kind.Label())
	}
	s += subtitleStyle.Render(header) + "\n"

	yearTotals := make(map[domain.DocumentKind]decimal.Decimal, len(domain.DocumentKinds))
	found := false
	for month := time.January; month <= time.December; month++ {
		row := fmt.Sprintf("    %-6s", month.String()[:3])
		hasValue := false
		for _, kind := range domain.DocumentKinds {
			v := m.monthly[kind][month]
			if !v.IsZero() {
				hasValue = true
			}
			yearTotals[kind] = yearTotals[kind].Add(v)
			row += fmt.Sprintf("  %16s", m.money(v))
		}
		if hasValue {
			found = true
			s += row + "\n"
		}
	}

	if !found {
		return s + subtitleStyle.Render("    Nothing finalized") + "\n"
	}

	total := fmt.Sprintf("%-6s", "Total")
	for _, kind := range domain.DocumentKinds {
		total += fmt.Sprintf("  %16s", m.money(yearTotals[kind]))
	}
	s += "    " + totalStyle.Render(total) + "\n"
	return s
}

// firstOfMonth returns midnight UTC on the first day of t's month
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
