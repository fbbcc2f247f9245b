// Package tui renders the payment-operations dashboard as a terminal UI.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"payboard/clients"
	"payboard/internal/ui"
	"payboard/report"
	"payboard/snapshot"
)

const recentCount = 5

type fetchState int

const (
	stateLoading fetchState = iota
	stateFailed
	stateReady
)

type snapshotMsg struct{ snap *snapshot.Dashboard }

type fetchFailedMsg struct{ err error }

// DashboardModel is the bubbletea model for the dashboard view. It owns the
// current snapshot reference and derives all display data from it; a refresh
// wholly replaces the snapshot. The fetch context is cancelled on quit so no
// request outlives the view.
type DashboardModel struct {
	fetcher *snapshot.Fetcher
	ctx     context.Context
	cancel  context.CancelFunc

	state fetchState
	err   error

	kpi       report.KPISummary
	daily     []report.DailyBucket
	methods   []report.CategoryCount
	recent    []clients.Payment
	names     map[string]string
	fetchedAt time.Time

	width    int
	height   int
	quitting bool
}

// NewDashboardModel creates a dashboard model that fetches through fetcher.
func NewDashboardModel(fetcher *snapshot.Fetcher) DashboardModel {
	ctx, cancel := context.WithCancel(context.Background())
	return DashboardModel{
		fetcher: fetcher,
		ctx:     ctx,
		cancel:  cancel,
		state:   stateLoading,
		width:   80,
		height:  24,
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m DashboardModel) fetchCmd() tea.Cmd {
	fetcher, ctx := m.fetcher, m.ctx
	return func() tea.Msg {
		snap, err := fetcher.Dashboard(ctx)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return snapshotMsg{snap: snap}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			m.quitting = true
			return m, tea.Quit
		case "r":
			if m.state != stateLoading {
				m.state = stateLoading
				return m, m.fetchCmd()
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case snapshotMsg:
		m.applySnapshot(msg.snap)
	case fetchFailedMsg:
		m.state = stateFailed
		m.err = msg.err
	}
	return m, nil
}

func (m *DashboardModel) applySnapshot(snap *snapshot.Dashboard) {
	m.kpi = report.Summarize(snap.Payments, snap.Merchants)
	m.daily = report.DailyRevenue(snap.Payments, report.DefaultRevenueWindowDays, time.Now())
	m.methods = report.MethodBreakdown(snap.Payments, snap.PayTypeLabels)
	sort.Slice(m.methods, func(i, j int) bool {
		if m.methods[i].Value != m.methods[j].Value {
			return m.methods[i].Value > m.methods[j].Value
		}
		return m.methods[i].Name < m.methods[j].Name
	})
	m.recent = report.MostRecent(snap.Payments, recentCount)
	m.names = report.NameIndex(snap.Merchants)
	m.fetchedAt = snap.FetchedAt
	m.state = stateReady
	m.err = nil
}

func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(lipgloss.AdaptiveColor{Light: "#0055AA", Dark: "#1E90FF"}).
		Width(m.width).
		Padding(0, 1).
		Align(lipgloss.Center).
		Render("PAYBOARD  ▸  PAYMENT OPS DASHBOARD")

	var body string
	switch m.state {
	case stateLoading:
		body = lipgloss.NewStyle().Padding(1, 2).Render("Loading dashboard data...")
	case stateFailed:
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}).
			Padding(1, 2)
		body = errStyle.Render(fmt.Sprintf("Fetch failed: %v", m.err))
	case stateReady:
		body = m.renderContent()
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#000000"}).
		Background(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#A0A0A0"}).
		Width(m.width).
		Padding(0, 1).
		Render("[r] Refresh  [q] Quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m DashboardModel) renderContent() string {
	halfWidth := m.width/2 - 2
	if halfWidth < 30 {
		halfWidth = 30
	}

	paneStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#4A4A4A"}).
		Padding(0, 1).
		Width(halfWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#AA8800", Dark: "#FFD700"})

	left := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("SUMMARY"),
		m.renderKPIs(),
		"",
		titleStyle.Render("PAYMENT METHODS"),
		m.renderMethods(),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("DAILY REVENUE (%dD)", report.DefaultRevenueWindowDays)),
		m.renderDaily(halfWidth-4),
	)

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(left),
		paneStyle.Render(right),
	)

	bottomStyle := paneStyle.Width(m.width - 2)
	bottom := bottomStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("RECENT TRANSACTIONS"),
		m.renderRecent(),
	))

	stamp := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#808080"}).
		Render("fetched " + m.fetchedAt.Local().Format("15:04:05"))

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom, stamp)
}

func (m DashboardModel) renderKPIs() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})
	valueStyle := lipgloss.NewStyle().Bold(true)

	lines := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("Total revenue: "), valueStyle.Render("₩"+m.kpi.TotalAmount)),
		fmt.Sprintf("%s %s", labelStyle.Render("Transactions: "), valueStyle.Render(fmt.Sprintf("%d", m.kpi.TotalCount))),
		fmt.Sprintf("%s %s", labelStyle.Render("Merchants:     "), valueStyle.Render(fmt.Sprintf("%d", m.kpi.TotalMerchants))),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m DashboardModel) renderMethods() string {
	if len(m.methods) == 0 {
		return "No successful payments."
	}
	var lines []string
	for _, c := range m.methods {
		lines = append(lines, fmt.Sprintf("%-12s %4d", ui.TruncateText(c.Name, 12), c.Value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m DashboardModel) renderDaily(barWidth int) string {
	if len(m.daily) == 0 {
		return "No revenue in window."
	}
	if barWidth < 10 {
		barWidth = 10
	}

	maxAmount := 0.0
	for _, b := range m.daily {
		if v := b.Amount.InexactFloat64(); v > maxAmount {
			maxAmount = v
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0055AA", Dark: "#1E90FF"})

	// Show the most recent days that fit; ordering stays ascending.
	buckets := m.daily
	maxRows := m.height - 14
	if maxRows < 5 {
		maxRows = 5
	}
	if len(buckets) > maxRows {
		buckets = buckets[len(buckets)-maxRows:]
	}

	var lines []string
	for _, b := range buckets {
		width := 0
		if maxAmount > 0 {
			width = int(b.Amount.InexactFloat64() / maxAmount * float64(barWidth-26))
		}
		if width < 1 {
			width = 1
		}
		bar := barStyle.Render(strings.Repeat("█", width))
		lines = append(lines, fmt.Sprintf("%s %s %s", b.Date, bar, "₩"+report.FormatThousands(b.Amount)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m DashboardModel) renderRecent() string {
	if len(m.recent) == 0 {
		return "No transactions."
	}
	var lines []string
	for _, p := range m.recent {
		lines = append(lines, fmt.Sprintf("%-17s %-20s %-10s %12s",
			ui.FormatTimestamp(p.PaymentAt),
			ui.TruncateText(report.MerchantName(m.names, p.MchtCode), 20),
			p.Status,
			ui.FormatWon(p.Amount),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
