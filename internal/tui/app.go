// Package tui defines the Bubble Tea model for `pulse watch`.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	v1 "github.com/f9-o/pulse/api/v1"
	"github.com/f9-o/pulse/internal/core/logger"
	"github.com/f9-o/pulse/internal/probe"
	"github.com/f9-o/pulse/internal/suite"
)

// Config carries dependencies into the watch app.
type Config struct {
	Suite    v1.SuiteSpec
	Interval time.Duration
}

// Model is the root Bubble Tea model (Elm architecture).
type Model struct {
	cfg    Config
	runner *suite.Runner

	// Dimensions
	width  int
	height int

	// Run state
	report  *v1.SuiteReport
	running bool
	runs    int

	spinner spinner.Model
	styles  Styles
}

// tickMsg fires when the next scheduled run is due.
type tickMsg time.Time

// reportMsg carries a completed suite report.
type reportMsg v1.SuiteReport

// New constructs a new watch Model.
func New(cfg Config) *Model {
	styles := newStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	// The watch screen owns the terminal; probe logging goes nowhere.
	prober := probe.New(logger.Discard())
	runner := suite.New(prober, logger.Discard())

	return &Model{
		cfg:     cfg,
		runner:  runner,
		spinner: sp,
		styles:  styles,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Init / Update
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) Init() tea.Cmd {
	m.running = true
	return tea.Batch(m.spinner.Tick, m.runSuiteCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		kb := defaultKeymap()
		switch msg.String() {
		case kb.Quit, "ctrl+c":
			return m, tea.Quit
		case kb.Rerun:
			if !m.running {
				m.running = true
				return m, tea.Batch(m.spinner.Tick, m.runSuiteCmd())
			}
		}

	case tickMsg:
		if !m.running {
			m.running = true
			return m, tea.Batch(m.spinner.Tick, m.runSuiteCmd())
		}

	case reportMsg:
		r := v1.SuiteReport(msg)
		m.report = &r
		m.running = false
		m.runs++
		return m, m.scheduleNextCmd()

	case spinner.TickMsg:
		if m.running {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// View
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	body := m.renderResults()
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderHeader() string {
	title := fmt.Sprintf(" ♥ PULSE WATCH — %s ", m.cfg.Suite.Name)
	status := fmt.Sprintf("every %s · run #%d", m.cfg.Interval, m.runs)
	if m.running {
		status = m.spinner.View() + " probing"
	}
	left := m.styles.Header.Render(title)
	right := m.styles.HeaderStatus.Render(" " + status)
	return lipgloss.JoinHorizontal(lipgloss.Center, left, right)
}

func (m *Model) renderResults() string {
	if m.report == nil {
		return m.styles.Muted.Render("\n  waiting for first run...\n")
	}

	rows := make([]string, 0, len(m.report.Results)+2)
	rows = append(rows, m.styles.TableHeader.Render(
		fmt.Sprintf("  %-3s %-20s %-16s %-10s %s", "", "CHECK", "KIND", "TOOK", "MESSAGE")))

	for _, res := range m.report.Results {
		var mark string
		switch res.Status {
		case v1.StatusOK:
			mark = m.styles.StatusOK.Render("✓")
		case v1.StatusSkipped:
			mark = m.styles.Muted.Render("↷")
		default:
			mark = m.styles.StatusErr.Render("✗")
		}
		msg := res.Message
		if res.Status == v1.StatusFailed && res.Err != "" {
			msg = res.Err
		}
		rows = append(rows, m.styles.TableRow.Render(
			fmt.Sprintf("  %-3s %-20s %-16s %-10s %s",
				mark, res.Name, res.Kind, res.Duration.Round(time.Millisecond), msg)))
	}

	summary := fmt.Sprintf("\n  %d ok · %d failed · %d skipped · last run %s",
		m.report.OKCount, m.report.Failed, m.report.Skipped,
		m.report.Started.Local().Format("15:04:05"))
	if m.report.Passed() {
		rows = append(rows, m.styles.StatusOK.Render(summary))
	} else {
		rows = append(rows, m.styles.StatusErr.Render(summary))
	}

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m *Model) renderFooter() string {
	kb := defaultKeymap()
	keys := fmt.Sprintf(" %s rerun now · %s quit ", kb.Rerun, kb.Quit)
	return m.styles.Footer.Render(keys)
}

// ─────────────────────────────────────────────────────────────────────────────
// Commands
// ─────────────────────────────────────────────────────────────────────────────

// runSuiteCmd executes the suite off the UI loop. The run itself stays
// strictly sequential; only the terminal program is concurrent with it.
func (m *Model) runSuiteCmd() tea.Cmd {
	return func() tea.Msg {
		report := m.runner.Run(context.Background(), m.cfg.Suite)
		return reportMsg(report)
	}
}

func (m *Model) scheduleNextCmd() tea.Cmd {
	return tea.Tick(m.cfg.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
