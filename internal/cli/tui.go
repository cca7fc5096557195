package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/coalition/pkg/ballot"
	"github.com/matzehuels/coalition/pkg/observability"
	"github.com/matzehuels/coalition/pkg/search"
)

// Progress styles
var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

const barWidth = 30

// =============================================================================
// Messages
// =============================================================================

type sizeStartMsg struct {
	size, attempts int
}

type attemptMsg struct {
	size    int
	outcome observability.AttemptOutcome
}

type sizeDoneMsg struct {
	size    int
	found   bool
	elapsed time.Duration
}

type runDoneMsg struct {
	report *search.Report
	err    error
}

// =============================================================================
// tuiHooks - forwards search events to a running program
// =============================================================================

// tuiHooks implements observability.SearchHooks by sending each event to
// the bubbletea program as a message.
type tuiHooks struct {
	send func(tea.Msg)
}

func (h tuiHooks) OnSearchStart(_ context.Context, size, attempts int) {
	h.send(sizeStartMsg{size: size, attempts: attempts})
}

func (h tuiHooks) OnAttempt(_ context.Context, size int, outcome observability.AttemptOutcome) {
	h.send(attemptMsg{size: size, outcome: outcome})
}

func (h tuiHooks) OnSearchComplete(_ context.Context, size int, found bool, d time.Duration, _ error) {
	h.send(sizeDoneMsg{size: size, found: found, elapsed: d})
}

// =============================================================================
// SearchModel - live view of a manipulation search
// =============================================================================

// sizeRow is one finished coalition size.
type sizeRow struct {
	size       int
	attempts   int
	infeasible int
	found      bool
	elapsed    time.Duration
}

// SearchModel is the bubbletea model for a running search.
type SearchModel struct {
	Winner ballot.Candidate

	Size       int
	Attempts   int
	Done       int
	Infeasible int
	Unchanged  int

	History []sizeRow
	Started time.Time

	Report   *search.Report
	Err      error
	Stopping bool

	cancel context.CancelFunc
	now    func() time.Time
}

// NewSearchModel creates a model for a search against winner. cancel is
// called when the user quits.
func NewSearchModel(winner ballot.Candidate, cancel context.CancelFunc) SearchModel {
	return SearchModel{
		Winner:  winner,
		Started: time.Now(),
		cancel:  cancel,
		now:     time.Now,
	}
}

func (m SearchModel) Init() tea.Cmd {
	return nil
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// The run reports back with runDoneMsg once it has stopped.
			if !m.Stopping && m.cancel != nil {
				m.cancel()
			}
			m.Stopping = true
		}
	case sizeStartMsg:
		m.Size = msg.size
		m.Attempts = msg.attempts
		m.Done, m.Infeasible, m.Unchanged = 0, 0, 0
	case attemptMsg:
		if msg.size != m.Size {
			return m, nil
		}
		m.Done++
		switch msg.outcome {
		case observability.OutcomeInfeasible:
			m.Infeasible++
		case observability.OutcomeUnchanged:
			m.Unchanged++
		}
	case sizeDoneMsg:
		m.History = append(m.History, sizeRow{
			size:       msg.size,
			attempts:   m.Done,
			infeasible: m.Infeasible,
			found:      msg.found,
			elapsed:    msg.elapsed,
		})
	case runDoneMsg:
		m.Report = msg.report
		m.Err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Searching for a manipulation"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("winner %d  ·  elapsed %s  ·  q quit",
		m.Winner, m.elapsed().Round(time.Second))))
	b.WriteString("\n\n")

	if m.Size > 0 {
		b.WriteString(fmt.Sprintf("  coalition %s  %s  %d/%d\n",
			StyleNumber.Render(fmt.Sprint(m.Size)), m.bar(), m.Done, m.Attempts))
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d infeasible  ·  %d unchanged", m.Infeasible, m.Unchanged)))
		b.WriteString("\n\n")
	}

	if len(m.History) > 0 {
		rows := make([][]string, 0, len(m.History))
		for _, h := range m.History {
			result := "—"
			if h.found {
				result = "found"
			}
			rows = append(rows, []string{
				fmt.Sprint(h.size),
				fmt.Sprint(h.attempts),
				fmt.Sprint(h.infeasible),
				result,
				h.elapsed.Round(time.Millisecond).String(),
			})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("Size", "Attempts", "Infeasible", "Result", "Time").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				}
				if row < len(m.History) && m.History[row].found {
					return lipgloss.NewStyle().Foreground(colorGreen)
				}
				return lipgloss.NewStyle().Foreground(colorDim)
			})
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	if m.Stopping {
		b.WriteString(StyleWarning.Render("  stopping..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m SearchModel) bar() string {
	filled := 0
	if m.Attempts > 0 {
		filled = barWidth * m.Done / m.Attempts
	}
	if filled > barWidth {
		filled = barWidth
	}
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

func (m SearchModel) elapsed() time.Duration {
	if m.now == nil {
		return 0
	}
	return m.now().Sub(m.Started)
}
