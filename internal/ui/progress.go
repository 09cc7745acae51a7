package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"dogwood/internal/repl"
	"dogwood/internal/source"
)

type progressModel struct {
	title   string
	events  <-chan repl.BatchEvent
	spinner spinner.Model
	prog    progress.Model
	items   []lineItem
	width   int
	done    bool
}

type lineItem struct {
	label  string
	status repl.BatchStatus
}

type eventMsg repl.BatchEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders batch progress.
// Blank lines are not shown.
func NewProgressModel(title string, lines []source.Line, events <-chan repl.BatchEvent) tea.Model {
	return newProgressModel(title, lines, events)
}

func newProgressModel(title string, lines []source.Line, events <-chan repl.BatchEvent) *progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]lineItem, len(lines))
	for i, l := range lines {
		items[i] = lineItem{label: fmt.Sprintf("%s:%d  %s", l.Name, l.No, strings.TrimSpace(l.Text))}
		if strings.TrimSpace(l.Text) == "" {
			items[i].label = ""
		}
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(repl.BatchEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), m.visible())
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 8
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		if item.label == "" {
			continue
		}
		status := styleStatus(item.status).Render(fmt.Sprintf("%8s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.label, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev repl.BatchEvent) tea.Cmd {
	if ev.Index < 0 || ev.Index >= len(m.items) {
		return nil
	}
	m.items[ev.Index].status = ev.Status
	if n := m.visible(); n > 0 {
		return m.prog.SetPercent(float64(m.finished()) / float64(n))
	}
	return nil
}

func (m *progressModel) visible() int {
	n := 0
	for _, it := range m.items {
		if it.label != "" {
			n++
		}
	}
	return n
}

func (m *progressModel) finished() int {
	n := 0
	for _, it := range m.items {
		if it.status == repl.BatchDone || it.status == repl.BatchFailed {
			n++
		}
	}
	return n
}

func styleStatus(status repl.BatchStatus) lipgloss.Style {
	switch status {
	case repl.BatchDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case repl.BatchFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case repl.BatchWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

// RunBatch evaluates lines like repl.EvalBatch while drawing progress to out.
// The results are returned once the view has drawn its final frame.
func RunBatch(ctx context.Context, title string, lines []source.Line, opts repl.BatchOptions, out io.Writer) ([]repl.TurnResult, error) {
	events := make(chan repl.BatchEvent, 2*len(lines))
	opts.Notify = func(ev repl.BatchEvent) { events <- ev }

	var (
		results []repl.TurnResult
		evalErr error
	)
	go func() {
		defer close(events)
		results, evalErr = repl.EvalBatch(ctx, lines, opts)
	}()

	p := tea.NewProgram(NewProgressModel(title, lines, events), tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		// дожидаемся воркеров, чтобы не гонять results
		for range events {
		}
		if evalErr != nil {
			return nil, evalErr
		}
		return nil, fmt.Errorf("progress view: %w", err)
	}
	for range events {
	}
	return results, evalErr
}
