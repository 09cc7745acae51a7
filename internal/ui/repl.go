package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dogwood/internal/repl"
	"dogwood/internal/source"
)

var (
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	reportStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// statusHeight is the rows taken by the input and status lines.
const statusHeight = 3

type replModel struct {
	ctx     context.Context
	session *repl.Session
	printer repl.Printer
	prompt  string

	input textinput.Model
	view  viewport.Model
	log   strings.Builder

	history []string
	cursor  int // позиция в истории при листании

	turns, failed int
	width         int
	err           error
}

// newREPLModel runs one turn per entered line and keeps the transcript in a
// scrollable pane. The printer's writers are replaced; its format options
// are kept. history seeds the up/down browsing, oldest first.
func newREPLModel(ctx context.Context, s *repl.Session, p repl.Printer, prompt string, history []string) *replModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "1 + 2 * 3"
	ti.Focus()

	return &replModel{
		ctx:     ctx,
		session: s,
		printer: p,
		prompt:  prompt,
		input:   ti,
		view:    viewport.New(80, 20),
		width:   80,
		history: slices.Clone(history),
		cursor:  len(history),
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		case tea.KeyUp:
			m.browse(-1)
			return m, nil
		case tea.KeyDown:
			m.browse(1)
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-statusHeight, 1)
		m.input.Width = max(msg.Width-len(m.prompt)-1, 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) View() string {
	status := fmt.Sprintf("%d turns, %d failed  |  enter: evaluate  up/down: history  pgup/pgdn: scroll  esc: quit", m.turns, m.failed)
	return m.view.View() + "\n" + m.input.View() + "\n" + statusStyle.Render(truncate(status, m.width))
}

// submit runs the current input as one turn.
func (m *replModel) submit() {
	text := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(text) == "" {
		return
	}
	m.history = append(m.history, text)
	m.cursor = len(m.history)

	var out, errOut bytes.Buffer
	p := m.printer
	p.Out, p.Err = &out, &errOut

	m.log.WriteString(echoStyle.Render(m.prompt+text) + "\n")
	res, err := m.session.Turn(m.ctx, source.NewLine("<stdin>", text))
	if err != nil {
		m.err = err
		m.log.WriteString(reportStyle.Render(err.Error()) + "\n")
		m.refresh()
		return
	}
	m.turns++
	if res.Failed() {
		m.failed++
	}
	if err := p.Print(&res); err != nil {
		m.log.WriteString(reportStyle.Render(err.Error()) + "\n")
	}
	if errOut.Len() > 0 {
		m.log.WriteString(reportStyle.Render(strings.TrimRight(errOut.String(), "\n")) + "\n")
	}
	if out.Len() > 0 {
		m.log.WriteString(resultStyle.Render(strings.TrimRight(out.String(), "\n")) + "\n")
	}
	m.refresh()
}

func (m *replModel) refresh() {
	m.view.SetContent(m.log.String())
	m.view.GotoBottom()
}

func (m *replModel) browse(delta int) {
	if len(m.history) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.history))
	if m.cursor == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.cursor])
	m.input.CursorEnd()
}

// RunREPL runs the interactive TUI until the user quits and returns the
// history including the lines entered in this session.
func RunREPL(ctx context.Context, s *repl.Session, p repl.Printer, prompt string, history []string, in io.Reader, out io.Writer) ([]string, error) {
	m := newREPLModel(ctx, s, p, prompt, history)
	prog := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		return m.history, fmt.Errorf("tui: %w", err)
	}
	return m.history, m.err
}
