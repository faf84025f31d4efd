package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInterrupted is returned by a Selector when the user pressed Ctrl-C inside the picker.
var ErrInterrupted = stderrors.New("selection interrupted")

// Selector picks one entry of a listing. ok is false when the user backs out without a choice.
type Selector interface {
	Select(ctx context.Context, title string, options []string) (index int, ok bool, err error)
}

var (
	pickTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	pickSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	pickDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const defaultPickHeight = 15

type pickModel struct {
	title       string
	options     []string
	cursor      int
	offset      int
	height      int
	chosen      int
	interrupted bool
}

func newPickModel(title string, options []string) pickModel {
	return pickModel{
		title:   title,
		options: options,
		height:  defaultPickHeight,
		chosen:  -1,
	}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.interrupted = true
			return m, tea.Quit
		case "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.chosen = m.cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m pickModel) View() string {
	var b strings.Builder

	b.WriteString(pickTitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(pickDimStyle.Render("↑/↓ navigate  ⏎ details  esc back to menu"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.options))
	for i := m.offset; i < end; i++ {
		line := fmt.Sprintf("[%d] %s", i+1, m.options[i])
		if i == m.cursor {
			b.WriteString(pickSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pickDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.options))))
	b.WriteString("\n")
	return b.String()
}

// TerminalSelector runs a full-screen picker on a terminal.
type TerminalSelector struct {
	in  io.Reader
	out io.Writer
}

func NewTerminalSelector(in io.Reader, out io.Writer) *TerminalSelector {
	return &TerminalSelector{in: in, out: out}
}

func (s *TerminalSelector) Select(ctx context.Context, title string, options []string) (int, bool, error) {
	program := tea.NewProgram(newPickModel(title, options),
		tea.WithContext(ctx),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
	)

	final, err := program.Run()
	if err != nil {
		return 0, false, fmt.Errorf("run picker: %w", err)
	}

	m, ok := final.(pickModel)
	switch {
	case !ok:
		return 0, false, nil
	case m.interrupted:
		return 0, false, ErrInterrupted
	case m.chosen < 0:
		return 0, false, nil
	}
	return m.chosen, true, nil
}
