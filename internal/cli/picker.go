package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/reqconv/pkg/requirement"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PickerModel - Interactive package selection
// =============================================================================

// PickerModel is the bubbletea model for choosing which requirements to
// convert. Every requirement starts out checked.
type PickerModel struct {
	Reqs      []requirement.Requirement
	Checked   []bool
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
}

// NewPickerModel creates a picker over reqs.
func NewPickerModel(reqs []requirement.Requirement) PickerModel {
	checked := make([]bool, len(reqs))
	for i := range checked {
		checked[i] = true
	}
	return PickerModel{Reqs: reqs, Checked: checked, Height: 15}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Reqs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "space", "x":
			if len(m.Checked) > 0 {
				m.Checked = append([]bool(nil), m.Checked...)
				m.Checked[m.Cursor] = !m.Checked[m.Cursor]
			}
		case "a":
			all := !m.allChecked()
			m.Checked = make([]bool, len(m.Reqs))
			for i := range m.Checked {
				m.Checked[i] = all
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Packages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ convert  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Reqs))
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Checked[i] {
			box = "[x]"
		}
		r := m.Reqs[i]
		line := fmt.Sprintf("%s%s %-24s %s", cursor, box, r.Name, listDimStyle.Render(r.String()))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case m.Checked[i]:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected", m.count(), len(m.Reqs))))
	return b.String()
}

// Selected returns the checked requirements in their original order.
func (m PickerModel) Selected() []requirement.Requirement {
	var out []requirement.Requirement
	for i, r := range m.Reqs {
		if m.Checked[i] {
			out = append(out, r)
		}
	}
	return out
}

func (m PickerModel) count() int {
	n := 0
	for _, c := range m.Checked {
		if c {
			n++
		}
	}
	return n
}

func (m PickerModel) allChecked() bool {
	return m.count() == len(m.Checked)
}

// pickRequirements runs the picker on the terminal. Quitting without
// confirming returns context.Canceled.
func pickRequirements(ctx context.Context, reqs []requirement.Requirement) ([]requirement.Requirement, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	p := tea.NewProgram(NewPickerModel(reqs), tea.WithContext(ctx), tea.WithOutput(statusOut))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(PickerModel)
	if !ok || !m.Confirmed {
		return nil, context.Canceled
	}
	loggerFromContext(ctx).Debug("picked packages", "selected", m.count(), "total", len(reqs))
	return m.Selected(), nil
}
