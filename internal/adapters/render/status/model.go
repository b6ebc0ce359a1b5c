package status

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type reportModel struct {
	report   Report
	styles   styles
	rendered string
}

type layoutMsg struct{}

func (m reportModel) Init() tea.Cmd {
	return func() tea.Msg { return layoutMsg{} }
}

func (m reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(layoutMsg); !ok {
		return m, nil
	}

	view := renderView(m.report, m.styles)
	if m.report.Width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.report.Width).Render(view)
	}
	m.rendered = view

	return m, tea.Quit
}

func (m reportModel) View() string {
	return m.rendered
}

func Render(report Report) (string, error) {
	final, err := tea.NewProgram(
		reportModel{report: report, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	).Run()
	if err != nil {
		return "", err
	}

	m, ok := final.(reportModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return m.rendered, nil
}
