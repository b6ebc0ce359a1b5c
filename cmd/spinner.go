package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

type queryDoneMsg struct {
	err error
}

type querySpinnerModel struct {
	spinner spinner.Model
	label   string
	query   tea.Cmd
	err     error
	done    bool
}

func newQuerySpinnerModel(label string, query tea.Cmd) querySpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("42"))),
	)

	return querySpinnerModel{
		spinner: s,
		label:   label,
		query:   query,
	}
}

func (m querySpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.query)
}

func (m querySpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case queryDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m querySpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runWithSpinner runs query behind a spinner when output is a terminal and
// plainly otherwise.
func runWithSpinner(ctx context.Context, output io.Writer, label string, query func(context.Context) error) error {
	if !isTerminal(output) {
		return query(ctx)
	}

	queryCmd := func() tea.Msg {
		return queryDoneMsg{err: query(ctx)}
	}

	p := tea.NewProgram(
		newQuerySpinnerModel(label, queryCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(querySpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
