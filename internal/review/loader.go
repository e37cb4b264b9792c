package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobscout/internal/model"
)

// ErrCancelled is returned by RunLoader when the user presses ctrl+c.
var ErrCancelled = errors.New("cancelled")

type loadDoneMsg struct {
	listings []model.Listing
	err      error
}

type loaderModel struct {
	label   string
	ctx     context.Context
	cancel  context.CancelFunc
	fetchFn func(ctx context.Context) ([]model.Listing, error)
	spinner spinner.Model
	result  []model.Listing
	err     error
	done    bool
}

func newLoaderModel(ctx context.Context, label string, fetchFn func(ctx context.Context) ([]model.Listing, error)) loaderModel {
	ctx, cancel := context.WithCancel(ctx)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	return loaderModel{
		label:   label,
		ctx:     ctx,
		cancel:  cancel,
		fetchFn: fetchFn,
		spinner: sp,
	}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

func (m loaderModel) load() tea.Cmd {
	ctx, fetchFn := m.ctx, m.fetchFn
	return func() tea.Msg {
		listings, err := fetchFn(ctx)
		return loadDoneMsg{listings: listings, err: err}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDoneMsg:
		m.result = msg.listings
		if m.err == nil {
			m.err = msg.err
		}
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s...\n", m.spinner.View(), m.label)
}

// RunLoader shows a spinner labelled label while fetchFn runs. It renders
// inline (no alt screen) and returns whatever fetchFn returned.
func RunLoader(ctx context.Context, label string, fetchFn func(ctx context.Context) ([]model.Listing, error)) ([]model.Listing, error) {
	m := newLoaderModel(ctx, label, fetchFn)
	defer m.cancel()

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
