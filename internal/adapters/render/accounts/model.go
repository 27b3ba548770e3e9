package accounts

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/launcher-core/internal/application"
)

var (
	ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")
	ErrIncompleteRender      = errors.New("account list render stopped before every account was laid out")
)

// sectionMsg carries the rendered block for the account at index.
type sectionMsg struct {
	index   int
	section string
}

// listModel renders one account section per update and quits once every
// account has a section.
type listModel struct {
	accounts []application.AccountView
	opts     RenderOptions
	styles   styles
	sections []string
	pending  int
}

func newListModel(accounts []application.AccountView, opts RenderOptions) listModel {
	return listModel{
		accounts: accounts,
		opts:     opts,
		styles:   newStyles(),
		sections: make([]string, len(accounts)),
		pending:  len(accounts),
	}
}

func (m listModel) Init() tea.Cmd {
	if m.pending == 0 {
		return tea.Quit
	}
	cmds := make([]tea.Cmd, 0, len(m.accounts))
	for i := range m.accounts {
		cmds = append(cmds, m.renderSection(i))
	}
	return tea.Batch(cmds...)
}

func (m listModel) renderSection(index int) tea.Cmd {
	account := m.accounts[index]
	return func() tea.Msg {
		return sectionMsg{
			index:   index,
			section: m.styles.section.Render(renderAccount(account, m.opts, m.styles)),
		}
	}
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, ok := msg.(sectionMsg)
	if !ok || m.sections[done.index] != "" {
		return m, nil
	}

	m.sections[done.index] = done.section
	m.pending--
	if m.pending == 0 {
		return m, tea.Quit
	}
	return m, nil
}

func (m listModel) View() string {
	blocks := []string{renderHeader(len(m.accounts), m.styles)}
	if len(m.accounts) == 0 {
		blocks = append(blocks, renderEmpty(m.styles))
	}
	// Sections keep registry order regardless of completion order.
	blocks = append(blocks, m.sections...)
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// Render lays out the account list. The program runs headless and the
// final view is returned instead of being drawn.
func Render(accounts []application.AccountView, opts RenderOptions) (string, error) {
	program := tea.NewProgram(
		newListModel(accounts, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)

	final, err := program.Run()
	if err != nil {
		return "", err
	}

	list, ok := final.(listModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	if list.pending > 0 {
		return "", ErrIncompleteRender
	}
	return list.View(), nil
}
