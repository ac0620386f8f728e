package cmd

import (
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
	"github.com/spf13/cobra"
)

// isInteractive reports whether stdin and stdout are both terminals.
// Tests replace it.
var isInteractive = func() bool {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		st, err := f.Stat()
		if err != nil || st.Mode()&os.ModeCharDevice == 0 {
			return false
		}
	}
	return true
}

// selectItem is one row of the picker. id is what the command receives
// back; title and description are only shown.
type selectItem struct {
	id          string
	title       string
	description string
}

func (i selectItem) Title() string       { return i.title }
func (i selectItem) Description() string { return i.description }

// FilterValue lets "/" match the slug or type number as well as the label.
func (i selectItem) FilterValue() string { return i.id + " " + i.title + " " + i.description }

var (
	pickKey   = key.NewBinding(key.WithKeys("enter"))
	cancelKey = key.NewBinding(key.WithKeys("ctrl+c", "esc", "q"))
	pickHint  = lipgloss.NewStyle().Faint(true).Render("Enter to select, / to filter, Esc to cancel")
)

type selectModel struct {
	list      list.Model
	chosen    selectItem
	cancelled bool
	quitting  bool
}

func newSelectModel(title string, items []selectItem) selectModel {
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, it)
	}

	l := list.New(rows, list.NewDefaultDelegate(), 60, min(8+3*len(items), 25))
	l.Title = title
	l.SetShowStatusBar(len(items) > 5)
	l.SetFilteringEnabled(true)
	return selectModel{list: l}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, cancelKey):
			m.cancelled, m.quitting = true, true
			return m, tea.Quit
		case key.Matches(msg, pickKey):
			it, ok := m.list.SelectedItem().(selectItem)
			if !ok {
				return m, nil
			}
			m.chosen, m.quitting = it, true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View() + "\n" + pickHint + "\n"
}

// pick shows items on stderr and blocks until one is chosen.
func pick(cmd *cobra.Command, title string, items []selectItem) (selectItem, error) {
	if !isInteractive() {
		return selectItem{}, exitcode.Usage("--interactive requires a terminal")
	}
	if len(items) == 0 {
		return selectItem{}, exitcode.NotFoundError("nothing to select from")
	}

	final, err := tea.NewProgram(newSelectModel(title, items), tea.WithOutput(cmd.ErrOrStderr())).Run()
	if err != nil {
		return selectItem{}, exitcode.General("interactive selection", err)
	}
	m := final.(selectModel)
	if m.cancelled {
		return selectItem{}, exitcode.General("selection cancelled", nil)
	}
	return m.chosen, nil
}

// interactiveOrArg resolves the single positional argument of a command
// that also accepts --interactive. Passing both is a usage error.
func interactiveOrArg(cmd *cobra.Command, args []string, interactive bool, items func() ([]selectItem, error), title string) (string, error) {
	switch {
	case interactive && len(args) > 0:
		return "", exitcode.Usage("pass an argument or --interactive, not both")
	case interactive:
		choices, err := items()
		if err != nil {
			return "", err
		}
		it, err := pick(cmd, title, choices)
		if err != nil {
			return "", err
		}
		return it.id, nil
	case len(args) == 0:
		return "", exitcode.Usage("requires an argument or --interactive flag")
	}
	return args[0], nil
}
