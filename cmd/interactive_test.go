package cmd

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
)

// --- selectItem ---

func TestSelectItemAccessors(t *testing.T) {
	item := selectItem{id: "last7", title: "最近7天", description: "days -6 to +0"}
	if item.Title() != "最近7天" {
		t.Errorf("Title() = %q, want %q", item.Title(), "最近7天")
	}
	if item.Description() != "days -6 to +0" {
		t.Errorf("Description() = %q, want %q", item.Description(), "days -6 to +0")
	}
}

func TestSelectItemFilterValue(t *testing.T) {
	item := selectItem{id: "3", title: "抖音", description: "type 3, douyin"}
	fv := item.FilterValue()
	for _, want := range []string{"3", "抖音", "douyin"} {
		if !strings.Contains(fv, want) {
			t.Errorf("FilterValue %q should contain %q", fv, want)
		}
	}
}

// --- selectModel ---

func TestSelectModelInit(t *testing.T) {
	m := newSelectModel("Test", []selectItem{{id: "1", title: "Item 1"}})
	if cmd := m.Init(); cmd != nil {
		t.Error("Init() should return nil")
	}
}

func TestSelectModelCancelKeys(t *testing.T) {
	keys := map[string]tea.KeyMsg{
		"ctrl+c": {Type: tea.KeyCtrlC},
		"esc":    {Type: tea.KeyEscape},
		"q":      {Type: tea.KeyRunes, Runes: []rune("q")},
	}

	for name, key := range keys {
		t.Run(name, func(t *testing.T) {
			m := newSelectModel("Test", []selectItem{{id: "1", title: "Item 1"}})

			updated, cmd := m.Update(key)
			result := updated.(selectModel)

			if !result.cancelled {
				t.Errorf("%s should cancel the selection", name)
			}
			if !result.quitting {
				t.Errorf("%s should set quitting", name)
			}
			if cmd == nil {
				t.Errorf("%s should return tea.Quit", name)
			}
		})
	}
}

func TestSelectModelEnter(t *testing.T) {
	items := []selectItem{
		{id: "today", title: "今天"},
		{id: "yesterday", title: "昨天"},
	}
	m := newSelectModel("Select a range", items)

	// The first item is selected by default.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := updated.(selectModel)

	if result.cancelled {
		t.Error("enter should not cancel")
	}
	if result.chosen.id != "today" {
		t.Errorf("selected id = %q, want %q", result.chosen.id, "today")
	}
	if result.chosen.title != "今天" {
		t.Errorf("selected title = %q, want %q", result.chosen.title, "今天")
	}
}

func TestSelectModelMoveThenEnter(t *testing.T) {
	items := []selectItem{
		{id: "today", title: "今天"},
		{id: "yesterday", title: "昨天"},
	}
	var m tea.Model = newSelectModel("Select a range", items)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.(selectModel).chosen.id; got != "yesterday" {
		t.Errorf("selected id = %q, want %q", got, "yesterday")
	}
}

func TestSelectModelWindowResize(t *testing.T) {
	m := newSelectModel("Test", []selectItem{{id: "1", title: "Item 1"}})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if w := updated.(selectModel).list.Width(); w != 100 {
		t.Errorf("list width = %d, want 100", w)
	}
}

func TestSelectModelView(t *testing.T) {
	m := newSelectModel("Test", []selectItem{{id: "1", title: "Item 1"}})

	view := m.View()
	if view == "" {
		t.Error("View() should not be empty when not quitting")
	}
	if !strings.Contains(view, "Esc to cancel") {
		t.Error("View() should contain the Esc hint")
	}

	m.quitting = true
	if view := m.View(); view != "" {
		t.Errorf("View() should be empty when quitting, got: %q", view)
	}
}

// --- interactiveOrArg ---

func TestInteractiveOrArgWithArg(t *testing.T) {
	result, err := interactiveOrArg(nil, []string{"douyin"}, false, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "douyin" {
		t.Errorf("result = %q, want %q", result, "douyin")
	}
}

func TestInteractiveOrArgNoArgNoInteractive(t *testing.T) {
	_, err := interactiveOrArg(nil, nil, false, nil, "")
	if err == nil {
		t.Fatal("expected error when no arg and not interactive")
	}
	if !strings.Contains(err.Error(), "requires an argument") {
		t.Errorf("error should mention requiring an argument, got: %v", err)
	}
	if code := exitcode.ExitCode(err); code != exitcode.UsageError {
		t.Errorf("exit code = %d, want %d", code, exitcode.UsageError)
	}
}

func TestInteractiveOrArgNonTTY(t *testing.T) {
	origInteractive := isInteractive
	isInteractive = func() bool { return false }
	defer func() { isInteractive = origInteractive }()

	_, err := interactiveOrArg(nil, nil, true, shortcutItems, "Select a range")
	if err == nil {
		t.Fatal("expected error without a terminal")
	}
	if !strings.Contains(err.Error(), "requires a terminal") {
		t.Errorf("error should mention the terminal, got: %v", err)
	}
}

func TestInteractiveOrArgNoItems(t *testing.T) {
	origInteractive := isInteractive
	isInteractive = func() bool { return true }
	defer func() { isInteractive = origInteractive }()

	_, err := interactiveOrArg(nil, nil, true, func() ([]selectItem, error) { return nil, nil }, "Empty")
	if code := exitcode.ExitCode(err); code != exitcode.NotFound {
		t.Errorf("exit code = %d, want %d (err: %v)", code, exitcode.NotFound, err)
	}
}

// --- --interactive flag audit ---

var interactiveCommands = [][]string{
	{"range", "shortcut"},
	{"publish", "platform"},
}

func TestInteractiveFlagRegistered(t *testing.T) {
	for _, cmdPath := range interactiveCommands {
		name := "mpp " + strings.Join(cmdPath, " ")
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find(cmdPath)
			if err != nil {
				t.Fatalf("command not found: %v", err)
			}

			flag := cmd.Flags().Lookup("interactive")
			if flag == nil {
				t.Fatalf("--interactive flag not registered on %s", name)
			}
			if flag.DefValue != "false" {
				t.Errorf("--interactive default should be false, got %s", flag.DefValue)
			}
			if flag.Shorthand != "i" {
				t.Errorf("--interactive shorthand should be -i, got %q", flag.Shorthand)
			}
		})
	}
}
