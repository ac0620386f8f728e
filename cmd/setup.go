package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/funfan0517/MediaPublishPlatform/internal/api"
	"github.com/funfan0517/MediaPublishPlatform/internal/cache"
	"github.com/funfan0517/MediaPublishPlatform/internal/config"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
	"github.com/funfan0517/MediaPublishPlatform/internal/output"
	"github.com/spf13/cobra"
)

var (
	setupAPIURL    string
	setupToken     string
	setupTimezone  string
	setupStorage   string
	setupSkipCheck bool
)

// setupCmd is exposed as `mpp setup` for manual re-configuration.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure mpp",
	Long: `Configure the publish backend address, API token, time zone and local
storage backend, and save them to the config file.

In a terminal this runs a wizard. Pass --api-url to configure without it.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&setupAPIURL, "api-url", "", "Publish backend base URL")
	setupCmd.Flags().StringVar(&setupToken, "token", "", "API token")
	setupCmd.Flags().StringVar(&setupTimezone, "timezone", "", "IANA time zone (default: local)")
	setupCmd.Flags().StringVar(&setupStorage, "storage", cache.KindFile, "Local storage backend: file, sqlite or memory")
	setupCmd.Flags().BoolVar(&setupSkipCheck, "skip-check", false, "Save without contacting the backend")
	rootCmd.AddCommand(setupCmd)
}

func resetSetupFlags() {
	setupAPIURL = ""
	setupToken = ""
	setupTimezone = ""
	setupStorage = cache.KindFile
	setupSkipCheck = false
}

// needsSetup reports whether the first-run wizard should run: there is no
// config file and no backend address in the environment.
func needsSetup() bool {
	if os.Getenv("MPP_API_URL") != "" {
		return false
	}
	_, err := os.Stat(config.Path())
	return errors.Is(err, os.ErrNotExist)
}

// setupResult is what the wizard or the flags collected.
type setupResult struct {
	apiURL   string
	token    string
	timezone string
	storage  string
}

// checkBackend confirms the backend answers with the given address and token.
func checkBackend(apiURL, token string) error {
	opts := []api.Option{api.WithEndpoint(apiURL), api.WithTimeout(10 * time.Second)}
	if token != "" {
		opts = append(opts, api.WithToken(token))
	}
	_, err := apiNewFunc(opts...).PlatformConfig(1)
	return err
}

// saveSetup merges res into the current config (or the defaults) and writes it.
func saveSetup(res setupResult) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, exitcode.General("loading config", err)
	}
	cfg.API.BaseURL = res.apiURL
	cfg.API.Token = res.token
	cfg.Timezone = res.timezone
	cfg.Storage.Local = res.storage
	if err := cfg.Validate(); err != nil {
		return nil, exitcode.BadInput("invalid settings", err)
	}
	if err := config.Write(cfg); err != nil {
		return nil, exitcode.General("saving config", err)
	}
	return cfg, nil
}

// runSetup implements `mpp setup`.
func runSetup(cmd *cobra.Command, args []string) error {
	var res setupResult
	if setupAPIURL != "" || !isInteractive() {
		if setupAPIURL == "" {
			return exitcode.Usage("setup needs a terminal or --api-url; MPP_API_URL and MPP_API_TOKEN also work without a config file")
		}
		res = setupResult{
			apiURL:   strings.TrimRight(setupAPIURL, "/"),
			token:    setupToken,
			timezone: setupTimezone,
			storage:  setupStorage,
		}
		if !setupSkipCheck {
			if err := checkBackend(res.apiURL, res.token); err != nil {
				return exitcode.General("checking backend", err)
			}
		}
	} else {
		m := newSetupModel()
		p := tea.NewProgram(m, tea.WithOutput(cmd.ErrOrStderr()))
		finalModel, err := p.Run()
		if err != nil {
			return exitcode.General("setup wizard", err)
		}
		result := finalModel.(setupModel)
		if result.cancelled {
			fmt.Fprintln(cmd.OutOrStdout(), "Setup cancelled.")
			return nil
		}
		res = result.result
	}

	cfg, err := saveSetup(res)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, output.Green("Configuration saved to "+config.Path()))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Backend:  %s\n", cfg.API.BaseURL)
	fmt.Fprintf(w, "  Timezone: %s\n", orDefault(cfg.Timezone, "local"))
	fmt.Fprintf(w, "  Storage:  %s\n", cfg.Storage.Local)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run "+output.Bold("mpp publish platforms")+" to see the publish targets.")
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// --- Bubble Tea model ---

type setupStep int

const (
	stepEndpoint setupStep = iota
	stepToken
	stepValidating
	stepTimezone
	stepStorage
	stepDone
)

type setupModel struct {
	step      setupStep
	statusMsg string

	endpointInput textinput.Model
	tokenInput    textinput.Model
	tzInput       textinput.Model

	storageChoices []string
	storageCursor  int

	result    setupResult
	cancelled bool
}

type backendCheckedMsg struct {
	err error
}

func newSetupModel() setupModel {
	endpoint := textinput.New()
	endpoint.Placeholder = config.DefaultBaseURL
	endpoint.Focus()
	endpoint.CharLimit = 256
	endpoint.Width = 50

	token := textinput.New()
	token.Placeholder = "leave blank if the backend has no token"
	token.EchoMode = textinput.EchoPassword
	token.CharLimit = 256
	token.Width = 50

	tz := textinput.New()
	tz.Placeholder = "Asia/Shanghai (blank for local time)"
	tz.CharLimit = 64
	tz.Width = 50

	return setupModel{
		step:           stepEndpoint,
		endpointInput:  endpoint,
		tokenInput:     token,
		tzInput:        tz,
		storageChoices: []string{cache.KindFile, cache.KindSQLite, cache.KindMemory},
	}
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	case backendCheckedMsg:
		if msg.err != nil {
			m.step = stepEndpoint
			m.statusMsg = output.Red("Backend check failed: " + msg.err.Error())
			m.tokenInput.Blur()
			m.endpointInput.Focus()
			return m, textinput.Blink
		}
		m.statusMsg = ""
		m.step = stepTimezone
		m.tzInput.Focus()
		return m, textinput.Blink
	}

	switch m.step {
	case stepEndpoint:
		return m.updateEndpoint(msg)
	case stepToken:
		return m.updateToken(msg)
	case stepTimezone:
		return m.updateTimezone(msg)
	case stepStorage:
		return m.updateStorage(msg)
	}
	return m, nil
}

func (m setupModel) updateEndpoint(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		value := strings.TrimRight(strings.TrimSpace(m.endpointInput.Value()), "/")
		if value == "" {
			value = config.DefaultBaseURL
		}
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			m.statusMsg = output.Red("The address must start with http:// or https://")
			return m, nil
		}
		m.result.apiURL = value
		m.statusMsg = ""
		m.step = stepToken
		m.endpointInput.Blur()
		m.tokenInput.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.endpointInput, cmd = m.endpointInput.Update(msg)
	return m, cmd
}

func (m setupModel) updateToken(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		m.result.token = strings.TrimSpace(m.tokenInput.Value())
		m.step = stepValidating
		m.statusMsg = "Contacting " + m.result.apiURL + "..."
		return m, m.checkBackend
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	return m, cmd
}

func (m setupModel) updateTimezone(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		value := strings.TrimSpace(m.tzInput.Value())
		if value != "" {
			if _, err := time.LoadLocation(value); err != nil {
				m.statusMsg = output.Red("Unknown time zone: " + value)
				return m, nil
			}
		}
		m.result.timezone = value
		m.statusMsg = ""
		m.step = stepStorage
		m.tzInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.tzInput, cmd = m.tzInput.Update(msg)
	return m, cmd
}

func (m setupModel) updateStorage(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if m.storageCursor > 0 {
				m.storageCursor--
			}
		case "down", "j":
			if m.storageCursor < len(m.storageChoices)-1 {
				m.storageCursor++
			}
		case "enter":
			m.result.storage = m.storageChoices[m.storageCursor]
			m.step = stepDone
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m setupModel) checkBackend() tea.Msg {
	return backendCheckedMsg{err: checkBackend(m.result.apiURL, m.result.token)}
}

func (m setupModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("mpp setup"))
	b.WriteString("\n\n")

	switch m.step {
	case stepEndpoint:
		b.WriteString("Publish backend address:\n\n")
		b.WriteString(m.endpointInput.View())
		b.WriteString("\n")
	case stepToken:
		b.WriteString("API token:\n\n")
		b.WriteString(m.tokenInput.View())
		b.WriteString("\n")
	case stepValidating:
		b.WriteString(m.statusMsg)
		b.WriteString("\n")
	case stepTimezone:
		b.WriteString("Time zone for date ranges and schedules:\n\n")
		b.WriteString(m.tzInput.View())
		b.WriteString("\n")
	case stepStorage:
		b.WriteString("Where should mpp keep local data?\n\n")
		for i, choice := range m.storageChoices {
			line := "  " + storageLabel(choice)
			if i == m.storageCursor {
				line = lipgloss.NewStyle().Bold(true).Render("> " + storageLabel(choice))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(storageDescription(m.storageChoices[m.storageCursor])))
		b.WriteString("\n")
	}
	if m.statusMsg != "" && m.step != stepValidating {
		b.WriteString("\n" + m.statusMsg + "\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press Esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

func storageLabel(kind string) string {
	switch kind {
	case cache.KindFile:
		return "Files (recommended)"
	case cache.KindSQLite:
		return "SQLite database"
	case cache.KindMemory:
		return "Memory only"
	}
	return kind
}

func storageDescription(kind string) string {
	switch kind {
	case cache.KindFile:
		return "One JSON file per key under " + cache.Dir() + "."
	case cache.KindSQLite:
		return "A single database at " + cache.DefaultSQLitePath() + "."
	case cache.KindMemory:
		return "Nothing is kept between runs; platform configs are fetched every time."
	}
	return ""
}
