package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type view int

const (
	targetsView view = iota
	planView
)

type model struct {
	client         client           // API client
	day            time.Time        // The day whose targets we are viewing
	view           view             // Which page the viewport shows
	targets        *targetsResponse // Last targets fetched for day
	plan           *planResponse    // Last meal plan fetched for day
	loading        string           // What is loading, empty when idle
	loadingSpinner spinner.Model    // Loading spinner
	err            error            // Error message
	width          int              // Width of the terminal
	height         int              // Height of the terminal
	viewport       viewport.Model   // Viewport for the current page
	keys           keyMap           // The key bindings shown in the viewport
	help           help.Model       // The help model in the viewport
}

type keyMap struct {
	Refresh key.Binding
	Plan    key.Binding
	Targets key.Binding
	Prev    key.Binding
	Next    key.Binding
	Quit    key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
}

var keys = keyMap{
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Plan:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "meal plan")),
	Targets: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "targets")),
	Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous day")),
	Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next day")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "scroll up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "scroll down")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
}

// ShortHelp returns keybindings to be shown in the mini help view. It's part
// of the key.Map interface.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Plan, k.Targets, k.Refresh, k.Quit, k.Help}
}

// FullHelp returns keybindings for the expanded help view. It's part of the
// key.Map interface.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Prev, k.Next},
		{k.Plan, k.Targets, k.Refresh},
		{k.Quit, k.Help},
	}
}

func initialModel(c client, day time.Time) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		client:         c,
		day:            day,
		loading:        "Loading targets",
		viewport:       viewport.New(0, 0),
		loadingSpinner: s,
		keys:           keys,
		help:           help.New(),
	}
}

func (m model) date() string {
	return m.day.Format(dateLayout)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.loadingSpinner.Tick, m.client.targetsCmd(m.date()))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		m.help.Width = msg.Width
		m.render()
		return m, nil

	case gotTargetsMsg:
		t := targetsResponse(msg)
		m.targets = &t
		m.loading = ""
		m.err = nil
		m.view = targetsView
		m.render()
		return m, nil

	case gotPlanMsg:
		p := planResponse(msg)
		m.plan = &p
		m.loading = ""
		m.err = nil
		m.view = planView
		m.render()
		return m, nil

	case errMsg:
		m.err = msg
		m.loading = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case m.loading != "":
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m.load("Loading targets", m.client.targetsCmd(m.date()))

		case key.Matches(msg, m.keys.Plan):
			m.plan = nil
			return m.load("Generating meal plan", m.client.planCmd(m.date()))

		case key.Matches(msg, m.keys.Targets):
			m.view = targetsView
			m.render()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.day = m.day.AddDate(0, 0, -1)
			return m.load("Loading targets", m.client.targetsCmd(m.date()))

		case key.Matches(msg, m.keys.Next):
			m.day = m.day.AddDate(0, 0, 1)
			return m.load("Loading targets", m.client.targetsCmd(m.date()))

		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)

		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
		}
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)

	if m.loading != "" {
		var cmd tea.Cmd
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		return m, tea.Batch(cmd, vpCmd)
	}
	return m, vpCmd
}

func (m model) load(what string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.loading = what
	m.err = nil
	return m, tea.Batch(m.loadingSpinner.Tick, cmd)
}

// render refreshes the viewport content for the current page and width.
func (m *model) render() {
	var content string
	switch {
	case m.view == planView && m.plan != nil:
		content = m.markdown(planMarkdown(*m.plan))
	case m.targets != nil:
		content = lipgloss.JoinVertical(lipgloss.Left,
			indent.String(renderTargets(*m.targets), 2),
			m.markdown("## Adjustments\n\n"+factorsMarkdown(m.targets.Factors)),
		)
	}
	m.viewport.SetContent(content)
}

func (m *model) markdown(md string) string {
	width := m.width
	if width <= 4 {
		width = 80
	}
	wrapped := wordwrap.String(md, width-4)
	out, err := glamour.Render(wrapped, "dark")
	if err != nil {
		m.err = err
		return ""
	}
	return out
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress r to retry or q to quit.\n", m.err)
	}

	if m.loading != "" {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			AlignVertical(lipgloss.Center).
			Align(lipgloss.Center).
			Render(
				lipgloss.JoinHorizontal(lipgloss.Center,
					m.loadingSpinner.View(),
					m.loading,
				),
			)
	}

	helpView := lipgloss.NewStyle().PaddingLeft(2).MarginTop(1).Render(m.help.View(m.keys))
	contentHeight := m.height - lipgloss.Height(helpView)
	if contentHeight < 0 {
		contentHeight = 0
	}
	m.viewport.Height = contentHeight

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), helpView)
}

var (
	apiURL string
	date   string
)

var rootCmd = &cobra.Command{
	Use:   "carnitarget",
	Short: "Browse daily nutrient targets and request meal plans",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&apiURL, "api", "http://localhost:8080", "carnitarget server address")
	rootCmd.Flags().StringVar(&date, "date", time.Now().Format(dateLayout), "day to show, YYYY-MM-DD")
}

func run(cmd *cobra.Command, args []string) error {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	p := tea.NewProgram(initialModel(newClient(apiURL), day), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
