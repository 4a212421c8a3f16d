package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kanakku/kanakku/internal/app"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenDocuments Screen = iota
	ScreenCatalog
	ScreenReports
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenDocuments:
		return "Documents"
	case ScreenCatalog:
		return "Catalog"
	case ScreenReports:
		return "Reports"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models, created on first visit
	screens map[Screen]tea.Model

	checkedFirstRun bool
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenDocuments,
		screens: map[Screen]tea.Model{
			ScreenDocuments: NewDocumentsModel(a),
		},
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkFirstRun(), m.screens[ScreenDocuments].Init())
}

// checkFirstRun checks if the catalog has any products
func (m *Model) checkFirstRun() tea.Cmd {
	return func() tea.Msg {
		products, err := m.app.ProductRepo.List(context.Background())
		if err != nil {
			return firstRunCheckMsg{hasProducts: true} // assume yes on error
		}
		return firstRunCheckMsg{hasProducts: len(products) > 0}
	}
}

func newScreen(screen Screen, a *app.App) tea.Model {
	switch screen {
	case ScreenCatalog:
		return NewCatalogModel(a)
	case ScreenReports:
		return NewReportsModel(a)
	case ScreenSettings:
		return NewSettingsModel(a)
	default:
		return NewDocumentsModel(a)
	}
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	if _, ok := m.screens[screen]; !ok {
		s := newScreen(screen, m.app)
		m.screens[screen] = s
		return s.Init()
	}
	return func() tea.Msg { return RefreshDataMsg{} }
}

func (m *Model) switchTo(screen Screen) tea.Cmd {
	m.currentScreen = screen
	return m.initScreen(screen)
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys (D, P, R, Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.screens[m.currentScreen].(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit
			case key.Matches(msg, DefaultKeyMap.Documents):
				return m, m.switchTo(ScreenDocuments)
			case key.Matches(msg, DefaultKeyMap.Catalog):
				return m, m.switchTo(ScreenCatalog)
			case key.Matches(msg, DefaultKeyMap.Reports):
				return m, m.switchTo(ScreenReports)
			case key.Matches(msg, DefaultKeyMap.Settings):
				return m, m.switchTo(ScreenSettings)
			}
		}

	case firstRunCheckMsg:
		if !m.checkedFirstRun && !msg.hasProducts {
			m.checkedFirstRun = true
			initCmd := m.switchTo(ScreenCatalog)
			openFormCmd := func() tea.Msg { return OpenNewProductFormMsg{} }
			return m, tea.Sequence(initCmd, openFormCmd)
		}
		m.checkedFirstRun = true
		return m, nil

	case SwitchScreenMsg:
		return m, m.switchTo(msg.Screen)
	}

	// Route message to current screen
	screen, ok := m.screens[m.currentScreen]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.screens[m.currentScreen], cmd = screen.Update(msg)
	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("kanakku - %s", m.currentScreen.String()))
	footer := footerStyle.Render("[D]ocuments  [P]roducts  [R]eports  [,] Settings  [Q]uit")

	content := "Loading..."
	if screen, ok := m.screens[m.currentScreen]; ok {
		content = screen.View()
	}

	innerWidth := m.width - 6 // border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n%s", header, divider, content, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
