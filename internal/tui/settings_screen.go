package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kanakku/kanakku/internal/app"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldPOPrefix = iota
	settingsFieldDNPrefix
	settingsFieldPurchasePrefix
	settingsFieldCurrencyCode
	settingsFieldCurrencySymbol
	settingsFieldLogLevel
)

var logLevels = []string{"debug", "info", "warn", "error"}

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app       *app.App
	mode      settingsMode
	form      form
	err       error
	statusMsg string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	cfg := m.app.Config
	m.form = newForm([]formField{
		{label: "Purchase Order Prefix:", placeholder: "PO", width: 20, limit: 20},
		{label: "Debit Note Prefix:", placeholder: "DN", width: 20, limit: 20},
		{label: "Purchase Prefix:", placeholder: "PUR", width: 20, limit: 20},
		{label: "Currency Code:", placeholder: "INR", width: 10, limit: 3},
		{label: "Currency Symbol:", placeholder: "₹", width: 10, limit: 5},
		{label: "Log Level:", placeholder: "warn", width: 10, limit: 5},
	}, []string{
		cfg.Documents.PurchaseOrderPrefix,
		cfg.Documents.DebitNotePrefix,
		cfg.Documents.PurchasePrefix,
		cfg.Currency.Code,
		cfg.Currency.Symbol,
		cfg.Log.Level,
	})
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	values := make([]string, len(m.form.inputs))
	for i := range m.form.inputs {
		values[i] = strings.TrimSpace(m.form.value(i))
	}

	return func() tea.Msg {
		for _, i := range []int{settingsFieldPOPrefix, settingsFieldDNPrefix, settingsFieldPurchasePrefix} {
			if values[i] == "" {
				return settingsSavedMsg{err: fmt.Errorf("document prefixes are required")}
			}
		}
		if values[settingsFieldPOPrefix] == values[settingsFieldDNPrefix] ||
			values[settingsFieldPOPrefix] == values[settingsFieldPurchasePrefix] ||
			values[settingsFieldDNPrefix] == values[settingsFieldPurchasePrefix] {
			return settingsSavedMsg{err: fmt.Errorf("document prefixes must differ")}
		}

		level := strings.ToLower(values[settingsFieldLogLevel])
		valid := false
		for _, l := range logLevels {
			if l == level {
				valid = true
			}
		}
		if !valid {
			return settingsSavedMsg{err: fmt.Errorf("log level must be one of %s", strings.Join(logLevels, ", "))}
		}

		cfg := m.app.Config
		cfg.Documents.PurchaseOrderPrefix = values[settingsFieldPOPrefix]
		cfg.Documents.DebitNotePrefix = values[settingsFieldDNPrefix]
		cfg.Documents.PurchasePrefix = values[settingsFieldPurchasePrefix]
		cfg.Currency.Code = strings.ToUpper(values[settingsFieldCurrencyCode])
		cfg.Currency.Symbol = values[settingsFieldCurrencySymbol]
		cfg.Log.Level = level

		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		if msg.String() == "enter" {
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.form.focusCmd()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if saved, ok := msg.(settingsSavedMsg); ok {
		if saved.err != nil {
			m.err = saved.err
			return m, nil
		}
		m.mode = settingsModeView
		m.err = nil
		m.statusMsg = "Settings saved. Currency changes apply to newly opened screens."
		return m, nil
	}

	action, cmd := m.form.update(msg)
	switch action {
	case formCancel:
		m.mode = settingsModeView
		m.err = nil
		return m, nil
	case formSubmit:
		return m, m.saveSettings()
	}
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += statusLine(m.statusMsg)
	}

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(24)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)
	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s\n", labelStyle.Render(label), valueStyle.Render(value))
	}

	s += subtitleStyle.Render("  Document Numbering") + "\n\n"
	s += row("Purchase Order Prefix:", cfg.Documents.PurchaseOrderPrefix)
	s += row("Debit Note Prefix:", cfg.Documents.DebitNotePrefix)
	s += row("Purchase Prefix:", cfg.Documents.PurchasePrefix)

	s += "\n" + subtitleStyle.Render("  Currency") + "\n\n"
	s += row("Code:", cfg.Currency.Code)
	s += row("Symbol:", cfg.Currency.Symbol)

	s += "\n" + subtitleStyle.Render("  Logging") + "\n\n"
	s += row("Level:", cfg.Log.Level)
	s += row("Format:", cfg.Log.Format)
	s += row("Database:", cfg.Database.Path)

	s += "\n" + helpStyle.Render("  enter: edit settings")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"
	s += m.form.view()

	if m.err != nil {
		s += errorLine(m.err)
	}

	s += helpStyle.Render(formHelp)
	return s
}
