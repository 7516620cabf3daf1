package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"foodies/internal/model"
	"foodies/internal/settings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type OnboardingState struct {
	Completed bool `json:"completed"`
}

func onboardingPath(configDir string) string {
	return filepath.Join(configDir, "onboarding.json")
}

func loadOnboardingState(configDir string) (OnboardingState, error) {
	data, err := os.ReadFile(onboardingPath(configDir))
	if err != nil {
		if os.IsNotExist(err) {
			return OnboardingState{}, nil
		}
		return OnboardingState{}, err
	}

	var state OnboardingState
	if err := json.Unmarshal(data, &state); err != nil {
		return OnboardingState{}, err
	}
	return state, nil
}

func saveOnboardingState(configDir string, state OnboardingState) error {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(onboardingPath(configDir), data, 0o644)
}

func shouldRunOnboarding(state OnboardingState) bool {
	if state.Completed {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

type onboardingStep int

const (
	stepCurrency onboardingStep = iota
	stepLocale
	stepDone
)

type onboardingModel struct {
	step    onboardingStep
	inputs  [2]textinput.Model
	current model.Settings
	chosen  model.Settings
	saved   bool
	problem string
	status  string
	width   int
	height  int
	clock   func() time.Time
}

var (
	obColorMuted  = lipgloss.Color("#7E8C80")
	obColorText   = lipgloss.Color("#D6E0D3")
	obColorAccent = lipgloss.Color("#8FA082")
	obColorDanger = lipgloss.Color("#f38ba8")

	obTitleStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obHeaderStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(obColorMuted)

	obTabsStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(obColorMuted)

	obTabInactive = lipgloss.NewStyle().
			Foreground(obColorMuted).
			Padding(0, 2)

	obTabActive = lipgloss.NewStyle().
			Foreground(obColorText).
			Bold(true).
			Underline(true).
			Padding(0, 2)

	obPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(obColorMuted).
			Padding(1, 2)

	obInputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(obColorAccent).
			Padding(0, 1)

	obLabelStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obMutedStyle = lipgloss.NewStyle().
			Foreground(obColorMuted)

	obWarnStyle = lipgloss.NewStyle().
			Foreground(obColorDanger)

	obFooterStyle = lipgloss.NewStyle().
			Foreground(obColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(obColorMuted)
)

func newOnboardingInput(prompt, value string) textinput.Model {
	in := textinput.New()
	in.CharLimit = 35
	in.Prompt = prompt
	in.SetValue(value)
	in.TextStyle = lipgloss.NewStyle().Foreground(obColorText)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(obColorMuted)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(obColorText).Background(obColorAccent)
	return in
}

func newOnboardingModel(current model.Settings) onboardingModel {
	m := onboardingModel{
		step:    stepCurrency,
		current: current,
		chosen:  current,
		clock:   time.Now,
	}
	m.inputs[0] = newOnboardingInput("currency> ", current.Currency)
	m.inputs[0].Placeholder = "VND"
	m.inputs[1] = newOnboardingInput("locale> ", current.Locale)
	m.inputs[1].Placeholder = "vi-VN"
	m.inputs[0].Focus()
	return m
}

func (m onboardingModel) Init() tea.Cmd { return textinput.Blink }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.step == stepDone {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.confirm()
		case "esc":
			m.status = fmt.Sprintf("Setup skipped. Using %s and %s.", m.current.Currency, m.current.Locale)
			m.chosen = m.current
			m.step = stepDone
			return m, tea.Quit
		case "ctrl+c":
			m.status = "Setup canceled."
			m.chosen = m.current
			m.step = stepDone
			return m, tea.Quit
		case "shift+tab", "up":
			if m.step == stepLocale {
				m.step = stepCurrency
				m.problem = ""
				m.inputs[1].Blur()
				return m, m.inputs[0].Focus()
			}
			return m, nil
		}
		var cmd tea.Cmd
		i := int(m.step)
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		return m, cmd
	}
	return m, nil
}

// confirm validates the active field and advances. A field left blank keeps
// the current value.
func (m onboardingModel) confirm() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.inputs[m.step].Value())
	candidate := m.chosen
	switch m.step {
	case stepCurrency:
		if value == "" {
			value = m.current.Currency
		}
		candidate.Currency = strings.ToUpper(value)
	case stepLocale:
		if value == "" {
			value = m.current.Locale
		}
		candidate.Locale = value
	}
	if err := settings.Validate(candidate); err != nil {
		m.problem = validationProblem(err)
		return m, nil
	}
	m.problem = ""
	m.chosen = candidate

	if m.step == stepCurrency {
		m.step = stepLocale
		m.inputs[0].Blur()
		return m, m.inputs[1].Focus()
	}
	m.saved = true
	m.status = fmt.Sprintf("Prices will show in %s formatted for %s.", m.chosen.Currency, m.chosen.Locale)
	m.step = stepDone
	return m, tea.Quit
}

// validationProblem keeps the first line after the sentinel prefix.
func validationProblem(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	if i := strings.Index(msg, ";"); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	header := m.renderHeader(width)
	tabs := m.renderTabs(width)
	footer := m.renderFooter(width)

	contentHeight := max(height-6, 8)
	content := m.renderContent(width, contentHeight)
	ui := lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, footer)

	return lipgloss.NewStyle().
		Foreground(obColorText).
		Width(width).
		Height(height).
		Render(ui)
}

func (m onboardingModel) renderHeader(width int) string {
	left := "  " + obTitleStyle.Render("foodies") + " " + obMutedStyle.Render("› Setup")
	right := obMutedStyle.Render(m.clock().Format("Mon 02 Jan")) + "  "
	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return obHeaderStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m onboardingModel) renderTabs(width int) string {
	currencyTab := obTabInactive.Render("Currency")
	localeTab := obTabInactive.Render("Locale")
	switch m.step {
	case stepCurrency:
		currencyTab = obTabActive.Render("Currency")
	case stepLocale:
		localeTab = obTabActive.Render("Locale")
	}
	return obTabsStyle.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Left, "  ", currencyTab, localeTab))
}

func (m onboardingModel) renderFooter(width int) string {
	switch m.step {
	case stepCurrency:
		return obFooterStyle.Width(width).Render("enter next  esc skip  ctrl+c cancel")
	case stepLocale:
		return obFooterStyle.Width(width).Render("enter save  shift+tab back  esc skip  ctrl+c cancel")
	default:
		return obFooterStyle.Width(width).Render("Setup complete")
	}
}

func (m onboardingModel) renderContent(width, height int) string {
	cardWidth := min(92, width-6)
	if cardWidth < 40 {
		cardWidth = width - 2
	}
	inputWidth := max(30, cardWidth-14)

	var body string
	switch m.step {
	case stepCurrency:
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			obLabelStyle.Render("Which currency do you pay in?"),
			"",
			obMutedStyle.Render("An ISO 4217 code such as VND, USD or EUR."),
			"",
			obInputStyle.Width(inputWidth).Render(m.inputs[0].View()),
			m.renderProblem(),
		)
	case stepLocale:
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			obLabelStyle.Render("How should numbers be formatted?"),
			"",
			obMutedStyle.Render("A locale such as vi-VN, en-US or fr-FR."),
			obMutedStyle.Render("Currency: "+m.chosen.Currency),
			"",
			obInputStyle.Width(inputWidth).Render(m.inputs[1].View()),
			m.renderProblem(),
			"",
			obMutedStyle.Render("You can change this later with `foodies settings set`."),
		)
	default:
		msg := obMutedStyle.Render(m.status)
		if !m.saved {
			msg = obWarnStyle.Render(m.status)
		}
		body = lipgloss.JoinVertical(lipgloss.Left, obLabelStyle.Render("Onboarding Complete"), "", msg)
	}

	card := obPanelStyle.Width(cardWidth).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}

func (m onboardingModel) renderProblem() string {
	if m.problem == "" {
		return ""
	}
	return obWarnStyle.Render(m.problem)
}

// runOnboarding asks for the currency and locale, saves them and marks
// setup as done. Skipping still marks it done so the wizard shows once.
func runOnboarding(configDir string, store *settings.Store) error {
	m := newOnboardingModel(store.Get())
	prog := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return fmt.Errorf("onboarding tui failed: %w", err)
	}
	final, ok := finalModel.(onboardingModel)
	if !ok {
		return fmt.Errorf("unexpected onboarding model type")
	}
	if final.saved {
		if _, err := store.Save(model.SettingsPatch{
			Currency: &final.chosen.Currency,
			Locale:   &final.chosen.Locale,
		}); err != nil {
			return err
		}
	}
	return saveOnboardingState(configDir, OnboardingState{Completed: true})
}
