package cmd

import (
	"testing"

	"foodies/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func enter(t *testing.T, m onboardingModel) (onboardingModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(onboardingModel), cmd
}

func TestOnboardingChoosesCurrencyAndLocale(t *testing.T) {
	m := newOnboardingModel(model.DefaultSettings())

	m.inputs[0].SetValue(" usd ")
	m, _ = enter(t, m)
	if m.step != stepLocale {
		t.Fatalf("step after currency = %v, want locale", m.step)
	}
	if m.chosen.Currency != "USD" {
		t.Errorf("chosen currency = %q, want USD", m.chosen.Currency)
	}

	m.inputs[1].SetValue("not a locale!")
	m, _ = enter(t, m)
	if m.step != stepLocale || m.problem == "" {
		t.Fatalf("invalid locale: step %v problem %q, want to stay with a problem", m.step, m.problem)
	}

	m.inputs[1].SetValue("en-US")
	m, cmd := enter(t, m)
	if m.step != stepDone || !m.saved {
		t.Fatalf("step %v saved %v, want done and saved", m.step, m.saved)
	}
	if cmd == nil {
		t.Error("finishing setup did not quit")
	}
	want := model.Settings{Currency: "USD", Locale: "en-US", PriceFractionDigits: 0, DefaultPageSize: 10}
	if m.chosen != want {
		t.Errorf("chosen = %+v, want %+v", m.chosen, want)
	}
}

func TestOnboardingRejectsUnknownCurrency(t *testing.T) {
	m := newOnboardingModel(model.DefaultSettings())
	m.inputs[0].SetValue("dollars")
	m, _ = enter(t, m)
	if m.step != stepCurrency || m.problem == "" {
		t.Errorf("step %v problem %q, want to stay on currency with a problem", m.step, m.problem)
	}
}

func TestOnboardingBlankKeepsCurrent(t *testing.T) {
	m := newOnboardingModel(model.DefaultSettings())
	m.inputs[0].SetValue("")
	m, _ = enter(t, m)
	m.inputs[1].SetValue("")
	m, _ = enter(t, m)
	if m.chosen != model.DefaultSettings() {
		t.Errorf("chosen = %+v, want defaults", m.chosen)
	}
}

func TestOnboardingSkip(t *testing.T) {
	m := newOnboardingModel(model.DefaultSettings())
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(onboardingModel)
	if m.step != stepDone || m.saved || cmd == nil {
		t.Errorf("after esc: step %v saved %v quit %v", m.step, m.saved, cmd != nil)
	}
}

func TestOnboardingStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	state, err := loadOnboardingState(dir)
	if err != nil || state.Completed {
		t.Fatalf("missing state = %+v, %v, want zero", state, err)
	}
	if err := saveOnboardingState(dir, OnboardingState{Completed: true}); err != nil {
		t.Fatal(err)
	}
	state, err = loadOnboardingState(dir)
	if err != nil || !state.Completed {
		t.Errorf("loaded state = %+v, %v, want completed", state, err)
	}
	if shouldRunOnboarding(state) {
		t.Error("shouldRunOnboarding(completed) = true")
	}
}
