package ui

import (
	"fmt"
	"strings"

	"foodies/internal/model"
	"foodies/internal/store"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField struct {
	label       string
	placeholder string
	limit       int
	required    bool
}

// writeFunc performs the store call for a validated form and returns the id
// of the entity it touched.
type writeFunc func(s *store.Store) (string, error)

type formSpec struct {
	entity string
	id     string // empty when adding
	title  string
	fields []formField
	values []string
	// build validates the values and returns the write to perform.
	// changed reports whether field i differs from its initial value.
	build func(values []string, changed func(int) bool) (writeFunc, error)
}

// FormModel is an add/edit form made of text inputs.
type FormModel struct {
	store        *store.Store
	spec         formSpec
	keys         FormKeyMap
	focusedField int
	inputs       []textinput.Model
	error        string
}

// NewFormModel creates a form for spec with its initial values filled in.
func NewFormModel(s *store.Store, spec formSpec, keys FormKeyMap) *FormModel {
	inputs := make([]textinput.Model, len(spec.fields))
	for i, f := range spec.fields {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = f.placeholder
		inputs[i].CharLimit = f.limit
		if inputs[i].CharLimit == 0 {
			inputs[i].CharLimit = 200
		}
		if i < len(spec.values) {
			inputs[i].SetValue(spec.values[i])
		}
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return &FormModel{
		store:  s,
		spec:   spec,
		keys:   keys,
		inputs: inputs,
	}
}

// Title names the form in the breadcrumb.
func (m *FormModel) Title() string {
	return m.spec.title
}

// Update handles input.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			return m, func() tea.Msg {
				return model.FormCancelledMsg{}
			}
		case key.Matches(keyMsg, m.keys.Save):
			return m.submit()
		case key.Matches(keyMsg, m.keys.NextField):
			m.nextField()
			return m, nil
		case key.Matches(keyMsg, m.keys.PrevField):
			m.prevField()
			return m, nil
		}
	}

	// Update current input
	var cmd tea.Cmd
	m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(msg)
	return m, cmd
}

// Values returns the trimmed input values.
func (m *FormModel) Values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

// validate checks required fields and builds the write. Nothing is written.
func (m *FormModel) validate() (writeFunc, error) {
	values := m.Values()
	for i, f := range m.spec.fields {
		if f.required && values[i] == "" {
			return nil, fmt.Errorf("%w: %s is required", model.ErrValidation, strings.ToLower(f.label))
		}
	}
	changed := func(i int) bool {
		if i >= len(m.spec.values) {
			return values[i] != ""
		}
		return values[i] != strings.TrimSpace(m.spec.values[i])
	}
	return m.spec.build(values, changed)
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	write, err := m.validate()
	if err != nil {
		m.error = err.Error()
		return m, nil
	}
	m.error = ""
	op := model.OpUpdate
	if m.spec.id == "" {
		op = model.OpCreate
	}
	return m, mutateCmd(m.store, m.spec.entity, op, m.spec.id, write)
}

// View renders the form.
func (m *FormModel) View(width, height int) string {
	const fieldHeight = 4
	visible := max(1, (height-6)/fieldHeight)
	start := 0
	if m.focusedField >= visible {
		start = m.focusedField - visible + 1
	}
	end := min(len(m.inputs), start+visible)

	var fields []string
	fields = append(fields, LabelStyle.Render(m.spec.title))
	for i := start; i < end; i++ {
		f := m.spec.fields[i]
		label := f.label
		if f.required {
			label += " *"
		}
		fields = append(fields, renderFormField(label, m.inputs[i], m.focusedField == i))
	}
	if end < len(m.inputs) || start > 0 {
		fields = append(fields, HelpDescStyle.Render(fmt.Sprintf("field %d/%d", m.focusedField+1, len(m.inputs))))
	}

	if m.error != "" {
		fields = append(fields, ErrorStyle.Render(m.error))
	}

	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(strings.Join(fields, "\n"))
}

func (m *FormModel) nextField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField = (m.focusedField + 1) % len(m.inputs)
	m.inputs[m.focusedField].Focus()
}

func (m *FormModel) prevField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField--
	if m.focusedField < 0 {
		m.focusedField = len(m.inputs) - 1
	}
	m.inputs[m.focusedField].Focus()
}

func renderFormField(label string, input textinput.Model, focused bool) string {
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}

	field := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render(label),
		input.View(),
	)

	return style.Padding(0, 1).Render(field)
}

// mutateCmd runs write between two document snapshots so the change can be
// undone and redone as a whole.
func mutateCmd(s *store.Store, entity, op, id string, write writeFunc) tea.Cmd {
	return func() tea.Msg {
		before, err := s.GetAll()
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		touched, err := write(s)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		after, err := s.GetAll()
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		if touched == "" {
			touched = id
		}
		return model.MutatedMsg{
			Entity:    entity,
			ID:        touched,
			Operation: op,
			Before:    before,
			After:     after,
		}
	}
}
