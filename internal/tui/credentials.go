package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/printzz/printzz/models"
)

const (
	fieldUsername = iota
	fieldPassword
)

// credentialsModel asks for a username and a password.
type credentialsModel struct {
	title  string
	inputs []textinput.Model
	focus  int
	errMsg string

	done       bool
	quitByUser bool
}

func newCredentialsModel(title, username string) credentialsModel {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 32
	}
	inputs[fieldUsername].Placeholder = "username"
	inputs[fieldUsername].SetValue(username)
	inputs[fieldPassword].Placeholder = "password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '*'

	m := credentialsModel{title: title, inputs: inputs}
	if username != "" {
		m.focus = fieldPassword
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m credentialsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m credentialsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.next):
		return m.moveFocus(1), nil
	case key.Matches(keyMsg, keys.prev):
		return m.moveFocus(-1), nil
	case key.Matches(keyMsg, keys.submit):
		if m.focus == fieldUsername && m.inputs[fieldPassword].Value() == "" {
			return m.moveFocus(1), nil
		}
		if strings.TrimSpace(m.inputs[fieldUsername].Value()) == "" || m.inputs[fieldPassword].Value() == "" {
			m.errMsg = ErrEmptyCredentials.Error()
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	m.errMsg = ""
	return m.updateFocused(msg)
}

func (m credentialsModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m credentialsModel) moveFocus(step int) credentialsModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + step + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m credentialsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n\n")
	b.WriteString("Username: " + m.inputs[fieldUsername].View() + "\n")
	b.WriteString("Password: " + m.inputs[fieldPassword].View() + "\n")
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab next field  enter submit  esc cancel") + "\n")
	return b.String()
}

// user returns the entered credentials.
func (m credentialsModel) user() models.User {
	return models.User{
		Username: strings.TrimSpace(m.inputs[fieldUsername].Value()),
		Password: m.inputs[fieldPassword].Value(),
	}
}
