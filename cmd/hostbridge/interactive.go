package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/hostbridge/signature"
	"github.com/wippyai/hostbridge/value"
)

type interactiveModel struct {
	err      error
	session  *session
	wasmFile string
	witFile  string
	result   string
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(wasmFile, witFile string) *interactiveModel {
	return &interactiveModel{
		wasmFile: wasmFile,
		witFile:  witFile,
		state:    stateSelectFunc,
	}
}

type loadedMsg struct {
	err     error
	session *session
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	s, err := openSession(context.Background(), m.wasmFile, m.witFile)
	return loadedMsg{session: s, err: err}
}

func (m *interactiveModel) decls() []signature.Declaration {
	if m.session == nil {
		return nil
	}
	return m.session.decls
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.session != nil {
				m.session.Close(context.Background())
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.decls())-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				if len(m.decls()) == 0 {
					return m, nil
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callFunction
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session = msg.session

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	d := m.decls()[m.selected]
	m.inputs = make([]textinput.Model, len(d.Params))
	for i, p := range d.Params {
		ti := textinput.New()
		ti.Placeholder = placeholder(p)
		ti.Prompt = d.ParamNames[i] + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func placeholder(k value.Kind) string {
	switch k {
	case value.KindBool:
		return "true"
	case value.KindInt:
		return "42"
	case value.KindFloat:
		return "1.5"
	case value.KindString:
		return "text"
	case value.KindStringArray:
		return `["a", "b"]`
	case value.KindIntArray:
		return "[1, 2]"
	case value.KindFloatArray:
		return "[0.5, 1]"
	case value.KindMap:
		return `{"key": 1}`
	}
	return "null"
}

func (m *interactiveModel) callFunction() tea.Msg {
	if m.session == nil {
		return callResultMsg{err: fmt.Errorf("module not loaded")}
	}

	d := m.decls()[m.selected]
	args := make([]value.Value, len(m.inputs))
	for i, input := range m.inputs {
		v, err := parseField(input.Value(), d.Params[i])
		if err != nil {
			return callResultMsg{err: fmt.Errorf("%s: %w", d.ParamNames[i], err)}
		}
		args[i] = v
	}

	result, err := m.session.call(context.Background(), d.Name, args)
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: result.String()}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.session == nil {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Host Bridge"))
	b.WriteString(" ")
	b.WriteString(m.wasmFile)
	b.WriteString("\n\n")

	decls := m.decls()
	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a method to call:\n\n")
		for i, d := range decls {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + formatDecl(d, false)))
			} else {
				b.WriteString("  " + formatDecl(d, true))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		d := decls[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(d.Name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(d.Params[i].String()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		d := decls[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(d.Name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(wasmFile, witFile string) error {
	p := tea.NewProgram(newInteractiveModel(wasmFile, witFile), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
