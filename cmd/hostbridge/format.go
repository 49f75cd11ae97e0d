package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/hostbridge/signature"
	"github.com/wippyai/hostbridge/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func render(style lipgloss.Style, s string, styled bool) string {
	if !styled {
		return s
	}
	return style.Render(s)
}

func formatDecl(d signature.Declaration, styled bool) string {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		name := d.ParamNames[i]
		params[i] = name + ": " + render(typeStyle, p.String(), styled)
	}
	s := render(funcStyle, d.Name, styled) + "(" + strings.Join(params, ", ") + ")"
	if d.Return != value.KindNil {
		s += " -> " + render(typeStyle, d.Return.String(), styled)
	}
	return s
}

func formatResult(v value.Value, styled bool) string {
	return render(resultStyle, v.String(), styled)
}
