package main

import "github.com/charmbracelet/lipgloss"

type uiTheme struct {
	root           lipgloss.Style
	header         lipgloss.Style
	greeting       lipgloss.Style
	panel          lipgloss.Style
	panelActive    lipgloss.Style
	panelTitle     lipgloss.Style
	option         lipgloss.Style
	optionCursor   lipgloss.Style
	optionChosen   lipgloss.Style
	inputPanel     lipgloss.Style
	buttonEnabled  lipgloss.Style
	buttonDisabled lipgloss.Style
	buttonBusy     lipgloss.Style
	responsePanel  lipgloss.Style
	responseError  lipgloss.Style
	footer         lipgloss.Style
	status         lipgloss.Style
	errorStatus    lipgloss.Style
	helpText       lipgloss.Style
	logLine        lipgloss.Style
	modal          lipgloss.Style
	modalTitle     lipgloss.Style
}

func newTheme() uiTheme {
	pink := lipgloss.Color("#ff71ce")
	blue := lipgloss.Color("#01cdfe")
	mint := lipgloss.Color("#05ffa1")
	bg := lipgloss.Color("#120924")
	panelBg := lipgloss.Color("#1b0f35")
	text := lipgloss.Color("#f3f3ff")
	muted := lipgloss.Color("#9ca3d8")
	ink := lipgloss.Color("#22062f")

	return uiTheme{
		root: lipgloss.NewStyle().
			Background(bg).
			Foreground(text).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(text).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		greeting: lipgloss.NewStyle().Foreground(mint).Bold(true),
		panel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		panelActive: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		panelTitle:   lipgloss.NewStyle().Foreground(mint).Bold(true),
		option:       lipgloss.NewStyle().Foreground(text),
		optionCursor: lipgloss.NewStyle().Foreground(ink).Background(pink).Bold(true),
		optionChosen: lipgloss.NewStyle().Foreground(pink).Bold(true),
		inputPanel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mint).
			Padding(0, 1),
		buttonEnabled: lipgloss.NewStyle().
			Foreground(ink).
			Background(mint).
			Bold(true).
			Padding(0, 2),
		buttonDisabled: lipgloss.NewStyle().
			Foreground(muted).
			Background(lipgloss.Color("#2a184a")).
			Padding(0, 2),
		buttonBusy: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffd166")).
			Bold(true),
		responsePanel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mint).
			Padding(0, 1),
		responseError: lipgloss.NewStyle().Foreground(pink).Bold(true),
		footer: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(muted).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(pink).
			Padding(0, 1),
		status:      lipgloss.NewStyle().Foreground(blue).Bold(true),
		errorStatus: lipgloss.NewStyle().Foreground(pink).Bold(true),
		helpText:    lipgloss.NewStyle().Foreground(muted),
		logLine:     lipgloss.NewStyle().Foreground(text).Faint(true),
		modal: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(pink).
			Padding(1, 2),
		modalTitle: lipgloss.NewStyle().Foreground(pink).Bold(true),
	}
}
