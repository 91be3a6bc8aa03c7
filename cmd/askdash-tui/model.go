package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"askdash/internal/dashboard"
	"askdash/internal/prompt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	logRingSize    = 50
	footerLogLines = 3
)

type focusArea int

const (
	focusPicker focusArea = iota
	focusInput
)

type model struct {
	cfg     appConfig
	ctrl    *dashboard.Controller
	logger  *zap.Logger
	options []prompt.Option

	cursor      int
	focus       focusArea
	statusLine  string
	logs        []string
	showLog     bool
	quitConfirm bool

	width  int
	height int

	input    textinput.Model
	response viewport.Model
	spinner  spinner.Model

	theme uiTheme
}

// replyMsg carries a settled call back into the event loop.
type replyMsg struct {
	reply dashboard.Reply
}

func newModel(cfg appConfig, ctrl *dashboard.Controller, logger *zap.Logger) model {
	input := textinput.New()
	input.Prompt = "❯ "
	input.CharLimit = 2000
	input.Placeholder = "Enter your custom question here"
	input.Blur()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#05ffa1"))

	response := viewport.New(0, 0)
	response.MouseWheelEnabled = true
	response.MouseWheelDelta = 3

	if logger == nil {
		logger = zap.NewNop()
	}
	return model{
		cfg:        cfg,
		ctrl:       ctrl,
		logger:     logger,
		options:    prompt.Options(),
		statusLine: "Select a prompt or question",
		logs:       []string{},
		input:      input,
		response:   response,
		spinner:    sp,
		theme:      newTheme(),
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.response, cmd = m.response.Update(msg)
		cmds = append(cmds, cmd)
	case replyMsg:
		if !m.ctrl.Settle(msg.reply) {
			break
		}
		if msg.reply.Err != nil {
			m.logError(msg.reply.Err)
		} else {
			m.statusLine = "response received"
			m.appendLog(fmt.Sprintf("response received (%d chars)", len(msg.reply.Text)))
		}
		m.renderResponse()
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}
	if m.quitConfirm {
		switch key {
		case "y", "Y", "enter":
			return tea.Quit
		case "n", "N", "esc":
			m.quitConfirm = false
			m.statusLine = "quit cancelled"
		}
		return nil
	}

	switch key {
	case "ctrl+s":
		return m.submit()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.response, cmd = m.response.Update(msg)
		return cmd
	case "tab", "shift+tab":
		return m.toggleFocus()
	}

	if m.focus == focusInput {
		switch key {
		case "enter":
			return m.submit()
		case "esc":
			m.focus = focusPicker
			m.input.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.ctrl.EditCustomQuestion(m.input.Value())
		return cmd
	}

	switch key {
	case "up", "k":
		m.cursor = clampInt(m.cursor-1, 0, len(m.options)-1)
	case "down", "j":
		m.cursor = clampInt(m.cursor+1, 0, len(m.options)-1)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.options) - 1
	case "enter", " ":
		return m.selectAtCursor()
	case "s":
		return m.submit()
	case "l":
		m.showLog = !m.showLog
	case "esc", "q":
		m.quitConfirm = true
		m.statusLine = "quit? (y/n)"
	}
	return nil
}

func (m *model) selectAtCursor() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.options) {
		return nil
	}
	option := m.options[m.cursor]
	m.ctrl.SelectPrompt(option.ID)
	m.appendLog("selected " + option.ID)
	if option.ID != prompt.CustomID {
		m.input.SetValue("")
		m.input.Blur()
		m.focus = focusPicker
		m.statusLine = "selected: " + option.Label
		return nil
	}
	m.input.SetValue(m.ctrl.State().CustomQuestion)
	m.focus = focusInput
	m.statusLine = "type your question, enter to submit"
	return m.input.Focus()
}

func (m *model) toggleFocus() tea.Cmd {
	if m.focus == focusInput {
		m.focus = focusPicker
		m.input.Blur()
		return nil
	}
	if m.ctrl.State().SelectedPromptID != prompt.CustomID {
		return nil
	}
	m.focus = focusInput
	return m.input.Focus()
}

// submit hands the call to a tea.Cmd so the event loop keeps rendering while
// the request is in flight.
func (m *model) submit() tea.Cmd {
	state := m.ctrl.State()
	call, ok := m.ctrl.Submit()
	if !ok {
		if state.Loading {
			m.statusLine = "a request is already in flight"
		} else {
			m.statusLine = "select a prompt or type a question first"
		}
		return nil
	}
	m.statusLine = "processing..."
	m.appendLog("submitted " + nullCoalesce(call.Request.Question, "(empty question)"))
	timeout := m.cfg.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return replyMsg{reply: call.Run(ctx)}
	}
}

func (m model) View() string {
	header := m.renderHeader()
	picker := m.renderPicker()
	sections := []string{header, picker}
	if m.ctrl.State().SelectedPromptID == prompt.CustomID {
		sections = append(sections, m.renderInput())
	}
	sections = append(sections, m.renderSubmit())
	if m.ctrl.State().Response != "" {
		sections = append(sections, m.renderResponsePanel())
	}
	if m.showLog {
		sections = append(sections, m.renderActivity())
	}
	sections = append(sections, m.renderFooter())
	out := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.quitConfirm {
		out = m.renderQuitModal()
	}
	return m.theme.root.Render(out)
}

func (m *model) contentWidth() int {
	if m.width <= 0 {
		return 76
	}
	return maxInt(40, m.width-4)
}

func (m *model) renderHeader() string {
	user := m.ctrl.User()
	line := m.theme.greeting.Render(user.Greeting()) +
		m.theme.helpText.Render(fmt.Sprintf("  ·  model: %s", nullCoalesce(m.ctrl.LLMChoice(), "n/a")))
	return m.theme.header.Width(m.contentWidth()).Render(line)
}

func (m *model) renderPicker() string {
	selected := m.ctrl.State().SelectedPromptID
	var b strings.Builder
	b.WriteString(m.theme.panelTitle.Render("Select a prompt or question"))
	b.WriteString("\n")
	for idx, option := range m.options {
		mark := "○"
		if option.ID == selected {
			mark = "●"
		}
		prefix := "   "
		if idx == m.cursor {
			prefix = ">> "
		}
		line := fmt.Sprintf("%s%s %s", prefix, mark, option.Label)
		switch {
		case idx == m.cursor && m.focus == focusPicker:
			b.WriteString(m.theme.optionCursor.Render(line))
		case option.ID == selected:
			b.WriteString(m.theme.optionChosen.Render(line))
		default:
			b.WriteString(m.theme.option.Render(line))
		}
		b.WriteString("\n")
	}
	style := m.theme.panel
	if m.focus == focusPicker {
		style = m.theme.panelActive
	}
	return style.Width(m.contentWidth()).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *model) renderInput() string {
	return m.theme.inputPanel.Width(m.contentWidth()).Render(m.input.View())
}

func (m *model) renderSubmit() string {
	state := m.ctrl.State()
	var button string
	switch {
	case state.Loading:
		button = m.spinner.View() + " " + m.theme.buttonBusy.Render("Processing...")
	case state.CanSubmit():
		button = m.theme.buttonEnabled.Render("Submit")
	default:
		button = m.theme.buttonDisabled.Render("Submit")
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(button)
}

func (m *model) renderResponsePanel() string {
	title := m.theme.panelTitle.Render("Response:")
	return m.theme.responsePanel.Width(m.contentWidth()).Render(title + "\n" + m.response.View())
}

// renderResponse refreshes the viewport content from controller state.
func (m *model) renderResponse() {
	text := m.ctrl.State().Response
	body := wrapText(text, maxInt(20, m.contentWidth()-4))
	if text == dashboard.FailureMessage {
		body = m.theme.responseError.Render(body)
	}
	m.response.SetContent(body)
	m.response.GotoTop()
}

func (m *model) renderFooter() string {
	statusStyle := m.theme.status
	lower := strings.ToLower(m.statusLine)
	if strings.Contains(lower, "failed") || strings.Contains(lower, "error") {
		statusStyle = m.theme.errorStatus
	}
	lines := []string{statusStyle.Render(compactSingleLine(m.statusLine, 180))}
	if !m.showLog {
		for _, entry := range m.recentLogs(footerLogLines) {
			lines = append(lines, m.theme.logLine.Render(compactSingleLine(entry, m.contentWidth()-2)))
		}
	}
	hints := "Keys: ↑/↓ choose · Enter select · s or Ctrl+S submit · Tab focus input · l activity · PgUp/PgDn or wheel scroll · Esc quit prompt · Ctrl+C quit"
	if m.focus == focusInput {
		hints = "Keys: Enter submit · Esc back to prompts · Tab toggle focus · Ctrl+C quit"
	}
	lines = append(lines, m.theme.helpText.Render(hints))
	return m.theme.footer.Width(m.contentWidth()).Render(strings.Join(lines, "\n"))
}

// renderActivity lists as much of the log ring as fits, newest last.
func (m *model) renderActivity() string {
	limit := logRingSize
	if m.height > 0 {
		limit = clampInt(m.height/3, 3, logRingSize)
	}
	body := m.theme.helpText.Render("(no activity yet)")
	if entries := m.recentLogs(limit); len(entries) > 0 {
		body = strings.Join(entries, "\n")
	}
	title := m.theme.panelTitle.Render(fmt.Sprintf("Activity (%d)", len(m.logs)))
	return m.theme.panel.Width(m.contentWidth()).Render(title + "\n" + body)
}

func (m *model) recentLogs(n int) []string {
	if n <= 0 || len(m.logs) == 0 {
		return nil
	}
	return m.logs[max(0, len(m.logs)-n):]
}

func (m *model) renderQuitModal() string {
	canvasWidth := maxInt(40, m.width-4)
	canvasHeight := maxInt(12, m.height-4)
	modalWidth := clampInt(int(float64(canvasWidth)*0.5), 36, 64)
	body := strings.Join([]string{
		m.theme.modalTitle.Render("Quit askdash?"),
		"",
		m.theme.helpText.Render("y / Enter to quit · n / Esc to stay"),
	}, "\n")
	return lipgloss.Place(canvasWidth, canvasHeight, lipgloss.Center, lipgloss.Center, m.theme.modal.Width(modalWidth).Render(body))
}

func (m *model) resize() {
	m.response.Width = maxInt(20, m.contentWidth()-4)
	used := 2 + 3 + len(m.options) + 3 + 1 + 4 + footerLogLines + 3
	m.response.Height = clampInt(m.height-used, 3, 40)
	m.renderResponse()
}

func (m *model) appendLog(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	m.logs = append(m.logs, fmt.Sprintf("%s %s", time.Now().Format("15:04:05"), compactSingleLine(trimmed, 220)))
	if len(m.logs) > logRingSize {
		m.logs = m.logs[len(m.logs)-logRingSize:]
	}
	m.logger.Debug(trimmed)
}

func (m *model) logError(err error) {
	if err == nil {
		return
	}
	m.appendLog("error: " + err.Error())
	m.statusLine = "request failed: " + compactSingleLine(err.Error(), 160)
}
