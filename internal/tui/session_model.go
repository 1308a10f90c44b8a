package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/durok/internal/guide"
	"github.com/balkashynov/durok/internal/models"
	"github.com/balkashynov/durok/internal/parser"
	"github.com/balkashynov/durok/internal/session"
	"github.com/balkashynov/durok/internal/tracker"
)

// editField is the value the text input is currently editing
type editField int

const (
	editNone editField = iota
	editEntryText
	editEntryHours
	editEntryMinutes
	editEntryDate
	editTargetText
	editTargetHours
	editTargetMinutes
	editWeeklyTarget
	editQuestion
)

// SessionModel is the interactive tracking screen
type SessionModel struct {
	width  int
	height int

	session    *session.Session
	clock      *tracker.LoopClock
	answerer   guide.Answerer
	askTimeout time.Duration

	// Snapshot of the session, refreshed after every change
	entries      []models.Entry
	totals       tracker.Totals
	displayTotal int
	week         tracker.WeekSummary

	cursor   int
	showWeek bool

	// Editing state
	editing      editField
	editID       uint
	pendingHours string
	input        textinput.Model

	// Guide state
	asking   bool
	question string
	answer   string

	status    string
	statusErr bool
	animation int
	quitting  bool
}

// clockTickMsg carries a tick from the LoopClock so it runs inside Update
type clockTickMsg struct {
	fn func()
}

// animationTickMsg drives the header animation
type animationTickMsg struct{}

// answerMsg carries the guide's reply
type answerMsg struct {
	answer string
}

// NewSessionModel creates the tracking screen for s. Ticks are read from clock,
// which must be the clock the session's timer was built with. A nil clock means
// the timer only advances through clockTickMsg.
func NewSessionModel(s *session.Session, clock *tracker.LoopClock, answerer guide.Answerer, askTimeout time.Duration) SessionModel {
	input := textinput.New()
	input.Width = 40
	input.CharLimit = 64
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	m := SessionModel{
		session:    s,
		clock:      clock,
		answerer:   answerer,
		askTimeout: askTimeout,
		input:      input,
	}
	m.refresh()
	return m
}

// Init starts listening for clock ticks and the header animation
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(
		waitForTick(m.clock),
		tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
			return animationTickMsg{}
		}),
	)
}

// waitForTick blocks until the clock delivers the next tick
func waitForTick(clock *tracker.LoopClock) tea.Cmd {
	if clock == nil {
		return nil
	}
	return func() tea.Msg {
		return clockTickMsg{fn: <-clock.Ticks()}
	}
}

// askGuide queries the guide off the update loop
func askGuide(answerer guide.Answerer, question string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return answerMsg{answer: guide.Ask(ctx, answerer, question)}
	}
}

// Update handles messages
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clockTickMsg:
		wasRunning := m.session.TimerState() == tracker.Running
		if msg.fn != nil {
			msg.fn()
		}
		if wasRunning && m.session.TimerState() == tracker.Stopped {
			m.setStatus("⏰ Target reached", false)
		}
		m.refresh()
		return m, waitForTick(m.clock)

	case animationTickMsg:
		m.animation = (m.animation + 1) % 4
		if m.quitting {
			return m, nil
		}
		return m, tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
			return animationTickMsg{}
		})

	case answerMsg:
		m.asking = false
		m.answer = msg.answer
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing != editNone {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

// updateKeys handles keys outside of editing
func (m SessionModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
		return m, nil

	case "s", " ":
		m.toggleTimer()
		m.refresh()
		return m, nil

	case "r":
		m.session.Reset()
		m.setStatus("Timer reset", false)
		m.refresh()
		return m, nil

	case "w":
		m.showWeek = !m.showWeek
		return m, nil

	case "?":
		if m.asking {
			return m, nil
		}
		m.answer = ""
		cmd := m.beginEdit(editQuestion, 0, "", "Ask how to use durok...")
		return m, cmd
	}

	// Everything below changes entries or targets
	if m.session.TimerState() == tracker.Running {
		switch msg.String() {
		case "a", "d", "x", "e", "enter", "D", "t", "W":
			m.setStatus("Pause the timer to edit", true)
		}
		return m, nil
	}

	structured := m.session.Strategy().Name() == parser.ModeFields

	switch msg.String() {
	case "a":
		entry, err := m.session.AddEntry()
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.refresh()
		m.cursor = len(m.entries) - 1
		if structured {
			cmd := m.beginEdit(editEntryHours, entry.ID, "", "Hours")
			return m, cmd
		}
		cmd := m.beginEdit(editEntryText, entry.ID, "", "e.g. 2h 30m, 2:30, 90m")
		return m, cmd

	case "d", "x":
		entry, ok := m.selected()
		if !ok {
			return m, nil
		}
		removed, err := m.session.RemoveEntry(entry.ID)
		switch {
		case err != nil:
			m.setStatus(err.Error(), true)
		case !removed:
			m.setStatus("The last entry can't be removed", true)
		}
		m.refresh()
		return m, nil

	case "e", "enter":
		entry, ok := m.selected()
		if !ok {
			return m, nil
		}
		if structured {
			cmd := m.beginEdit(editEntryHours, entry.ID, entry.Hours, "Hours")
			return m, cmd
		}
		cmd := m.beginEdit(editEntryText, entry.ID, entry.Text, "e.g. 2h 30m, 2:30, 90m")
		return m, cmd

	case "D":
		entry, ok := m.selected()
		if !ok {
			return m, nil
		}
		cmd := m.beginEdit(editEntryDate, entry.ID, "", "today, yesterday, 3 days ago, dd/mm/yyyy")
		return m, cmd

	case "t":
		target := m.session.Target()
		if structured {
			cmd := m.beginEdit(editTargetHours, 0, target.Hours, "Target hours")
			return m, cmd
		}
		cmd := m.beginEdit(editTargetText, 0, target.Text, "Target, e.g. 8h")
		return m, cmd

	case "W":
		cmd := m.beginEdit(editWeeklyTarget, 0, m.session.WeeklyTargetHours(), "Weekly target hours")
		return m, cmd
	}

	return m, nil
}

// toggleTimer starts, pauses or resumes depending on the timer state
func (m *SessionModel) toggleTimer() {
	switch m.session.TimerState() {
	case tracker.Stopped:
		started, err := m.session.Start()
		switch {
		case err != nil:
			m.setStatus(err.Error(), true)
		case !started:
			m.setStatus("Nothing to count down: set a target above the total", true)
		default:
			m.setStatus("▶ Running", false)
		}

	case tracker.Running:
		entry, err := m.session.Pause()
		switch {
		case err != nil:
			m.setStatus(err.Error(), true)
		case entry != nil:
			minutes := m.session.Strategy().Minutes(entry.Input())
			m.setStatus(fmt.Sprintf("✅ Logged %s", parser.FormatMinutes(minutes)), false)
		default:
			m.setStatus("⏸ Paused", false)
		}

	case tracker.Paused:
		if m.session.Resume() {
			m.setStatus("▶ Running", false)
		}
	}
}

// updateEditing routes keys to the text input until enter or esc
func (m SessionModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.endEdit()
		return m, nil
	case "enter":
		return m.commitEdit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitEdit applies the input value to the field being edited
func (m SessionModel) commitEdit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	id := m.editID
	var err error

	switch m.editing {
	case editEntryText:
		err = m.session.EditEntryText(id, value)

	case editEntryHours:
		hours := value
		var current string
		if entry, ok := m.entryByID(id); ok {
			current = entry.Minutes
		}
		m.endEdit()
		m.pendingHours = hours
		cmd := m.beginEdit(editEntryMinutes, id, current, "Minutes")
		return m, cmd

	case editEntryMinutes:
		err = m.session.EditEntryFields(id, m.pendingHours, value)

	case editEntryDate:
		date, parseErr := parser.ParseEntryDate(value, m.session.Now())
		if parseErr != nil {
			m.setStatus(parseErr.Error(), true)
			return m, nil
		}
		err = m.session.EditEntryDate(id, date)

	case editTargetText:
		m.session.SetTargetText(value)

	case editTargetHours:
		m.endEdit()
		m.pendingHours = value
		cmd := m.beginEdit(editTargetMinutes, 0, m.session.Target().Minutes, "Target minutes")
		return m, cmd

	case editTargetMinutes:
		m.session.SetTargetFields(m.pendingHours, value)

	case editWeeklyTarget:
		m.session.SetWeeklyTargetHours(value)

	case editQuestion:
		m.endEdit()
		if value == "" {
			return m, nil
		}
		m.asking = true
		m.question = value
		return m, askGuide(m.answerer, value, m.askTimeout)
	}

	m.endEdit()
	if err != nil {
		m.setStatus(err.Error(), true)
	}
	m.refresh()
	return m, nil
}

// beginEdit focuses the input on a field
func (m *SessionModel) beginEdit(field editField, id uint, value, placeholder string) tea.Cmd {
	m.editing = field
	m.editID = id
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.setStatus("", false)
	return m.input.Focus()
}

func (m *SessionModel) endEdit() {
	m.editing = editNone
	m.editID = 0
	m.input.Blur()
	m.input.SetValue("")
}

func (m *SessionModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// refresh reloads the snapshot from the session
func (m *SessionModel) refresh() {
	entries, err := m.session.Entries()
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.entries = entries

	if m.totals, err = m.session.Totals(); err != nil {
		m.setStatus(err.Error(), true)
	}
	if m.displayTotal, err = m.session.DisplayedTotalMinutes(); err != nil {
		m.setStatus(err.Error(), true)
	}
	if m.week, err = m.session.Week(); err != nil {
		m.setStatus(err.Error(), true)
	}

	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m SessionModel) selected() (models.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return models.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m SessionModel) entryByID(id uint) (models.Entry, bool) {
	for _, entry := range m.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return models.Entry{}, false
}

// View renders the tracking screen
func (m SessionModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	if m.width < 90 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderTimerPanel(m.width),
			m.renderListPanel(m.width),
			m.renderFooter(m.width),
			helpBar,
		)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(contentHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(m.renderTimerPanel(leftWidth))

	right := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderListPanel(rightWidth),
		m.renderFooter(rightWidth),
	)

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

// renderTimerPanel renders the countdown and totals
func (m SessionModel) renderTimerPanel(width int) string {
	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)

	state := m.session.TimerState()
	headerColor := ColorSecondaryText
	headerText := "STOPPED"
	switch state {
	case tracker.Running:
		animChars := []string{"⏱", "⏲", "⏱", "⏲"}
		headerColor = ColorSuccess
		headerText = fmt.Sprintf("%s  RUNNING  %s", animChars[m.animation], animChars[m.animation])
	case tracker.Paused:
		headerColor = ColorWarning
		headerText = "PAUSED"
	}

	var components []string
	components = append(components, center.
		Foreground(lipgloss.Color(headerColor)).
		Bold(true).
		Render(headerText))

	clockColor := ColorAccentBright
	if state == tracker.Stopped {
		clockColor = ColorDisabledText
	}
	var clockLines []string
	for _, line := range strings.Split(renderBigClock(m.session.RemainingSeconds(), clockColor), "\n") {
		clockLines = append(clockLines, center.Render(line))
	}
	components = append(components, strings.Join(clockLines, "\n"))

	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)

	totalLine := label.Render("Total: ") + value.Render(parser.FormatMinutes(m.displayTotal))
	lines := []string{center.Render(totalLine)}
	if accrued := m.session.AccruedMinutes(); accrued > 0 {
		lines = append(lines, center.Render(label.Render(
			fmt.Sprintf("Accrued from timer: %s", parser.FormatMinutes(accrued)))))
	}

	targetText := "--h --m"
	if m.totals.HasTarget() {
		targetText = parser.FormatMinutes(m.totals.TargetMinutes)
	}
	lines = append(lines, center.Render(label.Render("Target: ")+value.Render(targetText)))

	remainingColor := ColorAccentBright
	if m.totals.Exceeded() {
		remainingColor = ColorError
	}
	lines = append(lines, center.
		Foreground(lipgloss.Color(remainingColor)).
		Bold(true).
		Render(m.totals.RemainingText()))

	components = append(components, strings.Join(lines, "\n"))
	return strings.Join(components, "\n\n")
}

// renderListPanel renders the entries or the weekly view
func (m SessionModel) renderListPanel(width int) string {
	if m.showWeek {
		return m.renderWeek(width)
	}

	var b strings.Builder
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)
	b.WriteString(title.Render(fmt.Sprintf("Entries (%s)", m.session.Strategy().Name())))
	b.WriteString("\n\n")

	now := m.session.Now()
	for i, entry := range m.entries {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		if i == m.cursor {
			cursor = "▶ "
			style = style.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
		}

		minutes := m.session.Strategy().Minutes(entry.Input())
		row := fmt.Sprintf("%s%-18s %-8s %s",
			cursor,
			describeEntry(entry, m.session.Strategy().Name()),
			parser.FormatMinutes(minutes),
			parser.FormatEntryDate(entry.CreatedAt, now))
		b.WriteString(style.Render(truncate(row, width)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderWeek renders the Monday..Sunday breakdown
func (m SessionModel) renderWeek(width int) string {
	var b strings.Builder
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)
	b.WriteString(title.Render(fmt.Sprintf("Week of %s", m.week.Start.Format("Jan 2"))))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	for _, day := range m.week.Days {
		bar := strings.Repeat("█", min(day.Minutes/30, max(width-24, 0)))
		b.WriteString(fmt.Sprintf("%s %6.2fh %s\n", label.Render(day.Label), day.Hours, bar))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Weekly total: %s of %sh\n",
		parser.FormatMinutes(m.week.TotalMinutes), m.session.WeeklyTargetHours()))

	remainingColor := ColorAccentBright
	if m.week.Over() {
		remainingColor = ColorError
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(remainingColor)).
		Bold(true).
		Render(m.week.RemainingText()))
	b.WriteString("\n")
	return b.String()
}

// renderFooter renders the input line, the guide answer and the status
func (m SessionModel) renderFooter(width int) string {
	var parts []string

	if m.editing != editNone {
		parts = append(parts, m.input.View())
	}

	if m.asking {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Render("Thinking..."))
	} else if m.answer != "" {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccentMain)).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Width(max(width-4, 10)).
			Padding(0, 1)
		parts = append(parts, box.Render(m.question+"\n\n"+m.answer))
	}

	if m.status != "" {
		color := ColorSuccess
		if m.statusErr {
			color = ColorError
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.status))
	}

	return strings.Join(parts, "\n")
}

// renderHelpBar renders the help bar at the bottom
func (m SessionModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "s start/pause · r reset · a add · e edit · d delete · D date · t target · w week · W weekly target · ? ask · q quit"
	if m.editing != editNone {
		helpText = "enter save · esc cancel"
	}
	return helpStyle.Render(helpText)
}

// describeEntry shows an entry the way it was typed
func describeEntry(entry models.Entry, mode string) string {
	if mode == parser.ModeFields {
		if entry.Hours == "" && entry.Minutes == "" {
			return "-"
		}
		return fmt.Sprintf("%sh %sm", orZero(entry.Hours), orZero(entry.Minutes))
	}
	if entry.Text == "" {
		return "-"
	}
	return entry.Text
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
