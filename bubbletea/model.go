// Package bubbletea provides a terminal pager for rendered diffs and
// highlighted source using the Bubble Tea framework.
package bubbletea

import (
	"fmt"
	"strings"

	"github.com/AmKilopa/KlpGIT"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const statusBarHeight = 1

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km KeyMap) ModelOption {
	return func(m *Model) { m.keymap = km }
}

// WithClipboard enables the copy binding, which copies text.
func WithClipboard(cb klpgit.Clipboard, text string) ModelOption {
	return func(m *Model) {
		m.clipboard = cb
		m.copyText = text
	}
}

// WithMarks sets the content line offsets that n and N jump between.
func WithMarks(marks []int) ModelOption {
	return func(m *Model) { m.marks = marks }
}

// WithBarStyle sets the status bar style.
func WithBarStyle(s lipgloss.Style) ModelOption {
	return func(m *Model) { m.barStyle = s }
}

// Model is the Bubble Tea model of the pager.
type Model struct {
	title     string
	content   string
	marks     []int
	keymap    KeyMap
	clipboard klpgit.Clipboard
	copyText  string
	barStyle  lipgloss.Style

	viewport   viewport.Model
	ready      bool
	width      int
	pendingKey string
	message    string
}

// NewModel creates a pager showing content under title.
func NewModel(title, content string, opts ...ModelOption) Model {
	m := Model{
		title:    title,
		content:  content,
		keymap:   DefaultKeyMap(),
		barStyle: lipgloss.NewStyle().Reverse(true),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// gg goes to the top
		if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
			m.viewport.GotoTop()
			m.pendingKey = ""
			return m, nil
		}
		if key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = "g"
			return m, nil
		}
		m.pendingKey = ""
		m.message = ""

		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.GotoBottom):
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.viewport.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.viewport.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keymap.Up):
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.viewport.ScrollDown(1)
			return m, nil
		case key.Matches(msg, m.keymap.NextHunk):
			m.gotoMark(1)
			return m, nil
		case key.Matches(msg, m.keymap.PrevHunk):
			m.gotoMark(-1)
			return m, nil
		case key.Matches(msg, m.keymap.Copy):
			m.copy()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-statusBarHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

// Offset returns the first visible content line.
func (m Model) Offset() int {
	return m.viewport.YOffset
}

// Message returns the transient status message, such as a copy result.
func (m Model) Message() string {
	return m.message
}

// gotoMark scrolls to the next (dir > 0) or previous mark relative to the
// top of the view.
func (m *Model) gotoMark(dir int) {
	cur := m.viewport.YOffset
	if dir > 0 {
		for _, pos := range m.marks {
			if pos > cur {
				m.viewport.SetYOffset(pos)
				return
			}
		}
		return
	}
	for i := len(m.marks) - 1; i >= 0; i-- {
		if m.marks[i] < cur {
			m.viewport.SetYOffset(m.marks[i])
			return
		}
	}
}

func (m *Model) copy() {
	if m.clipboard == nil {
		m.message = "clipboard unavailable"
		return
	}
	if err := m.clipboard.Copy(m.copyText); err != nil {
		m.message = "copy failed: " + err.Error()
		return
	}
	m.message = "copied " + m.copyText
}

func (m Model) statusBarView() string {
	left := " " + m.title
	if m.message != "" {
		left += "  " + m.message
	}
	right := m.scrollPosition() + " "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return m.barStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// scrollPosition returns a string indicating the scroll position.
func (m Model) scrollPosition() string {
	if m.viewport.AtTop() {
		return "Top"
	}
	if m.viewport.AtBottom() {
		return "Bot"
	}
	return fmt.Sprintf("%2d%%", int(m.viewport.ScrollPercent()*100))
}
