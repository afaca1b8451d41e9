// Package tui renders a pong game in the terminal and turns key presses into
// paddle input and lifecycle commands.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/lox/pong/internal/loop"
	"github.com/lox/pong/internal/pong"
)

const (
	defaultKeyRelease = 150 * time.Millisecond
	pulseDuration     = 0.6 // seconds
	animFrame         = time.Second / 30

	// Grid used before the first WindowSizeMsg and as an upper bound after.
	maxCols = 80
	maxRows = 24
	minCols = 20
	minRows = 6

	// header + blank + banner + help, plus the field border
	chromeRows = 6
)

// Controller receives the commands the UI issues. loop.Runner implements it.
type Controller interface {
	SetInput(v int)
	Pause()
	Resume()
	Reset()
	TogglePause()
}

// FrameMsg delivers a frame from the driving loop to the program.
type FrameMsg loop.Frame

// releaseMsg fires when a held key has not repeated for the release delay.
// seq identifies the press it belongs to; stale releases are ignored.
type releaseMsg struct{ seq int }

type animTickMsg time.Time

// Options configures a Model
type Options struct {
	PaddleSpeed int
	KeyRelease  time.Duration // Terminals never report key-up; see releaseMsg
}

// Model is the bubbletea model for a single game
type Model struct {
	ctrl   Controller
	logger *log.Logger
	keys   keyMap
	help   help.Model

	snap        pong.Snapshot
	paddleSpeed int
	keyRelease  time.Duration

	held    int // velocity of the key being held, 0 when released
	pressed int // sequence number of the latest press

	pulses    [2]*gween.Tween
	pulse     [2]float32
	animating bool

	width    int
	height   int
	quitting bool
}

// NewModel creates a model showing initial until the first frame arrives.
func NewModel(ctrl Controller, initial pong.Snapshot, opts Options, logger *log.Logger) *Model {
	if opts.KeyRelease <= 0 {
		opts.KeyRelease = defaultKeyRelease
	}
	return &Model{
		ctrl:        ctrl,
		logger:      logger.WithPrefix("tui"),
		keys:        defaultKeyMap(),
		help:        help.New(),
		snap:        initial,
		paddleSpeed: opts.PaddleSpeed,
		keyRelease:  opts.KeyRelease,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Snapshot returns the frame currently on screen
func (m *Model) Snapshot() pong.Snapshot { return m.snap }

// Pulse returns the score highlight for side, from 1 just after a point
// down to 0.
func (m *Model) Pulse(side pong.Side) float32 { return m.pulse[side] }

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case FrameMsg:
		return m, m.applyFrame(loop.Frame(msg))

	case releaseMsg:
		if msg.seq == m.pressed && m.held != 0 {
			m.held = 0
			m.ctrl.SetInput(0)
		}

	case animTickMsg:
		return m, m.animate(float32(animFrame.Seconds()))

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.ctrl.SetInput(0)
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		return m.press(-m.paddleSpeed)

	case key.Matches(msg, m.keys.Down):
		return m.press(m.paddleSpeed)

	case key.Matches(msg, m.keys.Pause):
		return command(m.ctrl.Pause)

	case key.Matches(msg, m.keys.Toggle):
		return command(m.ctrl.TogglePause)

	case key.Matches(msg, m.keys.Resume):
		return command(m.ctrl.Resume)

	case key.Matches(msg, m.keys.Reset):
		m.release()
		return command(m.ctrl.Reset)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// command runs a lifecycle command off the event loop. The controller
// answers with a frame, and delivering it needs the event loop free.
func command(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

// press sets the input velocity and arms a release timer. Auto-repeat keeps
// re-arming it, so the paddle keeps moving while the key is held. The latest
// direction wins when both keys are down.
func (m *Model) press(v int) tea.Cmd {
	m.pressed++
	if m.held != v {
		m.held = v
		m.ctrl.SetInput(v)
	}
	seq := m.pressed
	return tea.Tick(m.keyRelease, func(time.Time) tea.Msg {
		return releaseMsg{seq: seq}
	})
}

// release forgets the held key. Reset zeroes the engine's input itself.
func (m *Model) release() {
	m.held = 0
	m.pressed++
}

func (m *Model) applyFrame(f loop.Frame) tea.Cmd {
	m.snap = f.Snapshot
	if f.Notice == loop.NoticeReset {
		m.pulses = [2]*gween.Tween{}
		m.pulse = [2]float32{}
	}

	for _, ev := range f.Events {
		switch ev.Type {
		case pong.EventPointScored:
			m.pulses[ev.Side] = gween.New(1, 0, pulseDuration, ease.OutQuad)
			m.pulse[ev.Side] = 1
		case pong.EventGameOver:
			m.logger.Info("Game over", "winner", ev.Winner)
		}
	}

	if m.animating || (m.pulses[pong.Left] == nil && m.pulses[pong.Right] == nil) {
		return nil
	}
	m.animating = true
	return animTick()
}

// animate advances the score pulses by dt seconds.
func (m *Model) animate(dt float32) tea.Cmd {
	active := false
	for side, tw := range m.pulses {
		if tw == nil {
			continue
		}
		v, done := tw.Update(dt)
		m.pulse[side] = v
		if done {
			m.pulse[side] = 0
			m.pulses[side] = nil
			continue
		}
		active = true
	}
	if !active {
		m.animating = false
		return nil
	}
	return animTick()
}

func animTick() tea.Cmd {
	return tea.Tick(animFrame, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// grid picks the field size in cells for the current terminal.
func (m *Model) grid() (cols, rows int) {
	cols, rows = maxCols, maxRows
	if m.width > 0 {
		cols = min(maxCols, max(minCols, m.width-2))
	}
	if m.height > 0 {
		rows = min(maxRows, max(minRows, m.height-chromeRows))
	}
	return cols, rows
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	cols, rows := m.grid()
	field := FieldStyle.Render(RenderField(m.snap, cols, rows))
	width := lipgloss.Width(field)

	var b strings.Builder
	b.WriteString(m.renderScoreboard(width))
	b.WriteString("\n")
	b.WriteString(field)
	b.WriteString("\n")
	b.WriteString(m.renderBanner(width))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderScoreboard(width int) string {
	left := m.renderScore(pong.Left, LeftScoreStyle)
	right := m.renderScore(pong.Right, RightScoreStyle)

	status := ""
	switch m.snap.Status {
	case pong.Paused:
		status = WarningStyle.Render("PAUSED")
	case pong.Ended:
		status = InfoStyle.Render("GAME OVER")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - lipgloss.Width(status)
	if gap < 2 {
		gap = 2
	}
	pad := strings.Repeat(" ", gap/2)
	return left + pad + status + strings.Repeat(" ", gap-gap/2) + right
}

func (m *Model) renderScore(side pong.Side, style lipgloss.Style) string {
	name := m.snap.LeftName
	if side == pong.Right {
		name = m.snap.RightName
	}
	score := fmt.Sprintf(" %d ", m.snap.Scores[side])
	if m.pulse[side] > 0.5 {
		score = PulseStyle.Inherit(style).Render(score)
	} else {
		score = style.Render(score)
	}
	return style.Render(name) + score
}

func (m *Model) renderBanner(width int) string {
	if m.snap.Status != pong.Ended {
		return ""
	}
	banner := BannerStyle.Render(fmt.Sprintf("%s Wins!", m.snap.Winner)) + "\n" +
		InfoStyle.Render("press n to play again")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, banner)
}
