package tui

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mole-arcade/internal/config"
	"github.com/vovakirdan/mole-arcade/internal/core"
	"github.com/vovakirdan/mole-arcade/internal/mole"
	"github.com/vovakirdan/mole-arcade/internal/storage"
)

// helpRows is the space reserved under the game screen for the help line.
const helpRows = 1

// Options are the collaborators a Model runs with. Store, Logger, Audio and
// Clock are optional.
type Options struct {
	Config  config.MoleConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store
	Logger  *log.Logger
	Audio   mole.AudioCue
	Clock   mole.Clock
}

// Model is the Bubble Tea model for a mole session. It holds at most one
// live controller; starting a new game closes the previous one first.
type Model struct {
	opts     Options
	ctrl     *mole.Controller
	gen      int
	feed     chan SnapshotMsg
	snap     mole.Snapshot
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	saved    bool
	lastRun  string
	err      error
	quitting bool
}

// NewModel creates a model and its first session. A terminal too small for
// the target leaves the model in an error state until it is resized.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = mole.TickerClock{}
	}

	m := Model{
		opts:   opts,
		feed:   make(chan SnapshotMsg, 1),
		screen: core.NewScreen(opts.Runtime.ScreenW, screenHeight(opts.Runtime.ScreenH)),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.newSession(opts.Runtime.Seed)
	return m
}

// Init starts the first session and listens for snapshots.
func (m Model) Init() tea.Cmd {
	if m.ctrl != nil {
		m.ctrl.Start()
	}
	return waitForSnapshot(m.feed)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case SnapshotMsg:
		if msg.Gen == m.gen {
			m.applySnapshot(msg.Snap)
		}
		return m, waitForSnapshot(m.feed)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case core.ActionRestart:
		if m.ctrl == nil || m.snap.Phase == mole.PhaseEnded {
			m.newSession(0)
			if m.ctrl != nil {
				m.ctrl.Start()
			}
		}

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ctrl == nil || m.keys.MouseAction(msg) != core.ActionSelect || m.snap.Phase != mole.PhaseActive {
		return m, nil
	}
	// Misses are not forwarded; only a click on the target is a select.
	if !m.snap.TargetRect(mole.HUDRows).Contains(msg.X, msg.Y) {
		return m, nil
	}
	m.applySnapshot(m.ctrl.Select())
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, screenHeight(msg.Height))
	m.help.Width = msg.Width

	// A live session keeps its bounds; only a failed start is retried.
	if m.ctrl == nil {
		m.newSession(m.opts.Runtime.Seed)
		if m.ctrl != nil {
			m.ctrl.Start()
		}
	}
	return m, nil
}

// newSession replaces the current controller. A zero seed is derived from
// the clock.
func (m *Model) newSession(seed int64) {
	if m.ctrl != nil {
		m.ctrl.Close()
		m.ctrl = nil
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m.gen++
	m.saved = false
	m.err = nil

	surfaceW := m.opts.Runtime.ScreenW
	surfaceH := screenHeight(m.opts.Runtime.ScreenH) - mole.HUDRows
	cfg := m.opts.Config.SessionConfig(surfaceW, surfaceH)

	ctrl, err := mole.NewController(cfg, seed,
		mole.WithClock(m.opts.Clock),
		mole.WithAudio(m.opts.Audio),
		mole.WithRenderer(snapshotFeed{gen: m.gen, ch: m.feed}),
		mole.WithLogger(m.opts.Logger),
	)
	if err != nil {
		m.err = err
		m.opts.Logger.Warn("cannot start session", "error", err)
		return
	}
	m.ctrl = ctrl
	m.snap = ctrl.Snapshot()
}

// applySnapshot records snap and journals the run once it has ended.
func (m *Model) applySnapshot(snap mole.Snapshot) {
	m.snap = snap
	if snap.Phase != mole.PhaseEnded || m.saved || m.ctrl == nil {
		return
	}
	m.saved = true

	if m.opts.Store == nil {
		return
	}
	id, err := m.opts.Store.SaveRun(m.ctrl.Journal(), snap)
	if err != nil {
		m.opts.Logger.Warn("could not save run", "error", err)
		return
	}
	m.lastRun = id
	m.opts.Logger.Info("run saved", "id", id, "score", snap.Score)
}

// Close tears down the live session, cancelling its timer.
func (m Model) Close() {
	if m.ctrl != nil {
		m.ctrl.Close()
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.err != nil {
		msg := "Terminal too small for the mole. Resize or press q."
		if !errors.Is(m.err, mole.ErrInvalidBounds) {
			msg = m.err.Error()
		}
		return errorStyle.Render(msg) + "\n" + m.help.View(m.keys)
	}

	mole.Draw(m.screen, m.snap)
	if m.snap.Phase == mole.PhaseEnded && m.lastRun != "" {
		m.screen.DrawTextCentered(m.screen.Height()/2+3, "run "+shortID(m.lastRun), core.ColorGray)
	}
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Snapshot returns the last snapshot the model has seen.
func (m Model) Snapshot() mole.Snapshot {
	return m.snap
}

// Err returns the error that kept the current session from starting.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Close()
	} else {
		model.Close()
	}
	return err
}

func screenHeight(termH int) int {
	return core.Clamp(termH-helpRows, 0, termH)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
