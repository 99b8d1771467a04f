package mole

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Renderer receives a snapshot after every state change. Implementations
// must not block; the controller calls Render while holding its lock so that
// snapshots arrive in event order.
type Renderer interface {
	Render(snap Snapshot)
}

// RenderFunc adapts a plain function to Renderer.
type RenderFunc func(snap Snapshot)

// Render calls f(snap).
func (f RenderFunc) Render(snap Snapshot) {
	f(snap)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the tick source. Defaults to TickerClock.
func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithRenderer sets the snapshot consumer.
func WithRenderer(r Renderer) Option {
	return func(ctl *Controller) { ctl.renderer = r }
}

// WithAudio sets the audio sink used by the dispatcher.
func WithAudio(a AudioCue) Option {
	return func(ctl *Controller) { ctl.audio = a }
}

// WithLogger sets the logger. Defaults to a logger writing to io.Discard.
func WithLogger(l *log.Logger) Option {
	return func(ctl *Controller) { ctl.logger = l }
}

// WithRandomSource replaces the seeded source. Journals of such a controller
// cannot be replayed.
func WithRandomSource(src RandomSource) Option {
	return func(ctl *Controller) { ctl.src = src }
}

// Controller owns one Session and funnels every tick and select through a
// single lock, so each event runs to completion before the next one starts.
// It also owns the clock subscription and cancels it on Close.
type Controller struct {
	mu       sync.Mutex
	session  *Session
	journal  Journal
	src      RandomSource
	clock    Clock
	cancel   func()
	renderer Renderer
	audio    AudioCue
	dispatch *Dispatcher
	logger   *log.Logger
	started  bool
	closed   bool
}

// NewController creates a controller for a new session. The session's random
// source is seeded with seed unless WithRandomSource is given.
// Config and bounds errors are returned here, before any ticking.
func NewController(cfg Config, seed int64, opts ...Option) (*Controller, error) {
	c := &Controller{
		clock:   TickerClock{},
		journal: Journal{Config: cfg, Seed: seed},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.src == nil {
		c.src = NewSeededSource(seed)
	}

	session, err := NewSession(cfg, c.src)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	c.session = session
	c.dispatch = NewDispatcher(c.audio, c.logger, defaultQueueSize)
	return c, nil
}

// Start publishes the initial snapshot and subscribes to the clock.
// Calling Start twice, or after Close, does nothing.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true

	c.logger.Debug("session started",
		"countdown", c.journal.Config.CountdownSeconds,
		"length", c.journal.Config.SessionSeconds,
		"seed", c.journal.Seed,
	)
	c.render(c.session.Snapshot())
	c.mu.Unlock()

	// Subscribe without the lock: a clock may fire during Subscribe.
	cancel := c.clock.Subscribe(TickInterval, func() { c.Tick() })

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.session.Snapshot().Phase == PhaseEnded {
		cancel()
		return
	}
	c.cancel = cancel
}

// Tick processes one clock tick and returns the resulting snapshot.
func (c *Controller) Tick() Snapshot {
	return c.process(EventTick)
}

// Select processes one player select and returns the resulting snapshot.
func (c *Controller) Select() Snapshot {
	return c.process(EventSelect)
}

// Snapshot returns the current state without changing it.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Snapshot()
}

// Journal returns a copy of the events processed so far.
func (c *Controller) Journal() Journal {
	c.mu.Lock()
	defer c.mu.Unlock()
	j := c.journal
	j.Events = append([]Event(nil), c.journal.Events...)
	return j
}

// Close cancels the clock subscription and stops the dispatcher. Events
// arriving afterwards are ignored. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopClock()
	c.dispatch.Close()
	c.logger.Debug("session closed", "score", c.session.Snapshot().Score)
}

func (c *Controller) process(ev Event) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.session.Snapshot()
	}

	var res Result
	switch ev {
	case EventTick:
		res = c.session.Tick()
	case EventSelect:
		res = c.session.Select()
	}
	c.journal.Events = append(c.journal.Events, ev)

	if !res.Changed {
		return res.Snapshot
	}

	c.dispatch.Enqueue(res.Commands...)
	c.render(res.Snapshot)

	if res.Snapshot.Phase == PhaseEnded {
		c.stopClock()
		c.logger.Info("session ended", "score", res.Snapshot.Score)
	}
	return res.Snapshot
}

// stopClock must be called with c.mu held.
func (c *Controller) stopClock() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// render must be called with c.mu held.
func (c *Controller) render(snap Snapshot) {
	if c.renderer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("renderer panicked", "panic", r)
		}
	}()
	c.renderer.Render(snap)
}
