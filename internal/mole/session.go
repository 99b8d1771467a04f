package mole

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for session configs that cannot run.
var ErrInvalidConfig = errors.New("mole: invalid config")

// Default timings, in ticks (seconds).
const (
	DefaultCountdownSeconds = 3
	DefaultSessionSeconds   = 30
	DefaultTargetSize       = 140
)

// Phase is the current stage of a session.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhaseActive
	PhaseEnded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "Countdown"
	case PhaseActive:
		return "Active"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// Command is an audio side effect requested by a transition.
type Command int

const (
	CommandPlayHit Command = iota + 1
	CommandStartLoop
	CommandStopLoop
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandPlayHit:
		return "PlayHit"
	case CommandStartLoop:
		return "StartLoop"
	case CommandStopLoop:
		return "StopLoop"
	default:
		return "Unknown"
	}
}

// Config is fixed for the lifetime of a session.
type Config struct {
	CountdownSeconds int
	SessionSeconds   int
	Bounds           Bounds
}

// DefaultConfig returns the standard 3s countdown, 30s round and a 140x140
// target. The surface size must be filled in by the caller.
func DefaultConfig() Config {
	return Config{
		CountdownSeconds: DefaultCountdownSeconds,
		SessionSeconds:   DefaultSessionSeconds,
		Bounds: Bounds{
			TargetW: DefaultTargetSize,
			TargetH: DefaultTargetSize,
		},
	}
}

// Validate checks timings and bounds.
func (c Config) Validate() error {
	if c.CountdownSeconds < 0 {
		return fmt.Errorf("%w: countdown %d is negative", ErrInvalidConfig, c.CountdownSeconds)
	}
	if c.SessionSeconds <= 0 {
		return fmt.Errorf("%w: session length %d must be positive", ErrInvalidConfig, c.SessionSeconds)
	}
	return c.Bounds.Validate()
}

// Snapshot is a read-only copy of session state. CountdownRemaining is only
// meaningful in PhaseCountdown; TimeRemaining and Target only in PhaseActive.
type Snapshot struct {
	Phase              Phase
	CountdownRemaining int
	TimeRemaining      int
	Score              int
	Target             Position
	Bounds             Bounds
}

// Result is the outcome of one event: the new snapshot plus the side effects
// the caller should execute. Changed is false when the event was ignored.
type Result struct {
	Snapshot Snapshot
	Commands []Command
	Changed  bool
}

// Session is the state machine for one play-through. It is not safe for
// concurrent use; Controller serializes access to it.
type Session struct {
	cfg       Config
	src       RandomSource
	phase     Phase
	countdown int
	remaining int
	score     int
	target    Position
}

// NewSession creates a session in Countdown(cfg.CountdownSeconds) with a
// zero score. Invalid configs and bounds are rejected before any tick.
func NewSession(cfg Config, src RandomSource) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	return &Session{
		cfg:       cfg,
		src:       src,
		phase:     PhaseCountdown,
		countdown: cfg.CountdownSeconds,
	}, nil
}

// Tick advances the countdown or the round by one second.
//
// The tick that brings the countdown to zero also starts play, and the tick
// that brings the round timer to zero also ends it, so neither zero is ever
// held for a full second.
func (s *Session) Tick() Result {
	switch s.phase {
	case PhaseCountdown:
		if s.countdown > 0 {
			s.countdown--
		}
		if s.countdown > 0 {
			return s.result(true)
		}
		s.activate()
		return s.result(true, CommandStartLoop)

	case PhaseActive:
		if s.remaining > 0 {
			s.remaining--
		}
		if s.remaining == 0 {
			s.phase = PhaseEnded
			return s.result(true, CommandStopLoop)
		}
		s.relocate()
		return s.result(true)
	}

	return s.result(false)
}

// Select registers a hit attempt. It scores only while the round is running;
// during the countdown and after the end it is ignored.
func (s *Session) Select() Result {
	if s.phase != PhaseActive {
		return s.result(false)
	}
	if s.remaining == 0 {
		// Time is up; the select loses the race against expiry.
		s.phase = PhaseEnded
		return s.result(true, CommandStopLoop)
	}

	s.score++
	s.relocate()
	return s.result(true, CommandPlayHit)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:  s.phase,
		Score:  s.score,
		Bounds: s.cfg.Bounds,
	}
	switch s.phase {
	case PhaseCountdown:
		snap.CountdownRemaining = s.countdown
	case PhaseActive:
		snap.TimeRemaining = s.remaining
		snap.Target = s.target
	}
	return snap
}

// Config returns the config the session was created with.
func (s *Session) Config() Config {
	return s.cfg
}

func (s *Session) activate() {
	s.phase = PhaseActive
	s.countdown = 0
	s.remaining = s.cfg.SessionSeconds
	s.relocate()
}

func (s *Session) relocate() {
	s.target = place(s.cfg.Bounds, s.src.Draw)
}

func (s *Session) result(changed bool, cmds ...Command) Result {
	return Result{
		Snapshot: s.Snapshot(),
		Commands: cmds,
		Changed:  changed,
	}
}
