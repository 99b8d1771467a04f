package mole

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// AudioCue plays sound for session commands. Errors are logged by the
// Dispatcher and never reach the session.
type AudioCue interface {
	Play(cmd Command) error
}

// AudioFunc adapts a plain function to AudioCue.
type AudioFunc func(cmd Command) error

// Play calls f(cmd).
func (f AudioFunc) Play(cmd Command) error {
	return f(cmd)
}

const defaultQueueSize = 16

// Dispatcher executes commands on a single background goroutine so that a
// slow or failing AudioCue cannot stall the controller. Commands run in the
// order they were enqueued.
type Dispatcher struct {
	audio  AudioCue
	logger *log.Logger
	queue  chan Command
	done   chan struct{}
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts a dispatcher for audio. A nil audio drops every command.
func NewDispatcher(audio AudioCue, logger *log.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	d := &Dispatcher{
		audio:  audio,
		logger: logger,
		queue:  make(chan Command, queueSize),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue hands cmds to the worker without blocking. When the queue is full
// the command is dropped and a warning is logged.
func (d *Dispatcher) Enqueue(cmds ...Command) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	for _, cmd := range cmds {
		select {
		case d.queue <- cmd:
		default:
			d.logger.Warn("audio queue full, dropping command", "command", cmd)
		}
	}
}

// Close stops accepting commands. Already queued commands still run; Close
// does not wait for them.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
}

// Done is closed once the worker has drained the queue after Close.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for cmd := range d.queue {
		if err := d.play(cmd); err != nil {
			d.logger.Warn("audio cue failed", "command", cmd, "error", err)
		}
	}
}

func (d *Dispatcher) play(cmd Command) (err error) {
	if d.audio == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return d.audio.Play(cmd)
}
