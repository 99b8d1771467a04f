package mole

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDispatcherRunsInOrder(t *testing.T) {
	audio := newRecordingAudio()
	d := NewDispatcher(audio, log.New(io.Discard), 8)

	d.Enqueue(CommandStartLoop, CommandPlayHit, CommandStopLoop)
	d.Close()

	select {
	case <-d.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not drain")
	}

	want := []Command{CommandStartLoop, CommandPlayHit, CommandStopLoop}
	if len(audio.cmds) != len(want) {
		t.Fatalf("played %v, expected %v", audio.cmds, want)
	}
	for i := range want {
		if audio.cmds[i] != want[i] {
			t.Errorf("command %d = %v, expected %v", i, audio.cmds[i], want[i])
		}
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	blocking := AudioFunc(func(Command) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return nil
	})
	d := NewDispatcher(blocking, log.New(io.Discard), 1)

	d.Enqueue(CommandPlayHit)
	<-started

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Enqueue(CommandPlayHit)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a stalled audio cue")
	}

	close(release)
	d.Close()
}

func TestDispatcherRecoversFromPanics(t *testing.T) {
	calls := make(chan Command, 4)
	audio := AudioFunc(func(cmd Command) error {
		calls <- cmd
		if cmd == CommandPlayHit {
			panic("speaker on fire")
		}
		return errors.New("muted")
	})
	d := NewDispatcher(audio, log.New(io.Discard), 4)

	d.Enqueue(CommandPlayHit, CommandStopLoop)
	d.Close()
	<-d.Done()

	if len(calls) != 2 {
		t.Errorf("expected both commands to be attempted, got %d", len(calls))
	}
}

func TestDispatcherIgnoresAfterClose(t *testing.T) {
	audio := newRecordingAudio()
	d := NewDispatcher(audio, log.New(io.Discard), 4)
	d.Close()
	d.Close()
	d.Enqueue(CommandPlayHit)
	<-d.Done()

	if len(audio.cmds) != 0 {
		t.Errorf("commands after Close were played: %v", audio.cmds)
	}
}
