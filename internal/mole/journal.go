package mole

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadJournal is returned when an encoded event list cannot be decoded.
var ErrBadJournal = errors.New("mole: bad journal")

// Event is one input processed by a controller, in arrival order.
type Event byte

const (
	EventTick   Event = 'T'
	EventSelect Event = 'S'
)

// Journal is everything needed to reproduce a run: the session config, the
// seed of its random source and every event it processed.
type Journal struct {
	Config Config
	Seed   int64
	Events []Event
}

// Selects counts the select events in the journal, accepted or not.
func (j Journal) Selects() int {
	n := 0
	for _, e := range j.Events {
		if e == EventSelect {
			n++
		}
	}
	return n
}

// EncodeEvents renders events as a compact string such as "TTTSTT".
func EncodeEvents(events []Event) string {
	var sb strings.Builder
	sb.Grow(len(events))
	for _, e := range events {
		sb.WriteByte(byte(e))
	}
	return sb.String()
}

// DecodeEvents parses a string produced by EncodeEvents.
func DecodeEvents(s string) ([]Event, error) {
	events := make([]Event, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch e := Event(s[i]); e {
		case EventTick, EventSelect:
			events = append(events, e)
		default:
			return nil, fmt.Errorf("%w: unknown event %q at offset %d", ErrBadJournal, s[i], i)
		}
	}
	return events, nil
}

// Replay runs the journal against a fresh session seeded like the original
// and returns the final snapshot.
func Replay(j Journal) (Snapshot, error) {
	s, err := NewSession(j.Config, NewSeededSource(j.Seed))
	if err != nil {
		return Snapshot{}, err
	}
	for _, e := range j.Events {
		switch e {
		case EventTick:
			s.Tick()
		case EventSelect:
			s.Select()
		default:
			return Snapshot{}, fmt.Errorf("%w: unknown event %q", ErrBadJournal, byte(e))
		}
	}
	return s.Snapshot(), nil
}
