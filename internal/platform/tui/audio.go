package tui

import (
	"io"
	"sync"

	"github.com/vovakirdan/mole-arcade/internal/mole"
)

// bell is the ASCII BEL control character.
const bell = "\a"

// BellCue is the terminal's stand-in for audio: hits ring the bell, and the
// background loop is tracked but silent.
type BellCue struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
	looping bool
	hits    int
}

// NewBellCue creates a cue writing BEL to w. With enabled false hits are
// counted but make no sound.
func NewBellCue(w io.Writer, enabled bool) *BellCue {
	return &BellCue{w: w, enabled: enabled}
}

// Play implements mole.AudioCue.
func (b *BellCue) Play(cmd mole.Command) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch cmd {
	case mole.CommandPlayHit:
		b.hits++
		if b.enabled && b.w != nil {
			if _, err := io.WriteString(b.w, bell); err != nil {
				return err
			}
		}
	case mole.CommandStartLoop:
		b.looping = true
	case mole.CommandStopLoop:
		b.looping = false
	}
	return nil
}

// Looping reports whether the background loop is currently on.
func (b *BellCue) Looping() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.looping
}

// Hits returns the number of hit cues played.
func (b *BellCue) Hits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits
}
