// Package tui provides the Bubble Tea frontend for the mole game. It owns
// the terminal, maps mouse and keys to session events, and draws snapshots.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mole-arcade/internal/mole"
)

// SnapshotMsg carries a session snapshot into the Bubble Tea loop. Gen
// identifies the session so that snapshots from a replaced one are dropped.
type SnapshotMsg struct {
	Gen  int
	Snap mole.Snapshot
}

// snapshotFeed is a mole.Renderer that hands snapshots to the program.
// It keeps only the latest pending snapshot and never blocks the controller.
type snapshotFeed struct {
	gen int
	ch  chan SnapshotMsg
}

// Render implements mole.Renderer.
func (f snapshotFeed) Render(snap mole.Snapshot) {
	msg := SnapshotMsg{Gen: f.gen, Snap: snap}
	select {
	case f.ch <- msg:
		return
	default:
	}
	// Replace the stale pending snapshot.
	select {
	case <-f.ch:
	default:
	}
	select {
	case f.ch <- msg:
	default:
	}
}

// waitForSnapshot returns a command that delivers the next snapshot.
func waitForSnapshot(ch <-chan SnapshotMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
