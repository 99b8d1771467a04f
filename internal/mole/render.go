package mole

import (
	"fmt"

	"github.com/vovakirdan/mole-arcade/internal/core"
)

// HUDRows is the number of screen rows above the play surface.
const HUDRows = 1

// Visual characters for the terminal target.
const (
	moleFace = "(o.o)"
	dirtChar = '▀'
)

// TargetRect returns the target's cell rectangle on a screen whose play
// surface starts offsetY rows from the top. Offsets are truncated to cells,
// which keeps the rectangle on the surface because Top and Left never exceed
// their maximum.
func (s Snapshot) TargetRect(offsetY int) core.Rect {
	return core.NewRect(
		int(s.Target.Left),
		int(s.Target.Top)+offsetY,
		int(s.Bounds.TargetW),
		int(s.Bounds.TargetH),
	)
}

// Draw renders snap onto dst. The play surface is the area below the HUD.
func Draw(dst *core.Screen, snap Snapshot) {
	dst.Clear()

	switch snap.Phase {
	case PhaseCountdown:
		drawCountdown(dst, snap)
	case PhaseActive:
		drawActive(dst, snap)
	case PhaseEnded:
		drawEnded(dst, snap)
	}
}

func drawCountdown(dst *core.Screen, snap Snapshot) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, "Whack-a-Mole!", core.ColorBrightWhite)
	dst.DrawTextCentered(mid+1, fmt.Sprintf("%d", snap.CountdownRemaining), core.ColorBrightYellow)
	dst.DrawTextCentered(mid+3, "Click the mole before time runs out", core.ColorGray)
}

func drawActive(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf("Time: %ds  Score: %d ", snap.TimeRemaining, snap.Score)
	dst.DrawTextColored(dst.Width()-len(hud), 0, hud, core.ColorWhite)

	r := snap.TargetRect(HUDRows)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorBrown)
	if r.H >= 3 {
		// Dirt along the bottom edge.
		for x := r.X + 1; x < r.Right()-1; x++ {
			dst.SetColored(x, r.Bottom()-1, dirtChar, core.ColorBrown)
		}
	}
	if r.W-2 >= len(moleFace) {
		cx, cy := r.Center()
		if r.H >= 3 && cy == r.Bottom()-1 {
			cy--
		}
		dst.DrawTextColored(cx-len(moleFace)/2, cy, moleFace, core.ColorYellow)
	}
}

func drawEnded(dst *core.Screen, snap Snapshot) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, "GAME OVER", core.ColorBrightRed)
	dst.DrawTextCentered(mid+1, fmt.Sprintf("Final score: %d", snap.Score), core.ColorBrightRed)
}
