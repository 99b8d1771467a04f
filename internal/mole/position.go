// Package mole implements the whack-a-mole session: target placement, the
// countdown/active/ended state machine, and the controller that serializes
// clock ticks and player selects against a single live session.
//
// Nothing in this package draws to a terminal or plays sound. Those are
// collaborators reached through the Renderer and AudioCue interfaces.
package mole

import (
	"errors"
	"fmt"
)

// ErrInvalidBounds is returned when the target does not fit strictly inside
// the surface.
var ErrInvalidBounds = errors.New("mole: invalid bounds")

// Bounds describes the play surface and the target size, in the same units.
type Bounds struct {
	SurfaceW float64
	SurfaceH float64
	TargetW  float64
	TargetH  float64
}

// Validate reports ErrInvalidBounds unless the surface is larger than the
// target on both axes.
func (b Bounds) Validate() error {
	if b.TargetW <= 0 || b.TargetH <= 0 {
		return fmt.Errorf("%w: target %gx%g must be positive", ErrInvalidBounds, b.TargetW, b.TargetH)
	}
	if b.SurfaceW <= b.TargetW || b.SurfaceH <= b.TargetH {
		return fmt.Errorf("%w: surface %gx%g cannot hold target %gx%g",
			ErrInvalidBounds, b.SurfaceW, b.SurfaceH, b.TargetW, b.TargetH)
	}
	return nil
}

// MaxTop is the largest valid top offset.
func (b Bounds) MaxTop() float64 {
	return b.SurfaceH - b.TargetH
}

// MaxLeft is the largest valid left offset.
func (b Bounds) MaxLeft() float64 {
	return b.SurfaceW - b.TargetW
}

// Holds reports whether p keeps the whole target on the surface.
func (b Bounds) Holds(p Position) bool {
	return p.Top >= 0 && p.Top <= b.MaxTop() && p.Left >= 0 && p.Left <= b.MaxLeft()
}

// Position is the target's offset from the top-left corner of the surface.
type Position struct {
	Top  float64
	Left float64
}

// Generate places the target using two draws from draw, top first and then
// left. Each draw must be in [0, 1). Given the same draw sequence it always
// returns the same position.
func Generate(b Bounds, draw func() float64) (Position, error) {
	if err := b.Validate(); err != nil {
		return Position{}, err
	}
	return place(b, draw), nil
}

// place assumes b has already been validated.
func place(b Bounds, draw func() float64) Position {
	top := draw() * b.MaxTop()
	left := draw() * b.MaxLeft()
	return Position{Top: top, Left: left}
}
