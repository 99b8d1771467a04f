package mole

import (
	"errors"
	"testing"
)

func TestGenerateInvalidBounds(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
	}{
		{"surface narrower than target", Bounds{SurfaceW: 100, SurfaceH: 500, TargetW: 140, TargetH: 140}},
		{"surface equal to target", Bounds{SurfaceW: 140, SurfaceH: 140, TargetW: 140, TargetH: 140}},
		{"surface shorter than target", Bounds{SurfaceW: 500, SurfaceH: 140, TargetW: 140, TargetH: 140}},
		{"zero target", Bounds{SurfaceW: 500, SurfaceH: 500}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			_, err := Generate(tc.bounds, func() float64 { calls++; return 0.5 })
			if !errors.Is(err, ErrInvalidBounds) {
				t.Fatalf("Generate() error = %v, expected ErrInvalidBounds", err)
			}
			if calls != 0 {
				t.Errorf("Generate() drew %d values before failing", calls)
			}
		})
	}
}

func TestGenerateDrawOrder(t *testing.T) {
	b := Bounds{SurfaceW: 400, SurfaceH: 800, TargetW: 140, TargetH: 140}
	src := NewSequenceSource(0.5, 0.25)

	pos, err := Generate(b, src.Draw)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	// Top uses the first draw, left the second.
	if pos.Top != 0.5*660 {
		t.Errorf("Top = %g, expected %g", pos.Top, 0.5*660)
	}
	if pos.Left != 0.25*260 {
		t.Errorf("Left = %g, expected %g", pos.Left, 0.25*260)
	}
}

func TestGenerateStaysInBounds(t *testing.T) {
	b := Bounds{SurfaceW: 80, SurfaceH: 22, TargetW: 10, TargetH: 5}
	src := NewSeededSource(7)

	for i := 0; i < 1000; i++ {
		pos, err := Generate(b, src.Draw)
		if err != nil {
			t.Fatalf("Generate() failed: %v", err)
		}
		if !b.Holds(pos) {
			t.Fatalf("position %+v out of bounds (max top %g, max left %g)", pos, b.MaxTop(), b.MaxLeft())
		}
	}
}

func TestGenerateExtremeDraws(t *testing.T) {
	b := Bounds{SurfaceW: 50, SurfaceH: 30, TargetW: 10, TargetH: 10}

	low, _ := Generate(b, func() float64 { return 0 })
	if low.Top != 0 || low.Left != 0 {
		t.Errorf("zero draws should give the origin, got %+v", low)
	}

	high, _ := Generate(b, func() float64 { return 0.999999 })
	if !b.Holds(high) {
		t.Errorf("near-one draws should stay in bounds, got %+v", high)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	b := Bounds{SurfaceW: 120, SurfaceH: 40, TargetW: 9, TargetH: 4}
	a, c := NewSeededSource(12345), NewSeededSource(12345)

	for i := 0; i < 50; i++ {
		p1, _ := Generate(b, a.Draw)
		p2, _ := Generate(b, c.Draw)
		if p1 != p2 {
			t.Fatalf("draw %d differs: %+v vs %+v", i, p1, p2)
		}
	}
}

func TestSequenceSourceRejectsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewSequenceSource(1.0) should panic")
		}
	}()
	NewSequenceSource(0.1, 1.0)
}

func TestSequenceSourceWraps(t *testing.T) {
	src := NewSequenceSource(0.1, 0.2)
	got := []float64{src.Draw(), src.Draw(), src.Draw()}
	if got[0] != 0.1 || got[1] != 0.2 || got[2] != 0.1 {
		t.Errorf("draws = %v, expected [0.1 0.2 0.1]", got)
	}
}
