package render

import (
	"math"
	"testing"
)

func TestBoardTracksSprites(t *testing.T) {
	b := NewBoard()
	b.ResizeBoundary(300)

	s0 := b.NewSprite(10).(*Sprite)
	s1 := b.NewSprite(12).(*Sprite)
	s2 := b.NewSprite(14).(*Sprite)
	if b.Len() != 3 || b.Boundary() != 300 {
		t.Fatalf("len %d boundary %v", b.Len(), b.Boundary())
	}
	if s0.ID == s1.ID || s1.ID == s2.ID {
		t.Fatal("sprite ids not unique")
	}

	s1.Release()
	s1.Release()
	if b.Len() != 2 {
		t.Fatalf("len after release = %d", b.Len())
	}
	seen := map[int]bool{}
	b.Each(func(s *Sprite) { seen[s.ID] = true })
	if !seen[s0.ID] || !seen[s2.ID] || seen[s1.ID] {
		t.Fatalf("live ids = %v", seen)
	}

	s2.Release()
	s0.Release()
	if b.Len() != 0 {
		t.Fatalf("len = %d, want 0", b.Len())
	}
}

func TestSpriteGeometry(t *testing.T) {
	b := NewBoard()
	s := b.NewSprite(20).(*Sprite)
	s.MoveTo(140, 90)
	if x, y := s.Centre(); x != 150 || y != 100 {
		t.Fatalf("centre = (%v, %v)", x, y)
	}
	if !s.Visible() {
		t.Fatal("sprite should be visible")
	}
	s.Resize(math.NaN())
	if s.Visible() {
		t.Fatal("NaN-sized sprite reported visible")
	}
	s.Resize(-3)
	if s.Visible() {
		t.Fatal("negative sprite reported visible")
	}
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h       float64
		r, g, b uint8
	}{
		{0, 255, 0, 0},
		{120, 0, 255, 0},
		{240, 0, 0, 255},
		{360, 255, 0, 0},
		{-120, 0, 0, 255},
	}
	for _, tt := range tests {
		r, g, b := HSVToRGB(tt.h, 1, 1)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("HSVToRGB(%v) = %d,%d,%d want %d,%d,%d", tt.h, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestBoundaryColorBrightensWithLevel(t *testing.T) {
	quiet := BoundaryColor(0)
	loud := BoundaryColor(1)
	if loud.R <= quiet.R {
		t.Fatalf("loud %v not brighter than quiet %v", loud, quiet)
	}
	if BoundaryColor(5) != loud {
		t.Fatal("level above 1 not clamped")
	}
}
