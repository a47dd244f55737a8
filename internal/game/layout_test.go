package game

import (
	"testing"

	"github.com/iburimskiy/circle-bounce/internal/config"
)

func TestBoundaryOriginCentres(t *testing.T) {
	ox, oy := boundaryOrigin(1024, 768, 400)
	if ox != 312 {
		t.Fatalf("ox = %v, want 312", ox)
	}
	// 768-160-400 = 208 of free height, half of it above the boundary.
	if want := float64(boundaryTop + 104); oy != want {
		t.Fatalf("oy = %v, want %v", oy, want)
	}
}

func TestBoundaryOriginWhenTight(t *testing.T) {
	_, oy := boundaryOrigin(800, 500, 440)
	if oy != boundaryTop {
		t.Fatalf("oy = %v, want %v", oy, boundaryTop)
	}
}

func TestButtonRectsDoNotOverlap(t *testing.T) {
	for i := 0; i < 7; i++ {
		a, b := buttonRect(i), buttonRect(i+1)
		if a.x+a.w >= b.x {
			t.Fatalf("button %d overlaps %d", i, i+1)
		}
	}
	if last := buttonRect(7); last.x+last.w > config.WindowWidth {
		t.Fatalf("button row wider than the window")
	}
}

func TestRectContains(t *testing.T) {
	r := rect{x: 10, y: 10, w: 20, h: 10}
	if !r.contains(10, 10) || !r.contains(30, 20) {
		t.Fatal("edges should be inside")
	}
	if r.contains(31, 15) || r.contains(15, 9) {
		t.Fatal("outside point reported inside")
	}
}
