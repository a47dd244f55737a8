package sim

import (
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name            string
		x, y, r, size   float64
		wantHit         bool
		wantDist, limit float64
	}{
		{"centre", 150, 150, 150, 20, false, 0, 140},
		{"just inside", 279, 150, 150, 20, false, 129, 140},
		{"on limit", 290, 150, 150, 20, true, 140, 140},
		{"beyond", 300, 300, 150, 20, true, math.Sqrt(2) * 150, 140},
		{"diagonal inside", 200, 200, 150, 20, false, math.Sqrt(2) * 50, 140},
		{"ball as wide as boundary", 150, 150, 150, 300, true, 0, 0},
		{"ball wider than boundary", 150, 150, 150, 400, true, 0, -50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Evaluate(tt.x, tt.y, tt.r, tt.size)
			if c.Hit != tt.wantHit {
				t.Fatalf("Hit = %v, want %v (contact %+v)", c.Hit, tt.wantHit, c)
			}
			if math.Abs(c.Distance-tt.wantDist) > 1e-9 || c.WallLimit != tt.limit {
				t.Fatalf("contact = %+v, want distance %v limit %v", c, tt.wantDist, tt.limit)
			}
		})
	}
}

func TestEvaluateNaNNeverHits(t *testing.T) {
	if Evaluate(math.NaN(), 10, 150, 20).Hit {
		t.Fatal("NaN position reported a hit")
	}
	if Evaluate(10, 10, 150, math.NaN()).Hit {
		t.Fatal("NaN size reported a hit")
	}
}
