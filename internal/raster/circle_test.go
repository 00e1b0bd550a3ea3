package raster

import (
	"image"
	"math"
	"testing"
)

func offsetSet(points []Offset) map[Offset]bool {
	set := make(map[Offset]bool, len(points))
	for _, p := range points {
		set[p] = true
	}
	return set
}

func TestCircleSymmetry(t *testing.T) {
	for r := 1; r <= 40; r++ {
		set := offsetSet(Circle(0, 0, r))
		for p := range set {
			mirrors := []Offset{
				{p.DX, -p.DY},
				{-p.DX, p.DY},
				{-p.DX, -p.DY},
				{p.DY, p.DX},
				{-p.DY, p.DX},
				{p.DY, -p.DX},
				{-p.DY, -p.DX},
			}
			for _, m := range mirrors {
				if !set[m] {
					t.Fatalf("r=%d: %v present but mirror %v missing", r, p, m)
				}
			}
		}
	}
}

func TestCircleSmallestRadius(t *testing.T) {
	points := Circle(0, 0, 1)
	if len(points) == 0 {
		t.Fatal("expected points for r=1")
	}
	for _, p := range points {
		if p != (Offset{0, 0}) {
			t.Errorf("r=1: unexpected point %v", p)
		}
	}
}

func TestCircleDegenerate(t *testing.T) {
	tests := []struct {
		name string
		r    int
	}{
		{"zero", 0},
		{"negative", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Circle(0, 0, tt.r); len(got) != 0 {
				t.Errorf("Circle(r=%d) = %d points, want 0", tt.r, len(got))
			}
		})
	}
}

func TestCircleStaysNearRadius(t *testing.T) {
	for _, r := range []int{2, 5, 10, 25} {
		for _, p := range Circle(0, 0, r) {
			d := math.Hypot(float64(p.DX), float64(p.DY))
			if d > float64(r) || d < float64(r)-2 {
				t.Errorf("r=%d: point %v at distance %.3f", r, p, d)
			}
		}
	}
}

func TestCircleCentre(t *testing.T) {
	origin := Circle(0, 0, 6)
	shifted := Circle(7, -3, 6)
	if len(origin) != len(shifted) {
		t.Fatalf("length mismatch: %d vs %d", len(origin), len(shifted))
	}
	for i := range origin {
		want := Offset{origin[i].DX + 7, origin[i].DY - 3}
		if shifted[i] != want {
			t.Errorf("point %d: got %v, want %v", i, shifted[i], want)
		}
	}
}

func TestCircleDeterministic(t *testing.T) {
	a := Circle(0, 0, 10)
	b := Circle(0, 0, 10)
	if len(a) != len(b) {
		t.Fatal("Circle is not deterministic")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	offsets := []Offset{{1, 2}, {-3, 0}, {0, -1}}

	got := Translate(nil, offsets, 10.7, 20.2)
	want := []image.Point{{11, 22}, {7, 20}, {10, 19}}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTranslateReusesBuffer(t *testing.T) {
	offsets := Circle(0, 0, 4)
	buf := make([]image.Point, 0, len(offsets))

	first := Translate(buf, offsets, 0, 0)
	second := Translate(first[:0], offsets, 5, 5)
	if &first[0] != &second[0] {
		t.Error("Translate did not reuse the destination backing array")
	}
	if second[0].X != offsets[0].DX+5 {
		t.Errorf("expected translated x %d, got %d", offsets[0].DX+5, second[0].X)
	}
}

func TestTranslateTruncatesTowardZero(t *testing.T) {
	got := Translate(nil, []Offset{{0, 0}}, -0.5, -1.9)
	if got[0] != (image.Point{0, -1}) {
		t.Errorf("got %v, want (0,-1)", got[0])
	}
}

func BenchmarkCircle(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Circle(0, 0, 10)
	}
}

func BenchmarkTranslate(b *testing.B) {
	offsets := Circle(0, 0, 10)
	buf := make([]image.Point, 0, len(offsets))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = Translate(buf[:0], offsets, 960.5, 540.5)
	}
}
