package noise

import (
	"math"
	"testing"
)

func sources() map[string]Source {
	return map[string]Source{
		KindSimplex: NewSimplex(),
		KindPerlin:  NewPerlin(),
	}
}

func TestSample4DDeterministic(t *testing.T) {
	for name := range sources() {
		a, _ := New(name)
		b, _ := New(name)
		for i := 0; i < 200; i++ {
			x, y, z, w := float64(i)*0.11, float64(i)*0.23, float64(i)*-0.31, float64(i)*0.07
			if a.Sample4D(x, y, z, w, 99) != b.Sample4D(x, y, z, w, 99) {
				t.Fatalf("%s: Sample4D not deterministic at (%f, %f, %f, %f)", name, x, y, z, w)
			}
		}
	}
}

func TestSample4DRange(t *testing.T) {
	for name, src := range sources() {
		for i := 0; i < 5000; i++ {
			x := float64(i)*0.37 - 500
			y := float64(i)*0.53 - 500
			z := float64(i)*0.71 - 500
			w := float64(i)*0.13 - 100
			v := src.Sample4D(x, y, z, w, int64(i%7))
			if v < -1 || v > 1 || math.IsNaN(v) {
				t.Fatalf("%s: Sample4D(%f, %f, %f, %f) = %f, out of [-1,1]", name, x, y, z, w, v)
			}
		}
	}
}

func TestDifferentSeedsDifferentNoise(t *testing.T) {
	for name, src := range sources() {
		different := false
		for i := 0; i < 100; i++ {
			x, y, z, w := float64(i)*0.17+0.3, float64(i)*0.29+0.1, float64(i)*0.05, 0.4
			if src.Sample4D(x, y, z, w, 1) != src.Sample4D(x, y, z, w, 2) {
				different = true
				break
			}
		}
		if !different {
			t.Errorf("%s: different seeds should produce different noise", name)
		}
	}
}

func TestSimplexCacheBounded(t *testing.T) {
	s := NewSimplex()
	for seed := int64(0); seed < maxCachedSeeds*2; seed++ {
		s.Sample4D(0.5, 0.5, 0.5, 0.5, seed)
	}
	if n := len(s.cache); n > maxCachedSeeds {
		t.Errorf("cache holds %d entries, want at most %d", n, maxCachedSeeds)
	}
}

func TestConstantClamps(t *testing.T) {
	tests := []struct {
		value float64
		want  float64
	}{
		{0, 0},
		{0.25, 0.25},
		{3, 1},
		{-7, -1},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := Constant(tt.value).Sample4D(1, 2, 3, 4, 5); got != tt.want {
			t.Errorf("Constant(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New("value"); err == nil {
		t.Error("expected error for unknown noise kind")
	}
}

func TestLayeredRange(t *testing.T) {
	l := NewLayered(NewSimplex(), 8, 0.95)
	for i := 0; i < 2000; i++ {
		v := l.Sample4D(math.Sin(float64(i)), math.Cos(float64(i)), float64(i)*0.01, 0.3, 42)
		if v < -1 || v > 1 {
			t.Fatalf("Layered sample %d = %f, out of [-1,1]", i, v)
		}
	}
}

func TestLayeredOfConstantIsConstant(t *testing.T) {
	// Weights sum to 2^octaves - 1, so a constant basis passes through unchanged.
	l := NewLayered(Constant(0.5), 4, 2.1)
	if got := l.Sample4D(0.1, 0.2, 0.3, 0.4, 7); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Layered(Constant(0.5)) = %v, want 0.5", got)
	}
}

func TestRidgedBounds(t *testing.T) {
	tests := []struct {
		name  string
		basis Source
		want  float64
	}{
		{"zero basis gives crest", Constant(0), 0.41},
		{"unit basis gives trough", Constant(1), -1},
		{"negative unit basis gives trough", Constant(-1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRidged(tt.basis, 6, 3.375)
			if got := r.Sample4D(0.3, 0.6, 0.9, 1.2, 11); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOctavesClamped(t *testing.T) {
	if got := NewLayered(Constant(0), 0, 1).Octaves(); got != 1 {
		t.Errorf("Layered octaves = %d, want 1", got)
	}
	if got := NewRidged(Constant(0), 100, 1).Octaves(); got != maxOctaves {
		t.Errorf("Ridged octaves = %d, want %d", got, maxOctaves)
	}
}

func TestFractalSeedsAdvancePerOctave(t *testing.T) {
	var seen []int64
	rec := Func(func(x, y, z, w float64, seed int64) float64 {
		seen = append(seen, seed)
		return 0
	})

	NewLayered(rec, 3, 1).Sample4D(0, 0, 0, 0, 10)

	g := goldenGamma
	want := []int64{10 + g, 10 + g + g, 10 + g + g + g}
	if len(seen) != len(want) {
		t.Fatalf("basis called %d times, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("octave %d seed = %d, want %d", i, seen[i], want[i])
		}
	}
}
