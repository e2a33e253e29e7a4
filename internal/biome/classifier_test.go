package biome

import (
	"math"
	"testing"

	"github.com/samdwyer/worldsynth/internal/world"
)

func TestCascadeThresholds(t *testing.T) {
	tests := []struct {
		name string
		got  cascade
		want [5]float64
	}{
		{
			"moisture upper",
			upperCascade(MoistureBands, 1),
			[5]float64{0.4 - 0.27*0.2, 0.6 - 0.13*0.2, 0.8 - 0.2*0.2, 0.9 - 0.2*0.2, 1.0 - 0.1*0.2},
		},
		{
			"moisture lower",
			lowerCascade(MoistureBands, 1),
			[5]float64{0.27 + 0.13*0.2, 0.4 + 0.2*0.2, 0.6 + 0.2*0.2, 0.8 + 0.1*0.2, 0.9 + 0.1*0.2},
		},
		{
			"heat upper",
			upperCascade(HeatBands, 1),
			[5]float64{0.31 - 0.15*0.2, 0.5 - 0.16*0.2, 0.69 - 0.19*0.2, 0.85 - 0.19*0.2, 1.0 - 0.16*0.2},
		},
		{
			"heat lower",
			lowerCascade(HeatBands, 1),
			[5]float64{0.15 + 0.16*0.2, 0.31 + 0.19*0.2, 0.5 + 0.19*0.2, 0.69 + 0.16*0.2, 0.85 + 0.15*0.2},
		},
		{
			"heat upper scaled",
			upperCascade(HeatBands, 2),
			[5]float64{2 * (0.31 - 0.15*0.2), 2 * (0.5 - 0.16*0.2), 2 * (0.69 - 0.19*0.2), 2 * (0.85 - 0.19*0.2), 2 * (1.0 - 0.16*0.2)},
		},
	}

	for _, tt := range tests {
		for i := range tt.want {
			if math.Abs(tt.got.bounds[i]-tt.want[i]) > 1e-12 {
				t.Errorf("%s: bound %d = %v, want %v", tt.name, i+1, tt.got.bounds[i], tt.want[i])
			}
		}
	}
}

func TestCascadeBoundaryResolvesUpward(t *testing.T) {
	c := upperCascade(MoistureBands, 1)
	for k := 1; k <= 5; k++ {
		b := c.bounds[k-1]
		if got := c.index(b); got != k {
			t.Errorf("index(bound %d = %v) = %d, want %d", k, b, got, k)
		}
		if got := c.index(math.Nextafter(b, 0)); got != k-1 {
			t.Errorf("index(just below bound %d) = %d, want %d", k, got, k-1)
		}
	}
}

func TestCascadeMonotonic(t *testing.T) {
	for _, c := range []cascade{
		upperCascade(HeatBands, 1), lowerCascade(HeatBands, 1),
		upperCascade(MoistureBands, 1), lowerCascade(MoistureBands, 1),
	} {
		prev := 0
		for i := 0; i <= 1000; i++ {
			k := c.index(float64(i) / 1000)
			if k < prev {
				t.Fatalf("index decreased at %v: %d < %d", float64(i)/1000, k, prev)
			}
			prev = k
		}
	}
}

func TestLowerPassIsSameOrAdjacent(t *testing.T) {
	c := NewClassifier(1)
	for i := 0; i <= 1000; i++ {
		v := float64(i) / 1000
		for _, pair := range [][2]cascade{
			{c.heatUpper, c.heatLower},
			{c.moistureUpper, c.moistureLower},
		} {
			up, low := pair[0].index(v), pair[1].index(v)
			if low != up && low != up+1 {
				t.Fatalf("v=%v: lower band %d not adjacent to upper band %d", v, low, up)
			}
		}
	}
}

func TestClassifyCoastRouting(t *testing.T) {
	c := NewClassifier(1)
	for hi := 0; hi <= 20; hi++ {
		for mi := 0; mi <= 20; mi++ {
			heat, moisture := float64(hi)/20, float64(mi)/20

			coast := c.Classify(heat, moisture, world.Sand)
			if coast.Upper < CoastOffset || coast.Upper >= CoastOffset+6 {
				t.Fatalf("sand cell (%v,%v) upper = %d, want coast row", heat, moisture, coast.Upper)
			}
			if coast.Lower < 0 || coast.Lower >= CoastOffset {
				t.Fatalf("sand cell (%v,%v) lower = %d, want interior", heat, moisture, coast.Lower)
			}

			for _, code := range []world.HeightCode{world.DeepWater, world.Grass, world.Snow} {
				cls := c.Classify(heat, moisture, code)
				if cls.Upper < 0 || cls.Upper >= CoastOffset {
					t.Fatalf("%v cell (%v,%v) upper = %d, want interior", code, heat, moisture, cls.Upper)
				}
				if cls.Blend < 0 || cls.Blend > 1 {
					t.Fatalf("blend = %v, out of [0,1]", cls.Blend)
				}
			}
		}
	}
}

func TestClassifyCodes(t *testing.T) {
	c := NewClassifier(1)
	tests := []struct {
		name               string
		heat, moisture     float64
		code               world.HeightCode
		wantUpper, wantLow int
	}{
		{"frozen desert", 0.0, 0.0, world.Grass, 0, 0},
		{"hottest wettest", 1.0, 1.0, world.Grass, 35, 35},
		{"hot coast", 1.0, 0.5, world.Sand, 41, 5 + 2*6},
		// 0.3 sits between the lower threshold 0.296 and the upper threshold 0.346.
		{"dry edge", 0.0, 0.3, world.Forest, 0, 6},
	}

	for _, tt := range tests {
		cls := c.Classify(tt.heat, tt.moisture, tt.code)
		if cls.Upper != tt.wantUpper || cls.Lower != tt.wantLow {
			t.Errorf("%s: got (%d,%d), want (%d,%d)", tt.name, cls.Upper, cls.Lower, tt.wantUpper, tt.wantLow)
		}
	}
}

func TestBlendDecisiveWherePassesAgree(t *testing.T) {
	c := NewClassifier(1)
	for hi := 0; hi <= 100; hi++ {
		for mi := 0; mi <= 100; mi++ {
			heat, moisture := float64(hi)/100, float64(mi)/100
			if c.heatUpper.index(heat) != c.heatLower.index(heat) ||
				c.moistureUpper.index(moisture) != c.moistureLower.index(moisture) {
				continue
			}
			if b := c.Classify(heat, moisture, world.Grass).Blend; b != 0 && b != 1 {
				t.Fatalf("(%v,%v) lies in no overlap zone but blend = %v", heat, moisture, b)
			}
		}
	}
}

func TestBlendHalfwayAtZoneMidpoints(t *testing.T) {
	c := NewClassifier(1)
	for k := range 5 {
		mid := (c.moistureUpper.bounds[k] + c.moistureLower.bounds[k]) / 2
		if b := c.Classify(0, mid, world.Grass).Blend; math.Abs(b-0.5) > 1e-9 {
			t.Errorf("moisture zone %d midpoint %v: blend = %v, want 0.5", k+1, mid, b)
		}

		mid = (c.heatUpper.bounds[k] + c.heatLower.bounds[k]) / 2
		if b := c.Classify(mid, 0, world.Grass).Blend; math.Abs(b-0.5) > 1e-9 {
			t.Errorf("heat zone %d midpoint %v: blend = %v, want 0.5", k+1, mid, b)
		}
	}
}

func TestBlendContinuousAcrossZone(t *testing.T) {
	c := NewClassifier(1)
	lo, hi := c.moistureLower.bounds[2], c.moistureUpper.bounds[2]

	if b := c.Classify(0, lo, world.Grass).Blend; b != 1 {
		t.Errorf("blend at lower threshold %v = %v, want 1", lo, b)
	}
	if b := c.Classify(0, hi, world.Grass).Blend; b != 0 {
		t.Errorf("blend at upper threshold %v = %v, want 0", hi, b)
	}

	prev := 1.0
	for i := 1; i < 50; i++ {
		v := lo + (hi-lo)*float64(i)/50
		cls := c.Classify(0, v, world.Grass)
		if cls.Upper == cls.Lower {
			t.Fatalf("v=%v inside the overlap zone classified as a single biome %d", v, cls.Upper)
		}
		if cls.Blend > prev || cls.Blend-prev < -0.05 {
			t.Fatalf("v=%v: blend stepped from %v to %v", v, prev, cls.Blend)
		}
		prev = cls.Blend
	}
}

func TestBlendSwappedPasses(t *testing.T) {
	c := NewClassifier(1)
	swapped := &Classifier{
		heatUpper:     c.heatLower,
		heatLower:     c.heatUpper,
		moistureUpper: c.moistureLower,
		moistureLower: c.moistureUpper,
	}

	for hi := 0; hi <= 50; hi++ {
		for mi := 0; mi <= 50; mi++ {
			heat, moisture := float64(hi)/50, float64(mi)/50
			got := c.blend(heat, moisture)
			if got < 0 || got > 1 {
				t.Fatalf("blend(%v,%v) = %v, out of [0,1]", heat, moisture, got)
			}
			if other := swapped.blend(heat, moisture); math.Abs(got-(1-other)) > 1e-12 {
				t.Fatalf("blend(%v,%v) = %v, swapped passes give %v", heat, moisture, got, other)
			}
		}
	}
}

func TestBlendNaN(t *testing.T) {
	if b := NewClassifier(1).Classify(math.NaN(), 0.5, world.Grass).Blend; b != 0.5 {
		t.Errorf("NaN heat blend = %v, want 0.5", b)
	}
	if b := Blend(math.NaN(), 0, 0, 1); b != 0.5 {
		t.Errorf("Blend(NaN) = %v, want 0.5", b)
	}
}

func TestClassifierHeatScaling(t *testing.T) {
	full := NewClassifier(1)
	half := NewClassifier(0.5)

	// Heat 0.5 is band 2 on the absolute scale but only band 0 once thresholds double.
	if got := full.Classify(0.5, 0, world.Grass).Upper; got != 2 {
		t.Errorf("absolute scale upper = %d, want 2", got)
	}
	if got := half.Classify(0.5, 0, world.Grass).Upper; got != 0 {
		t.Errorf("scaled upper = %d, want 0", got)
	}
}

func TestClassifierDegenerateMaxima(t *testing.T) {
	for _, m := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		c := NewClassifier(m)
		cls := c.Classify(0.5, 0.5, world.Grass)
		if math.IsNaN(cls.Blend) {
			t.Errorf("max %v: NaN blend", m)
		}
		if *c != *NewClassifier(1) {
			t.Errorf("max %v should fall back to 1", m)
		}
	}
}
