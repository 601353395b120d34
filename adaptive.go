package glyph

import (
	"math"

	"github.com/glyphtess/glyph/utils"
)

// adaptiveSteps implements §4.2.4: sample the arc at 17 points, measure
// fan-area error at four candidate subdivision counts, and pick the
// smallest one whose normalized error clears the threshold.
func (t *Tessellator) adaptiveSteps(thresh int32) stepFunc {
	limit := float32(thresh) / 10
	return func(a, ctrl, b Point) int32 {
		var samples [17]Point
		for i := 0; i <= 16; i++ {
			samples[i] = quadAt(a, ctrl, b, float32(i)/16)
		}

		var dist float32
		for i := 1; i <= 16; i++ {
			dist += distance(samples[i-1], samples[i])
		}
		if dist == 0 {
			t.lastAdaptiveError += 0
			return 1
		}

		e1 := fanError(samples, 0, 16)
		e2 := fanError(samples, 0, 8) + fanError(samples, 8, 16)
		e4 := fanError(samples, 0, 4) + fanError(samples, 4, 8) + fanError(samples, 8, 12) + fanError(samples, 12, 16)
		e8 := float32(0)
		for j := 0; j < 16; j += 2 {
			e8 += fanError(samples, j, j+2)
		}

		for _, cand := range []struct {
			k int32
			e float32
		}{{1, e1}, {2, e2}, {4, e4}, {8, e8}} {
			norm := cand.e / dist
			if norm < limit {
				t.lastAdaptiveError += norm
				return cand.k
			}
		}
		return 16
	}
}

// fanError sums the absolute area of the triangle fan anchored at
// samples[lo], covering the consecutive pairs (lo+1,lo+2) .. up to hi.
func fanError(samples [17]Point, lo, hi int) float32 {
	anchor := samples[lo]
	var sum float32
	for i := lo + 1; i < hi; i++ {
		sum += triangleArea(anchor, samples[i], samples[i+1])
	}
	return sum
}

func triangleArea(a, b, c Point) float32 {
	cross := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	return utils.Abs(cross) / 2
}

func distance(a, b Point) float32 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}
