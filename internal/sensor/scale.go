package sensor

import "math"

// Scaler linearly maps a raw millimeter reading into [0,255] with optional
// inversion (near = high) and exponent shaping for a perceptual response.
type Scaler struct {
	Min, Max int
	Invert   bool
	Exponent float64
}

// Scale returns the shaped byte value for raw.
func (s Scaler) Scale(raw int) uint8 {
	v := linear(raw, s.Min, s.Max)
	if s.Invert {
		v = 255 - v
	}
	if s.Exponent > 0 && s.Exponent != 1 {
		v = int(math.Pow(float64(v)/255, s.Exponent) * 255)
	}
	return uint8(v)
}

// Unit is Scale normalized to [0,1].
func (s Scaler) Unit(raw int) float64 {
	return float64(s.Scale(raw)) / 255
}

func linear(raw, lo, hi int) int {
	if hi == lo {
		return 0
	}
	if raw < lo {
		return 0
	}
	if raw > hi {
		return 255
	}
	return int(float64(raw-lo) / float64(hi-lo) * 255)
}
