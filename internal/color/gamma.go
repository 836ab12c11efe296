package color

import "math"

// GammaLUT maps linear channel values to perceptual output, built once up front.
type GammaLUT [256]uint8

// Gamma22 is the table used on the strip.
var Gamma22 = NewGammaLUT(2.2)

// NewGammaLUT precomputes round((i/255)^gamma * 255) for every byte value.
func NewGammaLUT(gamma float64) *GammaLUT {
	if gamma <= 0 || math.IsNaN(gamma) {
		gamma = 1
	}
	var lut GammaLUT
	for i := range lut {
		lut[i] = uint8(math.Pow(float64(i)/255, gamma)*255 + 0.5)
	}
	return &lut
}

// Correct looks up each channel.
func (l *GammaLUT) Correct(c RGB) RGB {
	return RGB{l[c.R], l[c.G], l[c.B]}
}
