package color

import "math"

// HSV holds hue in degrees [0,360) and saturation/value in [0,1].
type HSV struct {
	H, S, V float64
}

// HSVToRGB converts with the classic six-sector (60°) table. Hue is taken
// modulo 360; s and v must lie in [0,1]. Channels truncate toward zero.
func HSVToRGB(h, s, v float64) (RGB, error) {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return RGB{}, invalid("HSVToRGB", h, "hue must be finite")
	}
	if math.IsNaN(s) || math.IsNaN(v) || s < 0 || s > 1 || v < 0 || v > 1 {
		return RGB{}, invalid("HSVToRGB", [2]float64{s, v}, "saturation and value must be between 0 and 1")
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if s == 0 {
		g := uint8(v * 255)
		return RGB{g, g, g}, nil
	}

	sector := int(h / 60)
	f := h/60 - float64(sector)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch sector {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return RGB{uint8(r * 255), uint8(g * 255), uint8(b * 255)}, nil
}

// HSVToRGBOrBlack falls back to black on invalid input so a render loop never stalls on a bad hue.
func HSVToRGBOrBlack(h, s, v float64) RGB {
	c, err := HSVToRGB(h, s, v)
	if err != nil {
		return Black
	}
	return c
}

// RGBToHSV is the inverse of HSVToRGB. Gray inputs report hue 0 and saturation 0.
func RGBToHSV(r, g, b int) (HSV, error) {
	for _, c := range [3]int{r, g, b} {
		if c < 0 || c > 255 {
			return HSV{}, invalid("RGBToHSV", [3]int{r, g, b}, "RGB values must be between 0 and 255")
		}
	}
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	maxV := math.Max(rf, math.Max(gf, bf))
	minV := math.Min(rf, math.Min(gf, bf))
	delta := maxV - minV

	out := HSV{V: maxV}
	if delta == 0 {
		return out, nil
	}
	out.S = delta / maxV

	var h float64
	switch maxV {
	case rf:
		h = (gf - bf) / delta
	case gf:
		h = 2 + (bf-rf)/delta
	default:
		h = 4 + (rf-gf)/delta
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	out.H = h
	return out, nil
}

// HSV converts c; it cannot fail since channels are bytes.
func (c RGB) HSV() HSV {
	out, _ := RGBToHSV(int(c.R), int(c.G), int(c.B))
	return out
}

// Wheel maps 0..255 around the red→green→blue→red color wheel.
func Wheel(pos uint8) RGB {
	p := int(pos)
	switch {
	case p < 85:
		return RGB{uint8(255 - p*3), uint8(p * 3), 0}
	case p < 170:
		p -= 85
		return RGB{0, uint8(255 - p*3), uint8(p * 3)}
	default:
		p -= 170
		return RGB{uint8(p * 3), 0, uint8(255 - p*3)}
	}
}
