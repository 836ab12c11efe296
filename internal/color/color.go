// Package color holds the 8-bit color math used by the strip: hex packing,
// HSV conversion, linear fades and gamma correction.
package color

import (
	"fmt"
	"math"
)

const (
	RedOffset   uint8 = 0x10
	GreenOffset uint8 = 0x08
	BlueOffset  uint8 = 0x00

	MaxHex = 0xFFFFFF
)

// RGB is one pixel value. Channels are bytes so the [0,255] range holds by construction.
type RGB struct {
	R, G, B uint8
}

var (
	Black       = RGB{}
	White       = RGB{255, 255, 255}
	MaxRed      = RGB{255, 0, 0}
	MaxGreen    = RGB{0, 255, 0}
	MaxBlue     = RGB{0, 0, 255}
	CrashRed    = RGB{106, 0, 0}
	CrashYellow = RGB{68, 68, 0}
)

// ValidationError reports a color math input outside its domain.
type ValidationError struct {
	Op    string
	Value any
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("color: %s(%v): %s", e.Op, e.Value, e.Msg)
}

func invalid(op string, v any, msg string) error {
	return &ValidationError{Op: op, Value: v, Msg: msg}
}

func getcolor(c int, off uint8) uint8 {
	return uint8((c >> off) & 0xFF)
}

// HexToRGB unpacks a 24-bit 0xRRGGBB value.
func HexToRGB(h int) (RGB, error) {
	if h < 0 || h > MaxHex {
		return RGB{}, invalid("HexToRGB", fmt.Sprintf("%#x", h), "must be a 24-bit value")
	}
	return RGB{
		R: getcolor(h, RedOffset),
		G: getcolor(h, GreenOffset),
		B: getcolor(h, BlueOffset),
	}, nil
}

// MustHex is HexToRGB for compile-time constants.
func MustHex(h int) RGB {
	c, err := HexToRGB(h)
	if err != nil {
		panic(err)
	}
	return c
}

// RGBToHex packs three channels into 0xRRGGBB. Each channel must be in [0,255].
func RGBToHex(r, g, b int) (int, error) {
	for _, v := range [3]int{r, g, b} {
		if v < 0 || v > 0xFF {
			return 0, invalid("RGBToHex", [3]int{r, g, b}, "each component must be between 0x00 and 0xFF")
		}
	}
	return r<<RedOffset | g<<GreenOffset | b<<BlueOffset, nil
}

// Hex packs c into 0xRRGGBB.
func (c RGB) Hex() int {
	return int(c.R)<<RedOffset | int(c.G)<<GreenOffset | int(c.B)<<BlueOffset
}

func (c RGB) String() string {
	return fmt.Sprintf("#%06X", c.Hex())
}

// Fade scales every channel by f, truncating toward zero.
func Fade(c RGB, f float64) (RGB, error) {
	if math.IsNaN(f) || f < 0 || f > 1 {
		return RGB{}, invalid("Fade", f, "fade factor out of bounds")
	}
	return RGB{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
	}, nil
}

// Scale is Fade with f clamped to [0,1]. For callers that computed f themselves.
func (c RGB) Scale(f float64) RGB {
	out, _ := Fade(c, clamp01(f))
	return out
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// ClampByte clamps an int into a channel value.
func ClampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
