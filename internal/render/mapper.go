package render

import (
	"fmt"

	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/sensor"
)

// Mapper turns the two proximities into one strip color. Inputs are in
// [0,1] with 1 meaning a hand right at the sensor.
type Mapper interface {
	Map(x, y float64) color.RGB
}

// Fade dims a fixed color by one axis.
type Fade struct {
	Base color.RGB
	Axis sensor.Channel
}

func (f Fade) Map(x, y float64) color.RGB {
	if f.Axis == sensor.ChannelY {
		return f.Base.Scale(y)
	}
	return f.Base.Scale(x)
}

// HueValue picks the hue from X and the brightness from Y.
type HueValue struct{}

func (HueValue) Map(x, y float64) color.RGB {
	return color.HSVToRGBOrBlack(x*360, 1, clampUnit(y))
}

// PaletteBlend walks a palette by X and dims it by Y.
type PaletteBlend struct {
	Palette color.Palette
}

func (p PaletteBlend) Map(x, y float64) color.RGB {
	return p.Palette.Blend(x).Scale(y)
}

// NewMapper builds the mapping policy named by policy.
func NewMapper(policy string, base color.RGB, axis sensor.Channel, palette string) (Mapper, error) {
	switch policy {
	case "fade":
		return Fade{Base: base, Axis: axis}, nil
	case "hue_value":
		return HueValue{}, nil
	case "palette":
		p, err := color.PaletteByName(palette)
		if err != nil {
			return nil, err
		}
		return PaletteBlend{Palette: p}, nil
	default:
		return nil, fmt.Errorf("render: unknown mapping policy %q", policy)
	}
}

func clampUnit(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
