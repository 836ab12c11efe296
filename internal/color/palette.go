package color

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Pantone485 is the team red.
var Pantone485 = MustHex(0xDA291C)

// Fire is the base ember color for the fire animation.
var Fire = MustHex(0xFF6600)

var named = map[string]RGB{
	"pantone485": Pantone485,
	"fire":       Fire,
	"red":        MaxRed,
	"green":      MaxGreen,
	"blue":       MaxBlue,
	"white":      White,
}

// Named looks up a base color by name, case-insensitive.
func Named(name string) (RGB, error) {
	c, ok := named[strings.ToLower(name)]
	if !ok {
		return RGB{}, fmt.Errorf("color: unknown color name %q", name)
	}
	return c, nil
}

// Palette is a four-stop color scheme.
type Palette [4]RGB

func palette(a, b, c, d int) Palette {
	return Palette{MustHex(a), MustHex(b), MustHex(c), MustHex(d)}
}

var palettes = map[string]Palette{
	"ballet":      palette(0xF3EEDD, 0x02576B, 0xFFD9D1, 0x80506F),
	"blues":       palette(0x113C78, 0xFFF6E6, 0xACA6BB, 0x95B4D3),
	"fireside":    palette(0x83471D, 0xFFE2A5, 0xFF6714, 0xDA2734),
	"french":      palette(0x4185BD, 0xFFC303, 0xFFF5D6, 0x13233E),
	"pink":        palette(0xFFF0D1, 0xFFD2D0, 0xFF4D88, 0xA61C62),
	"florida":     palette(0xFFD704, 0xFF980B, 0xFFF0D9, 0x65B027),
	"harbor":      palette(0x15518A, 0xFF1A2C, 0xD0BFC9, 0x0977B5),
	"birthday":    palette(0xFF5384, 0xFFE304, 0xFF9627, 0x16AEE0),
	"oldschool":   palette(0xA4A3A9, 0x602630, 0x72ACD9, 0x1A2C43),
	"daffodil":    palette(0x0FFBEB, 0xFFE781, 0xD8D400, 0xFFD304),
	"beach":       palette(0xFF6C80, 0x009EE7, 0xFF3E17, 0xA81D71),
	"cruise":      palette(0x2AB2D1, 0x4B81CE, 0xFFEFC9, 0xC3C20B),
	"dahlia":      palette(0x911234, 0xFF475B, 0xFF3F21, 0xFF5242),
	"weekend":     palette(0x025363, 0x636041, 0xFFB003, 0xF3E2AC),
	"firecracker": palette(0x007EDB, 0xFFF5E3, 0xD8C1A4, 0xFF2E16),
	"coral":       palette(0xFFF6D8, 0xFF5E3F, 0x82E09F, 0xE5DF00),
	"cottage":     palette(0xFFF48F, 0x4E6729, 0xFFF1EA, 0xCACFE5),
}

// PaletteByName looks up a named scheme, case-insensitive.
func PaletteByName(name string) (Palette, error) {
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("color: unknown palette %q (have %s)", name, strings.Join(PaletteNames(), ", "))
	}
	return p, nil
}

// PaletteNames lists the schemes in sorted order.
func PaletteNames() []string {
	out := make([]string, 0, len(palettes))
	for k := range palettes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend walks the four stops for t in [0,1], interpolating in L*a*b* so the
// midpoints stay perceptually even.
func (p Palette) Blend(t float64) RGB {
	t = clamp01(t)
	seg := t * float64(len(p)-1)
	i := int(seg)
	if i >= len(p)-1 {
		return p[len(p)-1]
	}
	mixed := toColorful(p[i]).BlendLab(toColorful(p[i+1]), seg-float64(i)).Clamped()
	r, g, b := mixed.RGB255()
	return RGB{r, g, b}
}
