package richmsg

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ColourKind discriminates the ColourSpec union.
type ColourKind int

const (
	ColourInteger ColourKind = iota
	ColourNamedOrHex
	ColourRGB
)

// ColourSpec is an embed colour as written by the user: a raw integer, a
// name or "#rrggbb" string, or an {r, g, b} object.
type ColourSpec struct {
	Kind  ColourKind
	Value uint32
	Text  string
	RGB   RGB
}

type RGB struct {
	Red, Green, Blue uint8
}

func IntegerColour(v uint32) ColourSpec { return ColourSpec{Kind: ColourInteger, Value: v} }
func NamedColour(s string) ColourSpec   { return ColourSpec{Kind: ColourNamedOrHex, Text: s} }
func RGBColour(r, g, b uint8) ColourSpec {
	return ColourSpec{Kind: ColourRGB, RGB: RGB{Red: r, Green: g, Blue: b}}
}

var colourTable = sync.OnceValue(func() map[string]int {
	return map[string]int{
		"BLITZ_BLUE":     0x6FC6E2,
		"BLUE":           0x3498DB,
		"BLURPLE":        0x7289DA,
		"DARK_BLUE":      0x206694,
		"DARK_GOLD":      0xC27C0E,
		"DARK_GREEN":     0x1F8B4C,
		"DARK_GREY":      0x607D8B,
		"DARK_MAGENTA":   0xAD1457,
		"DARK_ORANGE":    0xA84300,
		"DARK_PURPLE":    0x71368A,
		"DARK_RED":       0x992D22,
		"DARK_TEAL":      0x11806A,
		"DARKER_GREY":    0x546E7A,
		"FABLED_PINK":    0xFAB1ED,
		"FADED_PURPLE":   0x8882C4,
		"FOOYOO":         0x11CA80,
		"GOLD":           0xF1C40F,
		"KERBAL":         0xBADA55,
		"LIGHT_GREY":     0x979C9F,
		"LIGHTER_GREY":   0x95A5A6,
		"MAGENTA":        0xE91E63,
		"MEIBE_PINK":     0xE68397,
		"ORANGE":         0xE67E22,
		"PURPLE":         0x9B59B6,
		"RED":            0xE74C3C,
		"ROHRKATZE_BLUE": 0x7596FF,
		"ROSEWATER":      0xF6DBD8,
		"TEAL":           0x1ABC9C,
	}
})

// ColourNames returns the registered colour names in alphabetical order.
func ColourNames() []string {
	table := colourTable()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupColour returns the value registered under name. Lookup is case-sensitive.
func LookupColour(name string) (int, bool) {
	v, ok := colourTable()[name]
	return v, ok
}

// Resolve turns a ColourSpec into a 24-bit RGB value.
func Resolve(spec ColourSpec) (int, error) {
	switch spec.Kind {
	case ColourInteger:
		return int(spec.Value), nil
	case ColourRGB:
		return int(spec.RGB.Red)<<16 | int(spec.RGB.Green)<<8 | int(spec.RGB.Blue), nil
	default:
		return resolveString(spec.Text)
	}
}

func resolveString(s string) (int, error) {
	if !strings.HasPrefix(s, "#") {
		v, ok := LookupColour(s)
		if !ok {
			return 0, &Error{Kind: ErrUnknownColourName, Input: s}
		}
		return v, nil
	}
	if len(s) != 7 {
		return 0, &Error{Kind: ErrInvalidColourHexLength, Input: s}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, &Error{Kind: ErrInvalidColourHexValue, Input: s, Err: err}
	}
	return int(v), nil
}

// FormatHex renders a colour value the way Resolve accepts it back.
func FormatHex(v int) string {
	return "#" + leftPad(strconv.FormatInt(int64(v), 16), 6)
}

func leftPad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
