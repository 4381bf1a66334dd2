// Package color converts normalized RGBA literals to and from CSS color
// syntax. Parsing is best effort: anything not recognized becomes opaque
// black.
package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"varcss/variables"
)

var (
	reRGBA = regexp.MustCompile(`^rgba\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*([\d.]+)\s*\)`)
	reRGB  = regexp.MustCompile(`^rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)`)
)

// ToCSS returns "#rrggbb" for opaque colors and "rgba(r, g, b, a)" with two
// decimal alpha otherwise. Non-color values are converted to generic string.
func ToCSS(val variables.Value) string {
	c, ok := val.(variables.RGBA)
	if !ok {
		if l, ok := val.(variables.Literal); ok {
			return variables.FormatLiteral(l)
		}
		return fmt.Sprint(val)
	}
	r, g, b := channel(c.R), channel(c.G), channel(c.B)
	if c.Opaque() {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(c.A, 'f', 2, 64))
}

// FromCSS parses "#rgb", "#rrggbb", "#rrggbbaa", "rgb(...)" and "rgba(...)".
// Unrecognized syntax yields opaque black.
func FromCSS(text string) variables.RGBA {
	c, _ := Parse(text)
	return c
}

// Parse is FromCSS which also reports if text was recognized.
func Parse(text string) (variables.RGBA, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba"):
		m := reRGBA.FindStringSubmatch(s)
		if m == nil {
			break
		}
		a, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			break
		}
		return variables.RGBA{R: byteChannel(m[1]), G: byteChannel(m[2]), B: byteChannel(m[3]), A: a}, true
	case strings.HasPrefix(s, "rgb"):
		m := reRGB.FindStringSubmatch(s)
		if m == nil {
			break
		}
		return variables.RGBA{R: byteChannel(m[1]), G: byteChannel(m[2]), B: byteChannel(m[3]), A: 1}, true
	}
	return variables.Black, false
}

func parseHex(hex string) (variables.RGBA, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return variables.Black, false
	}
	var ch [4]float64
	ch[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return variables.Black, false
		}
		ch[i] = float64(n)
	}
	return variables.RGBA{R: ch[0] / 255, G: ch[1] / 255, B: ch[2] / 255, A: ch[3] / 255}, true
}

func byteChannel(s string) float64 {
	n, _ := strconv.Atoi(s)
	return float64(n) / 255
}

func channel(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(0, math.Min(255, math.Round(v*255))))
}
