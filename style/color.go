package style

import "image/color"

// RGB, RGBA and Hex are trimmed down from the teacher's colors.go:
// kept because Style Descriptors carry foreground/background/
// underline colors and callers building styles by hand want the same
// convenience constructors the teacher's FontFace callers use. The
// gradient and color-space machinery in the teacher's colors.go paints
// fills for the vector renderer, which is out of scope here (the
// paint layer is an external collaborator per spec.md §1).

// RGB returns an opaque color given by red, green, and blue in [0,255].
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 0xff}
}

// RGBA returns a color given by red, green and blue in [0,255] and
// alpha in [0,1], already alpha-premultiplied as image/color.RGBA
// requires.
func RGBA(r, g, b uint8, a float64) color.RGBA {
	return color.RGBA{
		uint8(a * float64(r)),
		uint8(a * float64(g)),
		uint8(a * float64(b)),
		uint8(a * 255.0),
	}
}

// Hex parses a CSS hex color such as "#ff0000" or "F00".
func Hex(s string) color.RGBA {
	if 0 < len(s) && s[0] == '#' {
		s = s[1:]
	}
	h := make([]uint8, len(s))
	for i, c := range s {
		switch {
		case '0' <= c && c <= '9':
			h[i] = uint8(c - '0')
		case 'a' <= c && c <= 'f':
			h[i] = 10 + uint8(c-'a')
		case 'A' <= c && c <= 'F':
			h[i] = 10 + uint8(c-'A')
		}
	}
	switch len(s) {
	case 3:
		return color.RGBA{h[0]*16 + h[0], h[1]*16 + h[1], h[2]*16 + h[2], 0xff}
	case 6:
		return color.RGBA{h[0]*16 + h[1], h[2]*16 + h[3], h[4]*16 + h[5], 0xff}
	case 8:
		a := float64(h[6]*16+h[7]) / 255.0
		return color.RGBA{
			uint8(a * float64(h[0]*16+h[1])),
			uint8(a * float64(h[2]*16+h[3])),
			uint8(a * float64(h[4]*16+h[5])),
			h[6]*16 + h[7],
		}
	}
	return color.RGBA{0, 0, 0, 0xff}
}

var (
	Black = color.RGBA{0, 0, 0, 0xff}
	White = color.RGBA{0xff, 0xff, 0xff, 0xff}
)
