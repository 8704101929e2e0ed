package optio

import "strconv"

// Color is one of the 16 basic ANSI colors (0-7 normal, 8-15 bright)
type Color int

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// NoColor leaves the text untouched.
const NoColor Color = -1

// code returns the SGR foreground code for c.
func (c Color) code() string {
	switch {
	case c < 0 || c > BrightWhite:
		return ""
	case c < BrightBlack:
		return strconv.Itoa(30 + int(c))
	default:
		return strconv.Itoa(90 + int(c-BrightBlack))
	}
}

// Theme maps diagnostic levels to colors
type Theme struct {
	Debug, Info, Warning, Error, Fatal Color
}

// DefaultTheme mirrors the colors most terminals use for compiler-style diagnostics.
func DefaultTheme() Theme {
	return Theme{
		Debug:   BrightMagenta,
		Info:    NoColor,
		Warning: BrightYellow,
		Error:   BrightRed,
		Fatal:   Red,
	}
}
