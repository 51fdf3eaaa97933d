// Package colorutil は WCAG のコントラスト計算を提供します。
// パレット調整とそのテストで共有されます。
package colorutil

import "math"

type RGB struct {
	R uint8
	G uint8
	B uint8
}

var (
	black = RGB{}
	white = RGB{255, 255, 255}
)

// relativeLuminance implements the WCAG 2.x definition over sRGB.
func relativeLuminance(c RGB) float64 {
	lin := func(v uint8) float64 {
		f := float64(v) / 255
		if f <= 0.04045 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between two colors,
// always >= 1.
func ContrastRatio(a, b RGB) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// AutoTextColor picks black or white text for the given background,
// preferring black when it already clears the AA threshold.
func AutoTextColor(bg RGB) RGB {
	cb := ContrastRatio(black, bg)
	if cb >= 4.5 || cb >= ContrastRatio(white, bg) {
		return black
	}
	return white
}

// EnsureContrast returns fg if it meets minRatio against bg, otherwise the
// black/white fallback from AutoTextColor. minRatio <= 0 means AA (4.5).
func EnsureContrast(fg, bg RGB, minRatio float64) RGB {
	if minRatio <= 0 {
		minRatio = 4.5
	}
	if ContrastRatio(fg, bg) >= minRatio {
		return fg
	}
	return AutoTextColor(bg)
}
