package termcolor

import (
	"math"
	"strings"
)

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// StateStyle は判定結果 (warning / rejected / allowed) ごとの表示色を返す。
// ライトテーマでは白背景に対してコントラスト比 4.5 以上になる濃色を選ぶ。
func StateStyle(state string, scheme Scheme, profile Profile) Style {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "warning":
		return pickStyle(scheme, profile, stateColors{
			darkBasic:  3,
			darkBold:   true,
			dark256:    220,
			darkTrue:   [3]uint8{250, 204, 21},
			lightBasic: 3,
			light256:   130,
			lightTrue:  [3]uint8{146, 64, 14},
		})
	case "rejected":
		return pickStyle(scheme, profile, stateColors{
			darkBasic:  1,
			darkBold:   true,
			dark256:    203,
			darkTrue:   [3]uint8{248, 113, 113},
			lightBasic: 1,
			light256:   124,
			lightTrue:  [3]uint8{185, 28, 28},
		})
	case "allowed":
		return pickStyle(scheme, profile, stateColors{
			darkBasic:  2,
			dark256:    114,
			darkTrue:   [3]uint8{74, 222, 128},
			lightBasic: 2,
			light256:   28,
			lightTrue:  [3]uint8{21, 128, 61},
		})
	default:
		return Style{}
	}
}

type stateColors struct {
	darkBasic  int
	darkBold   bool
	dark256    int
	darkTrue   [3]uint8
	lightBasic int
	light256   int
	lightTrue  [3]uint8
}

func pickStyle(scheme Scheme, profile Profile, c stateColors) Style {
	light := scheme == SchemeLight
	switch profile {
	case ProfileTrueColor:
		rgb := c.darkTrue
		if light {
			rgb = c.lightTrue
		}
		return Style{FGTrue: &rgb}
	case ProfileANSI256:
		idx := c.dark256
		if light {
			idx = c.light256
		}
		return Style{FG256: &idx}
	default:
		color := c.darkBasic
		bold := c.darkBold
		if light {
			color = c.lightBasic
			bold = false
		}
		return Style{FGBasic: &color, Bold: bold}
	}
}

// SizeStyle colors the line count of a detected block. Small blocks render
// green and the color shifts toward red as the block approaches maxLines.
func SizeStyle(lines int, profile Profile, maxLines float64) Style {
	if lines < 0 {
		lines = 0
	}
	switch profile {
	case ProfileTrueColor:
		r, g, b := gradientRGB(lines, maxLines)
		rgb := [3]uint8{r, g, b}
		return Style{FGTrue: &rgb}
	case ProfileANSI256:
		r, g, b := gradientRGB(lines, maxLines)
		idx := rgbToANSI256(r, g, b)
		return Style{FG256: &idx}
	default:
		color := sizeBucketColor(lines)
		return Style{FGBasic: &color}
	}
}

func gradientRGB(lines int, maxLines float64) (uint8, uint8, uint8) {
	if maxLines <= 0 {
		maxLines = 80
	}
	t := float64(lines) / maxLines
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if t <= 0 {
		return 0, 255, 0
	}
	if t >= 1 {
		return 255, 0, 0
	}
	if t < 0.5 {
		ratio := t / 0.5
		r := uint8(math.Round(255 * ratio))
		return r, 255, 0
	}
	ratio := (t - 0.5) / 0.5
	g := uint8(math.Round(255 * (1 - ratio)))
	return 255, g, 0
}

func sizeBucketColor(lines int) int {
	switch {
	case lines <= 3:
		return 2
	case lines <= 12:
		return 3
	case lines <= 40:
		return 5
	default:
		return 1
	}
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
