package render

import "strings"

const defaultBarWidth = 20

// ProgressBar draws percent as a fixed-width ASCII bar, for example
// "[#####---------------]". Out-of-range input is clamped.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		width = defaultBarWidth
	}
	switch {
	case percent < 0:
		percent = 0
	case percent > 100:
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
