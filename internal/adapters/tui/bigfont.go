package tui

import (
	"github.com/xvierd/doro/internal/theme"
)

// glyphFont is a family of multi-line digit glyphs.
type glyphFont struct {
	height int
	glyphs map[rune][]string
}

// blockFont maps each digit character (0-9) and colon to a 5-line block
// representation. Each digit is 4 chars wide, colon is 1 char wide.
var blockFont = glyphFont{
	height: 5,
	glyphs: map[rune][]string{
		'0': {
			"████",
			"█  █",
			"█  █",
			"█  █",
			"████",
		},
		'1': {
			" █ ",
			"██ ",
			" █ ",
			" █ ",
			"███",
		},
		'2': {
			"████",
			"   █",
			"████",
			"█   ",
			"████",
		},
		'3': {
			"████",
			"   █",
			"████",
			"   █",
			"████",
		},
		'4': {
			"█  █",
			"█  █",
			"████",
			"   █",
			"   █",
		},
		'5': {
			"████",
			"█   ",
			"████",
			"   █",
			"████",
		},
		'6': {
			"████",
			"█   ",
			"████",
			"█  █",
			"████",
		},
		'7': {
			"████",
			"   █",
			"  █ ",
			" █  ",
			" █  ",
		},
		'8': {
			"████",
			"█  █",
			"████",
			"█  █",
			"████",
		},
		'9': {
			"████",
			"█  █",
			"████",
			"   █",
			"████",
		},
		':': {
			" ",
			"█",
			" ",
			"█",
			" ",
		},
	},
}

// slimFont draws 3-line digits with box-drawing strokes.
var slimFont = glyphFont{
	height: 3,
	glyphs: map[rune][]string{
		'0': {"┌─┐", "│ │", "└─┘"},
		'1': {" ┐ ", " │ ", " ┴ "},
		'2': {"──┐", "┌─┘", "└──"},
		'3': {"──┐", " ─┤", "──┘"},
		'4': {"╷ ╷", "└─┤", "  ╵"},
		'5': {"┌──", "└─┐", "──┘"},
		'6': {"┌──", "├─┐", "└─┘"},
		'7': {"──┐", "  │", "  ╵"},
		'8': {"┌─┐", "├─┤", "└─┘"},
		'9': {"┌─┐", "└─┤", "──┘"},
		':': {" ", ":", " "},
	},
}

func fontFor(name string) glyphFont {
	if theme.LookupFont(name) == theme.FontSlim {
		return slimFont
	}
	return blockFont
}

// renderBigTime lays out a clock string like "24:59" in the named font.
// When the result would be wider than maxWidth it falls back to the plain
// string on a single line.
func renderBigTime(timeStr string, fontName string, maxWidth int) []string {
	font := fontFor(fontName)

	lines := make([]string, font.height)
	for _, ch := range timeStr {
		glyph, ok := font.glyphs[ch]
		if !ok {
			continue
		}
		for i := 0; i < font.height; i++ {
			if lines[i] != "" {
				lines[i] += " "
			}
			lines[i] += glyph[i]
		}
	}

	if len([]rune(lines[0])) > maxWidth {
		return []string{timeStr}
	}
	return lines
}
