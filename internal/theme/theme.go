// Package theme holds the catalog of orb color themes and the helpers used
// to paint with them.
package theme

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sahilm/fuzzy"
)

// DefaultName is the theme used when none, or an unknown one, is selected.
const DefaultName = "Doro"

// Urgent colors replace the accents during the last seconds of a segment.
const (
	UrgentStart = "#FF5050"
	UrgentEnd   = "#FF0000"
	UrgentText  = "#FF0000"
)

// Theme describes the colors of the orb and its optional character art.
type Theme struct {
	Name       string
	Accent     [2]string
	Background string
	Text       string
	// CharArt is a path to a text file drawn next to the docked capsule.
	CharArt string
}

var catalog = []Theme{
	{Name: "Doro", Accent: [2]string{"#FFB6C1", "#9370DB"}, Background: "#FFF0F5", Text: "#000000", CharArt: "doro.txt"},
	{Name: "Bubblegum Pop", Accent: [2]string{"#FF69B4", "#00FFFF"}, Background: "#FFF0F5", Text: "#323232"},
	{Name: "Lemon Meringue", Accent: [2]string{"#FFD700", "#FFFACD"}, Background: "#FFFFE0", Text: "#645000"},
	{Name: "Mint Chocolate", Accent: [2]string{"#98FF98", "#00FA9A"}, Background: "#F0FFF5", Text: "#006450"},
	{Name: "Lavender Haze", Accent: [2]string{"#E6E6FA", "#9370DB"}, Background: "#F8F8FF", Text: "#4B0082"},
	{Name: "Sky Blue Dream", Accent: [2]string{"#87CEEB", "#E0FFFF"}, Background: "#F0FFFF", Text: "#003264"},
	{Name: "Cyberpunk", Accent: [2]string{"#00FFC8", "#0064FF"}, Background: "#14141E", Text: "#FFFFFF"},
	{Name: "Peach Oolong", Accent: [2]string{"#FFB6C1", "#FF7F50"}, Background: "#FFF5EE", Text: "#464646"},
}

// All returns the catalog in display order.
func All() []Theme {
	out := make([]Theme, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the theme names in display order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, t := range catalog {
		names[i] = t.Name
	}
	return names
}

// Find returns the named theme and whether it exists.
func Find(name string) (Theme, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Lookup returns the named theme, falling back to the default.
func Lookup(name string) Theme {
	if t, ok := Find(name); ok {
		return t
	}
	t, _ := Find(DefaultName)
	return t
}

// Search fuzzy-matches names against query, best match first. An empty
// query returns every name in catalog order.
func Search(query string, names []string) []string {
	if query == "" {
		return append([]string(nil), names...)
	}
	matches := fuzzy.Find(query, names)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

// Gradient returns the ring color at position t in [0,1] along the
// accent gradient, or along the red urgent gradient.
func (t Theme) Gradient(pos float64, urgent bool) string {
	start, end := t.Accent[0], t.Accent[1]
	if urgent {
		start, end = UrgentStart, UrgentEnd
	}
	return blend(start, end, clamp01(pos))
}

// Track returns the faded ring track color.
func (t Theme) Track() string {
	return blend(t.Accent[0], t.Background, 1-60.0/255.0)
}

// Faded returns the text color mixed towards the background by amount.
func (t Theme) Faded(color string, amount float64) string {
	return blend(color, t.Background, clamp01(amount))
}

// TextColor returns the main text color, red while urgent.
func (t Theme) TextColor(urgent bool) string {
	if urgent {
		return UrgentText
	}
	return t.Text
}

// IsDark reports whether the background is dark.
func (t Theme) IsDark() bool {
	c, err := colorful.Hex(t.Background)
	if err != nil {
		return false
	}
	l, _, _ := c.Lab()
	return l < 0.5
}

func blend(from, to string, pos float64) string {
	a, err := colorful.Hex(from)
	if err != nil {
		return to
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return from
	}
	return a.BlendRgb(b, pos).Clamped().Hex()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
