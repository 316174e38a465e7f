package theme

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed assets/*.txt
var assets embed.FS

// CharacterArt loads the theme's character art. A file at CharArt wins;
// otherwise a bundled asset with the same base name is used. Themes without
// art, or whose art cannot be found, get nil.
func CharacterArt(t Theme) []string {
	if t.CharArt == "" {
		return nil
	}
	data, err := os.ReadFile(t.CharArt)
	if err != nil {
		data, err = assets.ReadFile("assets/" + filepath.Base(t.CharArt))
		if err != nil {
			return nil
		}
	}
	text := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
