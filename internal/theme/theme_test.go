package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, "Cyberpunk", Lookup("Cyberpunk").Name)
	assert.Equal(t, DefaultName, Lookup("Nope").Name)
	assert.Equal(t, DefaultName, Lookup("").Name)
}

func TestCatalog(t *testing.T) {
	names := Names()
	require.Len(t, names, 8)
	assert.Equal(t, DefaultName, names[0])

	for _, th := range All() {
		assert.NotEmpty(t, th.Accent[0], th.Name)
		assert.NotEmpty(t, th.Accent[1], th.Name)
		assert.NotEmpty(t, th.Background, th.Name)
		assert.NotEmpty(t, th.Text, th.Name)
	}
}

func TestSearch(t *testing.T) {
	got := Search("cyb", Names())
	require.NotEmpty(t, got)
	assert.Equal(t, "Cyberpunk", got[0])

	assert.Equal(t, Names(), Search("", Names()))
	assert.Empty(t, Search("zzzz", Names()))
}

func TestGradient(t *testing.T) {
	th := Lookup("Cyberpunk")
	assert.Equal(t, "#00ffc8", th.Gradient(0, false))
	assert.Equal(t, "#0064ff", th.Gradient(1, false))
	assert.Equal(t, "#ff5050", th.Gradient(0, true))
	assert.Equal(t, "#ff0000", th.Gradient(2, true))
}

func TestTextColor(t *testing.T) {
	th := Lookup("Doro")
	assert.Equal(t, "#000000", th.TextColor(false))
	assert.Equal(t, UrgentText, th.TextColor(true))
}

func TestIsDark(t *testing.T) {
	assert.True(t, Lookup("Cyberpunk").IsDark())
	assert.False(t, Lookup("Doro").IsDark())
}

func TestCharacterArt(t *testing.T) {
	t.Run("bundled art", func(t *testing.T) {
		art := CharacterArt(Lookup("Doro"))
		assert.NotEmpty(t, art)
	})

	t.Run("no art", func(t *testing.T) {
		assert.Nil(t, CharacterArt(Lookup("Cyberpunk")))
	})

	t.Run("missing file", func(t *testing.T) {
		th := Theme{Name: "x", CharArt: filepath.Join(t.TempDir(), "missing.txt")}
		assert.Nil(t, CharacterArt(th))
	})

	t.Run("file on disk wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doro.txt")
		require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))
		art := CharacterArt(Theme{Name: "x", CharArt: path})
		assert.Equal(t, []string{"a", "b"}, art)
	})
}

func TestLookupFont(t *testing.T) {
	assert.Equal(t, FontSlim, LookupFont(FontSlim))
	assert.Equal(t, DefaultFont, LookupFont("Comic Sans"))
	assert.True(t, IsFont(FontBlock))
	assert.False(t, IsFont(""))
}
