package render

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/flapper/internal/core"
)

// Asset keys looked up in the theme.
const (
	AssetActor      = "actor"
	AssetPipe       = "pipe"
	AssetPipeCap    = "pipe_cap"
	AssetParticle   = "particle"
	AssetFloor      = "floor"
	AssetBackground = "background"
)

// AssetKeys lists every key the renderer draws with.
var AssetKeys = []string{AssetActor, AssetPipe, AssetPipeCap, AssetParticle, AssetFloor, AssetBackground}

// Assets resolves asset keys to glyphs. A key that is missing from the theme
// or mapped to an empty string resolves to a placeholder cell instead of
// failing, so a broken theme never stops the game.
type Assets struct {
	glyphs map[string]rune
}

// NewAssets builds the glyph table from a theme. Only the first rune of
// each entry is used.
func NewAssets(theme map[string]string) Assets {
	a := Assets{glyphs: make(map[string]rune, len(theme))}
	for k, v := range theme {
		if r, _ := utf8.DecodeRuneInString(v); v != "" && r != utf8.RuneError {
			a.glyphs[k] = r
		}
	}
	return a
}

// Cell returns the cell for key drawn in color c, or the placeholder.
func (a Assets) Cell(key string, c core.Color) core.Cell {
	if r, ok := a.glyphs[key]; ok {
		return core.Cell{Rune: r, Color: c}
	}
	return Placeholder(key)
}

// Missing lists the renderer keys that will fall back to a placeholder.
func (a Assets) Missing() []string {
	var out []string
	for _, k := range AssetKeys {
		if _, ok := a.glyphs[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Placeholder is the stand-in for an unavailable asset: the key's first
// letter upper-cased, in bright red.
func Placeholder(key string) core.Cell {
	r, _ := utf8.DecodeRuneInString(key)
	if key == "" || r == utf8.RuneError {
		r = '?'
	}
	return core.Cell{Rune: unicode.ToUpper(r), Color: core.ColorBrightRed}
}
