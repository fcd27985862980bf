package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

func TestDrawTextMatchesGlyphArt(t *testing.T) {
	b := New(4, 6)
	b.DrawText(0, 0, "A", Tiny, true)

	// Tiny 'A' is " # " / "# #" / "###" / "# #" / "# #".
	assert.False(t, b.On(0, 0))
	assert.True(t, b.On(1, 0))
	assert.True(t, b.On(0, 1))
	assert.True(t, b.On(2, 1))
	assert.True(t, b.On(0, 2))
	assert.True(t, b.On(1, 2))
	assert.True(t, b.On(2, 2))
	assert.True(t, b.On(0, 4))
	assert.False(t, b.On(1, 4))
}

func TestDrawTextAdvances(t *testing.T) {
	b := New(16, 8)
	b.DrawText(0, 0, "11", Tiny, true)

	// Second '1' starts one advance (4px) to the right.
	assert.True(t, b.On(1, 0))
	assert.True(t, b.On(5, 0))
}

func TestDrawTextDarkOnLight(t *testing.T) {
	b := New(8, 8)
	b.FillRect(0, 0, 8, 8, true)
	b.DrawText(0, 0, "A", Tiny, false)

	assert.False(t, b.On(1, 0), "glyph pixels are carved out of the fill")
	assert.True(t, b.On(0, 0), "background stays lit where the glyph is empty")
	assert.True(t, b.On(7, 7))
}

func TestLowercaseSharesCapitalGlyphs(t *testing.T) {
	lower := New(32, 8)
	upper := New(32, 8)
	lower.DrawText(0, 0, "chrome", Tiny, true)
	upper.DrawText(0, 0, "CHROME", Tiny, true)

	assert.Equal(t, upper.String(), lower.String())
}

func TestUnknownRuneDrawsReplacement(t *testing.T) {
	unknown := New(8, 8)
	repl := New(8, 8)
	unknown.DrawText(0, 0, "€", Small, true)
	repl.DrawText(0, 0, "�", Small, true)

	require.Equal(t, repl.String(), unknown.String())
	assert.True(t, unknown.On(0, 0), "replacement block is visible")
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 0, TextWidth(Tiny, ""))
	assert.Equal(t, 12, TextWidth(Tiny, "1/4"))
	assert.Equal(t, 24, TextWidth(Small, "BYE!"))
	assert.Equal(t, 40, TextWidth(Tiny, "CPU 100.0%"))
}

func TestFacesCoverCharset(t *testing.T) {
	const charset = " !%+,-./0123456789:ABCDEFGHIJKLMNOPQRSTUVWXYZ_°" +
		"abcdefghijklmnopqrstuvwxyz"

	for _, r := range charset {
		_, _, _, _, ok := Tiny.Glyph(fixed.P(0, 5), r)
		assert.True(t, ok, "tiny face missing %q", r)
		_, _, _, _, ok = Small.Glyph(fixed.P(0, 7), r)
		assert.True(t, ok, "small face missing %q", r)
	}
}
