package pixel

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Two fixed-size faces cover all on-screen text. Small carries the section
// labels, Tiny fits the status bar and metric lines where a 6px advance
// would overflow the 128px row. Both map lowercase onto the capital glyphs;
// a 3×5 cell has no room for legible minuscules.
var (
	// Small is a 5×7 face with a 6px advance.
	Small = buildFace(5, 7, 6, smallGlyphs)
	// Tiny is a 3×5 face with a 4px advance.
	Tiny = buildFace(3, 5, 4, tinyGlyphs)
)

// glyphRanges maps runes to glyph indexes. The mask holds, in order: space,
// '!', '%', the run '+' through ':' (covering digits), 'A' through 'Z', '_',
// '°', and the replacement glyph drawn for anything unmapped.
var glyphRanges = []basicfont.Range{
	{Low: ' ', High: '"', Offset: 0},
	{Low: '%', High: '&', Offset: 2},
	{Low: '+', High: ';', Offset: 3},
	{Low: 'A', High: '[', Offset: 19},
	{Low: '_', High: '`', Offset: 45},
	{Low: 'a', High: '{', Offset: 19},
	{Low: '°', High: '±', Offset: 46},
	{Low: '�', High: '￾', Offset: 47},
}

// buildFace assembles a basicfont.Face from glyph art. Each glyph is height
// rows of width runes, '#' marking lit pixels. Glyphs are stacked vertically
// in the mask in the order glyphRanges expects.
func buildFace(width, height, advance int, glyphs [][]string) *basicfont.Face {
	mask := image.NewAlpha(image.Rect(0, 0, width, height*len(glyphs)))
	for i, g := range glyphs {
		for y, row := range g {
			for x := 0; x < len(row) && x < width; x++ {
				if row[x] == '#' {
					mask.SetAlpha(x, i*height+y, color.Alpha{A: 0xff})
				}
			}
		}
	}
	return &basicfont.Face{
		Advance: advance,
		Width:   width,
		Height:  height + 1,
		Ascent:  height,
		Descent: 0,
		Mask:    mask,
		Ranges:  glyphRanges,
	}
}

// DrawText draws s with its top-left corner at (x, y). on selects lit text;
// pass false for dark text on the inverted status bar. Runes outside the
// face's charset render as the replacement block.
func (b *Buffer) DrawText(x, y int, s string, face font.Face, on bool) {
	c := color.Gray{Y: 0x00}
	if on {
		c = color.Gray{Y: 0xff}
	}
	d := font.Drawer{
		Dst:  b,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(replaceUncovered(face, s))
}

// replaceUncovered swaps runes the face has no glyph for with U+FFFD. The
// drawer would otherwise drop them; substituting keeps odd process names
// visible as replacement blocks.
func replaceUncovered(face font.Face, s string) string {
	out := make([]rune, 0, len(s))
	changed := false
	for _, r := range s {
		if _, _, _, _, ok := face.Glyph(fixed.Point26_6{}, r); !ok {
			r = '�'
			changed = true
		}
		out = append(out, r)
	}
	if !changed {
		return s
	}
	return string(out)
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

var tinyGlyphs = [][]string{
	{ // space
		"   ",
		"   ",
		"   ",
		"   ",
		"   "},
	{ // !
		" # ",
		" # ",
		" # ",
		"   ",
		" # "},
	{ // %
		"# #",
		"  #",
		" # ",
		"#  ",
		"# #"},
	{ // +
		"   ",
		" # ",
		"###",
		" # ",
		"   "},
	{ // ,
		"   ",
		"   ",
		"   ",
		" # ",
		"#  "},
	{ // -
		"   ",
		"   ",
		"###",
		"   ",
		"   "},
	{ // .
		"   ",
		"   ",
		"   ",
		"   ",
		" # "},
	{ // /
		"  #",
		"  #",
		" # ",
		"#  ",
		"#  "},
	{ // 0
		"###",
		"# #",
		"# #",
		"# #",
		"###"},
	{ // 1
		" # ",
		"## ",
		" # ",
		" # ",
		"###"},
	{ // 2
		"###",
		"  #",
		"###",
		"#  ",
		"###"},
	{ // 3
		"###",
		"  #",
		" ##",
		"  #",
		"###"},
	{ // 4
		"# #",
		"# #",
		"###",
		"  #",
		"  #"},
	{ // 5
		"###",
		"#  ",
		"###",
		"  #",
		"###"},
	{ // 6
		"###",
		"#  ",
		"###",
		"# #",
		"###"},
	{ // 7
		"###",
		"  #",
		" # ",
		" # ",
		" # "},
	{ // 8
		"###",
		"# #",
		"###",
		"# #",
		"###"},
	{ // 9
		"###",
		"# #",
		"###",
		"  #",
		"###"},
	{ // :
		"   ",
		" # ",
		"   ",
		" # ",
		"   "},
	{ // A
		" # ",
		"# #",
		"###",
		"# #",
		"# #"},
	{ // B
		"## ",
		"# #",
		"## ",
		"# #",
		"## "},
	{ // C
		"###",
		"#  ",
		"#  ",
		"#  ",
		"###"},
	{ // D
		"## ",
		"# #",
		"# #",
		"# #",
		"## "},
	{ // E
		"###",
		"#  ",
		"###",
		"#  ",
		"###"},
	{ // F
		"###",
		"#  ",
		"###",
		"#  ",
		"#  "},
	{ // G
		"###",
		"#  ",
		"# #",
		"# #",
		"###"},
	{ // H
		"# #",
		"# #",
		"###",
		"# #",
		"# #"},
	{ // I
		"###",
		" # ",
		" # ",
		" # ",
		"###"},
	{ // J
		"  #",
		"  #",
		"  #",
		"# #",
		"###"},
	{ // K
		"# #",
		"# #",
		"## ",
		"# #",
		"# #"},
	{ // L
		"#  ",
		"#  ",
		"#  ",
		"#  ",
		"###"},
	{ // M
		"# #",
		"###",
		"###",
		"# #",
		"# #"},
	{ // N
		"# #",
		"## ",
		"###",
		" ##",
		"# #"},
	{ // O
		"###",
		"# #",
		"# #",
		"# #",
		"###"},
	{ // P
		"###",
		"# #",
		"###",
		"#  ",
		"#  "},
	{ // Q
		"###",
		"# #",
		"# #",
		"###",
		"  #"},
	{ // R
		"###",
		"# #",
		"## ",
		"# #",
		"# #"},
	{ // S
		"###",
		"#  ",
		"###",
		"  #",
		"###"},
	{ // T
		"###",
		" # ",
		" # ",
		" # ",
		" # "},
	{ // U
		"# #",
		"# #",
		"# #",
		"# #",
		"###"},
	{ // V
		"# #",
		"# #",
		"# #",
		"# #",
		" # "},
	{ // W
		"# #",
		"# #",
		"###",
		"###",
		"# #"},
	{ // X
		"# #",
		"# #",
		" # ",
		"# #",
		"# #"},
	{ // Y
		"# #",
		"# #",
		" # ",
		" # ",
		" # "},
	{ // Z
		"###",
		"  #",
		" # ",
		"#  ",
		"###"},
	{ // _
		"   ",
		"   ",
		"   ",
		"   ",
		"###"},
	{ // °
		" # ",
		"# #",
		" # ",
		"   ",
		"   "},
	{ // replacement
		"###",
		"###",
		"###",
		"###",
		"###"},
}

var smallGlyphs = [][]string{
	{ // space
		"     ",
		"     ",
		"     ",
		"     ",
		"     ",
		"     ",
		"     "},
	{ // !
		"  #  ",
		"  #  ",
		"  #  ",
		"  #  ",
		"  #  ",
		"     ",
		"  #  "},
	{ // %
		"##   ",
		"##  #",
		"   # ",
		"  #  ",
		" #   ",
		"#  ##",
		"   ##"},
	{ // +
		"     ",
		"  #  ",
		"  #  ",
		"#####",
		"  #  ",
		"  #  ",
		"     "},
	{ // ,
		"     ",
		"     ",
		"     ",
		"     ",
		"     ",
		"  #  ",
		" #   "},
	{ // -
		"     ",
		"     ",
		"     ",
		"#####",
		"     ",
		"     ",
		"     "},
	{ // .
		"     ",
		"     ",
		"     ",
		"     ",
		"     ",
		" ##  ",
		" ##  "},
	{ // /
		"    #",
		"    #",
		"   # ",
		"  #  ",
		" #   ",
		"#    ",
		"#    "},
	{ // 0
		" ### ",
		"#   #",
		"#  ##",
		"# # #",
		"##  #",
		"#   #",
		" ### "},
	{ // 1
		"  #  ",
		" ##  ",
		"  #  ",
		"  #  ",
		"  #  ",
		"  #  ",
		" ### "},
	{ // 2
		" ### ",
		"#   #",
		"    #",
		"   # ",
		"  #  ",
		" #   ",
		"#####"},
	{ // 3
		" ### ",
		"#   #",
		"    #",
		"  ## ",
		"    #",
		"#   #",
		" ### "},
	{ // 4
		"   # ",
		"  ## ",
		" # # ",
		"#  # ",
		"#####",
		"   # ",
		"   # "},
	{ // 5
		"#####",
		"#    ",
		"#### ",
		"    #",
		"    #",
		"#   #",
		" ### "},
	{ // 6
		" ### ",
		"#    ",
		"#    ",
		"#### ",
		"#   #",
		"#   #",
		" ### "},
	{ // 7
		"#####",
		"    #",
		"   # ",
		"  #  ",
		"  #  ",
		"  #  ",
		"  #  "},
	{ // 8
		" ### ",
		"#   #",
		"#   #",
		" ### ",
		"#   #",
		"#   #",
		" ### "},
	{ // 9
		" ### ",
		"#   #",
		"#   #",
		" ####",
		"    #",
		"    #",
		" ### "},
	{ // :
		"     ",
		" ##  ",
		" ##  ",
		"     ",
		" ##  ",
		" ##  ",
		"     "},
	{ // A
		" ### ",
		"#   #",
		"#   #",
		"#####",
		"#   #",
		"#   #",
		"#   #"},
	{ // B
		"#### ",
		"#   #",
		"#   #",
		"#### ",
		"#   #",
		"#   #",
		"#### "},
	{ // C
		" ### ",
		"#   #",
		"#    ",
		"#    ",
		"#    ",
		"#   #",
		" ### "},
	{ // D
		"#### ",
		"#   #",
		"#   #",
		"#   #",
		"#   #",
		"#   #",
		"#### "},
	{ // E
		"#####",
		"#    ",
		"#    ",
		"#### ",
		"#    ",
		"#    ",
		"#####"},
	{ // F
		"#####",
		"#    ",
		"#    ",
		"#### ",
		"#    ",
		"#    ",
		"#    "},
	{ // G
		" ### ",
		"#   #",
		"#    ",
		"# ###",
		"#   #",
		"#   #",
		" ####"},
	{ // H
		"#   #",
		"#   #",
		"#   #",
		"#####",
		"#   #",
		"#   #",
		"#   #"},
	{ // I
		" ### ",
		"  #  ",
		"  #  ",
		"  #  ",
		"  #  ",
		"  #  ",
		" ### "},
	{ // J
		"  ###",
		"   # ",
		"   # ",
		"   # ",
		"   # ",
		"#  # ",
		" ##  "},
	{ // K
		"#   #",
		"#  # ",
		"# #  ",
		"##   ",
		"# #  ",
		"#  # ",
		"#   #"},
	{ // L
		"#    ",
		"#    ",
		"#    ",
		"#    ",
		"#    ",
		"#    ",
		"#####"},
	{ // M
		"#   #",
		"## ##",
		"# # #",
		"# # #",
		"#   #",
		"#   #",
		"#   #"},
	{ // N
		"#   #",
		"##  #",
		"# # #",
		"#  ##",
		"#   #",
		"#   #",
		"#   #"},
	{ // O
		" ### ",
		"#   #",
		"#   #",
		"#   #",
		"#   #",
		"#   #",
		" ### "},
	{ // P
		"#### ",
		"#   #",
		"#   #",
		"#### ",
		"#    ",
		"#    ",
		"#    "},
	{ // Q
		" ### ",
		"#   #",
		"#   #",
		"#   #",
		"# # #",
		"#  # ",
		" ## #"},
	{ // R
		"#### ",
		"#   #",
		"#   #",
		"#### ",
		"# #  ",
		"#  # ",
		"#   #"},
	{ // S
		" ####",
		"#    ",
		"#    ",
		" ### ",
		"    #",
		"    #",
		"#### "},
	{ // T
		"#####",
		"  #  ",
		"  #  ",
		"  #  ",
		"  #  ",
		"  #  ",
		"  #  "},
	{ // U
		"#   #",
		"#   #",
		"#   #",
		"#   #",
		"#   #",
		"#   #",
		" ### "},
	{ // V
		"#   #",
		"#   #",
		"#   #",
		"#   #",
		"#   #",
		" # # ",
		"  #  "},
	{ // W
		"#   #",
		"#   #",
		"#   #",
		"# # #",
		"# # #",
		"## ##",
		"#   #"},
	{ // X
		"#   #",
		"#   #",
		" # # ",
		"  #  ",
		" # # ",
		"#   #",
		"#   #"},
	{ // Y
		"#   #",
		"#   #",
		" # # ",
		"  #  ",
		"  #  ",
		"  #  ",
		"  #  "},
	{ // Z
		"#####",
		"    #",
		"   # ",
		"  #  ",
		" #   ",
		"#    ",
		"#####"},
	{ // _
		"     ",
		"     ",
		"     ",
		"     ",
		"     ",
		"     ",
		"#####"},
	{ // °
		" ##  ",
		"#  # ",
		" ##  ",
		"     ",
		"     ",
		"     ",
		"     "},
	{ // replacement
		"#####",
		"#####",
		"#####",
		"#####",
		"#####",
		"#####",
		"#####"},
}
