package pixel

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPixelAndOn(t *testing.T) {
	b := New(8, 8)

	assert.False(t, b.On(3, 3))
	b.SetPixel(3, 3, true)
	assert.True(t, b.On(3, 3))
	b.SetPixel(3, 3, false)
	assert.False(t, b.On(3, 3))
}

func TestSetPixelOutOfBoundsIsDropped(t *testing.T) {
	b := New(4, 4)

	b.SetPixel(-1, 0, true)
	b.SetPixel(0, -1, true)
	b.SetPixel(4, 0, true)
	b.SetPixel(0, 4, true)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.False(t, b.On(x, y), "pixel (%d,%d) should stay off", x, y)
		}
	}
	assert.False(t, b.On(100, 100))
}

func TestSetThresholdsOnLuminance(t *testing.T) {
	b := New(4, 4)

	b.Set(0, 0, color.Gray{Y: 255})
	b.Set(1, 0, color.Gray{Y: 200})
	b.Set(2, 0, color.Gray{Y: 128})
	b.Set(3, 0, color.Gray{Y: 0})

	assert.True(t, b.On(0, 0))
	assert.True(t, b.On(1, 0))
	assert.False(t, b.On(2, 0), "mid-gray maps to off")
	assert.False(t, b.On(3, 0))
}

func TestAtReportsBlackAndWhite(t *testing.T) {
	b := New(4, 4)
	b.SetPixel(1, 1, true)

	assert.Equal(t, color.Gray{Y: 0xff}, b.At(1, 1))
	assert.Equal(t, color.Gray{Y: 0x00}, b.At(0, 0))
	assert.Equal(t, color.Gray{Y: 0x00}, b.At(-5, 0))
}

func TestFillRectClips(t *testing.T) {
	b := New(8, 8)
	b.FillRect(6, 6, 4, 4, true)

	assert.True(t, b.On(6, 6))
	assert.True(t, b.On(7, 7))
	assert.False(t, b.On(5, 5))
}

func TestRectDrawsOutlineOnly(t *testing.T) {
	b := New(8, 8)
	b.Rect(1, 1, 5, 4, true)

	assert.True(t, b.On(1, 1))
	assert.True(t, b.On(5, 1))
	assert.True(t, b.On(1, 4))
	assert.True(t, b.On(5, 4))
	assert.True(t, b.On(3, 1))
	assert.True(t, b.On(1, 2))
	assert.False(t, b.On(3, 2), "interior stays empty")
}

func TestLines(t *testing.T) {
	b := New(8, 8)
	b.HLine(1, 2, 3, true)
	b.VLine(6, 0, 4, true)

	assert.True(t, b.On(1, 2))
	assert.True(t, b.On(3, 2))
	assert.False(t, b.On(4, 2))
	assert.True(t, b.On(6, 0))
	assert.True(t, b.On(6, 3))
	assert.False(t, b.On(6, 4))
}

func TestClear(t *testing.T) {
	b := New(4, 4)
	b.FillRect(0, 0, 4, 4, true)
	b.Clear()

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.False(t, b.On(x, y))
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(4, 4)
	b.SetPixel(1, 1, true)

	c := b.Clone()
	require.True(t, c.On(1, 1))

	c.SetPixel(2, 2, true)
	assert.False(t, b.On(2, 2), "writes to the clone must not reach the original")
}

func TestDrawBufferTransfersOnPixelsOnly(t *testing.T) {
	dst := New(8, 8)
	dst.SetPixel(5, 5, true)

	src := New(2, 2)
	src.SetPixel(0, 0, true)

	dst.DrawBuffer(4, 4, src)

	assert.True(t, dst.On(4, 4), "lit source pixel lands at the offset")
	assert.True(t, dst.On(5, 5), "off source pixels leave existing content alone")
	assert.False(t, dst.On(4, 5))
}

func TestString(t *testing.T) {
	b := New(3, 2)
	b.SetPixel(0, 0, true)
	b.SetPixel(2, 1, true)

	assert.Equal(t, "#..\n..#", b.String())
}
