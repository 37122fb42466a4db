package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"gl-practice/gpu/gputest"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// twoRows is red on top and blue on the bottom.
func twoRows() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for x := 0; x < 3; x++ {
		img.Set(x, 0, red)
		img.Set(x, 1, blue)
	}
	return img
}

func TestFromImageFlips(t *testing.T) {
	img := FromImage("rows", twoRows())
	require.Equal(t, 3, img.Width)
	require.Equal(t, 2, img.Height)
	require.Len(t, img.Pixels, 3*2*4)
	assert.Equal(t, blue, img.At(0, 0), "bottom row comes first")
	assert.Equal(t, red, img.At(2, 1))
}

func TestFromImageOffsetBounds(t *testing.T) {
	src := twoRows().SubImage(image.Rect(1, 0, 3, 2))
	img := FromImage("sub", src)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, blue, img.At(0, 0))
	assert.Equal(t, red, img.At(1, 1))
}

func TestFlipYOddHeight(t *testing.T) {
	img := &Image{Width: 1, Height: 3, Pixels: []byte{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}}
	img.FlipY()
	assert.Equal(t, []byte{3, 3, 3, 3, 2, 2, 2, 2, 1, 1, 1, 1}, img.Pixels)
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, enc func(*os.File) error) string {
		p := filepath.Join(dir, name)
		f, err := os.Create(p)
		require.NoError(t, err)
		require.NoError(t, enc(f))
		require.NoError(t, f.Close())
		return p
	}
	pngPath := write("rows.png", func(f *os.File) error { return png.Encode(f, twoRows()) })
	bmpPath := write("rows.bmp", func(f *os.File) error { return bmp.Encode(f, twoRows()) })

	for _, p := range []string{pngPath, bmpPath} {
		img, err := Load(p)
		require.NoError(t, err, p)
		assert.Equal(t, p, img.Name)
		assert.Equal(t, blue, img.At(1, 0), p)
		assert.Equal(t, red, img.At(1, 1), p)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	junk := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, err = Load(junk)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestChecker(t *testing.T) {
	img := Checker("check", 16, red, blue)
	require.Len(t, img.Pixels, 16*16*4)
	assert.Equal(t, red, img.At(0, 0))
	assert.Equal(t, red, img.At(1, 1), "cells are two pixels wide")
	assert.Equal(t, blue, img.At(2, 0))
	assert.Equal(t, blue, img.At(0, 2))
	assert.Equal(t, red, img.At(2, 2))

	tiny := Checker("tiny", 0, red, blue)
	assert.Equal(t, 1, tiny.Width)
	assert.Equal(t, red, tiny.At(0, 0))
}

func TestManager(t *testing.T) {
	dev := gputest.New()
	m := NewManager(dev)

	a, err := m.Upload(Checker("a", 8, red, blue))
	require.NoError(t, err)
	again, err := m.Upload(Checker("a", 8, red, blue))
	require.NoError(t, err)
	assert.Equal(t, a, again)

	b, err := m.LoadOrGenerate("", Solid("white", color.RGBA{R: 255, G: 255, B: 255, A: 255}))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, m.Len())

	_, err = m.Upload(&Image{Name: "bad", Width: 2, Height: 2, Pixels: []byte{1}})
	assert.Error(t, err)

	_, err = m.LoadOrGenerate(filepath.Join(t.TempDir(), "none.png"), nil)
	assert.Error(t, err)

	m.DestroyAll()
	assert.Zero(t, m.Len())
	assert.False(t, dev.Textures[a])
	assert.False(t, dev.Textures[b])
}
