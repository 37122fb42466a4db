// Package texture decodes images into RGBA8 pixel buffers and uploads them
// to a gpu.Device.
package texture

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cockroachdb/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Image is CPU-side pixel data: 4 bytes per pixel, rows bottom to top as GL
// expects them.
type Image struct {
	Name   string
	Width  int
	Height int
	Pixels []byte
}

// Load reads a PNG, JPEG, BMP or WebP file and flips it for upload.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open texture %q", path)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode texture %q", path)
	}
	img := FromImage(path, src)
	if img.Width == 0 || img.Height == 0 {
		return nil, errors.Newf("texture %q (%s) is empty", path, format)
	}
	return img, nil
}

// FromImage converts any image.Image to a flipped RGBA8 Image.
func FromImage(name string, src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	img := &Image{
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: rgba.Pix,
	}
	img.FlipY()
	return img
}

// FlipY reverses the row order in place.
func (img *Image) FlipY() {
	row := img.Width * 4
	tmp := make([]byte, row)
	for top, bot := 0, img.Height-1; top < bot; top, bot = top+1, bot-1 {
		a := img.Pixels[top*row : (top+1)*row]
		b := img.Pixels[bot*row : (bot+1)*row]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// At returns the pixel at column x of row y, counting rows from the bottom.
func (img *Image) At(x, y int) color.RGBA {
	i := (y*img.Width + x) * 4
	p := img.Pixels[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Solid returns a 1x1 image of one colour.
func Solid(name string, c color.RGBA) *Image {
	return &Image{Name: name, Width: 1, Height: 1, Pixels: []byte{c.R, c.G, c.B, c.A}}
}

// Checker returns a size x size checkerboard of 8x8 cells alternating c1
// and c2, starting with c1 in the corner.
func Checker(name string, size int, c1, c2 color.RGBA) *Image {
	if size < 1 {
		size = 1
	}
	block := size / 8
	if block < 1 {
		block = 1
	}
	pixels := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := c2
			if (x/block+y/block)%2 == 0 {
				c = c1
			}
			i := (y*size + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return &Image{Name: name, Width: size, Height: size, Pixels: pixels}
}
