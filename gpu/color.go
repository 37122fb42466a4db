package gpu

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// RGBA8 converts c to 8-bit channels, clamping out-of-range components.
func (c Color) RGBA8() [4]uint8 {
	conv := func(f float32) uint8 {
		switch {
		case f <= 0:
			return 0
		case f >= 1:
			return 255
		default:
			return uint8(f*255 + 0.5)
		}
	}
	return [4]uint8{conv(c.R), conv(c.G), conv(c.B), conv(c.A)}
}
