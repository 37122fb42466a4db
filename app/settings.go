// Package app runs the practice scenes: per-frame input handling, uniform
// updates and draws against a gpu.Device.
package app

import (
	"github.com/cockroachdb/errors"

	"gl-practice/camera"
	"gl-practice/config"
	"gl-practice/input"
)

// Settings are the tunables the frame loop reads every frame.
type Settings struct {
	Speed       float32
	Sensitivity float32
	FovMin      float32
	FovMax      float32
	Near        float32
	Far         float32
}

func DefaultSettings() Settings {
	return Settings{
		Speed:       camera.DefaultSpeed,
		Sensitivity: camera.DefaultSensitivity,
		FovMin:      camera.DefaultFovMin,
		FovMax:      camera.DefaultFovMax,
		Near:        camera.DefaultNear,
		Far:         camera.DefaultFar,
	}
}

// Bindings maps actions to keys.
type Bindings struct {
	Forward   input.Key
	Backward  input.Key
	Left      input.Key
	Right     input.Key
	MixUp     input.Key
	MixDown   input.Key
	Wireframe input.Key
	Quit      input.Key
}

func DefaultBindings() Bindings {
	return Bindings{
		Forward:   input.KeyW,
		Backward:  input.KeyS,
		Left:      input.KeyA,
		Right:     input.KeyD,
		MixUp:     input.KeyUp,
		MixDown:   input.KeyDown,
		Wireframe: input.KeyZ,
		Quit:      input.KeyEscape,
	}
}

// Options is everything a scene needs to start.
type Options struct {
	Width, Height int

	VertexPath   string
	FragmentPath string
	Texture1     string
	Texture2     string
	HotReload    bool

	Settings Settings
	Bindings Bindings
}

// WithFramebuffer returns o sized to the window's framebuffer, which differs
// from the window size on HiDPI displays. Non-positive sizes are ignored.
func (o Options) WithFramebuffer(width, height int) Options {
	if width > 0 && height > 0 {
		o.Width, o.Height = width, height
	}
	return o
}

// TriangleOptions picks the triangle scene's settings out of cfg.
func TriangleOptions(cfg config.Config) (Options, error) {
	opts, err := fromConfig(cfg)
	opts.VertexPath = cfg.Assets.TriangleVertex
	opts.FragmentPath = cfg.Assets.TriangleFragment
	return opts, err
}

// CubesOptions picks the cubes scene's settings out of cfg.
func CubesOptions(cfg config.Config) (Options, error) {
	opts, err := fromConfig(cfg)
	opts.VertexPath = cfg.Assets.CubesVertex
	opts.FragmentPath = cfg.Assets.CubesFragment
	opts.Texture1 = cfg.Assets.Texture1
	opts.Texture2 = cfg.Assets.Texture2
	return opts, err
}

func fromConfig(cfg config.Config) (Options, error) {
	opts := Options{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		HotReload: cfg.Debug.HotReload,
		Settings: Settings{
			Speed:       cfg.Camera.Speed,
			Sensitivity: cfg.Camera.Sensitivity,
			FovMin:      cfg.Camera.FovMin,
			FovMax:      cfg.Camera.FovMax,
			Near:        cfg.Camera.Near,
			Far:         cfg.Camera.Far,
		},
	}
	b, err := bindingsFromConfig(cfg.Keys)
	if err != nil {
		return opts, err
	}
	opts.Bindings = b
	return opts, nil
}

func bindingsFromConfig(k config.Keys) (Bindings, error) {
	var b Bindings
	for _, f := range []struct {
		dst  *input.Key
		name string
	}{
		{&b.Forward, k.Forward},
		{&b.Backward, k.Backward},
		{&b.Left, k.Left},
		{&b.Right, k.Right},
		{&b.MixUp, k.MixUp},
		{&b.MixDown, k.MixDown},
		{&b.Wireframe, k.Wireframe},
		{&b.Quit, k.Quit},
	} {
		key, ok := input.ParseKey(f.name)
		if !ok {
			return Bindings{}, errors.Newf("unknown key %q", f.name)
		}
		*f.dst = key
	}
	return b, nil
}

// Clock turns absolute timestamps into per-frame elapsed time.
type Clock struct {
	prev    float64
	started bool
	// Total is the sum of all elapsed times so far, in seconds.
	Total float32
}

// Tick returns seconds since the previous call; the first call returns 0.
// A clock that goes backwards also yields 0.
func (c *Clock) Tick(now float64) float32 {
	if !c.started {
		c.started = true
		c.prev = now
		return 0
	}
	elapsed := float32(now - c.prev)
	c.prev = now
	if elapsed < 0 {
		elapsed = 0
	}
	c.Total += elapsed
	return elapsed
}
