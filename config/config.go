// Package config loads the practice settings from a TOML file layered over
// built-in defaults.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"gl-practice/input"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "config.toml"

type Config struct {
	Window Window `toml:"window"`
	Camera Camera `toml:"camera"`
	Assets Assets `toml:"assets"`
	Keys   Keys   `toml:"keys"`
	Debug  Debug  `toml:"debug"`
}

type Window struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	VSync      bool   `toml:"vsync"`
	Fullscreen bool   `toml:"fullscreen"`
}

type Camera struct {
	Speed       float32 `toml:"speed"`
	Sensitivity float32 `toml:"sensitivity"`
	FovMin      float32 `toml:"fov_min"`
	FovMax      float32 `toml:"fov_max"`
	Near        float32 `toml:"near"`
	Far         float32 `toml:"far"`
}

// Assets names shader and texture files. An empty texture path selects a
// generated checkerboard.
type Assets struct {
	TriangleVertex   string `toml:"triangle_vertex"`
	TriangleFragment string `toml:"triangle_fragment"`
	CubesVertex      string `toml:"cubes_vertex"`
	CubesFragment    string `toml:"cubes_fragment"`
	Texture1         string `toml:"texture1"`
	Texture2         string `toml:"texture2"`
}

// Keys holds key names as accepted by input.ParseKey.
type Keys struct {
	Forward   string `toml:"forward"`
	Backward  string `toml:"backward"`
	Left      string `toml:"left"`
	Right     string `toml:"right"`
	MixUp     string `toml:"mix_up"`
	MixDown   string `toml:"mix_down"`
	Wireframe string `toml:"wireframe"`
	Quit      string `toml:"quit"`
}

type Debug struct {
	HotReload bool `toml:"hot_reload"`
}

// Default returns the settings the scenes were tuned with.
func Default() Config {
	return Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "OpenGLRenderingPractice",
			VSync:  true,
		},
		Camera: Camera{
			Speed:       7.5,
			Sensitivity: 0.1,
			FovMin:      1,
			FovMax:      45,
			Near:        0.1,
			Far:         1000,
		},
		Assets: Assets{
			TriangleVertex:   "assets/shaders/triangle.vert",
			TriangleFragment: "assets/shaders/triangle.frag",
			CubesVertex:      "assets/shaders/cubes.vert",
			CubesFragment:    "assets/shaders/cubes.frag",
		},
		Keys: Keys{
			Forward:   "W",
			Backward:  "S",
			Left:      "A",
			Right:     "D",
			MixUp:     "Up",
			MixDown:   "Down",
			Wireframe: "Z",
			Quit:      "Escape",
		},
	}
}

// Load reads path over Default. A missing file is not an error; a malformed
// or invalid one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Default(), errors.Wrapf(err, "parse config %s:%d:%d", path, row, col)
		}
		return Default(), errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create config dir")
		}
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}

// Marshal encodes cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return buf.Bytes(), nil
}

// Validate rejects settings the scenes cannot run with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Newf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	cam := c.Camera
	if cam.FovMin <= 0 || cam.FovMin > cam.FovMax {
		return errors.Newf("fov range [%g, %g] is invalid", cam.FovMin, cam.FovMax)
	}
	if cam.Near <= 0 || cam.Near >= cam.Far {
		return errors.Newf("clip planes near=%g far=%g are invalid", cam.Near, cam.Far)
	}
	if cam.Speed < 0 || cam.Sensitivity < 0 {
		return errors.New("camera speed and sensitivity must not be negative")
	}
	for _, k := range []struct{ field, name string }{
		{"forward", c.Keys.Forward},
		{"backward", c.Keys.Backward},
		{"left", c.Keys.Left},
		{"right", c.Keys.Right},
		{"mix_up", c.Keys.MixUp},
		{"mix_down", c.Keys.MixDown},
		{"wireframe", c.Keys.Wireframe},
		{"quit", c.Keys.Quit},
	} {
		if _, ok := input.ParseKey(k.name); !ok {
			return errors.Newf("keys.%s: unknown key %q", k.field, k.name)
		}
	}
	return nil
}
