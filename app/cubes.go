package app

import (
	"image/color"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"gl-practice/camera"
	"gl-practice/gpu"
	"gl-practice/input"
	"gl-practice/scene"
	"gl-practice/shader"
	"gl-practice/texture"
)

const (
	// DefaultMix is the initial weight of the overlay texture.
	DefaultMix float32 = 0.2
	// MixRate is how much the mix ratio changes per second of held key.
	MixRate float32 = 1

	diffuseUnit uint32 = 0
	overlayUnit uint32 = 1
)

// CubesClearColor is the background of the cubes scene.
var CubesClearColor = gpu.Color{R: 0.2, G: 0.3, B: 0.3, A: 1}

// StartPosition is where the camera begins.
var StartPosition = mgl32.Vec3{0, 0, 3}

// Notifier reports source changes that should trigger a shader reload.
type Notifier interface {
	Changed() bool
	Close() error
}

// State is the cubes scene: everything the frame loop reads and writes.
type State struct {
	Camera    *camera.Camera
	Program   *shader.Program
	Mesh      gpu.Mesh
	Diffuse   uint32
	Overlay   uint32
	Instances []scene.Instance

	Keys      input.Keys
	Settings  Settings
	Bindings  Bindings
	Mix       float32
	Wireframe bool
	Width     int
	Height    int
	Clock     Clock
	Quit      bool

	textures *texture.Manager
	watcher  Notifier
}

// NewCubes builds the program, textures and mesh of the cubes scene. Any
// failure releases what was already created and aborts.
func NewCubes(dev gpu.Device, opts Options) (*State, error) {
	s := &State{
		Camera:    camera.New(StartPosition),
		Instances: scene.ReferenceInstances(),
		Settings:  opts.Settings,
		Bindings:  opts.Bindings,
		Mix:       DefaultMix,
		Width:     opts.Width,
		Height:    opts.Height,
		textures:  texture.NewManager(dev),
	}
	s.Camera.SetFOVRange(opts.Settings.FovMin, opts.Settings.FovMax)

	if err := s.build(dev, opts); err != nil {
		s.Release(dev)
		return nil, err
	}

	dev.EnableDepthTest()
	dev.SetViewport(s.Width, s.Height)
	s.Program.Use()
	s.bindSamplers()
	slog.Info("cubes scene ready", "instances", len(s.Instances), "program", s.Program.ID())
	return s, nil
}

func (s *State) build(dev gpu.Device, opts Options) error {
	var err error
	s.Program, err = shader.New(dev, opts.VertexPath, opts.FragmentPath)
	if err != nil {
		return errors.Wrap(err, "cubes program")
	}

	s.Diffuse, err = s.textures.LoadOrGenerate(opts.Texture1,
		texture.Checker("diffuse-checker", 256, color.RGBA{R: 200, G: 140, B: 70, A: 255}, color.RGBA{R: 110, G: 70, B: 35, A: 255}))
	if err != nil {
		return errors.Wrap(err, "diffuse texture")
	}
	s.Overlay, err = s.textures.LoadOrGenerate(opts.Texture2,
		texture.Checker("overlay-checker", 64, color.RGBA{R: 255, G: 255, B: 255, A: 255}, color.RGBA{R: 40, G: 90, B: 200, A: 255}))
	if err != nil {
		return errors.Wrap(err, "overlay texture")
	}

	s.Mesh, err = dev.UploadMesh(scene.CreateCube(1))
	if err != nil {
		return errors.Wrap(err, "cube mesh")
	}

	if opts.HotReload {
		w, err := shader.NewWatcher(opts.VertexPath, opts.FragmentPath)
		if err != nil {
			slog.Warn("shader hot reload disabled", "err", err)
		} else {
			s.watcher = w
		}
	}
	return nil
}

func (s *State) bindSamplers() {
	s.Program.SetInt("texture1", int(diffuseUnit))
	s.Program.SetInt("texture2", int(overlayUnit))
}

func (s *State) aspect() float32 {
	if s.Height <= 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

func (s *State) setViewProjection() {
	s.Program.SetMat4("view", s.Camera.ViewMatrix())
	s.Program.SetMat4("projection", s.Camera.ProjectionMatrix(s.aspect(), s.Settings.Near, s.Settings.Far))
}

// Frame advances the scene to now and draws it. events are applied in order
// before the camera matrices are derived, so every draw sees this frame's
// input.
func (s *State) Frame(dev gpu.Device, now float64, events []input.Event) {
	elapsed := s.Clock.Tick(now)
	s.HandleInput(dev, events, elapsed)
	s.reloadIfChanged()

	c := CubesClearColor
	dev.SetClearColor(c.R, c.G, c.B, c.A)
	dev.Clear(true)

	dev.BindTexture(diffuseUnit, s.Diffuse)
	dev.BindTexture(overlayUnit, s.Overlay)

	s.Program.Use()
	s.Program.SetFloat("mixValue", s.Mix)
	s.setViewProjection()
	for i, in := range s.Instances {
		s.Program.SetMat4("model", in.Model(i, s.Clock.Total))
		dev.Draw(s.Mesh)
	}
}

// HandleInput applies queued events, then integrates held keys over elapsed
// seconds.
func (s *State) HandleInput(dev gpu.Device, events []input.Event, elapsed float32) {
	for _, ev := range events {
		switch ev.Kind {
		case input.KeyEvent:
			s.Keys.Apply(ev)
			if ev.Action != input.Press {
				continue
			}
			switch ev.Key {
			case s.Bindings.Wireframe:
				s.Wireframe = !s.Wireframe
				dev.SetWireframe(s.Wireframe)
			case s.Bindings.Quit:
				s.Quit = true
			}
		case input.CursorEvent:
			s.Camera.ApplyMouseDelta(ev.X, ev.Y, s.Settings.Sensitivity)
		case input.ScrollEvent:
			s.Camera.ApplyScroll(ev.Y)
		case input.ResizeEvent:
			// Minimized windows report 0x0.
			if ev.Width > 0 && ev.Height > 0 {
				s.Width, s.Height = ev.Width, ev.Height
				dev.SetViewport(ev.Width, ev.Height)
			}
		case input.CloseEvent:
			s.Quit = true
		case input.FocusEvent:
			// Releases are not reported while unfocused.
			if !ev.Focused {
				s.Keys.Clear()
				s.Camera.ResetMouse()
			}
		}
	}

	moves := []struct {
		key input.Key
		dir camera.Direction
	}{
		{s.Bindings.Forward, camera.Forward},
		{s.Bindings.Backward, camera.Backward},
		{s.Bindings.Left, camera.StrafeLeft},
		{s.Bindings.Right, camera.StrafeRight},
	}
	for _, m := range moves {
		if s.Keys.IsDown(m.key) {
			s.Camera.ApplyMovement(m.dir, elapsed, s.Settings.Speed)
		}
	}

	if s.Keys.IsDown(s.Bindings.MixUp) {
		s.Mix += MixRate * elapsed
	}
	if s.Keys.IsDown(s.Bindings.MixDown) {
		s.Mix -= MixRate * elapsed
	}
	s.Mix = mgl32.Clamp(s.Mix, 0, 1)
}

func (s *State) reloadIfChanged() {
	if s.watcher == nil || !s.watcher.Changed() {
		return
	}
	if err := s.Program.Reload(); err != nil {
		slog.Warn("shader reload failed, keeping previous program", "err", err)
		return
	}
	s.Program.Use()
	s.bindSamplers()
}

// Done reports whether the scene asked to exit.
func (s *State) Done() bool { return s.Quit }

// Release frees every GPU resource the scene created. It is safe on a
// partially built scene.
func (s *State) Release(dev gpu.Device) {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			slog.Warn("close shader watcher", "err", err)
		}
		s.watcher = nil
	}
	if s.Mesh.VAO != 0 {
		dev.ReleaseMesh(&s.Mesh)
	}
	s.textures.DestroyAll()
	if s.Program != nil {
		s.Program.Destroy()
	}
}
