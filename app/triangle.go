package app

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"gl-practice/gpu"
	"gl-practice/input"
	"gl-practice/scene"
	"gl-practice/shader"
)

// TriangleClearColor is the background of the triangle scene.
var TriangleClearColor = gpu.Color{R: 0.07, G: 0.13, B: 0.17, A: 1}

// Triangle draws one flat-coloured triangle.
type Triangle struct {
	Program *shader.Program
	Mesh    gpu.Mesh
	Quit    bool

	quitKey input.Key
}

func NewTriangle(dev gpu.Device, opts Options) (*Triangle, error) {
	prog, err := shader.New(dev, opts.VertexPath, opts.FragmentPath)
	if err != nil {
		return nil, errors.Wrap(err, "triangle program")
	}
	mesh, err := dev.UploadMesh(scene.CreateTriangle())
	if err != nil {
		prog.Destroy()
		return nil, errors.Wrap(err, "triangle mesh")
	}
	dev.SetViewport(opts.Width, opts.Height)
	slog.Info("triangle scene ready", "program", prog.ID())
	return &Triangle{Program: prog, Mesh: mesh, quitKey: opts.Bindings.Quit}, nil
}

func (t *Triangle) Frame(dev gpu.Device, _ float64, events []input.Event) {
	for _, ev := range events {
		switch {
		case ev.Kind == input.CloseEvent:
			t.Quit = true
		case ev.Kind == input.KeyEvent && ev.Action == input.Press && ev.Key == t.quitKey:
			t.Quit = true
		case ev.Kind == input.ResizeEvent && ev.Width > 0 && ev.Height > 0:
			dev.SetViewport(ev.Width, ev.Height)
		}
	}

	c := TriangleClearColor
	dev.SetClearColor(c.R, c.G, c.B, c.A)
	dev.Clear(false)
	t.Program.Use()
	dev.Draw(t.Mesh)
}

func (t *Triangle) Done() bool { return t.Quit }

func (t *Triangle) Release(dev gpu.Device) {
	if t.Mesh.VAO != 0 {
		dev.ReleaseMesh(&t.Mesh)
	}
	t.Program.Destroy()
}
