package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gl-practice/gpu"
	"gl-practice/gpu/gputest"
	"gl-practice/input"
	"gl-practice/shader"
)

func TestNewCubesStartup(t *testing.T) {
	s, dev := newCubes(t)

	assert.True(t, dev.DepthTest)
	assert.Equal(t, 800, dev.ViewportW)
	assert.Equal(t, 600, dev.ViewportH)
	assert.Equal(t, DefaultMix, s.Mix)
	assert.Len(t, s.Instances, 10)
	require.Len(t, dev.Meshes, 1)
	assert.Equal(t, "Cube", dev.Meshes[0].Name)
	assert.True(t, dev.Textures[s.Diffuse])
	assert.True(t, dev.Textures[s.Overlay])
	assert.NotEqual(t, s.Diffuse, s.Overlay)

	samplers := map[string]interface{}{}
	for _, w := range dev.Writes {
		samplers[w.Name] = w.Value
	}
	assert.Equal(t, int32(0), samplers["texture1"])
	assert.Equal(t, int32(1), samplers["texture2"])
	assert.Empty(t, dev.WritesOf("view"), "the first frame sets the camera")
	assert.Empty(t, dev.WritesOf("projection"))
}

func TestNewCubesUsesFramebufferSize(t *testing.T) {
	dev := gputest.New()
	s, err := NewCubes(dev, testOptions(t).WithFramebuffer(1600, 1200))
	require.NoError(t, err)
	defer s.Release(dev)

	assert.Equal(t, 1600, dev.ViewportW)
	assert.Equal(t, 1200, dev.ViewportH)
	s.Frame(dev, 0, nil)
	want := s.Camera.ProjectionMatrix(1600.0/1200.0, s.Settings.Near, s.Settings.Far)
	assert.Equal(t, want, dev.WritesOf("projection")[0].Value)
}

func TestNewCubesFailsFast(t *testing.T) {
	dev := gputest.New()
	dev.FailCompile[gpu.FragmentStage] = "0:1: syntax error"

	s, err := NewCubes(dev, testOptions(t))
	require.Error(t, err)
	assert.Nil(t, s)
	var cerr *shader.CompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, gpu.FragmentStage, cerr.Stage)
	assert.Empty(t, dev.Meshes, "nothing is built after a failed stage")
	assert.Empty(t, dev.Textures)
}

func TestNewCubesBadTextureReleasesProgram(t *testing.T) {
	dev := gputest.New()
	opts := testOptions(t)
	opts.Texture2 = filepath.Join(t.TempDir(), "missing.png")

	_, err := NewCubes(dev, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	for id, p := range dev.Programs {
		assert.True(t, p.Deleted, "program %d leaked", id)
	}
	for id, live := range dev.Textures {
		assert.False(t, live, "texture %d leaked", id)
	}
}

func TestFrameDrawsEveryInstance(t *testing.T) {
	s, dev := newCubes(t)
	dev.Reset()

	s.Frame(dev, 0, nil)
	s.Frame(dev, 2, nil)
	dev.Reset()
	s.Frame(dev, 2.5, nil)

	require.Len(t, dev.Draws, 10)
	for _, d := range dev.Draws {
		assert.Equal(t, s.Program.ID(), d.Program)
		assert.Equal(t, s.Mesh, d.Mesh)
		assert.Equal(t, s.Diffuse, d.Textures[0])
		assert.Equal(t, s.Overlay, d.Textures[1])
	}

	models := dev.WritesOf("model")
	require.Len(t, models, 10)
	for i := range models {
		for j := i + 1; j < len(models); j++ {
			assert.NotEqual(t, models[i].Value, models[j].Value, "instances %d and %d share a model", i, j)
		}
	}
	assert.Len(t, dev.WritesOf("view"), 1)
	assert.Len(t, dev.WritesOf("projection"), 1)
	assert.Len(t, dev.WritesOf("mixValue"), 1)
	assert.Equal(t, 1, dev.Clears)
	assert.Equal(t, 1, dev.DepthClears)
	assert.Equal(t, [4]float32{0.2, 0.3, 0.3, 1}, dev.ClearColor)
}

func TestFrameOrder(t *testing.T) {
	s, dev := newCubes(t)
	dev.Reset()
	s.Frame(dev, 0, nil)

	index := func(prefix string) int {
		for i, op := range dev.Ops {
			if strings.HasPrefix(op, prefix) {
				return i
			}
		}
		return -1
	}
	clear, bind, use, draw := index("clear"), index("bind texture 0"), index("use"), index("draw")
	require.True(t, clear >= 0 && bind >= 0 && use >= 0 && draw >= 0, "ops: %v", dev.Ops)
	assert.Less(t, clear, bind)
	assert.Less(t, bind, use)
	assert.Less(t, use, draw)

	view, proj, model := index("uniform view"), index("uniform projection"), index("uniform model")
	require.True(t, view >= 0 && proj >= 0 && model >= 0, "ops: %v", dev.Ops)
	assert.Less(t, use, view)
	assert.Less(t, view, model)
	assert.Less(t, proj, model)
	assert.Less(t, proj, draw)
}

func TestFrameDrawsWithThisFramesInput(t *testing.T) {
	s, dev := newCubes(t)
	s.Frame(dev, 0, nil)
	dev.Reset()

	s.Frame(dev, 0.1, []input.Event{
		{Kind: input.ScrollEvent, Y: 20},
		press(input.KeyW),
	})
	require.Equal(t, float32(25), s.Camera.FOV())

	projs := dev.WritesOf("projection")
	require.Len(t, projs, 1)
	want := s.Camera.ProjectionMatrix(s.aspect(), s.Settings.Near, s.Settings.Far)
	assert.Equal(t, want, projs[0].Value)

	views := dev.WritesOf("view")
	require.Len(t, views, 1)
	assert.Equal(t, s.Camera.ViewMatrix(), views[0].Value)

	first := -1
	for i, op := range dev.Ops {
		if strings.HasPrefix(op, "draw") {
			first = i
			break
		}
	}
	require.GreaterOrEqual(t, first, 0)
	assert.Contains(t, dev.Ops[:first], "uniform projection")
	assert.Contains(t, dev.Ops[:first], "uniform view")
}

func TestRotatingInstancesTurn(t *testing.T) {
	s, dev := newCubes(t)
	s.Frame(dev, 0, nil)
	dev.Reset()
	s.Frame(dev, 1, nil)
	first := dev.WritesOf("model")
	dev.Reset()
	s.Frame(dev, 2, nil)
	second := dev.WritesOf("model")

	for i := range s.Instances {
		moved := first[i].Value != second[i].Value
		assert.Equal(t, i%3 == 0 && i != 0, moved, "instance %d", i)
	}
}

func TestStrafeRightOneSecond(t *testing.T) {
	s, dev := newCubes(t)
	start := s.Camera.Position()
	right := s.Camera.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()

	s.Frame(dev, 10, []input.Event{press(input.KeyD)})
	assert.Equal(t, start, s.Camera.Position(), "first frame has no elapsed time")
	s.Frame(dev, 10.5, nil)
	s.Frame(dev, 11, nil)

	want := start.Add(right.Mul(7.5))
	got := s.Camera.Position()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-4)
	}

	s.Frame(dev, 11.5, []input.Event{release(input.KeyD)})
	s.Frame(dev, 12, nil)
	assert.Equal(t, got, s.Camera.Position())
}

func TestMixRatio(t *testing.T) {
	s, dev := newCubes(t)
	s.Frame(dev, 0, []input.Event{press(input.KeyUp)})
	s.Frame(dev, 0.5, nil)
	assert.InDelta(t, 0.7, s.Mix, 1e-6)
	s.Frame(dev, 5, nil)
	assert.Equal(t, float32(1), s.Mix)

	s.Frame(dev, 5, []input.Event{release(input.KeyUp), press(input.KeyDown)})
	s.Frame(dev, 10, nil)
	assert.Equal(t, float32(0), s.Mix)

	dev.Reset()
	s.Frame(dev, 10.1, nil)
	assert.Equal(t, float32(0), dev.WritesOf("mixValue")[0].Value)
}

func TestWireframeToggle(t *testing.T) {
	s, dev := newCubes(t)
	s.Frame(dev, 0, []input.Event{press(input.KeyZ)})
	assert.True(t, s.Wireframe)
	assert.True(t, dev.Wireframe)

	s.Frame(dev, 0.1, []input.Event{{Kind: input.KeyEvent, Key: input.KeyZ, Action: input.Repeat}})
	assert.True(t, dev.Wireframe, "repeats do not toggle")

	s.Frame(dev, 0.2, []input.Event{release(input.KeyZ), press(input.KeyZ)})
	assert.False(t, s.Wireframe)
	assert.False(t, dev.Wireframe)
}

func TestMouseAndScroll(t *testing.T) {
	s, dev := newCubes(t)
	yaw := s.Camera.Yaw()

	s.Frame(dev, 0, []input.Event{{Kind: input.CursorEvent, X: 400, Y: 300}})
	assert.Equal(t, yaw, s.Camera.Yaw(), "first cursor sample sets the baseline")

	s.Frame(dev, 0.1, []input.Event{{Kind: input.CursorEvent, X: 500, Y: 300}})
	assert.InDelta(t, yaw+10, s.Camera.Yaw(), 1e-4)

	s.Frame(dev, 0.2, []input.Event{{Kind: input.ScrollEvent, Y: 5}})
	assert.Equal(t, float32(40), s.Camera.FOV())
}

func TestResize(t *testing.T) {
	s, dev := newCubes(t)
	dev.Reset()
	s.Frame(dev, 0, []input.Event{{Kind: input.ResizeEvent, Width: 1024, Height: 512}})

	assert.Equal(t, 1024, dev.ViewportW)
	assert.Equal(t, 512, dev.ViewportH)
	want := s.Camera.ProjectionMatrix(2, s.Settings.Near, s.Settings.Far)
	assert.Equal(t, want, dev.WritesOf("projection")[0].Value)

	s.Frame(dev, 0.1, []input.Event{{Kind: input.ResizeEvent}})
	assert.Equal(t, 1024, s.Width, "zero size is ignored")
}

func TestFocusLossReleasesKeysAndMouse(t *testing.T) {
	s, dev := newCubes(t)
	s.Frame(dev, 0, []input.Event{press(input.KeyW), {Kind: input.CursorEvent, X: 100, Y: 100}})
	s.Frame(dev, 0.5, nil)
	moved := s.Camera.Position()

	s.Frame(dev, 1, []input.Event{{Kind: input.FocusEvent, Focused: false}})
	assert.False(t, s.Keys.IsDown(input.KeyW))
	assert.Equal(t, moved, s.Camera.Position())
	s.Frame(dev, 2, nil)
	assert.Equal(t, moved, s.Camera.Position(), "no movement after focus loss")

	yaw := s.Camera.Yaw()
	s.Frame(dev, 2.1, []input.Event{
		{Kind: input.FocusEvent, Focused: true},
		{Kind: input.CursorEvent, X: 700, Y: 100},
	})
	assert.Equal(t, yaw, s.Camera.Yaw(), "the first sample after refocus is a baseline")
}

func TestQuit(t *testing.T) {
	for name, ev := range map[string]input.Event{
		"escape": press(input.KeyEscape),
		"close":  {Kind: input.CloseEvent},
	} {
		t.Run(name, func(t *testing.T) {
			s, dev := newCubes(t)
			assert.False(t, s.Done())
			s.Frame(dev, 0, []input.Event{ev})
			assert.True(t, s.Done())
		})
	}
}

func TestHotReload(t *testing.T) {
	s, dev := newCubes(t)
	n := &fakeNotifier{}
	s.watcher = n
	old := s.Program.ID()

	s.Frame(dev, 0, nil)
	assert.Equal(t, old, s.Program.ID())

	n.pending = true
	dev.Reset()
	s.Frame(dev, 0.1, nil)
	assert.NotEqual(t, old, s.Program.ID())
	assert.True(t, dev.Programs[old].Deleted)
	assert.Len(t, dev.WritesOf("texture1"), 1, "samplers are reassigned")
	assert.Len(t, dev.Draws, 10)
	for _, d := range dev.Draws {
		assert.Equal(t, s.Program.ID(), d.Program)
	}

	current := s.Program.ID()
	dev.FailCompile[gpu.VertexStage] = "broken"
	n.pending = true
	dev.Reset()
	s.Frame(dev, 0.2, nil)
	assert.Equal(t, current, s.Program.ID(), "a failed reload keeps the running program")
	assert.Len(t, dev.Draws, 10)

	s.Release(dev)
	assert.True(t, n.closed)
}

func TestReleaseFreesEverything(t *testing.T) {
	dev := gputest.New()
	s, err := NewCubes(dev, testOptions(t))
	require.NoError(t, err)
	id := s.Program.ID()

	s.Release(dev)
	assert.True(t, dev.Programs[id].Deleted)
	assert.Zero(t, s.Mesh.VAO)
	for tex, live := range dev.Textures {
		assert.False(t, live, "texture %d", tex)
	}
	s.Release(dev)
}
