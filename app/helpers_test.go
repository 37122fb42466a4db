package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gl-practice/gpu/gputest"
	"gl-practice/input"
)

const (
	testVert = "#version 410 core\nvoid main() {}\n"
	testFrag = "#version 410 core\nout vec4 FragColor;\nvoid main() { FragColor = vec4(1.0); }\n"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	vp := filepath.Join(dir, "scene.vert")
	fp := filepath.Join(dir, "scene.frag")
	require.NoError(t, os.WriteFile(vp, []byte(testVert), 0o644))
	require.NoError(t, os.WriteFile(fp, []byte(testFrag), 0o644))
	return Options{
		Width:        800,
		Height:       600,
		VertexPath:   vp,
		FragmentPath: fp,
		Settings:     DefaultSettings(),
		Bindings:     DefaultBindings(),
	}
}

func newCubes(t *testing.T) (*State, *gputest.Device) {
	t.Helper()
	dev := gputest.New()
	s, err := NewCubes(dev, testOptions(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Release(dev) })
	return s, dev
}

func press(k input.Key) input.Event {
	return input.Event{Kind: input.KeyEvent, Key: k, Action: input.Press}
}

func release(k input.Key) input.Event {
	return input.Event{Kind: input.KeyEvent, Key: k, Action: input.Release}
}

type fakeNotifier struct {
	pending bool
	closed  bool
}

func (f *fakeNotifier) Changed() bool {
	c := f.pending
	f.pending = false
	return c
}

func (f *fakeNotifier) Close() error {
	f.closed = true
	return nil
}
