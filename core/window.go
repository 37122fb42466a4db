// Package core owns the GLFW window and its OpenGL context.
package core

import (
	"log/slog"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"

	"gl-practice/input"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	events input.Queue
}

type WindowConfig struct {
	Width      int
	Height     int
	Title      string
	Resizable  bool
	VSync      bool
	Fullscreen bool
	// Hidden creates the window without showing it.
	Hidden bool
	// CaptureCursor hides the cursor and reports unbounded motion.
	CaptureCursor bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:         800,
		Height:        600,
		Title:         "OpenGLRenderingPractice",
		Resizable:     true,
		VSync:         true,
		CaptureCursor: true,
	}
}

// NewWindow initializes GLFW, opens a window with a 4.1 core context and
// makes that context current.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "initialize GLFW")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))
	glfw.WindowHint(glfw.Visible, boolToInt(!config.Hidden))

	monitor := (*glfw.Monitor)(nil)
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create window")
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if config.CaptureCursor {
		handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			handle.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
	}

	window := &Window{
		Handle: handle,
		Title:  config.Title,
	}
	window.Width, window.Height = handle.GetFramebufferSize()
	window.installCallbacks()

	slog.Debug("window created", "title", config.Title, "width", window.Width, "height", window.Height)
	return window, nil
}

// installCallbacks forwards GLFW callbacks into the event queue. They fire
// inside PollEvents, on the main thread.
func (w *Window) installCallbacks() {
	w.Handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.events.Push(input.Event{Kind: input.KeyEvent, Key: input.Key(key), Action: toAction(action)})
	})
	w.Handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.events.Push(input.Event{Kind: input.CursorEvent, X: x, Y: y})
	})
	w.Handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.events.Push(input.Event{Kind: input.ScrollEvent, X: xoff, Y: yoff})
	})
	w.Handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width, w.Height = width, height
		w.events.Push(input.Event{Kind: input.ResizeEvent, Width: width, Height: height})
	})
	w.Handle.SetCloseCallback(func(_ *glfw.Window) {
		w.events.Push(input.Event{Kind: input.CloseEvent})
	})
	w.Handle.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.events.Push(input.Event{Kind: input.FocusEvent, Focused: focused})
	})
}

func toAction(a glfw.Action) input.Action {
	switch a {
	case glfw.Press:
		return input.Press
	case glfw.Repeat:
		return input.Repeat
	default:
		return input.Release
	}
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.Handle.SetShouldClose(v)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// DrainEvents returns the events collected since the last call.
func (w *Window) DrainEvents() []input.Event {
	return w.events.Drain()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// Now returns seconds since GLFW was initialized.
func (w *Window) Now() float64 {
	return glfw.GetTime()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
