package app

import (
	"context"
	"log/slog"

	"gl-practice/gpu"
	"gl-practice/input"
)

// Host is the window side of the loop.
type Host interface {
	ShouldClose() bool
	SetShouldClose(bool)
	// Now returns a monotonic timestamp in seconds.
	Now() float64
	DrainEvents() []input.Event
	SwapBuffers()
	PollEvents()
}

// Scene is one runnable practice scene.
type Scene interface {
	Frame(dev gpu.Device, now float64, events []input.Event)
	Done() bool
	Release(dev gpu.Device)
}

var (
	_ Scene = (*State)(nil)
	_ Scene = (*Triangle)(nil)
)

// Run drives sc until the window closes, the scene quits or ctx is
// cancelled, then releases the scene.
func Run(ctx context.Context, host Host, dev gpu.Device, sc Scene) {
	defer sc.Release(dev)

	frames := 0
	for !host.ShouldClose() {
		if err := ctx.Err(); err != nil {
			slog.Info("frame loop cancelled", "frames", frames)
			return
		}
		sc.Frame(dev, host.Now(), host.DrainEvents())
		host.SwapBuffers()
		host.PollEvents()
		frames++
		if sc.Done() {
			host.SetShouldClose(true)
		}
	}
	slog.Info("frame loop finished", "frames", frames)
}
