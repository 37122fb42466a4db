package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"gl-practice/app"
	"gl-practice/config"
	"gl-practice/core"
	"gl-practice/gpu"
	"gl-practice/internal/opengl"
)

var triangleCommand = &cli.Command{
	Name:  "triangle",
	Usage: "draw a single flat-coloured triangle",
	Flags: windowFlags,
	Action: func(ctx *cli.Context) error {
		if err := applyWindowFlags(ctx, &cfg); err != nil {
			return err
		}
		opts, err := app.TriangleOptions(cfg)
		if err != nil {
			return err
		}
		return runScene(ctx.Context, cfg.Window, false, opts, func(dev gpu.Device, opts app.Options) (app.Scene, error) {
			return app.NewTriangle(dev, opts)
		})
	},
}

var cubesCommand = &cli.Command{
	Name:  "cubes",
	Usage: "fly through ten textured cubes (WASD, mouse, scroll, Up/Down, Z, Esc)",
	Flags: windowFlags,
	Action: func(ctx *cli.Context) error {
		if err := applyWindowFlags(ctx, &cfg); err != nil {
			return err
		}
		opts, err := app.CubesOptions(cfg)
		if err != nil {
			return err
		}
		return runScene(ctx.Context, cfg.Window, true, opts, func(dev gpu.Device, opts app.Options) (app.Scene, error) {
			return app.NewCubes(dev, opts)
		})
	},
}

// runScene opens the window, builds the scene on its context and runs it
// until quit, window close or SIGINT/SIGTERM. The scene starts at the
// framebuffer size, since GLFW reports no resize for the initial one.
func runScene(parent context.Context, wc config.Window, captureCursor bool, opts app.Options, build func(gpu.Device, app.Options) (app.Scene, error)) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	win, err := core.NewWindow(core.WindowConfig{
		Width:         wc.Width,
		Height:        wc.Height,
		Title:         wc.Title,
		Resizable:     true,
		VSync:         wc.VSync,
		Fullscreen:    wc.Fullscreen,
		CaptureCursor: captureCursor,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	dev, err := opengl.New()
	if err != nil {
		return err
	}

	sc, err := build(dev, opts.WithFramebuffer(win.GetFramebufferSize()))
	if err != nil {
		return errors.Wrap(err, "start scene")
	}
	app.Run(ctx, win, dev, sc)
	return nil
}
