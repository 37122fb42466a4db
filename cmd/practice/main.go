// Command practice opens the OpenGL practice scenes.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"gl-practice/config"
	"gl-practice/internal/logx"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML settings file",
		Value: config.DefaultPath,
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log at info level",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "vv",
		Usage: "log at debug level",
	}
	quietFlag = &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "log errors only",
	}

	widthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "window width in pixels",
	}
	heightFlag = &cli.IntFlag{
		Name:  "height",
		Usage: "window height in pixels",
	}
	vsyncFlag = &cli.BoolFlag{
		Name:  "vsync",
		Usage: "wait for vertical sync",
	}
	fullscreenFlag = &cli.BoolFlag{
		Name:  "fullscreen",
		Usage: "open on the primary monitor in fullscreen",
	}
	windowFlags = []cli.Flag{widthFlag, heightFlag, vsyncFlag, fullscreenFlag}

	// cfg is loaded once in Before and read by the commands.
	cfg config.Config

	cliApp = &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "OpenGL shader and camera practice scenes",
		Flags: []cli.Flag{configFlag, verboseFlag, debugFlag, quietFlag},
		Commands: []*cli.Command{
			triangleCommand,
			cubesCommand,
			configCommand,
		},
		HideVersion: true,
	}
)

func init() {
	cliApp.Before = func(ctx *cli.Context) error {
		logx.Setup(os.Stderr, logx.LevelFromFlags(ctx.Bool(debugFlag.Name), ctx.Bool(verboseFlag.Name), ctx.Bool(quietFlag.Name)))
		var err error
		cfg, err = config.Load(ctx.String(configFlag.Name))
		if err != nil {
			return err
		}
		slog.Debug("config loaded", "path", ctx.String(configFlag.Name))
		return nil
	}
	cliApp.CommandNotFound = func(ctx *cli.Context, cmd string) {
		fmt.Fprintf(os.Stderr, "No such command: %s\n", cmd)
		os.Exit(1)
	}
}

func main() {
	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("practice failed", "err", err)
		os.Exit(1)
	}
}

// applyWindowFlags lets command line flags override the config file.
func applyWindowFlags(ctx *cli.Context, c *config.Config) error {
	if ctx.IsSet(widthFlag.Name) {
		c.Window.Width = ctx.Int(widthFlag.Name)
	}
	if ctx.IsSet(heightFlag.Name) {
		c.Window.Height = ctx.Int(heightFlag.Name)
	}
	if ctx.IsSet(vsyncFlag.Name) {
		c.Window.VSync = ctx.Bool(vsyncFlag.Name)
	}
	if ctx.IsSet(fullscreenFlag.Name) {
		c.Window.Fullscreen = ctx.Bool(fullscreenFlag.Name)
	}
	return c.Validate()
}
