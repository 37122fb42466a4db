package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"gl-practice/config"
)

var writeFlag = &cli.StringFlag{
	Name:  "write",
	Usage: "save the effective settings to this file instead of printing them",
}

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "print the effective settings as TOML",
	Flags: []cli.Flag{writeFlag},
	Action: func(ctx *cli.Context) error {
		if path := ctx.String(writeFlag.Name); path != "" {
			return config.Save(path, cfg)
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(ctx.App.Writer, string(data))
		return nil
	},
}
