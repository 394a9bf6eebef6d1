package main

import (
	"fmt"
	"os"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/urfave/cli/v2"

	"github.com/hyperion-lang/hyperion/pkg/hyperion"
	"github.com/hyperion-lang/hyperion/pkg/parser"
	"github.com/hyperion-lang/hyperion/pkg/shim"
	"github.com/hyperion-lang/hyperion/pkg/transform"
)

var configCommand = &cli.Command{
	Name:      "config",
	Usage:     "parse and render a config document",
	ArgsUsage: "FILE",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "resolve bindings and print them as JSON instead of rendered source"},
		&cli.BoolFlag{Name: "watch", Usage: "re-run on every change to FILE"},
	},
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("hyperion config: missing FILE argument", 2)
		}

		render := func() error {
			if c.Bool("json") {
				return renderConfigJSON(path)
			}
			text, err := hyperion.ParseConfigFile(path)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		}

		if c.Bool("watch") {
			return watchFile(path, render)
		}
		return render()
	},
}

func renderConfigJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg, err := parser.ParseConfig(path, string(data))
	if err != nil {
		return err
	}
	prepared, err := transform.PreprocessConfig(cfg)
	if err != nil {
		return err
	}
	values, err := shim.Resolve(prepared)
	if err != nil {
		return err
	}

	out, err := jsonv2.Marshal(map[string]any{
		"run":      runID(),
		"bindings": values,
	})
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
