package main

import (
	"fmt"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/urfave/cli/v2"

	"github.com/hyperion-lang/hyperion/pkg/hyperion"
)

var valueCommand = &cli.Command{
	Name:      "value",
	Usage:     "parse and evaluate a single standalone expression",
	ArgsUsage: "EXPR",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "print the result as JSON instead of Go's default formatting"},
	},
	Action: func(c *cli.Context) error {
		expr := c.Args().First()
		if expr == "" {
			return cli.Exit("hyperion value: missing EXPR argument", 2)
		}
		v, err := hyperion.ParseValue(expr)
		if err != nil {
			return err
		}
		if c.Bool("json") {
			out, err := jsonv2.Marshal(v)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		fmt.Println(v)
		return nil
	},
}
