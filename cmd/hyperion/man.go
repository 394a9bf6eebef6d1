package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// manCommand renders the whole app's usage as a troff man page (via
// urfave/cli's go-md2man integration) instead of hand-maintaining one.
var manCommand = &cli.Command{
	Name:  "man",
	Usage: "print a man page for this command",
	Action: func(c *cli.Context) error {
		text, err := c.App.ToMan()
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}
