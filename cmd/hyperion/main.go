// Command hyperion is the CLI surface over pkg/hyperion: render a config,
// enumerate a sweep, or evaluate a standalone value, with optional JSON
// output, a markdown/HTML sweep report, and a --watch dev loop.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"github.com/xrash/smetrics"
)

func main() {
	app := &cli.App{
		Name:  "hyperion",
		Usage: "parse, preprocess and render Hyperion configs and sweeps",
		Commands: []*cli.Command{
			configCommand,
			sweepCommand,
			valueCommand,
			manCommand,
		},
		CommandNotFound: func(c *cli.Context, name string) {
			fmt.Fprintf(c.App.ErrWriter, "hyperion: no such command %q%s\n", name, suggestCommand(c.App.Commands, name))
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "hyperion:", err)
		os.Exit(1)
	}
}

// suggestCommand finds the closest registered command name to a mistyped
// one, for a "did you mean" hint. Jaro-Winkler tolerates the kind of single
// transposition/typo a command name invites better than edit distance.
func suggestCommand(cmds []*cli.Command, name string) string {
	best := ""
	bestScore := 0.0
	for _, c := range cmds {
		score := smetrics.JaroWinkler(name, c.Name, 0.7, 4)
		if score > bestScore {
			bestScore = score
			best = c.Name
		}
	}
	if best == "" || bestScore < 0.7 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

// runID tags one invocation across its JSON output and report, for
// correlating a run with whatever logs a surrounding pipeline keeps.
func runID() string {
	return uuid.NewString()
}
