package main

import (
	"fmt"
	"os"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/urfave/cli/v2"

	"github.com/hyperion-lang/hyperion/pkg/enumerate"
	"github.com/hyperion-lang/hyperion/pkg/hyperion"
	"github.com/hyperion-lang/hyperion/pkg/parser"
	"github.com/hyperion-lang/hyperion/pkg/shim"
	"github.com/hyperion-lang/hyperion/pkg/transform"
)

var sweepCommand = &cli.Command{
	Name:      "sweep",
	Usage:     "enumerate a sweep document into its config points",
	ArgsUsage: "FILE",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "resolve every point's bindings and print them as a JSON array"},
		&cli.BoolFlag{Name: "watch", Usage: "re-run on every change to FILE"},
		&cli.StringFlag{Name: "report", Usage: "write a markdown summary of the enumerated points to this path"},
		&cli.StringFlag{Name: "report-html", Usage: "write an HTML rendition of the summary to this path"},
		&cli.StringFlag{Name: "stats", Usage: "a binding name to summarise numerically (sum/mean) across every point, using exact decimal arithmetic"},
	},
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("hyperion sweep: missing FILE argument", 2)
		}

		run := func() error {
			if c.Bool("json") || c.String("report") != "" || c.String("report-html") != "" || c.String("stats") != "" {
				return runSweepResolved(path, c)
			}
			texts, err := hyperion.ParseSweepFile(path)
			if err != nil {
				return err
			}
			for i, t := range texts {
				if i > 0 {
					fmt.Println("---")
				}
				fmt.Println(t)
			}
			return nil
		}

		if c.Bool("watch") {
			return watchFile(path, run)
		}
		return run()
	},
}

func runSweepResolved(path string, c *cli.Context) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sw, err := parser.ParseSweep(path, string(data))
	if err != nil {
		return err
	}
	prelude, prepared, err := transform.PreprocessSweep(sw)
	if err != nil {
		return err
	}
	configs, err := enumerate.GenerateConfigs(prepared)
	if err != nil {
		return err
	}

	points := make([]map[string]any, len(configs))
	for i, cfg := range configs {
		finalized, err := transform.FinalizeEnumeratedConfig(prelude, cfg)
		if err != nil {
			return fmt.Errorf("config %d of sweep: %w", i, err)
		}
		values, err := shim.Resolve(finalized)
		if err != nil {
			return fmt.Errorf("config %d of sweep: %w", i, err)
		}
		points[i] = values
	}

	if c.Bool("json") {
		out, err := jsonv2.Marshal(map[string]any{
			"run":    runID(),
			"points": points,
		})
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}

	if statField := c.String("stats"); statField != "" {
		summary, err := summarizeNumericField(points, statField)
		if err != nil {
			return err
		}
		fmt.Println(summary)
	}

	if reportPath := c.String("report"); reportPath != "" {
		if err := os.WriteFile(reportPath, []byte(renderSweepReport(path, points)), 0644); err != nil {
			return err
		}
	}
	if htmlPath := c.String("report-html"); htmlPath != "" {
		if err := os.WriteFile(htmlPath, renderSweepReportHTML(path, points), 0644); err != nil {
			return err
		}
	}
	return nil
}
