package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/linguacheck/internal/analyze"
)

func main() {
	app := &cli.App{
		Name:  "linguacheck",
		Usage: "AI-powered linguistic analysis tool for web content",
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Analyze linguistic quality of a webpage",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file for JSON report",
					},
					&cli.BoolFlag{
						Name:  "no-terminology",
						Usage: "Skip terminology analysis",
					},
					&cli.BoolFlag{
						Name:  "multilingual",
						Usage: "Analyze multiple language versions",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Enable verbose logging",
					},
					&cli.StringFlag{
						Name:  "config",
						Value: "config.yaml",
						Usage: "Path to optional yaml config overrides",
					},
				},
				Action: analyze.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
