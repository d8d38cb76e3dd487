package analyze

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/linguacheck/models"
	"github.com/dtnitsch/linguacheck/pkg/analyzer"
	"github.com/dtnitsch/linguacheck/pkg/critic"
	"github.com/dtnitsch/linguacheck/pkg/fetcher"
	"github.com/dtnitsch/linguacheck/pkg/langid"
	"github.com/dtnitsch/linguacheck/pkg/report"
)

// Action runs the analyze command: build the pipeline from config, run the
// requested flow, render reports. Returning an error makes main print
// "Error: <message>" and exit non-zero.
func Action(c *cli.Context) error {
	url := c.Args().First()
	if url == "" {
		return fmt.Errorf("URL argument is required")
	}

	// Optional .env; the environment itself may already carry the key.
	_ = godotenv.Load()

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	logger := log.New()
	logger.SetOutput(os.Stderr)
	if c.Bool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}

	f := fetcher.NewFetcher(cfg.Timeout, cfg.UserAgent, cfg.MaxContentLength, logger)
	identifier := langid.NewIdentifier(cfg.SupportedLanguages, cfg.Thresholds)
	qc := critic.NewWithKey(cfg, logger)
	a := analyzer.New(f, identifier, qc, cfg, logger)

	var analysis *models.SiteAnalysis
	if c.Bool("multilingual") {
		analysis = a.AnalyzeMultilingualSite(c.Context, url)
	} else {
		analysis = a.AnalyzeURL(c.Context, url, !c.Bool("no-terminology"))
	}

	renderer := report.NewRenderer(os.Stdout, cfg.Thresholds)
	renderer.RenderConsole(analysis)

	if output := c.String("output"); output != "" {
		if err := renderer.WriteJSONFile(analysis, output); err != nil {
			return err
		}
		fmt.Printf("\nJSON report saved to: %s\n", output)
	}

	// Entry-URL fetch/parse failures are the only terminal case; every
	// other degradation already lives inside the rendered report.
	if analysis.Error != "" {
		return fmt.Errorf("analysis failed: %s", analysis.Error)
	}
	return nil
}
