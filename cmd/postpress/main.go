// Command postpress renders a site root's source/ tree into release/.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/postpress/internal/config"
	berrors "git.home.luguber.info/inful/postpress/internal/errors"
	"git.home.luguber.info/inful/postpress/internal/logfields"
	"git.home.luguber.info/inful/postpress/internal/metrics"
	"git.home.luguber.info/inful/postpress/internal/site"
	"git.home.luguber.info/inful/postpress/internal/version"
)

// CLI is the command line: one positional site root plus ambient flags.
type CLI struct {
	Root    string           `arg:"" name:"site-root" help:"Site root directory (reads source/, writes release/)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// Run builds the site.
func (c *CLI) Run() error {
	return run(c.Root)
}

func run(root string) error {
	paths := site.NewPaths(root)

	if err := config.LoadEnvFiles(root); err != nil {
		return berrors.Wrap(err, berrors.CategoryConfig, berrors.SeverityFatal, "failed to load environment file").
			WithContext("path", root)
	}
	cfg, err := config.Load(paths.Config)
	if err != nil {
		return err
	}

	slog.Info("Starting build", logfields.Path(root), slog.Int("posts_per_page", cfg.PostsPerPage))

	builder := site.NewBuilder(cfg, root)
	var reg *prom.Registry
	if cfg.MetricsFile != "" {
		reg = prom.NewRegistry()
		builder.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}

	_, buildErr := builder.Build()

	if reg != nil {
		target := metricsPath(root, cfg.MetricsFile)
		if err := metrics.WriteTextfile(reg, target); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(target), logfields.Error(err))
		} else {
			slog.Debug("Wrote metrics file", logfields.Path(target))
		}
	}
	return buildErr
}

// metricsPath resolves a relative metricsFile against the site root.
func metricsPath(root, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(root, file)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("postpress"),
		kong.Description("Render a directory of Markdown posts into a static site."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)
	berrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(ctx.Run())
}
