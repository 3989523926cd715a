package site

import (
	"log/slog"

	"git.home.luguber.info/inful/postpress/internal/config"
	berrors "git.home.luguber.info/inful/postpress/internal/errors"
	"git.home.luguber.info/inful/postpress/internal/highlight"
	"git.home.luguber.info/inful/postpress/internal/logfields"
	"git.home.luguber.info/inful/postpress/internal/metrics"
	"git.home.luguber.info/inful/postpress/internal/texmath"
	"git.home.luguber.info/inful/postpress/internal/workspace"
)

// Builder builds the site below one root directory.
type Builder struct {
	cfg         *config.Config
	paths       Paths
	recorder    metrics.Recorder
	highlighter highlight.Highlighter
	math        texmath.Backend
	stages      []StageDef
}

// NewBuilder creates a builder with chroma highlighting, client-side math
// and no metrics.
func NewBuilder(cfg *config.Config, root string) *Builder {
	return &Builder{
		cfg:         cfg,
		paths:       NewPaths(root),
		recorder:    metrics.NoopRecorder{},
		highlighter: highlight.NewChroma(cfg.HighlightStyle),
		math:        texmath.Delimited{},
		stages:      defaultStages(),
	}
}

// WithRecorder sets the metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// WithHighlighter replaces the code highlighter. nil disables highlighting.
func (b *Builder) WithHighlighter(h highlight.Highlighter) *Builder {
	b.highlighter = h
	return b
}

// WithMathBackend replaces the TeX typesetting backend.
func (b *Builder) WithMathBackend(m texmath.Backend) *Builder {
	if m != nil {
		b.math = m
	}
	return b
}

// Paths returns the directory layout the builder works on.
func (b *Builder) Paths() Paths { return b.paths }

// Build runs every stage into a staging directory and promotes it to
// release/ on success. On failure the staging directory is removed and any
// previous release/ is left as it was.
func (b *Builder) Build() (*BuildReport, error) {
	report := newBuildReport()
	staging := workspace.NewStaging(b.paths.Output)
	if err := staging.Begin(); err != nil {
		return b.fail(report, berrors.FileSystemError("begin staging", err))
	}

	bs := &BuildState{
		Config:      b.cfg,
		Paths:       b.paths,
		Staging:     staging,
		Report:      report,
		highlighter: b.highlighter,
		math:        b.math,
		recorder:    b.recorder,
	}

	if err := runStages(bs, b.stages); err != nil {
		staging.Abort()
		return b.fail(report, err)
	}
	if err := staging.Promote(); err != nil {
		staging.Abort()
		return b.fail(report, berrors.FileSystemError("promote staging", err))
	}

	report.finish(metrics.BuildOutcomeSuccess)
	b.recorder.ObserveBuildDuration(report.Duration())
	b.recorder.IncBuildOutcome(report.Outcome)
	slog.Info("Build complete",
		logfields.Path(b.paths.Output),
		logfields.Count(report.Posts),
		logfields.Pages(report.Listings),
		slog.Int("assets", report.Assets),
		logfields.DurationMS(durationMS(report.Duration())))
	return report, nil
}

func (b *Builder) fail(report *BuildReport, err error) (*BuildReport, error) {
	report.finish(metrics.BuildOutcomeFailed)
	b.recorder.ObserveBuildDuration(report.Duration())
	b.recorder.IncBuildOutcome(report.Outcome)
	return report, err
}
