package site

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/postpress/internal/logfields"
	"git.home.luguber.info/inful/postpress/internal/metrics"
)

// StageName identifies a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageLoad     StageName = "load"
	StagePosts    StageName = "posts"
	StageListings StageName = "listings"
	StageFeed     StageName = "feed"
	StageAssets   StageName = "assets"
	StageRequire  StageName = "require"
)

// Stage is one step of a build.
type Stage func(bs *BuildState) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

func defaultStages() []StageDef {
	return []StageDef{
		{StageLoad, stageLoad},
		{StagePosts, stagePosts},
		{StageListings, stageListings},
		{StageFeed, stageFeed},
		{StageAssets, stageAssets},
		{StageRequire, stageRequire},
	}
}

// runStages executes stages in order, recording timing and stopping on the
// first error.
func runStages(bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		t0 := time.Now()
		err := st.Fn(bs)
		dur := time.Since(t0)

		bs.Report.StageDurations[st.Name] = dur
		bs.recorder.ObserveStageDuration(string(st.Name), dur)
		if err != nil {
			bs.recorder.IncStageResult(string(st.Name), metrics.ResultFatal)
			slog.Error("Stage failed", logfields.Stage(string(st.Name)), logfields.DurationMS(durationMS(dur)), logfields.Error(err))
			return err
		}
		bs.recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
		slog.Debug("Stage complete", logfields.Stage(string(st.Name)), logfields.DurationMS(durationMS(dur)))
	}
	return nil
}

func durationMS(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
