package site

import (
	"time"

	"git.home.luguber.info/inful/postpress/internal/metrics"
)

// BuildReport summarizes one build.
type BuildReport struct {
	Start          time.Time
	End            time.Time
	StageDurations map[StageName]time.Duration
	Outcome        metrics.BuildOutcomeLabel

	Posts    int
	Listings int
	Feeds    int
	Assets   int
	Required int
}

func newBuildReport() *BuildReport {
	return &BuildReport{
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
	}
}

// Duration is the wall time of the build.
func (r *BuildReport) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

func (r *BuildReport) finish(outcome metrics.BuildOutcomeLabel) {
	r.End = time.Now()
	r.Outcome = outcome
}
