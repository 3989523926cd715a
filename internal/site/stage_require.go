package site

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/postpress/internal/assets"
	berrors "git.home.luguber.info/inful/postpress/internal/errors"
	"git.home.luguber.info/inful/postpress/internal/logfields"
	"git.home.luguber.info/inful/postpress/internal/metrics"
)

// stageRequire copies requireFiles from source/ to the output root.
func stageRequire(bs *BuildState) error {
	for _, name := range bs.Config.RequireFiles {
		src := filepath.Join(bs.Paths.Source, filepath.FromSlash(name))
		dst := filepath.Join(bs.Staging.Path(), filepath.FromSlash(name))
		if err := assets.CopyFile(src, dst); err != nil {
			return berrors.FileSystemError("copy required file", err).WithContext("ref", name)
		}
		slog.Debug("Copied required file", logfields.Path(name))
	}
	bs.Report.Required = len(bs.Config.RequireFiles)
	bs.recorder.AddArtifacts(metrics.ArtifactRequired, bs.Report.Required)
	return nil
}
