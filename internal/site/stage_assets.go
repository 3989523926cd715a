package site

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/postpress/internal/assets"
	berrors "git.home.luguber.info/inful/postpress/internal/errors"
	"git.home.luguber.info/inful/postpress/internal/logfields"
	"git.home.luguber.info/inful/postpress/internal/metrics"
)

// HighlightCSSPath is where the stylesheet for highlighted code is written.
const HighlightCSSPath = "/highlight.css"

type cssWriter interface {
	WriteCSS(w io.Writer) error
}

// stageAssets copies every registered asset once, then writes the
// highlighter stylesheet when the highlighter can produce one.
func stageAssets(bs *BuildState) error {
	n, err := bs.Assets.CopyAll(bs.Staging.Path())
	if err != nil {
		return err
	}
	bs.Report.Assets = n
	bs.recorder.AddArtifacts(metrics.ArtifactAsset, n)
	slog.Debug("Copied assets", logfields.Count(n), logfields.Path(filepath.Join(bs.Staging.Path(), assets.OutputPrefix)))

	css, ok := bs.highlighter.(cssWriter)
	if !ok {
		return nil
	}
	var buf bytes.Buffer
	if err := css.WriteCSS(&buf); err != nil {
		return berrors.InternalError("generate highlight stylesheet", err)
	}
	if _, err := bs.Staging.WriteFile(HighlightCSSPath, buf.Bytes()); err != nil {
		return berrors.FileSystemError("write highlight stylesheet", err).WithContext("ref", HighlightCSSPath)
	}
	return nil
}
