package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/postpress/internal/logfields"
)

const (
	stageSuffix  = "_stage"
	backupSuffix = ".prev"
)

// Staging is one staged build of an output directory.
type Staging struct {
	outputDir string
	stageDir  string
}

// NewStaging prepares staging for outputDir. Nothing is created until Begin.
func NewStaging(outputDir string) *Staging {
	return &Staging{outputDir: filepath.Clean(outputDir)}
}

// Begin creates an empty staging directory, discarding leftovers of an
// interrupted earlier run.
func (s *Staging) Begin() error {
	stage := s.outputDir + stageSuffix
	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("clear stale staging directory: %w", err)
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	s.stageDir = stage
	slog.Debug("Initialized staging directory", slog.String("staging", stage), logfields.Path(s.outputDir))
	return nil
}

// Path returns the staging directory, or "" before Begin and after
// Promote or Abort.
func (s *Staging) Path() string { return s.stageDir }

// OutputDir returns the final output directory.
func (s *Staging) OutputDir() string { return s.outputDir }

// Resolve maps a site URL path (e.g. "/posts/x/") to a directory inside the
// staging area. ".." segments cannot climb out of it.
func (s *Staging) Resolve(urlPath string) string {
	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	return filepath.Join(s.stageDir, filepath.FromSlash(rel))
}

// WriteFile writes data to the URL path rel inside the staging area,
// creating parent directories.
func (s *Staging) WriteFile(rel string, data []byte) (string, error) {
	if s.stageDir == "" {
		return "", fmt.Errorf("no staging directory initialized")
	}
	target := s.Resolve(rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", err
	}
	return target, nil
}

// WriteIndex writes data as index.html of the directory for urlPath.
func (s *Staging) WriteIndex(urlPath string, data []byte) (string, error) {
	return s.WriteFile(path.Join("/", urlPath, "index.html"), data)
}

// Promote replaces the output directory with the staging directory.
func (s *Staging) Promote() error {
	if s.stageDir == "" {
		return fmt.Errorf("no staging directory initialized")
	}
	if _, err := os.Stat(s.stageDir); err != nil {
		return fmt.Errorf("staging directory missing: %w", err)
	}

	prev := s.outputDir + backupSuffix
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove previous backup: %w", err)
	}
	if _, err := os.Stat(s.outputDir); err == nil {
		if err := os.Rename(s.outputDir, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
	}
	if err := os.Rename(s.stageDir, s.outputDir); err != nil {
		return fmt.Errorf("promote staging: %w", err)
	}
	s.stageDir = ""

	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("Failed to remove previous backup", logfields.Path(prev), logfields.Error(err))
	}
	slog.Info("Promoted staging directory", logfields.Path(s.outputDir))
	return nil
}

// Abort removes the staging directory after a failed build. It is safe to
// call more than once.
func (s *Staging) Abort() {
	if s.stageDir == "" {
		return
	}
	dir := s.stageDir
	s.stageDir = ""
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove staging directory after abort", slog.String("staging", dir), logfields.Error(err))
		return
	}
	slog.Debug("Removed staging directory after abort", slog.String("staging", dir))
}
