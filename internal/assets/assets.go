// Package assets resolves relative media and file references to
// content-addressed output paths and copies the referenced files.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	berrors "git.home.luguber.info/inful/postpress/internal/errors"
)

// OutputPrefix is the URL path under which every asset is published.
const OutputPrefix = "/assets/"

// Kind selects the output naming scheme of a reference.
type Kind int

const (
	// KindImage names the output after the full hex digest: /assets/<sha256><ext>.
	KindImage Kind = iota
	// KindFile keeps the base name recognizable: /assets/<name>-<hex8><ext>.
	KindFile
)

func (k Kind) String() string {
	if k == KindImage {
		return "image"
	}
	return "file"
}

// Job is one pending copy: an output path and the source file behind it.
type Job struct {
	Href   string
	Source string
}

type resolveKey struct {
	kind Kind
	ref  string
}

// Registry records the assets referenced during one build.
// It is not safe for concurrent use.
type Registry struct {
	root     string
	jobs     map[string]string
	resolved map[resolveKey]string
}

// NewRegistry creates a registry resolving references against root.
func NewRegistry(root string) *Registry {
	return &Registry{
		root:     root,
		jobs:     make(map[string]string),
		resolved: make(map[resolveKey]string),
	}
}

// IsRelative reports whether ref points into the asset directory.
// Absolute URLs, root-relative paths, fragments and any other scheme
// (mailto:, data:, ...) are left alone.
func IsRelative(ref string) bool {
	if ref == "" {
		return false
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "#") {
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return false
	}
	return true
}

// Resolve hashes the file behind ref and returns its output path,
// registering a copy job for it. Resolving the same reference again returns
// the cached path without reading the file.
func (r *Registry) Resolve(ref string, kind Kind) (string, error) {
	key := resolveKey{kind: kind, ref: ref}
	if href, ok := r.resolved[key]; ok {
		return href, nil
	}

	rel := ref
	if unescaped, err := url.PathUnescape(ref); err == nil {
		rel = unescaped
	}
	src := filepath.Join(r.root, filepath.FromSlash(rel))
	if info, err := os.Stat(src); err != nil || info.IsDir() {
		return "", berrors.AssetNotFound(kind.String(), ref)
	}

	digest, err := hashFile(src)
	if err != nil {
		return "", berrors.Wrap(err, berrors.CategoryAsset, berrors.SeverityFatal, "failed to hash "+kind.String()).
			WithContext("ref", ref)
	}

	href := OutputPrefix + outputName(kind, rel, digest)
	if abs, err := filepath.Abs(src); err == nil {
		src = abs
	}
	r.jobs[href] = src
	r.resolved[key] = href
	return href, nil
}

func outputName(kind Kind, rel, digest string) string {
	ext := path.Ext(rel)
	if kind == KindImage {
		return digest + ext
	}
	name := strings.TrimSuffix(path.Base(rel), ext)
	return fmt.Sprintf("%s-%s%s", name, digest[:8], ext)
}

func hashFile(name string) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Len returns the number of distinct copy jobs.
func (r *Registry) Len() int {
	return len(r.jobs)
}

// Jobs returns the copy jobs ordered by output path.
func (r *Registry) Jobs() []Job {
	jobs := make([]Job, 0, len(r.jobs))
	for href, src := range r.jobs {
		jobs = append(jobs, Job{Href: href, Source: src})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Href < jobs[j].Href })
	return jobs
}

// CopyAll copies every registered asset below dstRoot and returns the number
// of files written.
func (r *Registry) CopyAll(dstRoot string) (int, error) {
	if err := os.MkdirAll(filepath.Join(dstRoot, filepath.FromSlash(OutputPrefix)), 0o755); err != nil {
		return 0, berrors.FileSystemError("create assets directory", err)
	}
	n := 0
	for _, job := range r.Jobs() {
		dst := filepath.Join(dstRoot, filepath.FromSlash(job.Href))
		if err := CopyFile(job.Source, dst); err != nil {
			return n, berrors.FileSystemError("copy asset", err).WithContext("ref", job.Href)
		}
		n++
	}
	return n, nil
}

// CopyFile copies a single file from src to dst, preserving its permissions.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}
