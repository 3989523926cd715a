package config

import (
	"path/filepath"
	"strconv"
	"strings"

	berrors "git.home.luguber.info/inful/postpress/internal/errors"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if cfg.PostsPerPage < 1 {
		return berrors.ConfigInvalid("posts-per-page", "must be at least 1, got "+strconv.Itoa(cfg.PostsPerPage))
	}
	if strings.Count(cfg.TagTitle, "%s") != 1 {
		return berrors.ConfigInvalid("tagTitle", "must contain exactly one %s")
	}
	if strings.Count(cfg.MonthTitle, "%s") != 2 {
		return berrors.ConfigInvalid("monthTitle", "must contain exactly two %s (year, month)")
	}
	for tag, u := range cfg.TagsURLs {
		if strings.TrimSpace(u) == "" {
			return berrors.ConfigInvalid("tagsUrls", "empty url for tag "+strconv.Quote(tag))
		}
	}
	for _, f := range cfg.RequireFiles {
		if !filepath.IsLocal(f) {
			return berrors.ConfigInvalid("requireFiles", "path must stay inside source/: "+f)
		}
	}
	return nil
}
