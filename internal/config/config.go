// Package config loads the site configuration (source/config.yml).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	berrors "git.home.luguber.info/inful/postpress/internal/errors"
)

// Config represents the site configuration
type Config struct {
	// PostsPerPage bounds every listing page (all posts, tag, month).
	PostsPerPage int `yaml:"posts-per-page"`

	// TagsURLs overrides the listing URL of individual tags (default /tag/<tag>/).
	TagsURLs map[string]string `yaml:"tagsUrls"`

	// RequireFiles are copied verbatim from source/ to the output root.
	RequireFiles []string `yaml:"requireFiles"`

	// TagTitle and MonthTitle are the literal locale strings used as listing
	// titles. TagTitle takes the tag, MonthTitle the year and month.
	TagTitle   string `yaml:"tagTitle"`
	MonthTitle string `yaml:"monthTitle"`

	// HighlightStyle is the chroma style of the generated /highlight.css.
	HighlightStyle string `yaml:"highlightStyle"`

	// MetricsFile, when set, receives a Prometheus text exposition of the build metrics.
	MetricsFile string `yaml:"metricsFile,omitempty"`
}

// Load loads configuration from the specified file.
// Environment references (${VAR}) are expanded before decoding.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, berrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, berrors.Wrap(err, berrors.CategoryConfig, berrors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes, defaults and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, berrors.Wrap(err, berrors.CategoryConfig, berrors.SeverityFatal, "failed to unmarshal config")
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// TagURL returns the listing URL for tag, honoring tagsUrls overrides.
func (c *Config) TagURL(tag string) string {
	if u, ok := c.TagsURLs[tag]; ok {
		return u
	}
	return "/tag/" + tag + "/"
}

// TagListingTitle formats the title of a tag listing.
func (c *Config) TagListingTitle(tag string) string {
	return fmt.Sprintf(c.TagTitle, tag)
}

// MonthListingTitle formats the title of a month listing from a YYYY-MM key.
// The month is printed without a leading zero.
func (c *Config) MonthListingTitle(month string) string {
	year, mon := month, ""
	if len(month) >= 7 {
		year, mon = month[:4], month[5:7]
		if mon[0] == '0' {
			mon = mon[1:]
		}
	}
	return fmt.Sprintf(c.MonthTitle, year, mon)
}
