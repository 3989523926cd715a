package config

const (
	DefaultPostsPerPage = 10
	DefaultTagTitle     = "包含标签 %s 的文章"
	DefaultMonthTitle   = "%s 年 %s 月"

	DefaultHighlightStyle = "github"
)

// applyDefaults fills the fields an older config.yml may leave out.
func applyDefaults(cfg *Config) {
	if cfg.PostsPerPage == 0 {
		cfg.PostsPerPage = DefaultPostsPerPage
	}
	if cfg.TagsURLs == nil {
		cfg.TagsURLs = map[string]string{}
	}
	if cfg.TagTitle == "" {
		cfg.TagTitle = DefaultTagTitle
	}
	if cfg.MonthTitle == "" {
		cfg.MonthTitle = DefaultMonthTitle
	}
	if cfg.HighlightStyle == "" {
		cfg.HighlightStyle = DefaultHighlightStyle
	}
}
