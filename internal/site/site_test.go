package site

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/postpress/internal/config"
	berrors "git.home.luguber.info/inful/postpress/internal/errors"
	"git.home.luguber.info/inful/postpress/internal/metrics"
	"git.home.luguber.info/inful/postpress/internal/testutil"
)

const (
	helloPost = "#! title: Hello\n#! tags: [go, notes]\n#! meta end\n" +
		"Intro with ![pic](img/pic.png)\n\n#! toc Contents\n\n## First\n\n```go\nfunc main() {}\n```\n"
	secondPost = "#! title: Second\n#! tags: [go]\nSecond body\n"
	fixtureCfg = "posts-per-page: 1\ntagsUrls:\n  notes: /notes/\nrequireFiles:\n  - CNAME\n"
	pngBytes   = "not really a png"
)

// newFixtureSite lays out a small site below a temp root and returns the
// root and its loaded configuration.
func newFixtureSite(t *testing.T, posts map[string]string) (string, *config.Config) {
	t.Helper()
	sb := testutil.NewSiteBuilder(t).
		WithConfig(fixtureCfg).
		WithAsset("img/pic.png", pngBytes).
		WithFile("source/CNAME", "example.com\n")
	for name, src := range posts {
		sb.WithPost(name, src)
	}
	root := sb.Build()

	cfg, err := config.Load(NewPaths(root).Config)
	require.NoError(t, err)
	return root, cfg
}

func output(t *testing.T, root string) *testutil.FileAssertions {
	return testutil.NewFileAssertions(t, filepath.Join(root, "release"))
}

func defaultPosts() map[string]string {
	return map[string]string{
		"2024-01-15-hello.md":  helloPost,
		"2024-02-01-second.md": secondPost,
	}
}

func TestBuild_FullSite(t *testing.T) {
	root, cfg := newFixtureSite(t, defaultPosts())

	report, err := NewBuilder(cfg, root).Build()
	require.NoError(t, err)
	assert.Equal(t, metrics.BuildOutcomeSuccess, report.Outcome)
	assert.Equal(t, 2, report.Posts)
	assert.Equal(t, 7, report.Listings)
	assert.Equal(t, 1, report.Assets)
	assert.Equal(t, 1, report.Required)

	out := output(t, root)
	sum := sha256.Sum256([]byte(pngBytes))
	imageHref := "/assets/" + hex.EncodeToString(sum[:]) + ".png"

	hello := out.Read("posts/2024-01-15-hello/index.html")
	assert.Contains(t, hello, "<title>Hello</title>")
	assert.Contains(t, hello, `<img src="`+imageHref+`" alt="pic">`)
	assert.Contains(t, hello, `<nav>Contents:<a href="#first">First</a></nav>`)
	assert.NotContains(t, hello, "#! toc")
	assert.Contains(t, hello, `<a href="/tag/go/">go</a><a href="/notes/">notes</a>`)
	assert.Contains(t, hello, `class="language-go"`)
	assert.Equal(t, pngBytes, out.Read(imageHref))

	home := out.Read("index.html")
	assert.Contains(t, home, `<a href="/posts/2024-02-01-second/">Second</a>`)
	assert.Contains(t, home, "<p>1/2</p>")
	assert.Contains(t, home, `<a rel="next" href="/page/2/">next</a>`)
	assert.Contains(t, out.Read("page/2/index.html"), "Hello")

	assert.Contains(t, out.Read("tag/go/index.html"), "<h1>包含标签 go 的文章</h1>")
	assert.Contains(t, out.Read("tag/go/2/index.html"), "Hello")
	assert.Contains(t, out.Read("notes/index.html"), "Hello")
	assert.Contains(t, out.Read("2024/01/index.html"), "<h1>2024 年 1 月</h1>")
	assert.Contains(t, out.Read("2024/02/index.html"), "Second")

	feed := out.Read("feed.xml")
	second := strings.Index(feed, "<link>/posts/2024-02-01-second/</link>")
	first := strings.Index(feed, "<link>/posts/2024-01-15-hello/</link>")
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, first)
	assert.Less(t, second, first)

	assert.Equal(t, "example.com\n", out.Read("CNAME"))
	assert.NotEmpty(t, out.Read("highlight.css"))
	assert.NoDirExists(t, filepath.Join(root, "release_stage"))
}

func TestBuild_FailureKeepsPreviousRelease(t *testing.T) {
	posts := defaultPosts()
	posts["2024-03-01-broken.md"] = "![gone](img/missing.png)\n"
	root, cfg := newFixtureSite(t, posts)
	testutil.WriteTree(t, root, map[string]string{"release/marker.html": "previous"})

	report, err := NewBuilder(cfg, root).Build()
	require.Error(t, err)
	assert.True(t, berrors.IsCategory(err, berrors.CategoryAsset))
	assert.Equal(t, metrics.BuildOutcomeFailed, report.Outcome)

	output(t, root).
		AssertFileEquals("marker.html", "previous").
		AssertFileNotExists("index.html")
	assert.NoDirExists(t, filepath.Join(root, "release_stage"))
}

func TestBuild_DuplicateURL(t *testing.T) {
	posts := defaultPosts()
	posts["2024-03-01-copy.md"] = "#! url: /posts/2024-02-01-second\ncopy\n"
	root, cfg := newFixtureSite(t, posts)

	_, err := NewBuilder(cfg, root).Build()
	require.Error(t, err)
	assert.True(t, berrors.IsCategory(err, berrors.CategoryContent))
	assert.Contains(t, err.Error(), "posts can't have the same url")
}

func TestBuild_MissingRequiredFile(t *testing.T) {
	root, cfg := newFixtureSite(t, defaultPosts())
	cfg.RequireFiles = append(cfg.RequireFiles, "robots.txt")

	_, err := NewBuilder(cfg, root).Build()
	require.Error(t, err)
	assert.True(t, berrors.IsCategory(err, berrors.CategoryFileSystem))
	assert.NoDirExists(t, filepath.Join(root, "release"))
}

func TestBuild_NoPostsWritesNoListings(t *testing.T) {
	root, cfg := newFixtureSite(t, nil)

	report, err := NewBuilder(cfg, root).WithHighlighter(nil).Build()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Listings)
	output(t, root).
		AssertFileNotExists("index.html").
		AssertFileNotExists("highlight.css").
		AssertFileEquals("feed.xml", "<rss></rss>")
}

type capturingRecorder struct {
	stages   []string
	results  map[string]metrics.ResultLabel
	outcome  metrics.BuildOutcomeLabel
	artifact map[string]int
}

func newCapturingRecorder() *capturingRecorder {
	return &capturingRecorder{results: map[string]metrics.ResultLabel{}, artifact: map[string]int{}}
}

func (c *capturingRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	c.stages = append(c.stages, stage)
}
func (c *capturingRecorder) ObserveBuildDuration(time.Duration) {}
func (c *capturingRecorder) IncStageResult(stage string, r metrics.ResultLabel) {
	c.results[stage] = r
}
func (c *capturingRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) { c.outcome = o }
func (c *capturingRecorder) AddArtifacts(kind string, n int)             { c.artifact[kind] += n }

func TestBuild_RecordsStagesInOrder(t *testing.T) {
	root, cfg := newFixtureSite(t, defaultPosts())
	rec := newCapturingRecorder()

	_, err := NewBuilder(cfg, root).WithRecorder(rec).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"load", "posts", "listings", "feed", "assets", "require"}, rec.stages)
	assert.Equal(t, metrics.ResultSuccess, rec.results["require"])
	assert.Equal(t, metrics.BuildOutcomeSuccess, rec.outcome)
	assert.Equal(t, 2, rec.artifact[metrics.ArtifactPost])
	assert.Equal(t, 7, rec.artifact[metrics.ArtifactListing])
}

func TestBuild_StopsAtFailingStage(t *testing.T) {
	posts := map[string]string{"2024-01-01-a.md": "![x](nope.png)\n"}
	root, cfg := newFixtureSite(t, posts)
	rec := newCapturingRecorder()

	_, err := NewBuilder(cfg, root).WithRecorder(rec).Build()
	require.Error(t, err)
	assert.Equal(t, []string{"load"}, rec.stages)
	assert.Equal(t, metrics.ResultFatal, rec.results["load"])
	assert.Equal(t, metrics.BuildOutcomeFailed, rec.outcome)
}

func TestPageURLs(t *testing.T) {
	assert.Equal(t, "/", RootPageURL(1))
	assert.Equal(t, "/page/3/", RootPageURL(3))

	tag := TagPageURL("/tag/go/")
	assert.Equal(t, "/tag/go/", tag(1))
	assert.Equal(t, "/tag/go/2/", tag(2))

	month := MonthPageURL("2024-01")
	assert.Equal(t, "/2024/01/", month(1))
	assert.Equal(t, "/2024/01/2/", month(2))
}
