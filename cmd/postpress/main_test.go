package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	berrors "git.home.luguber.info/inful/postpress/internal/errors"
	"git.home.luguber.info/inful/postpress/internal/testutil"
)

func newSite(t *testing.T, cfg string) string {
	t.Helper()
	return testutil.NewSiteBuilder(t).
		WithConfig(cfg).
		WithTemplate("page.tmpl", "{{ .body }}").
		WithTemplate("post.tmpl", "{{ .post.Title }}").
		WithPost("2024-05-01-hi.md", "#! title: Hi\nHello there.\n").
		Build()
}

func TestRun_BuildsSite(t *testing.T) {
	root := newSite(t, "posts-per-page: 5\nmetricsFile: build.prom\n")

	require.NoError(t, run(root))

	testutil.NewFileAssertions(t, root).
		AssertFileEquals("release/posts/2024-05-01-hi/index.html", "Hi").
		AssertFileContains("build.prom", `postpress_build_outcomes_total{outcome="success"} 1`)
}

func TestRun_EnvFileExpandsConfig(t *testing.T) {
	root := newSite(t, "posts-per-page: ${POSTPRESS_TEST_PAGE_SIZE}\n")
	testutil.WriteTree(t, root, map[string]string{".env": "POSTPRESS_TEST_PAGE_SIZE=1\n"})
	t.Cleanup(func() { _ = os.Unsetenv("POSTPRESS_TEST_PAGE_SIZE") })

	require.NoError(t, run(root))
	assert.FileExists(t, filepath.Join(root, "release", "index.html"))
}

func TestRun_ExitCodes(t *testing.T) {
	adapter := berrors.NewCLIErrorAdapter(false, nil)

	err := run(t.TempDir())
	require.Error(t, err)
	assert.Equal(t, 7, adapter.ExitCodeFor(err))

	root := newSite(t, "posts-per-page: 5\n")
	testutil.WriteTree(t, root, map[string]string{"source/posts/2024-05-02-img.md": "![x](nope.png)\n"})
	err = run(root)
	require.Error(t, err)
	assert.Equal(t, 3, adapter.ExitCodeFor(err))
}

func TestCLI_Parse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	_, err = parser.Parse([]string{"-v", "/srv/blog"})
	require.NoError(t, err)
	assert.Equal(t, "/srv/blog", cli.Root)
	assert.True(t, cli.Verbose)
}

func TestMetricsPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/site", "m.prom"), metricsPath("/site", "m.prom"))
	assert.Equal(t, "/var/lib/m.prom", metricsPath("/site", "/var/lib/m.prom"))
}
