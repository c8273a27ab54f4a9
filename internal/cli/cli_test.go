package cli_test

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/internal/cli"
	"github.com/yaklabco/mdtree/pkg/parser"
)

// setupWorkDir pins the working directory and config environment to a
// fresh temp dir so tests never pick up real config files.
func setupWorkDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "abc", Date: "today"})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeDoc(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand_Tree(t *testing.T) {
	dir := setupWorkDir(t)
	path := writeDoc(t, dir, "# Title\n\nHello *world*.\n")

	out, err := execute(t, "", "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "document")
	assert.Contains(t, out, "heading level=1")
	assert.Contains(t, out, "emphasis")
}

func TestParseCommand_Stdin(t *testing.T) {
	setupWorkDir(t)

	out, err := execute(t, "# From stdin\n", "parse", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "heading level=1")
	assert.Contains(t, out, `"From stdin"`)
}

func TestParseCommand_JSON(t *testing.T) {
	dir := setupWorkDir(t)
	path := writeDoc(t, dir, "# Title\n")

	out, err := execute(t, "", "parse", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "document"`)
	assert.Contains(t, out, `"kind": "heading"`)
}

func TestParseCommand_Markdown(t *testing.T) {
	dir := setupWorkDir(t)
	path := writeDoc(t, dir, "#  Title\n")

	out, err := execute(t, "", "parse", path, "--format", "markdown")
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", out)
}

func TestParseCommand_Spans(t *testing.T) {
	dir := setupWorkDir(t)
	path := writeDoc(t, dir, "# Title\n")

	out, err := execute(t, "", "parse", path, "--spans")
	require.NoError(t, err)
	assert.Contains(t, out, "[1:1-1:8]")
}

func TestParseCommand_RefsTable(t *testing.T) {
	dir := setupWorkDir(t)
	path := writeDoc(t, dir, "[a]\n\n[a]: /url\n")

	out, err := execute(t, "", "parse", path, "--refs")
	require.NoError(t, err)
	assert.Contains(t, out, "LABEL")
	assert.Contains(t, out, "/url")
}

func TestParseCommand_DetectLanguages(t *testing.T) {
	dir := setupWorkDir(t)
	path := writeDoc(t, dir, "```\npackage main\n\nfunc main() {}\n```\n")

	out, err := execute(t, "", "parse", path, "--detect-languages")
	require.NoError(t, err)
	assert.Contains(t, out, `info="go"`)
}

func TestParseCommand_InvalidFormat(t *testing.T) {
	dir := setupWorkDir(t)
	path := writeDoc(t, dir, "hi\n")

	_, err := execute(t, "", "parse", path, "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestParseCommand_MissingFile(t *testing.T) {
	setupWorkDir(t)

	_, err := execute(t, "", "parse", "absent.md")
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestParseCommand_DepthLimit(t *testing.T) {
	dir := setupWorkDir(t)
	path := writeDoc(t, dir, strings.Repeat("> ", 5)+"deep\n")

	_, err := execute(t, "", "parse", path, "--max-depth", "3")
	require.Error(t, err)
	require.ErrorIs(t, err, parser.ErrTooDeeplyNested)
	assert.Equal(t, cli.ExitParseError, cli.ExitCodeFromError(err))
}

func TestParseCommand_ProjectConfig(t *testing.T) {
	dir := setupWorkDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mdtree.yml"),
		[]byte("format: outline\n"), 0o644))
	path := writeDoc(t, dir, "# One\n\n## Two\n")

	out, err := execute(t, "", "parse", path)
	require.NoError(t, err)
	assert.Equal(t, "- One\n  - Two\n", out)
}

func TestRefsCommand(t *testing.T) {
	dir := setupWorkDir(t)
	path := writeDoc(t, dir, "[spec]: https://spec.commonmark.org \"CommonMark\"\n")

	out, err := execute(t, "", "refs", path)
	require.NoError(t, err)
	assert.Contains(t, out, "spec")
	assert.Contains(t, out, "https://spec.commonmark.org")
	assert.Contains(t, out, "CommonMark")
}

func TestRefsCommand_Empty(t *testing.T) {
	dir := setupWorkDir(t)
	path := writeDoc(t, dir, "no refs here\n")

	out, err := execute(t, "", "refs", path)
	require.NoError(t, err)
	assert.Contains(t, out, "no reference definitions")
}

func TestOutlineCommand(t *testing.T) {
	setupWorkDir(t)

	out, err := execute(t, "# A\n\n## B\n", "outline", "-")
	require.NoError(t, err)
	assert.Equal(t, "- A\n  - B\n", out)
}

func TestInitCommand(t *testing.T) {
	dir := setupWorkDir(t)

	out, err := execute(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "created .mdtree.yaml")

	data, err := os.ReadFile(filepath.Join(dir, ".mdtree.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "format: tree")

	// A second init without --force refuses.
	_, err = execute(t, "", "init")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))

	_, err = execute(t, "", "init", "--force")
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	setupWorkDir(t)

	_, err := execute(t, "", "version")
	require.NoError(t, err)
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromError(nil))
	assert.Equal(t, cli.ExitParseError, cli.ExitCodeFromError(parser.ErrTooDeeplyNested))
	assert.Equal(t, cli.ExitParseError, cli.ExitCodeFromError(parser.ErrMalformedDelimiterState))
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(fs.ErrNotExist))
	assert.Equal(t, cli.ExitInternalError, cli.ExitCodeFromError(errors.New("boom")))
}
