package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWhenNothingFound(t *testing.T) {
	dir := t.TempDir()
	// A VCS marker keeps discovery from escaping the temp dir.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, config.FormatTree, result.Config.Format)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	path := writeConfig(t, dir, ".mdtree.yml", "format: json\nmax_depth: 10\n")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, 10, result.Config.MaxDepth)
	// Unset keys keep their defaults.
	assert.Equal(t, config.ColorAuto, result.Config.Color)
	assert.Equal(t, []string{path}, result.LoadedFrom)
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeConfig(t, root, ".mdtree.yaml", "format: outline\n")

	nested := filepath.Join(root, "docs", "guides")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), LoadOptions{WorkingDir: nested})
	require.NoError(t, err)
	assert.Equal(t, config.FormatOutline, result.Config.Format)
}

func TestLoad_ExplicitPathWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".mdtree.yml", "format: json\n")
	explicit := writeConfig(t, dir, "other.yaml", "format: markdown\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:   dir,
		ExplicitPath: explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, config.FormatMarkdown, result.Config.Format)
	assert.Equal(t, []string{explicit}, result.LoadedFrom)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	_, err := Load(context.Background(), LoadOptions{
		WorkingDir:   dir,
		ExplicitPath: filepath.Join(dir, "nope.yaml"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_MalformedProjectConfigWarns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".mdtree.yml", "format: [broken\n")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, config.FormatTree, result.Config.Format)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "skipping")
}

func TestLoad_CLIOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".mdtree.yml", "format: json\nmax_depth: 8\n")

	cli := &config.Config{Format: config.FormatTree, ShowRefs: true}
	result, err := Load(context.Background(), LoadOptions{
		WorkingDir: dir,
		CLIConfig:  cli,
	})
	require.NoError(t, err)
	assert.Equal(t, config.FormatTree, result.Config.Format)
	assert.Equal(t, 8, result.Config.MaxDepth)
	assert.True(t, result.Config.ShowRefs)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".mdtree.yml", "format: json\n")

	t.Setenv("MDTREE_FORMAT", "outline")
	t.Setenv("MDTREE_MAX_DEPTH", "12")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, config.FormatOutline, result.Config.Format)
	assert.Equal(t, 12, result.Config.MaxDepth)
}

func TestLoad_BadEnvWarns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	t.Setenv("MDTREE_MAX_DEPTH", "lots")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir})
	require.NoError(t, err)
	assert.Zero(t, result.Config.MaxDepth)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "MDTREE_MAX_DEPTH")
}

func TestLoad_ValidationRejectsBadMerge(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".mdtree.yml", "format: xml\n")

	_, err := Load(context.Background(), LoadOptions{WorkingDir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	good := config.NewConfig()
	require.NoError(t, validate(good))

	bad := config.NewConfig()
	bad.MaxDepth = -1
	require.Error(t, validate(bad))

	bad = config.NewConfig()
	bad.Extensions = []string{"md"}
	require.Error(t, validate(bad))
}
