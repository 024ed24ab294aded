package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// models holds symbol model files, one per txtar entry.
const models = `
-- ok.yaml --
types:
  - name: App.Resource
    file: src/Resource.cs
    methods:
      - name: Open
        attributes: [Uno.ConstructorMethod]
      - name: Close
        attributes: [Uno.DisposeMethod]
  - name: App.Plain
    file: src/Plain.cs
    methods:
      - name: Close
        attributes: [Uno.DisposeMethodAtribute]
-- broken.yaml --
types:
  - name: App.Widget
    file: src/Widget.cs
    methods:
      - name: Setup
        attributes: [Uno.ConstructorMethod]
    constructors:
      - id: sized
        access: public
        parameters: [int size]
-- config.toml --
[output]
diagnostics = "report"
`

func setup(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, f := range txtar.Parse([]byte(models)).Files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0o644))
	}

	return dir
}

func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", filepath.Join(dir, "missing.toml"), "--color", "off"}, args...))

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestGen_Directory(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "out")

	_, stderr, err := run(t, dir, "gen", "--out", out, filepath.Join(dir, "ok.yaml"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "Resource.Resource.Lifecycle.g.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "partial class Resource : global::System.IDisposable")

	// App.Plain has no lifecycle methods: its hint is reported, no fragment is written.
	assert.Contains(t, stderr, "warning LC0301")
	assert.NoFileExists(t, filepath.Join(out, "Plain.Plain.Lifecycle.g.cs"))
}

func TestGen_Archive(t *testing.T) {
	dir := setup(t)

	stdout, _, err := run(t, dir, "gen", "--archive", filepath.Join(dir, "ok.yaml"), filepath.Join(dir, "broken.yaml"))
	require.NoError(t, err)

	ar := txtar.Parse([]byte(stdout))
	require.Len(t, ar.Files, 2)
	assert.Equal(t, "Resource.Resource.Lifecycle.g.cs", ar.Files[0].Name)
	assert.Equal(t, "Widget.Widget.Lifecycle.g.cs", ar.Files[1].Name)
	assert.Contains(t, string(ar.Files[1].Data), "#error LC0101")
}

func TestGen_ReportMode(t *testing.T) {
	dir := setup(t)

	stdout, stderr, err := run(t, dir, "gen", "--archive", "--diagnostics", "report", filepath.Join(dir, "broken.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, stdout, "#error")
	assert.Contains(t, stderr, "error LC0101")
}

func TestGen_ConfigFile(t *testing.T) {
	dir := setup(t)

	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"--config", filepath.Join(dir, "config.toml"), "gen", "--archive", filepath.Join(dir, "broken.yaml")})

	require.NoError(t, root.Execute())
	assert.NotContains(t, stdout.String(), "#error")
	assert.Contains(t, stderr.String(), "error LC0101")
}

func TestCheck(t *testing.T) {
	dir := setup(t)

	stdout, _, err := run(t, dir, "check", filepath.Join(dir, "ok.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "1 types checked, no errors\n", stdout)

	_, _, err = run(t, dir, "check", "--warnings-as-errors", filepath.Join(dir, "ok.yaml"))
	require.ErrorIs(t, err, errFailed)

	_, stderr, err := run(t, dir, "check", filepath.Join(dir, "broken.yaml"))
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "App.Widget: error LC0101")
	assert.Contains(t, stderr, "1 error, 0 warnings")
}

func TestExplain(t *testing.T) {
	dir := setup(t)

	stdout, _, err := run(t, dir, "explain", "--type", "App.Resource", filepath.Join(dir, "ok.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stdout, `"App.Resource"`)
	assert.Contains(t, stdout, `"NoExistingImplementation"`)

	_, _, err = run(t, dir, "explain", "--type", "App.Plain", filepath.Join(dir, "ok.yaml"))
	require.Error(t, err)
}

func TestModelErrors(t *testing.T) {
	dir := setup(t)

	_, _, err := run(t, dir, "gen")
	require.Error(t, err)

	_, _, err = run(t, dir, "gen", filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, version)
}

func TestExamples(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*", "model.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	config := filepath.Join("..", "..", "examples", "lifecycle.toml")

	for _, path := range paths {
		t.Run(filepath.Base(filepath.Dir(path)), func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			root := newRootCmd()
			root.SetOut(&stdout)
			root.SetErr(&stderr)
			root.SetArgs([]string{"--config", config, "gen", "--archive", path})

			require.NoError(t, root.Execute(), stderr.String())
			assert.NotEmpty(t, txtar.Parse(stdout.Bytes()).Files)
		})
	}
}

func TestExamples_CheckConflicts(t *testing.T) {
	stdout, stderr, err := run(t, t.TempDir(), "check", filepath.Join("..", "..", "examples", "conflicts", "model.yaml"))
	require.ErrorIs(t, err, errFailed)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "src/Legacy.cs(20): error LC0204")
	assert.Contains(t, stderr, "src/Widget.cs(8): error LC0101")
	assert.Contains(t, stderr, "warning LC0301")
}

func TestGen_ClearCache(t *testing.T) {
	dir := setup(t)
	cacheDir := filepath.Join(dir, "cache")

	cfg := "[cache]\nenabled = true\ndir = " + strconv.Quote(cacheDir) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cache.toml"), []byte(cfg), 0o644))

	stale := filepath.Join(cacheDir, "fragments", "stale.mp")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte{0xc1}, 0o644))

	generate := func(args ...string) string {
		var stdout bytes.Buffer

		root := newRootCmd()
		root.SetOut(&stdout)
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(append([]string{"--config", filepath.Join(dir, "cache.toml"), "gen", "--archive"}, args...))
		require.NoError(t, root.Execute())

		return stdout.String()
	}

	first := generate(filepath.Join(dir, "ok.yaml"))
	assert.FileExists(t, stale, "kept without --clear-cache")

	second := generate("--clear-cache", filepath.Join(dir, "ok.yaml"))
	assert.NoFileExists(t, stale)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(filepath.Join(cacheDir, "fragments"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries, "fragments are cached again after clearing")
}
