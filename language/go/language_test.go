package golang

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/inlay"
	"github.com/rlch/inlay/language"
)

func TestGoLanguageName(t *testing.T) {
	t.Parallel()

	lang := New()
	assert.Equal(t, "go", lang.Name())
	assert.Equal(t, []string{".go"}, lang.Extensions())
}

func TestLanguageRegistry(t *testing.T) {
	t.Parallel()

	// Go language should be auto-registered via init()
	lang := language.Get("go")
	require.NotNil(t, lang)
	assert.Equal(t, "go", lang.Name())

	byPath, err := language.ForPath("/tmp/x/main.go")
	require.NoError(t, err)
	assert.Equal(t, "go", byPath.Name())

	_, err = language.ForPath("/tmp/x/main.rs")
	require.ErrorIs(t, err, language.ErrUnsupportedFile)

	assert.Nil(t, language.Get("nonexistent"))
	assert.Contains(t, language.RegisteredLanguages(), "go")
}

func TestAnalyze_FileLoader(t *testing.T) {
	t.Parallel()

	unit, err := language.Analyze(context.Background(), language.Request{
		Path:    "/virtual/sample.go",
		Content: []byte(sampleSrc),
		Loader:  inlay.LoaderFile,
	})
	require.NoError(t, err)

	hints := language.Hints(unit, inlay.StaticStyle(inlay.Style{SpaceBeforeTypeColon: true, SpaceAfterTypeColon: true}), nil)
	require.NotEmpty(t, hints)
	assert.Equal(t, "@TYPE@ : untyped int", hints[0].Text)
}

func TestAnalyze_UnparseableFile(t *testing.T) {
	t.Parallel()

	_, err := language.Analyze(context.Background(), language.Request{
		Path:    "/virtual/empty.go",
		Content: []byte("not go at all"),
		Loader:  inlay.LoaderFile,
	})
	require.ErrorIs(t, err, ErrNoSyntax)
}

func TestPackageLoader_LoadFileWithOverlay(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go tool")
	}

	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/demo\n\ngo 1.22\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.go"), []byte("package demo\n\ntype Point struct{ X, Y int }\n"), 0o600))

	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package demo\n"), 0o600))

	// The overlay is what the editor holds; it references a type from a
	// sibling file, which only resolves when the whole package is loaded.
	overlay := "package demo\n\nvar origin = &Point{}\n"

	loader := &PackageLoader{}

	f, err := loader.LoadFile(context.Background(), path, []byte(overlay))
	require.NoError(t, err)
	assert.Empty(t, f.Diagnostics())

	hints := language.Hints(f, nil, nil)
	require.Len(t, hints, 1)
	assert.Equal(t, "@TYPE@: *Point", hints[0].Text)
	assert.Equal(t, len("package demo\n\nvar origin"), hints[0].Offset)
}

func TestPackageLoader_LoadPackages(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go tool")
	}

	t.Parallel()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	write := func(name, content string) {
		t.Helper()

		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	write("go.mod", "module example.com/demo\n\ngo 1.22\n")
	write("point.go", "package demo\n\ntype Point struct{ X, Y int }\n")
	write("origin.go", "package demo\n\nvar origin = &Point{}\n")
	write("origin_test.go", "package demo\n\nimport \"testing\"\n\nfunc TestOrigin(t *testing.T) {\n\tp := *origin\n\t_ = p\n}\n")
	write("sub/sub.go", "package sub\n\nimport \"example.com/demo\"\n\nvar p = demo.Point{}\n")

	files, err := (&PackageLoader{}).LoadPackages(context.Background(), dir, "./...")
	require.NoError(t, err)

	byPath := make(map[string]*File, len(files))
	paths := make([]string, 0, len(files))

	for _, f := range files {
		byPath[f.Path] = f
		paths = append(paths, f.Path)
	}

	// Each file appears once even though tests add package variants.
	assert.Equal(t, []string{
		filepath.Join(dir, "origin.go"),
		filepath.Join(dir, "origin_test.go"),
		filepath.Join(dir, "point.go"),
		filepath.Join(dir, "sub", "sub.go"),
	}, paths)

	hintText := func(name string) []string {
		t.Helper()

		f := byPath[filepath.Join(dir, name)]
		require.NotNil(t, f, name)
		assert.Empty(t, f.Diagnostics(), name)

		var texts []string
		for _, h := range language.Hints(f, nil, nil) {
			texts = append(texts, h.Text)
		}

		return texts
	}

	assert.Equal(t, []string{"@TYPE@: *Point"}, hintText("origin.go"))
	assert.Equal(t, []string{"@TYPE@: Point"}, hintText("origin_test.go"))
	assert.Equal(t, []string{"@TYPE@: demo.Point"}, hintText("sub/sub.go"))
	assert.Empty(t, hintText("point.go"))
}
