package golang

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/rlch/inlay"
	"github.com/rlch/inlay/language"
)

// ErrFileNotLoaded is returned when the go tool did not load the requested file.
var ErrFileNotLoaded = errors.New("file not found in loaded packages")

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// PackageLoader type-checks files as part of their package using the go tool,
// so that imports of the enclosing module resolve.
type PackageLoader struct {
	// Env is the environment of the go tool; nil inherits the process env.
	Env []string
}

// LoadFile loads the package containing path. content, when non-nil, overlays
// the file on disk.
func (l *PackageLoader) LoadFile(ctx context.Context, path string, content []byte) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	cfg := l.config(ctx, filepath.Dir(abs))
	cfg.Tests = strings.HasSuffix(abs, "_test.go")

	if content != nil {
		cfg.Overlay = map[string][]byte{abs: content}
	}

	pkgs, err := packages.Load(cfg, "file="+abs)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", abs, err)
	}

	for _, pkg := range pkgs {
		for _, syntax := range pkg.Syntax {
			if sameFile(pkg.Fset.File(syntax.Pos()).Name(), abs) {
				return fileFromPackage(pkg, syntax), nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrFileNotLoaded, abs)
}

// LoadPackages loads every package matching patterns, relative to dir, and
// returns one File per Go file, test files included, sorted by path.
// A file compiled into several package variants is returned once.
func (l *PackageLoader) LoadPackages(ctx context.Context, dir string, patterns ...string) ([]*File, error) {
	cfg := l.config(ctx, dir)
	cfg.Tests = true

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load %v: %w", patterns, err)
	}

	seen := make(map[string]bool)

	var files []*File

	for _, pkg := range pkgs {
		for _, syntax := range pkg.Syntax {
			name := filepath.Clean(pkg.Fset.File(syntax.Pos()).Name())
			if seen[name] {
				continue
			}

			seen[name] = true

			files = append(files, fileFromPackage(pkg, syntax))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

func (l *PackageLoader) config(ctx context.Context, dir string) *packages.Config {
	return &packages.Config{
		Mode:    loadMode,
		Context: ctx,
		Dir:     dir,
		Env:     l.Env,
		Fset:    token.NewFileSet(),
	}
}

func fileFromPackage(pkg *packages.Package, syntax *ast.File) *File {
	f := newFile(pkg.Fset.File(syntax.Pos()).Name(), pkg.Fset, syntax, pkg.Types, pkg.TypesInfo)

	for _, terr := range pkg.TypeErrors {
		if terr.Fset.File(terr.Pos) == f.tokFile {
			f.addDiagnostic(f.tokFile.Offset(terr.Pos), terr.Msg)
		}
	}

	for _, perr := range pkg.Errors {
		if perr.Kind != packages.ParseError {
			continue
		}

		if offset, ok := f.parsePos(perr.Pos); ok {
			f.addDiagnostic(offset, perr.Msg)
		}
	}

	return f
}

// parsePos converts a "file:line:col" position of this file to an offset.
func (f *File) parsePos(pos string) (int, bool) {
	parts := strings.Split(pos, ":")
	if len(parts) < 3 {
		return 0, false
	}

	file := strings.Join(parts[:len(parts)-2], ":")
	if !sameFile(file, f.Path) {
		return 0, false
	}

	line, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil || line < 1 || line > f.tokFile.LineCount() {
		return 0, false
	}

	col, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || col < 1 {
		return 0, false
	}

	return f.tokFile.Offset(f.tokFile.LineStart(line)) + col - 1, true
}

func sameFile(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// analyze type-checks req with the requested loader. The package loader
// falls back to checking the file alone when the go tool cannot load it.
func analyze(ctx context.Context, loader *PackageLoader, req language.Request) (*File, error) {
	if req.Loader == inlay.LoaderFile {
		return CheckFile(req.Path, req.Content)
	}

	f, err := loader.LoadFile(ctx, req.Path, req.Content)
	if err == nil {
		return f, nil
	}

	f, checkErr := CheckFile(req.Path, req.Content)
	if checkErr != nil {
		return nil, errors.Join(err, checkErr)
	}

	return f, nil
}
