// Package astaccess is the typed-AST access layer of spec §4.1: a small,
// deterministic surface over a tree-sitter-backed TypeScript/TSX oracle.
// Every operation here returns a zero value on failure; none ever panics
// or returns an error for a malformed-but-parseable file (spec §7,
// "Oracle unavailability").
package astaccess

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// DefaultMaxFileSize bounds how large a single source file the parser
// will accept, mirroring the reference stack's TypeScriptParser default.
const DefaultMaxFileSize = 5 * 1024 * 1024

// excludedDirs are never descended into while discovering project files.
var excludedDirs = map[string]bool{
	"node_modules": true, ".git": true, "dist": true, "build": true, "coverage": true,
}

// File is one parsed TypeScript/TSX source file.
type File struct {
	// Path is the file's path relative to the project root, using
	// forward slashes regardless of host OS (spec §6's "sorted iteration
	// of source files").
	Path   string
	Abs    string
	Source []byte
	Tree   *sitter.Tree
}

// Content returns the byte range [start,end) of the file's source. A
// span that is out of bounds or inverted yields "" instead of panicking.
func (f *File) Content(start, end int) string {
	if f == nil || start < 0 || end > len(f.Source) || start > end {
		return ""
	}
	return string(f.Source[start:end])
}

// Project is a loaded, sorted collection of parsed source files (spec
// §6, "AST oracle").
type Project struct {
	Root  string
	Files []*File // sorted by Path

	byPath map[string]*File
}

// LoadProject discovers and parses every .ts/.tsx file under root,
// skipping node_modules-like directories. It is the only operation in
// this package that can return a non-nil error — an unreadable project
// root is the *Configuration* error class of spec §7.
func LoadProject(ctx context.Context, root string) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, os.ErrInvalid
	}

	p := &Project{Root: abs, byPath: make(map[string]*File)}

	var paths []string
	err = filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(path)
		if ext == ".ts" || ext == ".tsx" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	for _, abs := range paths {
		if ctx.Err() != nil {
			break
		}
		rel, err := filepath.Rel(p.Root, abs)
		if err != nil {
			rel = abs
		}
		rel = filepath.ToSlash(rel)

		src, err := os.ReadFile(abs)
		if err != nil || int64(len(src)) > DefaultMaxFileSize {
			continue // per-file read/size failure is swallowed (spec §7)
		}

		lang := typescript.GetLanguage()
		if strings.HasSuffix(abs, ".tsx") {
			lang = tsx.GetLanguage()
		}
		tree, err := sitter.ParseCtx(ctx, src, lang)
		if err != nil || tree == nil {
			continue
		}

		f := &File{Path: rel, Abs: abs, Source: src, Tree: tree}
		p.Files = append(p.Files, f)
		p.byPath[rel] = f
	}

	return p, nil
}

// FileByPath looks up a parsed file by its project-relative path.
func (p *Project) FileByPath(path string) (*File, bool) {
	f, ok := p.byPath[filepath.ToSlash(path)]
	return f, ok
}

// ReadRelative reads an arbitrary project-relative file (e.g. an HTML
// template) from disk, rejecting any path that escapes Root.
func (p *Project) ReadRelative(relPath string) ([]byte, bool) {
	rel := filepath.ToSlash(relPath)
	if strings.HasPrefix(rel, "..") {
		return nil, false
	}
	abs := filepath.Join(p.Root, filepath.FromSlash(rel))
	if !strings.HasPrefix(abs, p.Root) {
		return nil, false
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, false
	}
	return data, true
}

// FileContaining returns the project file whose relative path contains
// specifier once a leading "./" is stripped — the lazy-recursion lookup
// rule of spec §4.3.
func (p *Project) FileContaining(specifier string) (*File, bool) {
	needle := strings.TrimPrefix(specifier, "./")
	for _, f := range p.Files {
		if strings.Contains(f.Path, needle) {
			return f, true
		}
	}
	return nil, false
}
