package resolve

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"wesl/internal/project"
	"wesl/internal/source"
)

// Extensions tried in order when mapping a module path onto a file.
var Extensions = []string{".wesl", ".wgsl"}

// PathMode specifies how display names are derived from file paths.
type PathMode uint8

const (
	// PathModeRelative shows paths relative to the project directory.
	PathModeRelative PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	// PathModeBasename shows only the file name.
	PathModeBasename
)

// FileResolver resolves modules from a project layout on disk.
// It is read-only after construction and may be shared between goroutines.
type FileResolver struct {
	layout *project.Layout
	mode   PathMode
}

// NewFileResolver builds a resolver for layout.
func NewFileResolver(layout *project.Layout, mode PathMode) *FileResolver {
	return &FileResolver{layout: layout, mode: mode}
}

// NewDirResolver serves package:: modules straight from dir without a manifest.
func NewDirResolver(dir string) (*FileResolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return NewFileResolver(&project.Layout{ProjectDir: abs, RootDir: abs}, PathModeRelative), nil
}

func (r *FileResolver) baseDir(path source.ModulePath) (string, bool) {
	if path.Origin == source.OriginExternal {
		dir, ok := r.layout.Deps[path.Package]
		return dir, ok
	}
	return r.layout.RootDir, true
}

// locate ищет первый существующий файл для модуля.
func (r *FileResolver) locate(path source.ModulePath) (string, error) {
	base, ok := r.baseDir(path)
	if !ok {
		return "", &Error{Path: path, Reason: ReasonUnknownPackage}
	}
	stem := filepath.Join(base, filepath.FromSlash(path.Path))
	if path.Path == "" {
		// корень зависимости: lib.wesl / lib.wgsl
		stem = filepath.Join(base, "lib")
	}
	for _, ext := range Extensions {
		candidate := stem + ext
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", &Error{Path: path, Reason: ReasonIO, Err: err}
		}
	}
	return "", notFound(path)
}

func (r *FileResolver) ResolveSource(path source.ModulePath) (string, error) {
	file, err := r.locate(path)
	if err != nil {
		return "", err
	}
	// #nosec G304 -- file is derived from the project layout
	content, err := os.ReadFile(file)
	if err != nil {
		return "", &Error{Path: path, Reason: ReasonIO, Err: err}
	}
	text, _ := source.RemoveBOM(string(content))
	text, _ = source.NormalizeCRLF(text)
	return text, nil
}

func (r *FileResolver) DisplayName(path source.ModulePath) (string, bool) {
	file, err := r.locate(path)
	if err != nil {
		return "", false
	}
	switch r.mode {
	case PathModeAbsolute:
		return filepath.ToSlash(file), true
	case PathModeBasename:
		return filepath.Base(file), true
	default:
		rel, err := filepath.Rel(r.layout.ProjectDir, file)
		if err != nil {
			return filepath.ToSlash(file), true
		}
		return filepath.ToSlash(rel), true
	}
}

func (r *FileResolver) FSPath(path source.ModulePath) (string, bool) {
	file, err := r.locate(path)
	if err != nil {
		return "", false
	}
	return file, true
}
