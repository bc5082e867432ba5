package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// Adapter loads bundles from some source.
type Adapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves bundles held in memory.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return map[string]map[string]any{}, nil
	}
	return a.Data, nil
}

// FileAdapter reads a single bundle file.
type FileAdapter struct {
	parser Parser
	path   string
}

func NewFileAdapter(parser Parser, path string) *FileAdapter {
	return &FileAdapter{parser: parser, path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadCancelled, err)
	}
	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	parser := a.parser
	if parser == nil {
		parser = NewParserForFile(a.path)
	}
	if parser == nil {
		return nil, fmt.Errorf("%w: no parser for %q", ErrFailedToReadFile, a.path)
	}
	return parser.Parse(ctx, content)
}

// FSAdapter reads every bundle file in dir of fsys. A nil parser picks one
// per file extension. Files the parser does
// not support are ignored; later files override earlier ones in name order,
// which fs.ReadDir already returns.
type FSAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
}

func NewFSAdapter(parser Parser, fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{parser: parser, fsys: fsys, dir: dir}
}

// NewDirectoryAdapter reads bundle files from a directory on disk.
func NewDirectoryAdapter(parser Parser, dir string) *FSAdapter {
	return NewFSAdapter(parser, os.DirFS(dir), ".")
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	out := make(map[string]map[string]any)
	found := false
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadCancelled, err)
		}
		if entry.IsDir() {
			continue
		}
		parser := a.parser
		if parser == nil {
			parser = NewParserForFile(entry.Name())
		}
		if parser == nil || !parser.SupportsFileExtension(path.Ext(entry.Name())) {
			continue
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		bundles, err := parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		merge(out, bundles)
		found = true
	}

	if !found {
		return nil, fmt.Errorf("%w in %q", ErrNoBundles, a.dir)
	}
	return out, nil
}

// MultiAdapter loads several sources; later sources override earlier ones
// key by key.
type MultiAdapter []Adapter

func (m MultiAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any)
	for _, a := range m {
		if a == nil {
			continue
		}
		bundles, err := a.Load(ctx)
		if err != nil {
			return nil, err
		}
		merge(out, bundles)
	}
	return out, nil
}

func merge(dst, src map[string]map[string]any) {
	for lang, messages := range src {
		if dst[lang] == nil {
			dst[lang] = make(map[string]any, len(messages))
		}
		mergeTree(dst[lang], messages)
	}
}

func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		sub, isMap := v.(map[string]any)
		existing, hasMap := dst[k].(map[string]any)
		if isMap && hasMap {
			mergeTree(existing, sub)
			continue
		}
		if isMap {
			copied := make(map[string]any, len(sub))
			mergeTree(copied, sub)
			dst[k] = copied
			continue
		}
		dst[k] = v
	}
}
