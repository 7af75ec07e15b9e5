package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"amalgo/core/scanner"
)

type FileKind int

const (
	Header FileKind = iota
	Source
)

func (k FileKind) String() string {
	switch k {
	case Header:
		return "header"
	case Source:
		return "source"
	default:
		return "unknown"
	}
}

// DiscoveredFile is a file location paired with the declared root it was
// found under; the root anchors header identity derivation.
type DiscoveredFile struct {
	Path string
	Root string
	Kind FileKind
}

// ErrOutsideRoot means a header file does not live under the include root
// it was discovered in, so no identity can be derived for it.
var ErrOutsideRoot = errors.New("header outside declared include root")

// InputFile is one discovered header or source file with its directive
// references already extracted. It is immutable after construction;
// CleanedLines returns a fresh slice instead of filtering in place.
type InputFile struct {
	Path         string
	Kind         FileKind
	Identity     string // include-root-relative path, headers only
	Lines        []string
	ExternalRefs []string
	InternalRefs []string
}

// NewInputFile builds a record for a file discovered under the given
// include root. Sources have no identity (nothing may depend on them);
// a header's identity is its slash-separated path relative to the root,
// so an `#include "pkg/foo.h"` reference resolves to the same header
// wherever the root lives on disk.
func NewInputFile(path string, includeRoot string, kind FileKind, lines []string) (*InputFile, error) {
	f := &InputFile{
		Path:  path,
		Kind:  kind,
		Lines: lines,
	}

	if kind == Header {
		rel, err := filepath.Rel(includeRoot, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("%w: %s (root %s)", ErrOutsideRoot, path, includeRoot)
		}
		f.Identity = filepath.ToSlash(rel)
	}

	d := scanner.Scan(lines)
	f.ExternalRefs = d.ExternalRefs
	f.InternalRefs = d.InternalRefs

	return f, nil
}

// CleanedLines returns the body with guard markers and include directives
// filtered out.
func (f *InputFile) CleanedLines() []string {
	cleaned := make([]string, 0, len(f.Lines))
	for _, line := range f.Lines {
		if scanner.IsDirective(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return cleaned
}
