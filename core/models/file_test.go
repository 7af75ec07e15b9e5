package models

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewInputFileHeaderIdentity(t *testing.T) {
	t.Parallel()

	path := filepath.Join("include", "pkg", "ref.h")
	f, err := NewInputFile(path, "include", Header, []string{"#pragma once"})
	if err != nil {
		t.Fatalf("NewInputFile() error = %v", err)
	}

	if f.Identity != "pkg/ref.h" {
		t.Errorf("Identity = %q, want %q", f.Identity, "pkg/ref.h")
	}
	if f.Kind != Header {
		t.Errorf("Kind = %v, want Header", f.Kind)
	}
}

func TestNewInputFileSourceHasNoIdentity(t *testing.T) {
	t.Parallel()

	f, err := NewInputFile(filepath.Join("src", "main.cpp"), "src", Source, nil)
	if err != nil {
		t.Fatalf("NewInputFile() error = %v", err)
	}
	if f.Identity != "" {
		t.Errorf("Identity = %q, want empty for source files", f.Identity)
	}
}

func TestNewInputFileHeaderOutsideRoot(t *testing.T) {
	t.Parallel()

	_, err := NewInputFile(filepath.Join("other", "ref.h"), "include", Header, nil)
	if !errors.Is(err, ErrOutsideRoot) {
		t.Fatalf("error = %v, want ErrOutsideRoot", err)
	}
}

func TestNewInputFileScansDirectives(t *testing.T) {
	t.Parallel()

	lines := []string{
		"#pragma once",
		"#include <atomic>",
		`#include "pkg/types.h"`,
		"struct Object {};",
	}
	f, err := NewInputFile(filepath.Join("include", "pkg", "object.h"), "include", Header, lines)
	if err != nil {
		t.Fatalf("NewInputFile() error = %v", err)
	}

	if !reflect.DeepEqual(f.ExternalRefs, []string{"atomic"}) {
		t.Errorf("ExternalRefs = %v, want [atomic]", f.ExternalRefs)
	}
	if !reflect.DeepEqual(f.InternalRefs, []string{"pkg/types.h"}) {
		t.Errorf("InternalRefs = %v, want [pkg/types.h]", f.InternalRefs)
	}
}

func TestCleanedLinesFiltersDirectivesImmutably(t *testing.T) {
	t.Parallel()

	lines := []string{
		"#pragma once",
		"#include <atomic>",
		`#include "pkg/types.h"`,
		"struct Object {};",
		"",
	}
	f, err := NewInputFile(filepath.Join("include", "pkg", "object.h"), "include", Header, lines)
	if err != nil {
		t.Fatalf("NewInputFile() error = %v", err)
	}

	want := []string{"struct Object {};", ""}
	if got := f.CleanedLines(); !reflect.DeepEqual(got, want) {
		t.Errorf("CleanedLines() = %v, want %v", got, want)
	}

	// The record itself stays untouched.
	if len(f.Lines) != 5 {
		t.Errorf("Lines mutated, len = %d, want 5", len(f.Lines))
	}
}
