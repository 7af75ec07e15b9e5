package assembler

import (
	"path/filepath"
	"strings"
	"testing"

	"amalgo/core/models"
)

var testRules = []Rule{{Token: "AMALGO_SOURCE_INLINE", Replacement: "inline"}}

func record(t *testing.T, root, name string, kind models.FileKind, lines ...string) *models.InputFile {
	t.Helper()
	f, err := models.NewInputFile(filepath.Join(root, filepath.FromSlash(name)), root, kind, lines)
	if err != nil {
		t.Fatalf("NewInputFile(%s) error = %v", name, err)
	}
	return f
}

func TestAssembleFullOutput(t *testing.T) {
	t.Parallel()

	a := record(t, "include", "a.h", models.Header,
		"#pragma once",
		"#include <atomic>",
		"struct A {};",
	)
	b := record(t, "include", "b.h", models.Header,
		"#pragma once",
		"#include <vector>",
		`#include "a.h"`,
		"struct B {};",
	)
	c := record(t, "src", "c.cpp", models.Source,
		"#include <vector>",
		`#include "b.h"`,
		"AMALGO_SOURCE_INLINE",
		"void run() {}",
	)

	got := Assemble([]*models.InputFile{a, b, c}, testRules)

	want := strings.Join([]string{
		"#pragma once",
		"",
		"#include <atomic>",
		"#include <vector>",
		"",
		"// " + a.Path,
		"struct A {};",
		"",
		"// " + b.Path,
		"struct B {};",
		"",
		"// " + c.Path,
		"inline",
		"void run() {}",
		"",
	}, "\n")

	if got != want {
		t.Errorf("Assemble() =\n%s\nwant:\n%s", got, want)
	}
}

func TestAssembleSingleGuardMarker(t *testing.T) {
	t.Parallel()

	a := record(t, "include", "a.h", models.Header, "#pragma once", "struct A {};")
	b := record(t, "include", "b.h", models.Header, "#pragma once", "struct B {};")

	got := Assemble([]*models.InputFile{a, b}, nil)

	if count := strings.Count(got, "#pragma once"); count != 1 {
		t.Errorf("output contains %d guard markers, want exactly 1", count)
	}
	if !strings.HasPrefix(got, "#pragma once\n") {
		t.Errorf("output does not start with the guard marker:\n%s", got)
	}
}

func TestAssembleExternalBlockDedupedAndSorted(t *testing.T) {
	t.Parallel()

	var records []*models.InputFile
	names := []string{"a.h", "b.h", "c.h"}
	for _, name := range names {
		records = append(records, record(t, "include", name, models.Header,
			"#include <vector>",
			"#include <atomic>",
			"int v;",
		))
	}

	got := Assemble(records, nil)

	if count := strings.Count(got, "#include <vector>"); count != 1 {
		t.Errorf("<vector> declared %d times, want 1", count)
	}
	atomicIdx := strings.Index(got, "#include <atomic>")
	vectorIdx := strings.Index(got, "#include <vector>")
	if atomicIdx < 0 || vectorIdx < 0 || atomicIdx > vectorIdx {
		t.Errorf("external block not lexicographically sorted:\n%s", got)
	}
}

func TestAssembleEveryRecordAppearsOnce(t *testing.T) {
	t.Parallel()

	a := record(t, "include", "a.h", models.Header, "struct A {};")
	b := record(t, "src", "b.cpp", models.Source, "void f() {}")

	got := Assemble([]*models.InputFile{a, b}, nil)

	for _, r := range []*models.InputFile{a, b} {
		banner := "// " + r.Path
		if count := strings.Count(got, banner); count != 1 {
			t.Errorf("banner %q appears %d times, want 1", banner, count)
		}
	}
}

func TestApplyReplacesWholeLine(t *testing.T) {
	t.Parallel()

	line, matched := Apply(testRules, "AMALGO_SOURCE_INLINE void helper() {")
	if !matched {
		t.Fatal("expected the sentinel rule to match")
	}
	if line != "inline" {
		t.Errorf("Apply() = %q, want %q with no other content retained", line, "inline")
	}
}

func TestApplyFirstRuleWins(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{Token: "MARK", Replacement: "first"},
		{Token: "MARKER", Replacement: "second"},
	}
	line, matched := Apply(rules, "MARKER")
	if !matched || line != "first" {
		t.Errorf("Apply() = %q (matched=%v), want first matching rule to win", line, matched)
	}
}

func TestApplyNoMatchPassesThrough(t *testing.T) {
	t.Parallel()

	line, matched := Apply(testRules, "void run() {}")
	if matched || line != "void run() {}" {
		t.Errorf("Apply() = %q (matched=%v), want unchanged pass-through", line, matched)
	}
}
