package walker

import (
	"os"
	"path/filepath"
	"testing"

	"amalgo/core/config"
	"amalgo/core/models"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("int v;\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.HeaderDirs = []string{filepath.Join(dir, "include")}
	cfg.SourceDirs = []string{filepath.Join(dir, "src")}
	cfg.Output = filepath.Join(dir, "single_header.h")
	return cfg
}

func TestCollectFiltersAndClassifiesByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "include", "a.h"))
	writeFile(t, filepath.Join(dir, "include", "b.hpp"))
	writeFile(t, filepath.Join(dir, "include", "README.md"))
	writeFile(t, filepath.Join(dir, "src", "c.cpp"))
	writeFile(t, filepath.Join(dir, "src", "d.c"))
	writeFile(t, filepath.Join(dir, "src", "notes.txt"))

	w := New(testConfig(dir))
	discovered, err := w.Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(discovered) != 4 {
		t.Fatalf("Collect() found %d files, want 4: %+v", len(discovered), discovered)
	}

	kinds := map[string]models.FileKind{
		"a.h":   models.Header,
		"b.hpp": models.Header,
		"c.cpp": models.Source,
		"d.c":   models.Source,
	}
	for _, d := range discovered {
		want, ok := kinds[filepath.Base(d.Path)]
		if !ok {
			t.Errorf("unexpected file discovered: %s", d.Path)
			continue
		}
		if d.Kind != want {
			t.Errorf("%s classified as %v, want %v", d.Path, d.Kind, want)
		}
	}
}

func TestCollectPairsFilesWithTheirRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "include", "pkg", "a.h"))
	writeFile(t, filepath.Join(dir, "src", "c.cpp"))

	w := New(testConfig(dir))
	discovered, err := w.Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	for _, d := range discovered {
		if d.Kind == models.Header && d.Root != filepath.Join(dir, "include") {
			t.Errorf("header %s paired with root %s", d.Path, d.Root)
		}
		if d.Kind == models.Source && d.Root != filepath.Join(dir, "src") {
			t.Errorf("source %s paired with root %s", d.Path, d.Root)
		}
	}
}

func TestCollectNonRecursiveSkipsSubdirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "include", "a.h"))
	writeFile(t, filepath.Join(dir, "include", "sub", "b.h"))

	cfg := testConfig(dir)
	cfg.SourceDirs = nil
	cfg.Recursive = false

	discovered, err := New(cfg).Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(discovered) != 1 || filepath.Base(discovered[0].Path) != "a.h" {
		t.Fatalf("Collect() = %+v, want only the top-level a.h", discovered)
	}
}

func TestCollectMissingRootFails(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t.TempDir())

	if _, err := New(cfg).Collect(); err == nil {
		t.Fatal("Collect() succeeded with missing input directories")
	}
}

func TestCollectOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"z.h", "a.h", "m.h"} {
		writeFile(t, filepath.Join(dir, "include", name))
	}
	cfg := testConfig(dir)
	cfg.SourceDirs = nil

	first, err := New(cfg).Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	second, err := New(cfg).Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("Collect() lengths = %d, %d, want 3", len(first), len(second))
	}
	for i := range first {
		if first[i].Path != second[i].Path {
			t.Fatalf("discovery order differs between runs")
		}
	}
}
