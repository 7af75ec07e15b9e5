package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"amalgo/core/config"
	"amalgo/core/logger"
	"amalgo/core/models"
)

// Walker discovers header and source files under the configured roots.
// Discovery order is deterministic: roots in config order, files in
// filepath.Walk's lexical order within each root.
type Walker struct {
	HeaderDirs []string
	SourceDirs []string
	Extensions config.Extensions
	Recursive  bool
	Exclude    []string
}

func New(cfg *config.Config) *Walker {
	return &Walker{
		HeaderDirs: cfg.HeaderDirs,
		SourceDirs: cfg.SourceDirs,
		Extensions: cfg.Extensions,
		Recursive:  cfg.Recursive,
		Exclude:    []string{".git", cfg.Output},
	}
}

// Collect walks every declared root and returns the matching files, each
// paired with the root it was found under. A missing root is an error, not
// a silent empty result.
func (w *Walker) Collect() ([]models.DiscoveredFile, error) {
	var discovered []models.DiscoveredFile

	for _, root := range append(append([]string{}, w.HeaderDirs...), w.SourceDirs...) {
		if _, err := os.Stat(root); err != nil {
			return nil, fmt.Errorf("input directory does not exist: %s", root)
		}

		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != root {
					if w.shouldExclude(info.Name()) {
						return filepath.SkipDir
					}
					if !w.Recursive {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if w.shouldExclude(path) {
				return nil
			}

			kind, ok := w.kindOf(path)
			if !ok {
				return nil
			}

			discovered = append(discovered, models.DiscoveredFile{
				Path: path,
				Root: root,
				Kind: kind,
			})
			logger.Debug("Discovered %s file: %s", kind, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	return discovered, nil
}

// kindOf classifies a path by extension set membership.
func (w *Walker) kindOf(path string) (models.FileKind, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.Extensions.Header {
		if ext == e {
			return models.Header, true
		}
	}
	for _, e := range w.Extensions.Source {
		if ext == e {
			return models.Source, true
		}
	}
	return 0, false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, ex := range w.Exclude {
		if ex != "" && filepath.Clean(path) == filepath.Clean(ex) {
			return true
		}
	}
	return false
}
