package amalgamator

import (
	"fmt"
	"os"
	"strings"

	"amalgo/core/assembler"
	"amalgo/core/cache"
	"amalgo/core/config"
	"amalgo/core/graph"
	"amalgo/core/logger"
	"amalgo/core/models"
	"amalgo/core/walker"
)

// Amalgamator runs the whole pipeline: discover files, build records, order
// them by the dependency graph, and assemble the merged header text.
type Amalgamator struct {
	cfg    *config.Config
	Walker *walker.Walker
}

func New(cfg *config.Config) *Amalgamator {
	return &Amalgamator{
		cfg:    cfg,
		Walker: walker.New(cfg),
	}
}

// Run produces the merged header text. Any failure aborts the run with no
// partial output.
func (a *Amalgamator) Run() (string, error) {
	discovered, err := a.Walker.Collect()
	if err != nil {
		return "", fmt.Errorf("failed to discover input files: %w", err)
	}
	if len(discovered) == 0 {
		roots := append(append([]string{}, a.cfg.HeaderDirs...), a.cfg.SourceDirs...)
		return "", fmt.Errorf("%w: nothing matched under %s",
			graph.ErrEmptyInput, strings.Join(roots, ", "))
	}

	records, err := a.buildRecords(discovered)
	if err != nil {
		return "", err
	}

	g, err := graph.Build(records)
	if err != nil {
		return "", fmt.Errorf("failed to build dependency graph: %w", err)
	}

	ordered, err := g.Order()
	if err != nil {
		return "", fmt.Errorf("failed to order input files: %w", err)
	}

	text := assembler.Assemble(ordered, a.cfg.Rewrite)
	logger.Debug("Assembled %d files into %d bytes", len(ordered), len(text))

	// Snapshot inputs so watch mode can tell real edits from no-op events.
	snapshots := cache.GetCache()
	for _, record := range records {
		snapshots.HasContentChanged(record.Path)
	}

	return text, nil
}

// RunAndWrite runs the pipeline and hands the text to the output
// collaborator: the configured file, or stdout when none is configured.
func (a *Amalgamator) RunAndWrite() error {
	text, err := a.Run()
	if err != nil {
		return err
	}
	return a.writeOutput(text)
}

func (a *Amalgamator) buildRecords(discovered []models.DiscoveredFile) ([]*models.InputFile, error) {
	records := make([]*models.InputFile, 0, len(discovered))
	for _, d := range discovered {
		lines, err := readFileLines(d.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", d.Path, err)
		}

		record, err := models.NewInputFile(d.Path, d.Root, d.Kind, lines)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (a *Amalgamator) writeOutput(text string) error {
	if a.cfg.Output == "" {
		if _, err := fmt.Fprintln(os.Stdout, text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(a.cfg.Output, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", a.cfg.Output, err)
	}
	logger.Info("Wrote %s (%d bytes)", a.cfg.Output, len(text)+1)
	return nil
}

func readFileLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}
