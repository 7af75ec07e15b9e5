package graph

import (
	"errors"
	"fmt"

	"amalgo/core/logger"
	"amalgo/core/models"
)

var (
	ErrEmptyInput          = errors.New("no input files supplied")
	ErrDuplicateIdentity   = errors.New("duplicate header identity")
	ErrUnresolvedReference = errors.New("unresolved internal reference")
	ErrCycleDetected       = errors.New("dependency cycle detected")
)

// edge records one internal include occurrence: From depends on the header
// whose identity is Target. A file including the same header twice
// contributes two edges.
type edge struct {
	From   *models.InputFile
	Target string
}

// Graph is an index over the input records plus the depends-on relation
// extracted from their internal references. It is built once per run and
// only consumed by Order afterwards.
type Graph struct {
	nodes       []*models.InputFile
	edges       []edge
	headerIndex map[string]*models.InputFile
}

// Build indexes the records by header identity and collects the edge list.
// Internal references are not resolved here; Order reports unresolved
// targets. Record order is preserved, it is the deterministic tie-break
// for ordering.
func Build(records []*models.InputFile) (*Graph, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	g := &Graph{
		nodes:       records,
		headerIndex: make(map[string]*models.InputFile),
	}

	for _, record := range records {
		if record.Kind == models.Header {
			if existing, ok := g.headerIndex[record.Identity]; ok {
				return nil, fmt.Errorf("%w: %s (%s and %s)",
					ErrDuplicateIdentity, record.Identity, existing.Path, record.Path)
			}
			g.headerIndex[record.Identity] = record
		}

		for _, target := range record.InternalRefs {
			g.edges = append(g.edges, edge{From: record, Target: target})
		}
	}

	logger.Debug("Built dependency graph with %d nodes and %d edges", len(g.nodes), len(g.edges))
	return g, nil
}

// Len returns the number of records in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}
