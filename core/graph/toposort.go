package graph

import (
	"fmt"
	"strings"

	"amalgo/core/logger"
	"amalgo/core/models"
)

// Order computes the emission order for the assembler: every header appears
// before every file that includes it.
//
// Kahn's algorithm runs over the includer -> included edge direction, so its
// raw result lists files nobody depends on first and leaf headers last. The
// final reversal turns that into the depended-upon-first order the merged
// output needs; it is a required step, not a presentation choice.
func (g *Graph) Order() ([]*models.InputFile, error) {
	inDegree := make(map[string]int, len(g.headerIndex))
	for identity := range g.headerIndex {
		inDegree[identity] = 0
	}
	for _, e := range g.edges {
		if _, ok := g.headerIndex[e.Target]; !ok {
			return nil, fmt.Errorf("%w: %q included by %s",
				ErrUnresolvedReference, e.Target, e.From.Path)
		}
		inDegree[e.Target]++
	}

	// Seed with records that have no incoming edges: every source file, and
	// headers nothing includes. Seeding walks the nodes in insertion order,
	// which keeps the result deterministic for identical input ordering.
	queue := make([]*models.InputFile, 0, len(g.nodes))
	for _, record := range g.nodes {
		if record.Kind == models.Source || inDegree[record.Identity] == 0 {
			queue = append(queue, record)
		}
	}

	result := make([]*models.InputFile, 0, len(g.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, target := range current.InternalRefs {
			inDegree[target]--
			if inDegree[target] == 0 {
				queue = append(queue, g.headerIndex[target])
			}
		}
	}

	if len(result) < len(g.nodes) {
		return nil, fmt.Errorf("%w: %s", ErrCycleDetected,
			strings.Join(g.remainder(result), ", "))
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	logger.Debug("Ordered %d files", len(result))
	return result, nil
}

// remainder names the nodes left unvisited when the queue drained early;
// they are the members of at least one cycle.
func (g *Graph) remainder(visited []*models.InputFile) []string {
	seen := make(map[*models.InputFile]bool, len(visited))
	for _, record := range visited {
		seen[record] = true
	}

	var names []string
	for _, record := range g.nodes {
		if !seen[record] {
			names = append(names, record.Path)
		}
	}
	return names
}
