package assembler

import (
	"fmt"
	"sort"
	"strings"

	"amalgo/core/models"
)

// Rule rewrites a body line: any line containing Token is replaced wholesale
// by Replacement. The default config carries a single rule that turns
// AMALGO_SOURCE_INLINE lines into `inline`, marking merged source symbols
// for inline linkage.
type Rule struct {
	Token       string `yaml:"token"`
	Replacement string `yaml:"replacement"`
}

// Apply returns the rewritten line and whether any rule matched. The first
// matching rule wins.
func Apply(rules []Rule, line string) (string, bool) {
	for _, rule := range rules {
		if strings.Contains(line, rule.Token) {
			return rule.Replacement, true
		}
	}
	return line, false
}

// Assemble produces the merged single-header text from records already in
// depended-upon-first order: one include guard, a sorted deduplicated block
// of external includes, then each file's cleaned body behind a path banner.
// The result has no trailing newline; the writing collaborator appends it.
func Assemble(ordered []*models.InputFile, rules []Rule) string {
	var out buffer

	out.writePragmaOnce()
	out.writeEmptyLine()

	for _, ref := range collectExternalRefs(ordered) {
		out.writeExternalInclude(ref)
	}
	out.writeEmptyLine()

	for _, record := range ordered {
		out.writeComment(record.Path)
		for _, line := range record.CleanedLines() {
			line, _ = Apply(rules, line)
			out.writeLine(line)
		}
		out.writeEmptyLine()
	}

	return out.String()
}

// collectExternalRefs unions every record's external references and sorts
// them, so the declaration block is identical regardless of discovery order.
func collectExternalRefs(records []*models.InputFile) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, record := range records {
		for _, ref := range record.ExternalRefs {
			if !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
	}
	sort.Strings(refs)
	return refs
}

type buffer struct {
	lines []string
}

func (b *buffer) writeLine(line string) {
	b.lines = append(b.lines, line)
}

func (b *buffer) writeEmptyLine() {
	b.lines = append(b.lines, "")
}

func (b *buffer) writeComment(comment string) {
	b.writeLine(fmt.Sprintf("// %s", comment))
}

func (b *buffer) writePragmaOnce() {
	b.writeLine("#pragma once")
}

func (b *buffer) writeExternalInclude(ref string) {
	b.writeLine(fmt.Sprintf("#include <%s>", ref))
}

func (b *buffer) String() string {
	return strings.Join(b.lines, "\n")
}
