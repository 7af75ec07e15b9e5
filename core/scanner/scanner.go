package scanner

import "regexp"

// Line-level directive patterns. A line is classified by at most one of
// these; directives inside disabled preprocessor conditionals are still
// recognized, which is a known limitation of line-level scanning.
var (
	pragmaOncePattern      = regexp.MustCompile(`^\s*#\s*pragma\s+once\s*$`)
	externalIncludePattern = regexp.MustCompile(`^\s*#\s*include\s*<(.+)>\s*$`)
	internalIncludePattern = regexp.MustCompile(`^\s*#\s*include\s*"(.+)"\s*$`)
)

// Directives holds everything extracted from one file's lines.
type Directives struct {
	ExternalRefs []string
	InternalRefs []string
}

// Scan extracts external and internal include references from raw lines.
// Reference order follows line order; duplicates are kept, the graph and
// assembler decide what dedup means for each kind.
func Scan(lines []string) Directives {
	var d Directives
	for _, line := range lines {
		if m := externalIncludePattern.FindStringSubmatch(line); m != nil {
			d.ExternalRefs = append(d.ExternalRefs, m[1])
			continue
		}
		if m := internalIncludePattern.FindStringSubmatch(line); m != nil {
			d.InternalRefs = append(d.InternalRefs, m[1])
		}
	}
	return d
}

// IsPragmaOnce reports whether the line is an include-guard marker.
func IsPragmaOnce(line string) bool {
	return pragmaOncePattern.MatchString(line)
}

// IsExternalInclude reports whether the line is an `#include <...>` directive.
func IsExternalInclude(line string) bool {
	return externalIncludePattern.MatchString(line)
}

// IsInternalInclude reports whether the line is an `#include "..."` directive.
func IsInternalInclude(line string) bool {
	return internalIncludePattern.MatchString(line)
}

// IsDirective reports whether the line matches any of the three patterns
// and should be stripped from an assembled body.
func IsDirective(line string) bool {
	return IsPragmaOnce(line) || IsExternalInclude(line) || IsInternalInclude(line)
}
