// Package output implements the scan pipeline's output sink: the
// real-time terminal printer and the file/JSON/XML report writers that
// consume Findings from the scanner's output channel.
package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/mcauet/dirhunt/internal/scanner"
)

// TermPrinter is the colorized, tree-indented terminal sink. It consumes
// Findings in arrival order and writes one line per surviving entry,
// honoring a status-code filter the way dirble's terminal output does.
type TermPrinter struct {
	mu           sync.Mutex
	w            io.Writer
	statusFilter map[int]bool
	showAll      bool
	showNotFound bool
}

// NewTermPrinter builds a TermPrinter writing to w. An empty statusCodes
// filter means every code is shown except bare 404s (unless showNotFound
// is set), matching dirble's default "show everything interesting"
// behavior.
func NewTermPrinter(w io.Writer, statusCodes []int, showNotFound bool) *TermPrinter {
	p := &TermPrinter{
		w:            w,
		statusFilter: make(map[int]bool, len(statusCodes)),
		showNotFound: showNotFound,
	}
	if len(statusCodes) == 0 {
		p.showAll = true
	} else {
		for _, code := range statusCodes {
			p.statusFilter[code] = true
		}
	}
	return p
}

// ShouldShow reports whether a Finding's status code passes the configured
// filter.
func (p *TermPrinter) ShouldShow(f scanner.Finding) bool {
	if p.showAll {
		return p.showNotFound || f.Code != 404
	}
	return p.statusFilter[f.Code]
}

// Print writes one line for f, or does nothing if it's filtered out.
func (p *TermPrinter) Print(f scanner.Finding) {
	if !p.ShouldShow(f) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	depth := scanner.Depth(f.URL, f.ParentDepth)
	prefix := treePrefix(depth)
	letter := scanner.ClassificationLetter(f)
	suffix := colorizeSuffix(f)

	fmt.Fprintf(p.w, "%s%s%s %s\n", prefix, letter, f.URL, suffix)
}

// treePrefix renders the same box-drawing indentation style the teacher's
// printer used, keyed off the output contract's depth arithmetic instead
// of raw slash-counting.
func treePrefix(depth int) string {
	switch {
	case depth <= 0:
		return ""
	case depth == 1:
		return "├── "
	default:
		return strings.Repeat("│   ", depth-1) + "├── "
	}
}

// colorizeSuffix renders scanner.Suffix(f), coloring the status code by
// its response class the way the teacher's printer colored status codes.
func colorizeSuffix(f scanner.Finding) string {
	suffix := scanner.Suffix(f)
	if f.FoundFromListable {
		return color.CyanString(suffix)
	}
	return statusColor(f.Code).Sprint(suffix)
}

func statusColor(code int) *color.Color {
	switch {
	case code >= 200 && code < 300:
		return color.New(color.FgGreen)
	case code >= 300 && code < 400:
		return color.New(color.FgBlue)
	case code >= 400 && code < 500:
		return color.New(color.FgYellow)
	case code >= 500:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgWhite)
	}
}

// IsInteresting reports whether a status code is one of the success,
// redirect and access-denied codes that are normally worth a closer look.
// The file/JSON/XML writers do not consult it: they record every Finding
// they receive, independent of the terminal filter.
func IsInteresting(statusCode int) bool {
	switch statusCode {
	case 200, 201, 204, 301, 302, 307, 308, 401, 403, 405:
		return true
	default:
		return false
	}
}
