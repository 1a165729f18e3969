// Package scanner implements the concurrent scan pipeline: the URI
// generator, request worker, validator and scheduler that together
// discover and classify resources on a target host.
package scanner

import (
	"fmt"
	"strings"
)

// EndMarkerURL is the reserved sentinel URL used to signal end-of-stream
// on both the findings channel (consumed by the output sink) and the
// to_validate channel (consumed by the Validator).
const EndMarkerURL = "data:MAIN ENDING"

// Finding is the unit passed between scan pipeline stages: the record of
// one probed or scraped resource.
type Finding struct {
	URL               string
	Code              int
	ContentLen        int64
	IsDirectory       bool
	IsListable        bool
	RedirectURL       string
	FoundFromListable bool
	ParentIndex       int
	ParentDepth       int
}

// EndMarker builds the terminal sentinel Finding sent to both the output
// sink and the Validator when a run ends.
func EndMarker() Finding {
	return Finding{URL: EndMarkerURL}
}

// fabricate builds a Finding for a resource that was never the subject of
// its own HTTP request (scraped entries, the run-ending sentinel aside).
func fabricate(url string, isDirectory, isListable bool, parentIndex, parentDepth int) Finding {
	return Finding{
		URL:               url,
		Code:              0,
		IsDirectory:       isDirectory,
		IsListable:        isListable,
		FoundFromListable: true,
		ParentIndex:       parentIndex,
		ParentDepth:       parentDepth,
	}
}

// DirectoryInfo is emitted by the Validator to the Scheduler whenever a new
// directory is confirmed scannable (or rejected, carrying its profile's
// verdict for logging).
type DirectoryInfo struct {
	URL         string
	ParentIndex int
	ParentDepth int
	Validator   *ValidatorProfile
}

// Depth computes the indentation/recursion-depth arithmetic specified by
// the output contract:
//
//	slash_count(url) - (1 if url ends with '/') - parent_depth - 1,
//	clamped at zero.
func Depth(url string, parentDepth int) int {
	depth := strings.Count(url, "/")
	if strings.HasSuffix(url, "/") {
		depth--
	}
	depth -= parentDepth
	depth--
	if depth < 0 {
		depth = 0
	}
	return depth
}

// recursionDepth computes the separate depth count listable-scrape
// recursion is bounded by: the same slash arithmetic as Depth, but without
// the extra -1 display adjustment. dirble's request.rs keeps get_depth()
// (display) and the inline depth check inside listable_check() (recursion
// bound) as two distinct formulas; collapsing them into one would let
// scraped recursion run one level deeper than max_recursion_depth allows.
func recursionDepth(url string, parentDepth int) int {
	depth := strings.Count(url, "/")
	if strings.HasSuffix(url, "/") {
		depth--
	}
	depth -= parentDepth
	if depth < 0 {
		depth = 0
	}
	return depth
}

// ClassificationLetter returns the letter the output sink prefixes a
// Finding with: "L " for a listable directory, "D " for a plain directory,
// "~ " for an entry found via scraping, "+ " otherwise.
func ClassificationLetter(f Finding) string {
	switch {
	case f.IsDirectory && f.IsListable:
		return "L "
	case f.IsDirectory:
		return "D "
	case f.FoundFromListable:
		return "~ "
	default:
		return "+ "
	}
}

// Suffix returns the HTTP response suffix string the output sink appends:
// "(CODE:n|SIZE:len)", or with "|DEST:url" for 301/302, or the literal
// "(SCRAPED)" for entries found via listable scraping.
func Suffix(f Finding) string {
	if f.FoundFromListable {
		return "(SCRAPED)"
	}
	if f.Code == 301 || f.Code == 302 {
		return fmt.Sprintf("(CODE:%d|SIZE:%d|DEST:%s)", f.Code, f.ContentLen, f.RedirectURL)
	}
	return fmt.Sprintf("(CODE:%d|SIZE:%d)", f.Code, f.ContentLen)
}
