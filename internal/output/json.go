package output

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/mcauet/dirhunt/internal/scanner"
)

// jsonRecord is the flat, serialization-only shape a Finding is rendered
// into for the JSON report — field names chosen for the report file, not
// reused from Finding directly so the wire shape stays stable if Finding
// grows internal-only fields later.
type jsonRecord struct {
	URL               string `json:"url"`
	Code              int    `json:"code"`
	ContentLength     int64  `json:"content_length"`
	IsDirectory       bool   `json:"is_directory"`
	IsListable        bool   `json:"is_listable"`
	RedirectURL       string `json:"redirect_url,omitempty"`
	FoundFromListable bool   `json:"found_from_listable"`
}

// JSONWriter accumulates Findings in memory and renders them as a single
// JSON array on Close — dirble's report formats are whole-document, not
// streamed, since a JSON array can't be appended to line by line.
type JSONWriter struct {
	mu      sync.Mutex
	w       io.Writer
	records []jsonRecord
	enabled bool
}

// NewJSONWriter builds a JSONWriter writing to w. Pass enabled=false (with
// any w, typically a nil *os.File) to get a disabled writer whose methods
// are no-ops — taking an explicit flag rather than testing w for nil avoids
// the classic Go trap where a nil *os.File boxed into a non-nil io.Writer
// interface would otherwise compare unequal to nil.
func NewJSONWriter(w io.Writer, enabled bool) *JSONWriter {
	return &JSONWriter{w: w, enabled: enabled}
}

// Write buffers f for inclusion in the final report.
func (jw *JSONWriter) Write(f scanner.Finding) error {
	if !jw.enabled {
		return nil
	}
	jw.mu.Lock()
	defer jw.mu.Unlock()
	jw.records = append(jw.records, jsonRecord{
		URL:               f.URL,
		Code:              f.Code,
		ContentLength:     f.ContentLen,
		IsDirectory:       f.IsDirectory,
		IsListable:        f.IsListable,
		RedirectURL:       f.RedirectURL,
		FoundFromListable: f.FoundFromListable,
	})
	return nil
}

// Close serializes every buffered Finding as a JSON array.
func (jw *JSONWriter) Close() error {
	if !jw.enabled {
		return nil
	}
	jw.mu.Lock()
	defer jw.mu.Unlock()

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(jw.records)
}

// IsEnabled reports whether JSON report output was requested for this run.
func (jw *JSONWriter) IsEnabled() bool {
	return jw.enabled
}
