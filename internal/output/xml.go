package output

import (
	"encoding/xml"
	"io"
	"sync"

	"github.com/mcauet/dirhunt/internal/scanner"
)

// xmlRecord mirrors jsonRecord's field set for the XML report, which
// restores the report format original_source/src/output_format.rs's
// output_xml produced and spec.md's distillation dropped.
type xmlRecord struct {
	URL               string `xml:"url"`
	Code              int    `xml:"code"`
	ContentLength     int64  `xml:"content_length"`
	IsDirectory       bool   `xml:"is_directory"`
	IsListable        bool   `xml:"is_listable"`
	RedirectURL       string `xml:"redirect_url,omitempty"`
	FoundFromListable bool   `xml:"found_from_listable"`
}

type xmlReport struct {
	XMLName xml.Name    `xml:"dirhunt_report"`
	Entries []xmlRecord `xml:"entry"`
}

// XMLWriter accumulates Findings in memory and renders them as a single
// XML document on Close, for the same whole-document reason JSONWriter
// buffers rather than streams.
type XMLWriter struct {
	mu      sync.Mutex
	w       io.Writer
	records []xmlRecord
	enabled bool
}

// NewXMLWriter builds an XMLWriter writing to w. Pass enabled=false (with
// any w, typically nil) to get a disabled writer whose methods are
// no-ops.
func NewXMLWriter(w io.Writer, enabled bool) *XMLWriter {
	return &XMLWriter{w: w, enabled: enabled}
}

// Write buffers f for inclusion in the final report.
func (xw *XMLWriter) Write(f scanner.Finding) error {
	if !xw.enabled {
		return nil
	}
	xw.mu.Lock()
	defer xw.mu.Unlock()
	xw.records = append(xw.records, xmlRecord{
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

// Close serializes every buffered Finding as an XML document.
func (xw *XMLWriter) Close() error {
	if !xw.enabled {
		return nil
	}
	xw.mu.Lock()
	defer xw.mu.Unlock()

	if _, err := xw.w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	enc := xml.NewEncoder(xw.w)
	enc.Indent("", "  ")
	return enc.Encode(xmlReport{Entries: xw.records})
}

// IsEnabled reports whether XML report output was requested for this run.
func (xw *XMLWriter) IsEnabled() bool {
	return xw.enabled
}
