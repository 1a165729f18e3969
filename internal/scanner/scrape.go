package scanner

import (
	"bytes"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// listableMarkers are the fixed, lowercased substrings that indicate an
// autoindex-style directory listing page.
var listableMarkers = []string{
	"parent directory",
	"up to ",
	"directory listing for",
}

// isListableBody reports whether a (lowercased) response body looks like
// an autoindex-style directory listing.
func isListableBody(lowerBody string) bool {
	for _, marker := range listableMarkers {
		if strings.Contains(lowerBody, marker) {
			return true
		}
	}
	return false
}

// extractLinks walks the parsed HTML document tree and returns every href
// attribute found on an <a> element, exactly as it appeared in the markup.
func extractLinks(body []byte) []string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					links = append(links, attr.Val)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links
}

// scrapeChildren extracts links from a listable directory's body and, for
// each one, either emits a fabricated file Finding, emits a fabricated
// (depth-exceeded) directory Finding, or recurses into it in-process to
// repeat the listable check — bounded by maxRecursionDepth when set.
//
// This recursion is a side channel from the scheduler's wordlist-driven
// scan queue: scraped subdirectories are reported to the Output Sink only,
// never enqueued for active brute-forcing.
func (w *worker) scrapeChildren(dirURL string, body []byte, parentIndex, parentDepth int, maxRecursionDepth *int) {
	base, err := url.Parse(dirURL)
	if err != nil {
		return
	}

	for _, href := range extractLinks(body) {
		resolved, err := base.Parse(href)
		if err != nil {
			// Malformed URL during scraping: skip it, scraping continues.
			continue
		}
		scrapedURL := resolved.String()

		if !strings.HasSuffix(scrapedURL, "/") {
			w.findings <- fabricate(scrapedURL, false, false, parentIndex, parentDepth)
			continue
		}

		if maxRecursionDepth != nil && recursionDepth(scrapedURL, parentDepth) > *maxRecursionDepth {
			w.findings <- fabricate(scrapedURL, true, false, parentIndex, parentDepth)
			continue
		}

		w.listableDescend(scrapedURL, parentIndex, parentDepth, maxRecursionDepth)
	}
}

// listableDescend performs the in-process GET + listable check on a
// scraped subdirectory URL, emitting a Finding for it and recursing
// further if its body is itself a listing.
func (w *worker) listableDescend(dirURL string, parentIndex, parentDepth int, maxRecursionDepth *int) {
	resp, err := w.get(dirURL)
	if err != nil {
		return
	}

	// A real request was issued for dirURL, so found_from_listable is
	// false here — it only marks entries fabricated without a request of
	// their own (the file/depth-exceeded branches above).
	f := Finding{
		URL:         dirURL,
		Code:        resp.StatusCode,
		ContentLen:  int64(len(resp.Body)),
		IsDirectory: true,
		ParentIndex: parentIndex,
		ParentDepth: parentDepth,
	}

	if resp.StatusCode != 200 {
		w.findings <- f
		return
	}

	lower := strings.ToLower(string(resp.Body))
	f.IsListable = isListableBody(lower)
	w.findings <- f

	if f.IsListable && w.cfg.ScrapeListable {
		w.scrapeChildren(dirURL, resp.Body, parentIndex, parentDepth, maxRecursionDepth)
	}
}
