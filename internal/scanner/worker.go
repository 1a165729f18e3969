package scanner

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/mcauet/dirhunt/internal/httpclient"
)

// WorkerConfig is the fixed per-run configuration a Request Worker needs
// beyond the HTTP transport itself.
type WorkerConfig struct {
	HTTP              httpclient.Config
	ScrapeListable    bool
	MaxRecursionDepth *int // nil means unbounded
}

// worker consumes one UriGenerator, issuing requests for every candidate
// URL it yields, classifying the responses and forwarding Findings to the
// Output Sink and, for confirmed directories, to the Validator.
type worker struct {
	client     *http.Client
	cfg        WorkerConfig
	findings   chan<- Finding
	toValidate chan<- Finding
}

// RunWorker drains gen to exhaustion, emitting Findings to findings and
// toValidate, then signals done so the Scheduler can decrement its
// busy-worker count. done is a dedicated channel, separate from toValidate,
// since a worker's completion is not itself a directory to calibrate.
func RunWorker(gen *UriGenerator, findings chan<- Finding, toValidate chan<- Finding, done chan<- struct{}, client *http.Client, cfg WorkerConfig) {
	w := &worker{client: client, cfg: cfg, findings: findings, toValidate: toValidate}

	for {
		candidate, ok := gen.Next()
		if !ok {
			break
		}
		w.probe(candidate, gen)
	}

	done <- struct{}{}
}

func (w *worker) probe(candidate string, gen *UriGenerator) {
	resp, err := httpclient.Do(w.client, w.cfg.HTTP, candidate)
	if err != nil {
		// Transport failure: emitted to the Output Sink only, never to
		// the Validator, and never suppressed by a profile.
		w.findings <- Finding{URL: candidate, Code: 0, ContentLen: 0, ParentIndex: gen.ParentIndex, ParentDepth: gen.ParentDepth}
		return
	}

	f := Finding{
		URL:         candidate,
		Code:        resp.StatusCode,
		ContentLen:  int64(len(resp.Body)),
		ParentIndex: gen.ParentIndex,
		ParentDepth: gen.ParentDepth,
	}

	var listingBody []byte

	switch {
	case resp.StatusCode == 301 || resp.StatusCode == 302:
		decodedLoc, _ := url.PathUnescape(resp.RedirectTo)
		decodedDir, _ := url.PathUnescape(candidate + "/")
		f.RedirectURL = decodedLoc
		if decodedLoc == decodedDir {
			f.IsDirectory = true
			listingBody = w.fetchListingBody(candidate)
		}
	case resp.StatusCode == 200:
		dirURL := candidate
		if !strings.HasSuffix(dirURL, "/") {
			dirURL += "/"
		}
		if dirURL == candidate {
			// Candidate already names a directory; the body we already
			// have is the listing body.
			f.IsDirectory = true
			listingBody = resp.Body
		} else if body, ok := w.confirmDirectory(dirURL); ok {
			f.IsDirectory = true
			listingBody = body
		}
	}

	if f.IsDirectory && listingBody != nil {
		lower := strings.ToLower(string(listingBody))
		f.IsListable = isListableBody(lower)
	}

	if gen.Validator.Matches(f) {
		// Suppressed: matches the host's known catch-all noise. Dropped
		// silently — neither emitted nor enqueued.
		return
	}

	w.findings <- f
	if f.IsDirectory {
		w.toValidate <- f
	}

	if f.IsDirectory && f.IsListable && w.cfg.ScrapeListable {
		dirURL := candidate
		if !strings.HasSuffix(dirURL, "/") {
			dirURL += "/"
		}
		w.scrapeChildren(dirURL, listingBody, gen.ParentIndex, gen.ParentDepth, w.cfg.MaxRecursionDepth)
	}
}

// fetchListingBody re-fetches a confirmed-via-redirect directory (whose
// original response carried no body worth inspecting) so its listing can
// be examined. Failures just mean no listing detection happens.
func (w *worker) fetchListingBody(candidate string) []byte {
	dirURL := candidate
	if !strings.HasSuffix(dirURL, "/") {
		dirURL += "/"
	}
	resp, err := w.get(dirURL)
	if err != nil || resp.StatusCode != 200 {
		return nil
	}
	return resp.Body
}

// confirmDirectory performs the secondary GET dirble's glossary describes:
// a 200 at the candidate's guaranteed-trailing-slash form confirms it is a
// directory, and its body doubles as the listing-detection body.
func (w *worker) confirmDirectory(dirURL string) ([]byte, bool) {
	resp, err := w.get(dirURL)
	if err != nil || resp.StatusCode != 200 {
		return nil, false
	}
	return resp.Body, true
}

// get always issues a GET regardless of the worker's configured verb: the
// secondary directory-listing probe needs a body to inspect even when the
// run is otherwise using HEAD or POST.
func (w *worker) get(url string) (httpclient.Response, error) {
	getCfg := w.cfg.HTTP
	getCfg.Verb = httpclient.Get
	return httpclient.Do(w.client, getCfg, url)
}
