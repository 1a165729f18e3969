package scanner

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// sizeTolerance is how many bytes of difference between calibration probe
// response sizes are still considered "the same" signature.
const sizeTolerance = 4

// calibrationProbes is how many deliberately improbable paths the
// Validator requests per host before deciding whether that host's
// responses can be trusted.
const calibrationProbes = 3

// Signature identifies a response the host is known to return for a
// nonexistent path: either an exact (code, content length) pair, or — when
// ClassOnly is set — just a response-code class (e.g. any 4xx).
type Signature struct {
	Code       int
	ContentLen int64
	ClassOnly  bool
}

func (s Signature) matches(f Finding) bool {
	if s.ClassOnly {
		return f.Code/100 == s.Code/100
	}
	if f.Code != s.Code {
		return false
	}
	diff := f.ContentLen - s.ContentLen
	if diff < 0 {
		diff = -diff
	}
	return diff <= sizeTolerance
}

// ValidatorProfile is a per-host calibration result: the response
// signatures the site returns for known-nonexistent paths, and whether
// the host's responses were consistent enough to justify descending into
// directories at all.
type ValidatorProfile struct {
	Signatures []Signature
	ScanFolder bool
	Alert      string
}

// Matches reports whether a Finding's response signature matches this
// profile's known catch-all noise and should therefore be suppressed.
func (p *ValidatorProfile) Matches(f Finding) bool {
	if p == nil {
		return false
	}
	for _, sig := range p.Signatures {
		if sig.matches(f) {
			return true
		}
	}
	return false
}

// prober issues a single calibration request and reports the response
// code and body size, or ok=false on transport failure. Exposed as a field
// so tests can substitute a deterministic stub instead of real HTTP.
type prober func(url string) (code int, size int64, ok bool)

// Validator is the single-threaded per-host calibrator. It consumes
// confirmed-directory Findings from ToValidate, lazily builds a
// ValidatorProfile the first time it sees a given host, and emits a
// DirectoryInfo carrying that profile to ToScan.
type Validator struct {
	ToValidate <-chan Finding
	ToScan     chan<- DirectoryInfo

	extensions []string
	scanOpts   ScanOpts
	probe      prober
	profiles   map[string]*ValidatorProfile
	log        Logger
}

// ScanOpts is the opaque struct consulted by ValidatorProfile's scan
// decision. ForceScan overrides an unreliable calibration and scans the
// directory anyway.
type ScanOpts struct {
	ForceScan bool
}

// Logger is the narrow logging contract scanner components use; see
// internal/logx for the concrete implementation wired in by cmd/dirhunt.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

// NewValidator builds a Validator using a real HTTP client for calibration
// probes.
func NewValidator(toValidate <-chan Finding, toScan chan<- DirectoryInfo, client *http.Client, extensions []string, scanOpts ScanOpts, log Logger) *Validator {
	if log == nil {
		log = noopLogger{}
	}
	v := &Validator{
		ToValidate: toValidate,
		ToScan:     toScan,
		extensions: extensions,
		scanOpts:   scanOpts,
		profiles:   make(map[string]*ValidatorProfile),
		log:        log,
	}
	v.probe = func(url string) (int, int64, bool) {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return 0, 0, false
		}
		resp, err := client.Do(req)
		if err != nil {
			return 0, 0, false
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return 0, 0, false
		}
		return resp.StatusCode, int64(len(body)), true
	}
	return v
}

// Run is the Validator's main loop: consume Findings until the run-ending
// sentinel arrives, then exit cleanly.
func (v *Validator) Run() {
	for f := range v.ToValidate {
		if f.URL == EndMarkerURL {
			return
		}
		v.handle(f)
	}
}

func (v *Validator) handle(f Finding) {
	host := hostBase(f.URL)
	profile, ok := v.profiles[host]
	if !ok {
		profile = v.buildProfile(host)
		v.profiles[host] = profile
	}

	if v.scanOpts.ForceScan && !profile.ScanFolder {
		profile = &ValidatorProfile{ScanFolder: true, Alert: profile.Alert}
		v.profiles[host] = profile
	}

	v.ToScan <- DirectoryInfo{
		URL:         f.URL,
		ParentIndex: f.ParentIndex,
		ParentDepth: f.ParentDepth,
		Validator:   profile,
	}
}

// buildProfile probes several deliberately improbable paths under host and
// decides whether the host's responses are consistent enough to trust.
func (v *Validator) buildProfile(host string) *ValidatorProfile {
	type result struct {
		code int
		size int64
	}
	var results []result
	for i := 0; i < calibrationProbes; i++ {
		u := host + randomToken()
		if i == 0 && len(v.extensions) > 0 && v.extensions[0] != "" {
			u += v.extensions[0]
		}
		if code, size, ok := v.probe(u); ok {
			results = append(results, result{code, size})
		}
	}

	if len(results) == 0 {
		return &ValidatorProfile{ScanFolder: true}
	}

	first := results[0]
	consistent := true
	for _, r := range results[1:] {
		diff := r.size - first.size
		if diff < 0 {
			diff = -diff
		}
		if r.code != first.code || diff > sizeTolerance {
			consistent = false
			break
		}
	}

	if !consistent {
		alert := fmt.Sprintf(" (calibration for %s returned inconsistent responses, descent disabled)", host)
		v.log.Infof("calibration unreliable for %s, skipping descent", host)
		return &ValidatorProfile{ScanFolder: false, Alert: alert}
	}

	return &ValidatorProfile{
		Signatures: []Signature{{Code: first.code, ContentLen: first.size}},
		ScanFolder: true,
	}
}

func randomToken() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "dirhunt_calibration_token"
	}
	return "dirhunt_" + hex.EncodeToString(b[:])
}

// hostBase returns the scheme+authority portion of a URL with a trailing
// slash, used as the Validator's per-profile cache key.
func hostBase(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawURL
	}
	return u.Scheme + "://" + u.Host + "/"
}
