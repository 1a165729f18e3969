// Package config defines the closed configuration surface a dirhunt run
// is built from: everything cmd/dirhunt's flags populate, validated once
// before any worker goroutine starts.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcauet/dirhunt/internal/httpclient"
	"github.com/mcauet/dirhunt/internal/scanner"
)

// Config is the validated, immutable configuration for one scan run.
// Fields are private; construct one with New and read it back through the
// accessor methods, mirroring the getter-only shape the docs-crawler
// example uses for its own Config.
type Config struct {
	//===============
	// Targets
	//===============
	hosts []string

	//===============
	// Wordlist
	//===============
	wordlistFiles  []string
	extensions     []string
	extensionSubst bool
	prefixes       []string

	//===============
	// Concurrency
	//===============
	maxThreads    int
	wordlistSplit int

	//===============
	// HTTP
	//===============
	verb         httpclient.Verb
	timeout      time.Duration
	userAgent    string
	proxyAddress string
	ignoreCert   bool
	username     string
	password     string
	cookies      string
	headers      []string

	//===============
	// Scan behavior
	//===============
	scrapeListable    bool
	maxRecursionDepth *int
	forceScan         bool

	//===============
	// Output
	//===============
	outputFile   string
	jsonFile     string
	xmlFile      string
	statusCodes  []int
	showNotFound bool

	//===============
	// Logging
	//===============
	verbosity string
}

// Params is the raw, unvalidated input New accepts — the shape cmd/dirhunt
// fills in straight from cobra flags.
type Params struct {
	Hosts             []string
	WordlistFiles     []string
	Extensions        []string
	ExtensionSubst    bool
	Prefixes          []string
	MaxThreads        int
	WordlistSplit     int
	Verb              string
	Timeout           time.Duration
	UserAgent         string
	ProxyAddress      string
	IgnoreCert        bool
	Username          string
	Password          string
	Cookies           string
	Headers           []string
	ScrapeListable    bool
	MaxRecursionDepth int // <0 means unbounded
	ForceScan         bool
	OutputFile        string
	JSONFile          string
	XMLFile           string
	StatusCodes       []int
	ShowNotFound      bool
	Verbosity         string
}

// New validates p and builds an immutable Config, or returns an error
// describing the first invalid field found.
func New(p Params) (*Config, error) {
	if len(p.Hosts) == 0 {
		return nil, fmt.Errorf("config: at least one host is required")
	}
	if p.MaxThreads <= 0 {
		return nil, fmt.Errorf("config: max_threads must be positive, got %d", p.MaxThreads)
	}
	if p.WordlistSplit <= 0 {
		return nil, fmt.Errorf("config: wordlist_split must be positive, got %d", p.WordlistSplit)
	}

	verb := httpclient.Verb(strings.ToUpper(p.Verb))
	switch verb {
	case "", httpclient.Get:
		verb = httpclient.Get
	case httpclient.Head, httpclient.Post:
	default:
		return nil, fmt.Errorf("config: unsupported HTTP verb %q", p.Verb)
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var maxRecursionDepth *int
	if p.MaxRecursionDepth >= 0 {
		d := p.MaxRecursionDepth
		maxRecursionDepth = &d
	}

	hosts := make([]string, len(p.Hosts))
	for i, h := range p.Hosts {
		hosts[i] = h
		if !strings.HasSuffix(hosts[i], "/") {
			hosts[i] += "/"
		}
	}

	return &Config{
		hosts:             hosts,
		wordlistFiles:     p.WordlistFiles,
		extensions:        p.Extensions,
		extensionSubst:    p.ExtensionSubst,
		prefixes:          p.Prefixes,
		maxThreads:        p.MaxThreads,
		wordlistSplit:     p.WordlistSplit,
		verb:              verb,
		timeout:           timeout,
		userAgent:         p.UserAgent,
		proxyAddress:      p.ProxyAddress,
		ignoreCert:        p.IgnoreCert,
		username:          p.Username,
		password:          p.Password,
		cookies:           p.Cookies,
		headers:           p.Headers,
		scrapeListable:    p.ScrapeListable,
		maxRecursionDepth: maxRecursionDepth,
		forceScan:         p.ForceScan,
		outputFile:        p.OutputFile,
		jsonFile:          p.JSONFile,
		xmlFile:           p.XMLFile,
		statusCodes:       p.StatusCodes,
		showNotFound:      p.ShowNotFound,
		verbosity:         p.Verbosity,
	}, nil
}

func (c *Config) Hosts() []string         { return c.hosts }
func (c *Config) WordlistFiles() []string { return c.wordlistFiles }
func (c *Config) MaxThreads() int         { return c.maxThreads }
func (c *Config) WordlistSplit() int      { return c.wordlistSplit }
func (c *Config) OutputFile() string      { return c.outputFile }
func (c *Config) JSONFile() string        { return c.jsonFile }
func (c *Config) XMLFile() string         { return c.xmlFile }
func (c *Config) StatusCodes() []int      { return c.statusCodes }
func (c *Config) ShowNotFound() bool      { return c.showNotFound }
func (c *Config) Verbosity() string       { return c.verbosity }
func (c *Config) ForceScan() bool         { return c.forceScan }

// HTTPClientConfig builds the httpclient.Config this run's HTTP client
// should be constructed from.
func (c *Config) HTTPClientConfig() httpclient.Config {
	return httpclient.Config{
		Verb:         c.verb,
		Timeout:      c.timeout,
		UserAgent:    c.userAgent,
		ProxyEnabled: c.proxyAddress != "",
		ProxyAddress: c.proxyAddress,
		IgnoreCert:   c.ignoreCert,
		Username:     c.username,
		Password:     c.password,
		Cookies:      c.cookies,
		Headers:      c.headers,
	}
}

// ScannerOptions builds the scanner.Options this run's Scheduler should be
// constructed from, given the already-resolved and normalized wordlist.
func (c *Config) ScannerOptions(words []string) scanner.Options {
	return scanner.Options{
		Hosts:         c.hosts,
		Words:         words,
		Prefixes:      c.prefixes,
		Extensions:    c.extensions,
		ExtSubst:      c.extensionSubst,
		MaxThreads:    c.maxThreads,
		WordlistSplit: c.wordlistSplit,
		Worker: scanner.WorkerConfig{
			HTTP:              c.HTTPClientConfig(),
			ScrapeListable:    c.scrapeListable,
			MaxRecursionDepth: c.maxRecursionDepth,
		},
	}
}

// ScanOpts builds the scanner.ScanOpts the Validator should be constructed
// with.
func (c *Config) ScanOpts() scanner.ScanOpts {
	return scanner.ScanOpts{ForceScan: c.forceScan}
}
