// Package httpclient builds the per-run HTTP client and issues the
// configured-verb requests the scan pipeline uses to probe candidate
// URLs. Proxy, TLS verification, basic auth, cookies, headers and user
// agent are fixed per-run configuration, matching the fields dirble's
// request::generate_easy configures on its curl handle.
package httpclient

import (
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Verb is the HTTP method the scan pipeline issues for each candidate URL.
type Verb string

const (
	Get  Verb = "GET"
	Head Verb = "HEAD"
	Post Verb = "POST"
)

// Config holds the fixed per-run HTTP configuration shared by every
// Request Worker.
type Config struct {
	Verb         Verb
	Timeout      time.Duration
	UserAgent    string
	ProxyEnabled bool
	ProxyAddress string
	IgnoreCert   bool
	Username     string
	Password     string
	Cookies      string
	Headers      []string // "Name: Value" pairs, as configured
}

// DefaultConfig returns a sane default HTTP client configuration.
func DefaultConfig() Config {
	return Config{
		Verb:      Get,
		Timeout:   10 * time.Second,
		UserAgent: "dirhunt/1.0",
	}
}

// NewClient builds an *http.Client from Config. Redirects are never
// followed automatically: the scan pipeline needs to observe the raw
// 301/302 response and its Location header itself.
func NewClient(cfg Config) (*http.Client, error) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.IgnoreCert,
		},
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          200,
		MaxIdleConnsPerHost:   100,
		MaxConnsPerHost:       100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	if cfg.ProxyEnabled && cfg.ProxyAddress != "" {
		proxyURL, err := url.Parse(cfg.ProxyAddress)
		if err != nil {
			return nil, err
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return client, nil
}

// Response is the outcome of one probe: the status code, the bytes
// actually received, and the raw (not yet decoded) Location header when
// the response was a redirect.
type Response struct {
	StatusCode  int
	Body        []byte
	RedirectTo  string
	ContentType string
}

// maxBodyBytes bounds how much of a response body a single probe reads,
// to keep a runaway response from exhausting memory across thousands of
// concurrent probes.
const maxBodyBytes = 2 * 1024 * 1024

// Do issues one request for url using the worker's fixed configuration and
// returns the response actually received, or an error on transport
// failure (DNS, connect, TLS, timeout).
func Do(client *http.Client, cfg Config, url string) (Response, error) {
	req, err := http.NewRequest(string(cfg.Verb), url, nil)
	if err != nil {
		return Response{}, err
	}

	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	if cfg.Cookies != "" {
		req.Header.Set("Cookie", cfg.Cookies)
	}
	for _, h := range cfg.Headers {
		name, value, ok := splitHeader(h)
		if ok {
			req.Header.Set(name, value)
		}
	}
	if cfg.Username != "" {
		req.SetBasicAuth(cfg.Username, cfg.Password)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, err
	}

	out := Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if resp.StatusCode == 301 || resp.StatusCode == 302 {
		out.RedirectTo = resp.Header.Get("Location")
	}
	return out, nil
}

func splitHeader(h string) (name, value string, ok bool) {
	for i := 0; i < len(h); i++ {
		if h[i] == ':' {
			name = h[:i]
			value = h[i+1:]
			for len(value) > 0 && value[0] == ' ' {
				value = value[1:]
			}
			return name, value, true
		}
	}
	return "", "", false
}
