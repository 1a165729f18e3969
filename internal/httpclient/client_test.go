package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientNeverFollowsRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer srv.Close()

	client, err := NewClient(DefaultConfig())
	require.NoError(t, err)

	resp, err := Do(client, DefaultConfig(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/elsewhere", resp.RedirectTo)
}

func TestDoSetsConfiguredHeaders(t *testing.T) {
	var gotUA, gotCookie, gotCustom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
		gotCustom = r.Header.Get("X-Custom")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := Config{
		Verb:      Get,
		UserAgent: "dirhunt-test/1.0",
		Cookies:   "session=abc",
		Headers:   []string{"X-Custom: value1"},
	}
	client, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = Do(client, cfg, srv.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, "dirhunt-test/1.0", gotUA)
	assert.Equal(t, "session=abc", gotCookie)
	assert.Equal(t, "value1", gotCustom)
}

func TestDoUsesConfiguredVerb(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Verb = Head
	client, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = Do(client, cfg, srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, http.MethodHead, gotMethod)
}

func TestDoReturnsErrorOnTransportFailure(t *testing.T) {
	client, err := NewClient(DefaultConfig())
	require.NoError(t, err)

	_, err = Do(client, DefaultConfig(), "http://127.0.0.1:1/unreachable")
	assert.Error(t, err)
}

func TestDoAppliesBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Username = "alice"
	cfg.Password = "hunter2"
	client, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = Do(client, cfg, srv.URL+"/")
	require.NoError(t, err)
	assert.True(t, gotOK)
	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "hunter2", gotPass)
}
