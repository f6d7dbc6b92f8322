// Package httpx builds the HTTP client used for clip downloads: a User-Agent
// on every request, an overall timeout and optional bounded retries.
package httpx

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	DefaultTimeout  = 60 * time.Second
	DefaultRetryMax = 0
)

// Options configures NewDownloadClient. Zero values select the defaults.
type Options struct {
	Timeout   time.Duration
	RetryMax  int    // extra attempts after the first; 0 disables retries
	UserAgent string // fixed UA; empty rotates through the built-in pool
	ProxyURL  string
}

// Transport applies the UA policy and bounded retries on top of Base.
type Transport struct {
	Base *http.Transport

	ua        *uaPool
	userAgent string

	// RetryMax counts attempts after the first. 2 means at most 3 attempts.
	RetryMax int
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if t.Base == nil {
		return nil, errors.New("nil base transport")
	}

	// Only replayable requests are retried.
	canRetry := (req.Method == http.MethodGet || req.Method == http.MethodHead) && req.Body == nil
	limit := max(t.RetryMax, 0)
	if !canRetry {
		limit = 0
	}

	var lastErr error
	for attempt := 0; attempt <= limit; attempt++ {
		r := req.Clone(req.Context())
		if r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", t.agent())
		}

		resp, err := t.Base.RoundTrip(r)
		if err == nil && (resp.StatusCode < 500 || attempt == limit) {
			return resp, nil
		}
		if err == nil {
			// 5xx with attempts left: drop this response and try again.
			resp.Body.Close()
			lastErr = errors.New(resp.Status)
		} else {
			lastErr = err
		}
		if req.Context().Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (t *Transport) agent() string {
	if t.userAgent != "" {
		return t.userAgent
	}
	return t.ua.random()
}

// NewDownloadClient returns a client for fetching clip files.
func NewDownloadClient(opts Options) (*http.Client, error) {
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}

	if p := strings.TrimSpace(opts.ProxyURL); p != "" {
		u, err := url.Parse(p)
		if err != nil {
			return nil, err
		}
		base.Proxy = http.ProxyURL(u)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	tr := &Transport{
		Base:      base,
		ua:        globalUA,
		userAgent: strings.TrimSpace(opts.UserAgent),
		RetryMax:  max(opts.RetryMax, DefaultRetryMax),
	}
	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}, nil
}

type uaPool struct {
	mu  sync.Mutex
	rnd *rand.Rand
	uas []string
}

func (p *uaPool) random() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uas[p.rnd.IntN(len(p.uas))]
}

var globalUA = newUAPool()

func newUAPool() *uaPool {
	uas := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_6) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Safari/605.1.15",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	}
	seed := uint64(time.Now().UnixNano())
	return &uaPool{
		rnd: rand.New(rand.NewPCG(seed, seed>>1|1)),
		uas: uas,
	}
}
