// Package assets fetches and parses external 3D models, keyed by URL.
// Concurrent requests for the same URL coalesce into one underlying fetch,
// and successful results are cached for the life of the process. All results
// are delivered through non-blocking handles so the render loop never waits
// on I/O.
package assets

import (
	"fmt"
	"strings"
	"sync"

	"shader-preview/internal/model"
)

// LoadError wraps any failure to produce a drawable model from a URL:
// fetch failure, parse failure, or no drawable meshes.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load model %s: %v", e.URL, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Handle is the shared pending-result of one model load. It is safe to poll
// from the render thread every frame; Ready flips exactly once, after which
// Result never changes.
type Handle struct {
	url   string
	done  chan struct{}
	scene *model.Scene
	err   error
}

// URL returns the source URL this handle was issued for.
func (h *Handle) URL() string { return h.url }

// Done is closed when the load has finished (either way).
func (h *Handle) Done() <-chan struct{} { return h.done }

// Ready reports whether the load has finished, without blocking.
func (h *Handle) Ready() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Result returns the normalized scene or a *LoadError. Only meaningful once
// Ready reports true.
func (h *Handle) Result() (*model.Scene, error) { return h.scene, h.err }

// Loader resolves model URLs to normalized scenes. One Loader serves the
// whole process; its cache maps URL to the shared handle, so a second
// request for an in-flight URL attaches to the first fetch instead of
// issuing its own.
type Loader struct {
	fetcher *Fetcher

	mu      sync.Mutex
	entries map[string]*Handle
}

// NewLoader returns a loader that downloads remote models into cacheDir.
// URLs without an http(s) scheme are read from local disk directly.
func NewLoader(cacheDir string) *Loader {
	return &Loader{
		fetcher: NewFetcher(cacheDir),
		entries: make(map[string]*Handle),
	}
}

// Load returns the handle for url, starting a fetch+parse only when no
// cached or in-flight entry exists. Failed entries are evicted when they
// complete, so selecting the same URL again retries from scratch.
func (l *Loader) Load(url string) *Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.entries[url]; ok {
		return h
	}
	h := &Handle{url: url, done: make(chan struct{})}
	l.entries[url] = h
	go l.run(h)
	return h
}

// Cached returns the completed scene for url if one is in the cache.
func (l *Loader) Cached(url string) (*model.Scene, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.entries[url]
	if !ok || !h.Ready() || h.err != nil {
		return nil, false
	}
	return h.scene, true
}

func (l *Loader) run(h *Handle) {
	path, err := l.resolve(h.url)
	if err == nil {
		h.scene, err = model.Parse(path)
	}
	if err != nil {
		h.err = &LoadError{URL: h.url, Err: err}
		l.mu.Lock()
		// Evict so a later selection retries; h keeps its own result for
		// anyone already attached.
		if l.entries[h.url] == h {
			delete(l.entries, h.url)
		}
		l.mu.Unlock()
	}
	close(h.done)
}

// resolve maps the URL to a local file path, downloading when remote.
func (l *Loader) resolve(url string) (string, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return l.fetcher.Fetch(url)
	}
	return url, nil
}
