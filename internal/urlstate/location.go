package urlstate

import (
	"net/url"
	"sync"
)

// Location is an address whose query string can be read and replaced.
// Replace must not add a history entry or reset the scroll position.
type Location interface {
	Query() url.Values
	Replace(rawQuery string)
}

// URL is an in-memory Location over a parsed URL
type URL struct {
	mu  sync.Mutex
	url url.URL
}

// NewURL wraps a copy of u
func NewURL(u *url.URL) *URL {
	loc := &URL{}
	if u != nil {
		loc.url = *u
	}
	return loc
}

// Query returns a fresh parse of the current query string
func (l *URL) Query() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.url.Query()
}

// Replace swaps the query string in place, keeping the path
func (l *URL) Replace(rawQuery string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.url.RawQuery = rawQuery
}

// RequestURI returns the path and query, as a browser would put in history
func (l *URL) RequestURI() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	path := l.url.EscapedPath()
	if path == "" {
		path = "/"
	}
	if l.url.RawQuery == "" {
		return path
	}
	return path + "?" + l.url.RawQuery
}

// Synchronizer reads and writes dashboard params through a Location
type Synchronizer struct {
	loc Location
}

// NewSynchronizer binds a synchronizer to loc
func NewSynchronizer(loc Location) *Synchronizer {
	return &Synchronizer{loc: loc}
}

// ReadFromSource parses the params currently at the location
func (s *Synchronizer) ReadFromSource() Params {
	return Read(s.loc.Query())
}

// WriteToSource merges u over a fresh read of the location and replaces its query
func (s *Synchronizer) WriteToSource(u Update) {
	s.loc.Replace(Write(s.loc.Query(), u))
}
