// Package browse holds the search and pagination state of the movie grid.
//
// The Controller never performs I/O. Operations that need a page return a
// Request; the caller fetches it and hands the outcome back to Resolve with
// the request's token. Only the most recently issued token is accepted, so a
// slow response for an abandoned query can never overwrite newer results.
package browse

import (
	"github.com/sebastiantruijens/popkornpick/internal/catalog"
)

// State is the controller's fetch lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateExhausted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Query identifies a result list. Genre 0 means all genres.
type Query struct {
	Term  string
	Genre int
}

// Request is a page fetch the caller must perform.
type Request struct {
	Token uint64
	Query Query
	Page  int
}

// Controller owns the current query, page cursor and accumulated results.
// It is not safe for concurrent use; all calls come from the UI event loop.
type Controller struct {
	query   Query
	started bool
	page    int
	state   State
	hasMore bool
	token   uint64
	err     error

	results []catalog.MovieSummary
	seen    map[int]struct{}
}

// New returns an Idle controller with no query.
func New() *Controller {
	return &Controller{
		state: StateIdle,
		seen:  make(map[int]struct{}),
	}
}

// SetQuery starts a new result list when q differs from the current query.
// An identical query is ignored, except in Failed where it retries.
func (c *Controller) SetQuery(q Query) (Request, bool) {
	if c.started && q == c.query {
		if c.state == StateFailed {
			return c.Retry()
		}
		return Request{}, false
	}

	c.started = true
	c.query = q
	c.page = 1
	c.hasMore = false
	c.err = nil
	c.results = nil
	c.seen = make(map[int]struct{})
	return c.issue(), true
}

// SetTerm changes the search term, keeping the genre filter.
func (c *Controller) SetTerm(term string) (Request, bool) {
	return c.SetQuery(Query{Term: term, Genre: c.query.Genre})
}

// SetGenre changes the genre filter, keeping the search term.
func (c *Controller) SetGenre(genre int) (Request, bool) {
	return c.SetQuery(Query{Term: c.query.Term, Genre: genre})
}

// ScrollThresholdReached requests the next page when there is one and no
// fetch is in flight. In Failed it retries the page that failed. Calling it
// repeatedly is harmless.
func (c *Controller) ScrollThresholdReached() (Request, bool) {
	switch c.state {
	case StateFailed:
		return c.Retry()
	case StateReady, StateIdle:
		if !c.hasMore {
			return Request{}, false
		}
		c.page++
		return c.issue(), true
	default:
		return Request{}, false
	}
}

// Retry re-issues the page that failed.
func (c *Controller) Retry() (Request, bool) {
	if c.state != StateFailed {
		return Request{}, false
	}
	c.err = nil
	return c.issue(), true
}

// Resolve applies the outcome of the request carrying token. It returns
// false when the response is stale and was discarded.
func (c *Controller) Resolve(token uint64, page catalog.ResultPage, err error) bool {
	if c.state != StateLoading || token != c.token {
		return false
	}

	if err != nil {
		c.state = StateFailed
		c.err = err
		return true
	}

	if c.page == 1 {
		c.results = make([]catalog.MovieSummary, 0, len(page.Movies))
		c.seen = make(map[int]struct{}, len(page.Movies))
	}
	for _, m := range page.Movies {
		if _, dup := c.seen[m.ID]; dup {
			continue
		}
		c.seen[m.ID] = struct{}{}
		c.results = append(c.results, m)
	}

	c.hasMore = page.HasMore()
	if c.hasMore {
		c.state = StateReady
	} else {
		c.state = StateExhausted
	}
	return true
}

func (c *Controller) issue() Request {
	c.token++
	c.state = StateLoading
	return Request{Token: c.token, Query: c.query, Page: c.page}
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Query returns the current query.
func (c *Controller) Query() Query { return c.query }

// Page returns the page cursor: the page last requested for this query.
func (c *Controller) Page() int { return c.page }

// HasMore reports whether the last applied page said more pages exist.
func (c *Controller) HasMore() bool { return c.hasMore }

// Err returns the error of the last failed fetch, if the controller is Failed.
func (c *Controller) Err() error { return c.err }

// Len returns the number of accumulated results.
func (c *Controller) Len() int { return len(c.results) }

// Results returns a copy of the accumulated results.
func (c *Controller) Results() []catalog.MovieSummary {
	out := make([]catalog.MovieSummary, len(c.results))
	copy(out, c.results)
	return out
}

// At returns the i-th accumulated result.
func (c *Controller) At(i int) (catalog.MovieSummary, bool) {
	if i < 0 || i >= len(c.results) {
		return catalog.MovieSummary{}, false
	}
	return c.results[i], true
}
