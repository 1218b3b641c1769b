package browse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/popkornpick/internal/catalog"
)

func movies(ids ...int) []catalog.MovieSummary {
	out := make([]catalog.MovieSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog.MovieSummary{ID: id})
	}
	return out
}

func ids(ms []catalog.MovieSummary) []int {
	out := make([]int, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func page(n, total int, ids ...int) catalog.ResultPage {
	return catalog.ResultPage{Movies: movies(ids...), Page: n, TotalPages: total}
}

// fakeFetcher counts how many fetches the controller asked for.
type fakeFetcher struct {
	calls []Request
}

func (f *fakeFetcher) issue(req Request, ok bool) {
	if ok {
		f.calls = append(f.calls, req)
	}
}

func TestController_StartsIdle(t *testing.T) {
	c := New()
	assert.Equal(t, StateIdle, c.State())
	assert.False(t, c.HasMore())

	_, ok := c.ScrollThresholdReached()
	assert.False(t, ok, "no query yet, nothing to page")
}

func TestController_FirstQueryLoadsPageOne(t *testing.T) {
	c := New()
	req, ok := c.SetQuery(Query{})
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, Query{}, req.Query)
	assert.Equal(t, StateLoading, c.State())

	require.True(t, c.Resolve(req.Token, page(1, 3, 1, 2), nil))
	assert.Equal(t, StateReady, c.State())
	assert.True(t, c.HasMore())
	assert.Equal(t, []int{1, 2}, ids(c.Results()))
}

func TestController_MergeSkipsOverlap(t *testing.T) {
	c := New()
	req, _ := c.SetQuery(Query{Term: "alien"})
	c.Resolve(req.Token, page(1, 2, 'A', 'B'), nil)

	req, ok := c.ScrollThresholdReached()
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)

	require.True(t, c.Resolve(req.Token, page(2, 2, 'A', 'B', 'C'), nil))
	assert.Equal(t, []int{'A', 'B', 'C'}, ids(c.Results()))
	assert.Equal(t, StateExhausted, c.State())
	assert.False(t, c.HasMore())

	_, ok = c.ScrollThresholdReached()
	assert.False(t, ok, "exhausted lists do not page")
}

func TestController_QueryChangeReplacesResults(t *testing.T) {
	c := New()
	req, _ := c.SetTerm("batman")
	c.Resolve(req.Token, page(1, 5, 1, 2, 3), nil)
	req, _ = c.ScrollThresholdReached()
	c.Resolve(req.Token, page(2, 5, 4, 5), nil)
	require.Equal(t, 2, c.Page())

	req, ok := c.SetTerm("superman")
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 0, c.Len(), "results cleared as soon as the query changes")

	c.Resolve(req.Token, page(1, 1, 10, 11), nil)
	assert.Equal(t, []int{10, 11}, ids(c.Results()))
	assert.Equal(t, Query{Term: "superman"}, c.Query())
}

func TestController_GenreChangeKeepsTerm(t *testing.T) {
	c := New()
	c.SetTerm("heat")
	req, ok := c.SetGenre(80)
	require.True(t, ok)
	assert.Equal(t, Query{Term: "heat", Genre: 80}, req.Query)

	req, ok = c.SetGenre(0)
	require.True(t, ok)
	assert.Equal(t, Query{Term: "heat"}, req.Query)
}

func TestController_ScrollWhileLoadingIsIgnored(t *testing.T) {
	c := New()
	f := &fakeFetcher{}

	f.issue(c.SetQuery(Query{}))
	for i := 0; i < 5; i++ {
		f.issue(c.ScrollThresholdReached())
	}
	require.Len(t, f.calls, 1)

	c.Resolve(f.calls[0].Token, page(1, 4, 1, 2), nil)
	f.issue(c.ScrollThresholdReached())
	f.issue(c.ScrollThresholdReached())
	f.issue(c.ScrollThresholdReached())
	require.Len(t, f.calls, 2)
	assert.Equal(t, 2, f.calls[1].Page)
}

func TestController_IdenticalQueryIgnored(t *testing.T) {
	c := New()
	f := &fakeFetcher{}

	f.issue(c.SetQuery(Query{Term: "up"}))
	f.issue(c.SetQuery(Query{Term: "up"}))
	require.Len(t, f.calls, 1)

	c.Resolve(f.calls[0].Token, page(1, 1, 1), nil)
	f.issue(c.SetQuery(Query{Term: "up"}))
	assert.Len(t, f.calls, 1)
}

func TestController_FailurePreservesResults(t *testing.T) {
	c := New()
	req, _ := c.SetQuery(Query{})
	c.Resolve(req.Token, page(1, 3, 1, 2), nil)

	req, _ = c.ScrollThresholdReached()
	boom := errors.New("connection reset")
	require.True(t, c.Resolve(req.Token, catalog.ResultPage{}, boom))

	assert.Equal(t, StateFailed, c.State())
	assert.ErrorIs(t, c.Err(), boom)
	assert.Equal(t, []int{1, 2}, ids(c.Results()))

	// Scrolling again retries the same page.
	retry, ok := c.ScrollThresholdReached()
	require.True(t, ok)
	assert.Equal(t, 2, retry.Page)
	assert.NotEqual(t, req.Token, retry.Token)
	assert.Nil(t, c.Err())

	c.Resolve(retry.Token, page(2, 3, 3), nil)
	assert.Equal(t, []int{1, 2, 3}, ids(c.Results()))
	assert.Equal(t, StateReady, c.State())
}

func TestController_IdenticalQueryRetriesAfterFailure(t *testing.T) {
	c := New()
	req, _ := c.SetTerm("dune")
	c.Resolve(req.Token, catalog.ResultPage{}, errors.New("timeout"))

	retry, ok := c.SetTerm("dune")
	require.True(t, ok)
	assert.Equal(t, 1, retry.Page)
	assert.Equal(t, StateLoading, c.State())
}

func TestController_RetryOnlyWhenFailed(t *testing.T) {
	c := New()
	_, ok := c.Retry()
	assert.False(t, ok)

	req, _ := c.SetQuery(Query{})
	_, ok = c.Retry()
	assert.False(t, ok, "loading")

	c.Resolve(req.Token, page(1, 2, 1), nil)
	_, ok = c.Retry()
	assert.False(t, ok, "ready")
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	c := New()
	old, _ := c.SetTerm("batman")
	latest, _ := c.SetTerm("superman")

	require.True(t, c.Resolve(latest.Token, page(1, 1, 20, 21), nil))
	assert.False(t, c.Resolve(old.Token, page(1, 1, 10, 11), nil))

	assert.Equal(t, []int{20, 21}, ids(c.Results()))
	assert.Equal(t, StateExhausted, c.State())
}

func TestController_StaleResponseWhileNewerLoading(t *testing.T) {
	c := New()
	old, _ := c.SetTerm("batman")
	latest, _ := c.SetTerm("superman")

	assert.False(t, c.Resolve(old.Token, page(1, 1, 10), nil))
	assert.Equal(t, StateLoading, c.State(), "newer fetch still in flight")
	assert.Equal(t, 0, c.Len())

	assert.False(t, c.Resolve(old.Token, catalog.ResultPage{}, errors.New("late failure")))
	assert.Equal(t, StateLoading, c.State())

	c.Resolve(latest.Token, page(1, 1, 20), nil)
	assert.Equal(t, []int{20}, ids(c.Results()))
}

func TestController_ResolveTwiceIgnored(t *testing.T) {
	c := New()
	req, _ := c.SetQuery(Query{})
	require.True(t, c.Resolve(req.Token, page(1, 2, 1), nil))
	assert.False(t, c.Resolve(req.Token, page(1, 2, 9), nil))
	assert.Equal(t, []int{1}, ids(c.Results()))
}

func TestController_NoDuplicatesAcrossPages(t *testing.T) {
	c := New()
	req, _ := c.SetQuery(Query{})
	pages := [][]int{
		{1, 2, 3, 3},
		{3, 4, 5},
		{5, 6, 1},
		{7, 7, 2},
	}
	for i, p := range pages {
		c.Resolve(req.Token, page(i+1, len(pages), p...), nil)
		var ok bool
		req, ok = c.ScrollThresholdReached()
		if i < len(pages)-1 {
			require.True(t, ok)
		}
	}

	got := ids(c.Results())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, got)
	assert.Equal(t, StateExhausted, c.State())
}

func TestController_EmptyFirstPageIsExhausted(t *testing.T) {
	c := New()
	req, _ := c.SetTerm("qwertyuiop")
	c.Resolve(req.Token, catalog.ResultPage{Page: 1, TotalPages: 0}, nil)
	assert.Equal(t, StateExhausted, c.State())
	assert.Equal(t, 0, c.Len())
}

func TestController_At(t *testing.T) {
	c := New()
	req, _ := c.SetQuery(Query{})
	c.Resolve(req.Token, page(1, 1, 7, 8), nil)

	m, ok := c.At(1)
	require.True(t, ok)
	assert.Equal(t, 8, m.ID)
	_, ok = c.At(2)
	assert.False(t, ok)
	_, ok = c.At(-1)
	assert.False(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "exhausted", StateExhausted.String())
	assert.Equal(t, "unknown", State(42).String())
}
