package orders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedFetcher returns the page for a search term once its gate is released.
type gatedFetcher struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
	errs    map[string]error
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{gates: map[string]chan struct{}{}, started: make(chan string, 8), errs: map[string]error{}}
}

func (g *gatedFetcher) gate(key string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[key]
	if !ok {
		ch = make(chan struct{})
		g.gates[key] = ch
	}
	return ch
}

func (g *gatedFetcher) FetchPage(ctx context.Context, c Criteria, page, pageSize int) (Page, error) {
	g.started <- c.Search
	<-g.gate(c.Search)
	g.mu.Lock()
	err := g.errs[c.Search]
	g.mu.Unlock()
	if err != nil {
		return Page{}, err
	}
	// a cancelled request still "answers", like a slow server would
	return Page{Items: []Order{{UniqueCode: c.Search}}, Pagination: Pagination{CurrentPage: page}}, nil
}

type loadResult struct {
	page Page
	err  error
}

func TestLoaderDiscardsSupersededResponse(t *testing.T) {
	f := newGatedFetcher()
	l := NewLoader(f)

	first := make(chan loadResult, 1)
	go func() {
		p, err := l.Load(context.Background(), Criteria{Search: "old"}, 1, 10)
		first <- loadResult{p, err}
	}()
	require.Equal(t, "old", <-f.started)

	second := make(chan loadResult, 1)
	go func() {
		p, err := l.Load(context.Background(), Criteria{Search: "new"}, 1, 10)
		second <- loadResult{p, err}
	}()
	require.Equal(t, "new", <-f.started)

	// newer answers first, then the older one resolves late
	close(f.gate("new"))
	r2 := <-second
	require.NoError(t, r2.err)
	assert.Equal(t, "new", r2.page.Items[0].UniqueCode)

	close(f.gate("old"))
	r1 := <-first
	assert.ErrorIs(t, r1.err, ErrStale)

	p, ok, state, err := l.Snapshot()
	require.True(t, ok)
	assert.Equal(t, StateSuccess, state)
	assert.NoError(t, err)
	assert.Equal(t, "new", p.Items[0].UniqueCode)
}

func TestLoaderStaleEvenWhenOlderResolvesFirst(t *testing.T) {
	f := newGatedFetcher()
	l := NewLoader(f)

	first := make(chan loadResult, 1)
	go func() {
		p, err := l.Load(context.Background(), Criteria{Search: "a"}, 1, 10)
		first <- loadResult{p, err}
	}()
	<-f.started

	second := make(chan loadResult, 1)
	go func() {
		p, err := l.Load(context.Background(), Criteria{Search: "b"}, 1, 10)
		second <- loadResult{p, err}
	}()
	<-f.started

	close(f.gate("a"))
	select {
	case r := <-first:
		assert.ErrorIs(t, r.err, ErrStale)
	case <-time.After(2 * time.Second):
		t.Fatal("first load did not return")
	}

	_, ok, state, _ := l.Snapshot()
	assert.False(t, ok, "stale result must not be committed")
	assert.Equal(t, StateLoading, state)

	close(f.gate("b"))
	r := <-second
	require.NoError(t, r.err)
}

func TestLoaderErrorKeepsLastPage(t *testing.T) {
	f := newGatedFetcher()
	f.errs["broken"] = &FetchError{Status: 500, Message: "boom"}
	close(f.gate("ok"))
	close(f.gate("broken"))
	l := NewLoader(f)

	_, _, state, _ := l.Snapshot()
	assert.Equal(t, StateIdle, state)

	_, err := l.Load(context.Background(), Criteria{Search: "ok"}, 1, 10)
	require.NoError(t, err)
	<-f.started

	_, err = l.Load(context.Background(), Criteria{Search: "broken"}, 1, 10)
	<-f.started
	var fe *FetchError
	require.True(t, errors.As(err, &fe))

	p, ok, state, lastErr := l.Snapshot()
	require.True(t, ok)
	assert.Equal(t, StateError, state)
	assert.Equal(t, "ok", p.Items[0].UniqueCode)
	assert.ErrorAs(t, lastErr, &fe)
}
