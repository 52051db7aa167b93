package orders

import (
	"context"
	"sync"
)

type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateSuccess LoadState = "success"
	StateError   LoadState = "error"
)

// PageFetcher is satisfied by *Aggregator.
type PageFetcher interface {
	FetchPage(ctx context.Context, c Criteria, page, pageSize int) (Page, error)
}

// Loader holds the last committed order page for one list view. Each Load gets
// a sequence number and cancels the one before it; only the latest issued load
// may commit, so a slow earlier response can never overwrite a newer one.
// A failed load keeps the previously committed page.
type Loader struct {
	fetcher PageFetcher

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	state   LoadState
	page    Page
	hasPage bool
	lastErr error
}

func NewLoader(f PageFetcher) *Loader {
	return &Loader{fetcher: f, state: StateIdle}
}

func (l *Loader) Load(ctx context.Context, c Criteria, page, pageSize int) (Page, error) {
	l.mu.Lock()
	l.seq++
	mine := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.state = StateLoading
	l.mu.Unlock()

	p, err := l.fetcher.FetchPage(ctx, c, page, pageSize)

	l.mu.Lock()
	defer l.mu.Unlock()
	if mine != l.seq {
		return Page{}, ErrStale
	}
	cancel()
	l.cancel = nil

	if err != nil {
		l.state = StateError
		l.lastErr = err
		return Page{}, err
	}
	l.state = StateSuccess
	l.page = p
	l.hasPage = true
	l.lastErr = nil
	return p, nil
}

// Snapshot returns the last committed page (ok=false before the first success),
// the current state and the error of the last failed load.
func (l *Loader) Snapshot() (page Page, ok bool, state LoadState, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page, l.hasPage, l.state, l.lastErr
}
