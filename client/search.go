package client

import (
	"context"
	"sync"
	"time"

	productdomain "github.com/adilzhn/marketplace/internal/product/domain"
)

const defaultDebounce = 300 * time.Millisecond

// SearchResult is delivered to the Searcher callback.
type SearchResult struct {
	Term string
	Page *productdomain.Page
	Err  error
}

// Searcher debounces catalog searches for interactive use. Rapid calls
// to Search reset the timer, so only the final term in a typing burst
// hits the API; when responses race, only the latest request's result
// reaches the callback.
type Searcher struct {
	client   *Client
	delay    time.Duration
	onResult func(SearchResult)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	latest  uint64
	pending string
}

// NewSearcher creates a debounced searcher. delay <= 0 uses the
// default of 300ms.
func NewSearcher(client *Client, delay time.Duration, onResult func(SearchResult)) *Searcher {
	if delay <= 0 {
		delay = defaultDebounce
	}
	return &Searcher{
		client:   client,
		delay:    delay,
		onResult: onResult,
	}
}

// Search schedules a query for term, resetting the debounce window.
func (s *Searcher) Search(ctx context.Context, term string, page, limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = term
	if s.timer != nil {
		s.timer.Stop()
	}

	s.timer = time.AfterFunc(s.delay, func() {
		s.fire(ctx, term, page, limit)
	})
}

// Flush runs any pending query immediately instead of waiting out the
// debounce window.
func (s *Searcher) Flush(ctx context.Context, page, limit int) {
	s.mu.Lock()
	if s.timer == nil || !s.timer.Stop() {
		s.mu.Unlock()
		return
	}
	term := s.pending
	s.mu.Unlock()

	s.fire(ctx, term, page, limit)
}

// Stop cancels any pending query.
func (s *Searcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Searcher) fire(ctx context.Context, term string, page, limit int) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	result, err := s.client.ListProducts(ctx, term, page, limit)

	// Drop the result if a newer request started while this one was in
	// flight.
	s.mu.Lock()
	if seq < s.seq || seq <= s.latest {
		s.mu.Unlock()
		return
	}
	s.latest = seq
	s.mu.Unlock()

	s.onResult(SearchResult{Term: term, Page: result, Err: err})
}
