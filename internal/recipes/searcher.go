package recipes

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// search is sent.
const DefaultDebounce = 500 * time.Millisecond

// RecipeSearcher is satisfied by *Client.
type RecipeSearcher interface {
	Search(ctx context.Context, term string) ([]Recipe, error)
}

type Result struct {
	Term    string
	Recipes []Recipe
	Err     error
}

// Searcher debounces a stream of search terms. A new term cancels the
// pending timer and any request still in flight, so only the result for the
// latest term is delivered.
type Searcher struct {
	client  RecipeSearcher
	delay   time.Duration
	deliver func(Result)

	mu      sync.Mutex
	seq     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	closed  bool
	running sync.WaitGroup

	deliverMu sync.Mutex
}

func NewSearcher(client RecipeSearcher, delay time.Duration, deliver func(Result)) *Searcher {
	return &Searcher{
		client:  client,
		delay:   delay,
		deliver: deliver,
	}
}

func (s *Searcher) Submit(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.seq++
	seq := s.seq
	s.stopLocked()

	s.timer = time.AfterFunc(s.delay, func() {
		s.run(seq, term)
	})
}

func (s *Searcher) run(seq uint64, term string) {
	s.mu.Lock()
	if s.closed || seq != s.seq {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running.Add(1)
	s.mu.Unlock()

	defer s.running.Done()
	defer cancel()

	recipes, err := s.client.Search(ctx, term)

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	if !s.isLatest(seq) {
		return
	}
	s.deliver(Result{Term: term, Recipes: recipes, Err: err})
}

func (s *Searcher) isLatest(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.closed && seq == s.seq
}

func (s *Searcher) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Close cancels pending work and waits for in-flight searches to return.
// Nothing is delivered after Close.
func (s *Searcher) Close() {
	s.mu.Lock()
	s.closed = true
	s.stopLocked()
	s.mu.Unlock()

	s.running.Wait()
}
