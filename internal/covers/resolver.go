package covers

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/mrlokans/bookjournal/internal/config"
	"github.com/mrlokans/bookjournal/internal/entities"
	"github.com/mrlokans/bookjournal/internal/logging"
)

// Finder looks up a single cover URL.
type Finder interface {
	FindCoverURL(ctx context.Context, title, author string) (string, error)
}

// Resolver fetches covers for a whole listing with bounded concurrency.
type Resolver struct {
	finder         Finder
	placeholder    string
	maxConcurrency int
	lookupTimeout  time.Duration
	maxWait        time.Duration
}

// NewResolver creates a resolver. Non-positive limits fall back to one
// lookup at a time, a 3s lookup timeout and a 5s overall wait.
func NewResolver(finder Finder, cfg config.Covers) *Resolver {
	r := &Resolver{
		finder:         finder,
		placeholder:    cfg.PlaceholderURL,
		maxConcurrency: cfg.MaxConcurrency,
		lookupTimeout:  cfg.LookupTimeout,
		maxWait:        cfg.MaxWait,
	}
	if r.maxConcurrency <= 0 {
		r.maxConcurrency = 1
	}
	if r.lookupTimeout <= 0 {
		r.lookupTimeout = 3 * time.Second
	}
	if r.maxWait <= 0 {
		r.maxWait = 5 * time.Second
	}
	return r
}

// Resolve returns one cover URL per book, in the same order. Books whose
// lookup failed or did not finish before the overall deadline get the
// placeholder.
func (r *Resolver) Resolve(ctx context.Context, books []entities.Book) []string {
	urls := make([]string, len(books))
	for i := range urls {
		urls[i] = r.placeholder
	}
	if len(books) == 0 {
		return urls
	}

	ctx, cancel := context.WithTimeout(ctx, r.maxWait)
	defer cancel()

	var (
		mu   sync.Mutex
		done bool
	)

	log := logging.Log.WithField("books", len(books))
	lookup := func(i int, book entities.Book) {
		if ctx.Err() != nil {
			return
		}
		lookupCtx, cancelLookup := context.WithTimeout(ctx, r.lookupTimeout)
		defer cancelLookup()

		url, err := r.finder.FindCoverURL(lookupCtx, book.Title, book.Author.Name)
		if err != nil {
			log.WithError(err).WithField("title", book.Title).Debug("Cover lookup failed")
			return
		}

		mu.Lock()
		defer mu.Unlock()
		// Results arriving after the deadline are dropped
		if !done {
			urls[i] = url
		}
	}

	// Go blocks while the pool is full, so submission runs off the caller's
	// goroutine as well.
	finished := make(chan struct{})
	go func() {
		p := pool.New().WithMaxGoroutines(r.maxConcurrency)
		for i, book := range books {
			p.Go(func() { lookup(i, book) })
		}
		p.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-ctx.Done():
		log.Warn("Cover lookups did not finish in time, using placeholders")
	}

	mu.Lock()
	defer mu.Unlock()
	done = true
	return append([]string(nil), urls...)
}
