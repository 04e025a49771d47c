// Package corpus keeps a local copy of the user's full word list and derives
// searched, paginated views from it without further network traffic.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/abhisek/lugat/internal/vocab"
)

// PageSize is the number of words shown per view page.
const PageSize = 5

// maxPages bounds a reload so a server that never reports a count cannot
// keep it looping.
var maxPages = 10000

// Page is one response of the word store's listing.
type Page struct {
	Items []vocab.WordEntry
	// Count is the server's total number of words.
	Count int
	// Paginated is false when the server returned the whole list at once.
	Paginated bool
}

// WordStore is the remote collection the cache mirrors.
type WordStore interface {
	ListWords(ctx context.Context, page int) (Page, error)
	CreateWord(ctx context.Context, in vocab.WordInput) (vocab.WordEntry, error)
	UpdateWord(ctx context.Context, id vocab.ID, in vocab.WordInput) (vocab.WordEntry, error)
	DeleteWord(ctx context.Context, id vocab.ID) error
}

// ErrNotLoaded is returned by views before the first successful reload.
var ErrNotLoaded = errors.New("word list not loaded")

// ErrTooManyPages is returned when a reload hits the page limit before the
// server's count is reached.
var ErrTooManyPages = errors.New("word list did not end within page limit")

// StaleError is returned by a mutation that the server accepted but whose
// follow-up reload failed. The cached list still shows the state before
// the mutation; repeating the mutation would apply it twice.
type StaleError struct {
	Err error
}

func (e *StaleError) Error() string {
	return "word list is stale after change: " + e.Err.Error()
}

func (e *StaleError) Unwrap() error { return e.Err }

// IsStale reports whether err is a StaleError.
func IsStale(err error) bool {
	var se *StaleError
	return errors.As(err, &se)
}

// View is a filtered, paginated slice of the cache.
type View struct {
	Items         []vocab.WordEntry
	TotalMatching int
	PageCount     int
	// PageIndex is the 1-based page actually shown after clamping.
	PageIndex int
	Query     string
}

// Cache is the single in-memory copy of the word list. It is safe for
// concurrent use.
type Cache struct {
	store  WordStore
	logger *slog.Logger

	mu     sync.RWMutex
	words  []vocab.WordEntry
	loaded bool
	stale  error
}

// New creates an empty cache backed by store.
func New(store WordStore, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{store: store, logger: logger}
}

// Reload replaces the cached list with a fresh copy from the store. Pages
// are fetched in order until the server's count is reached, a page comes
// back empty, or the server returns an unpaginated list. On error the
// previous list is kept.
func (c *Cache) Reload(ctx context.Context) error {
	var collected []vocab.WordEntry
	pages := 0
	done := false

	for page := 1; page <= maxPages && !done; page++ {
		p, err := c.store.ListWords(ctx, page)
		if err != nil {
			c.logger.Warn("word reload failed", "page", page, "error", err)
			return fmt.Errorf("reload words: page %d: %w", page, err)
		}
		pages++

		if !p.Paginated {
			collected = append([]vocab.WordEntry(nil), p.Items...)
			done = true
			continue
		}
		collected = append(collected, p.Items...)
		done = len(collected) >= p.Count || len(p.Items) == 0
	}
	if !done {
		c.logger.Warn("word reload truncated", "pages", pages, "words", len(collected))
		return fmt.Errorf("reload words: %w", ErrTooManyPages)
	}

	if collected == nil {
		collected = []vocab.WordEntry{}
	}

	c.mu.Lock()
	c.words = collected
	c.loaded = true
	c.stale = nil
	c.mu.Unlock()

	c.logger.Debug("word list reloaded", "words", len(collected), "pages", pages)
	return nil
}

// Loaded reports whether a reload has succeeded at least once.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Len returns the number of cached words.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.words)
}

// Stale returns the reload error left by the last mutation, or nil once a
// reload has succeeded since.
func (c *Cache) Stale() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}

// Words returns a copy of the cached list in server order.
func (c *Cache) Words() []vocab.WordEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]vocab.WordEntry(nil), c.words...)
}

// Apply filters the cached list by query and returns the requested page.
// Matching is a case-insensitive substring test on either side of the pair
// after trimming the query. An out-of-range page is clamped to the last
// page; there is always at least one page.
func (c *Cache) Apply(query string, page int) View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Apply(c.words, query, page)
}

// Apply is the pure form of Cache.Apply.
func Apply(words []vocab.WordEntry, query string, page int) View {
	needle := strings.ToLower(strings.TrimSpace(query))

	matching := words
	if needle != "" {
		matching = make([]vocab.WordEntry, 0, len(words))
		for _, w := range words {
			if strings.Contains(strings.ToLower(w.English), needle) ||
				strings.Contains(strings.ToLower(w.Uzbek), needle) {
				matching = append(matching, w)
			}
		}
	}

	pageCount := max(1, (len(matching)+PageSize-1)/PageSize)
	index := min(max(page, 1), pageCount)

	lo := (index - 1) * PageSize
	hi := min(lo+PageSize, len(matching))
	items := make([]vocab.WordEntry, hi-lo)
	copy(items, matching[lo:hi])

	return View{
		Items:         items,
		TotalMatching: len(matching),
		PageCount:     pageCount,
		PageIndex:     index,
		Query:         query,
	}
}

// Add creates a word remotely and reloads the cache. A failed reload is
// reported as a StaleError; the word was still created.
func (c *Cache) Add(ctx context.Context, in vocab.WordInput) (vocab.WordEntry, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return vocab.WordEntry{}, err
	}
	w, err := c.store.CreateWord(ctx, in)
	if err != nil {
		return vocab.WordEntry{}, err
	}
	return w, c.reloadAfterChange(ctx)
}

// Update edits a word remotely and reloads the cache.
func (c *Cache) Update(ctx context.Context, id vocab.ID, in vocab.WordInput) (vocab.WordEntry, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return vocab.WordEntry{}, err
	}
	w, err := c.store.UpdateWord(ctx, id, in)
	if err != nil {
		return vocab.WordEntry{}, err
	}
	return w, c.reloadAfterChange(ctx)
}

// Remove deletes a word remotely and reloads the cache.
func (c *Cache) Remove(ctx context.Context, id vocab.ID) error {
	if err := c.store.DeleteWord(ctx, id); err != nil {
		return err
	}
	return c.reloadAfterChange(ctx)
}

// reloadAfterChange reloads after an accepted mutation. A failure is
// wrapped in StaleError and remembered until the next good reload.
func (c *Cache) reloadAfterChange(ctx context.Context) error {
	err := c.Reload(ctx)
	if err == nil {
		return nil
	}
	stale := &StaleError{Err: err}
	c.mu.Lock()
	c.stale = stale
	c.mu.Unlock()
	return stale
}

// Find returns the cached word with the given id.
func (c *Cache) Find(id vocab.ID) (vocab.WordEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, w := range c.words {
		if w.ID == id {
			return w, true
		}
	}
	return vocab.WordEntry{}, false
}
