package corpus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lugat/internal/vocab"
)

// pagedStore serves words in pages of pageSize and counts requests.
type pagedStore struct {
	mu       sync.Mutex
	words    []vocab.WordEntry
	pageSize int
	bare     bool
	failPage int
	failEdit error
	calls    []int
	nextID   int
}

func newPagedStore(n, pageSize int) *pagedStore {
	s := &pagedStore{pageSize: pageSize}
	for i := 0; i < n; i++ {
		s.words = append(s.words, word(i))
	}
	s.nextID = n
	return s
}

func word(i int) vocab.WordEntry {
	return vocab.WordEntry{
		ID:      vocab.ID(fmt.Sprint(i + 1)),
		English: fmt.Sprintf("word%d", i),
		Uzbek:   fmt.Sprintf("soz%d", i),
	}
}

func (s *pagedStore) ListWords(_ context.Context, page int) (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, page)
	if s.failPage == page {
		return Page{}, errors.New("boom")
	}
	if s.bare {
		return Page{Items: append([]vocab.WordEntry(nil), s.words...), Count: len(s.words)}, nil
	}
	lo := (page - 1) * s.pageSize
	if lo > len(s.words) {
		lo = len(s.words)
	}
	hi := min(lo+s.pageSize, len(s.words))
	return Page{Items: append([]vocab.WordEntry(nil), s.words[lo:hi]...), Count: len(s.words), Paginated: true}, nil
}

func (s *pagedStore) CreateWord(_ context.Context, in vocab.WordInput) (vocab.WordEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failEdit != nil {
		return vocab.WordEntry{}, s.failEdit
	}
	s.nextID++
	w := vocab.WordEntry{ID: vocab.ID(fmt.Sprint(s.nextID)), English: in.English, Uzbek: in.Uzbek}
	s.words = append(s.words, w)
	return w, nil
}

func (s *pagedStore) UpdateWord(_ context.Context, id vocab.ID, in vocab.WordInput) (vocab.WordEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failEdit != nil {
		return vocab.WordEntry{}, s.failEdit
	}
	for i := range s.words {
		if s.words[i].ID == id {
			s.words[i].English, s.words[i].Uzbek = in.English, in.Uzbek
			return s.words[i], nil
		}
	}
	return vocab.WordEntry{}, errors.New("not found")
}

func (s *pagedStore) DeleteWord(_ context.Context, id vocab.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failEdit != nil {
		return s.failEdit
	}
	for i := range s.words {
		if s.words[i].ID == id {
			s.words = append(s.words[:i], s.words[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func TestReload_FetchesEveryPage(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		pageSize  int
		wantCalls int
	}{
		{"empty", 0, 10, 1},
		{"single partial page", 3, 10, 1},
		{"exact pages", 20, 10, 2},
		{"trailing partial page", 23, 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newPagedStore(tt.n, tt.pageSize)
			c := New(store, nil)

			require.NoError(t, c.Reload(context.Background()))
			assert.Equal(t, tt.n, c.Len())
			assert.Len(t, store.calls, tt.wantCalls)
			assert.True(t, c.Loaded())
			if tt.n > 0 {
				assert.Equal(t, store.words, c.Words())
			}
		})
	}
}

func TestReload_BareList(t *testing.T) {
	store := newPagedStore(7, 2)
	store.bare = true
	c := New(store, nil)

	require.NoError(t, c.Reload(context.Background()))
	assert.Equal(t, 7, c.Len())
	assert.Equal(t, []int{1}, store.calls)
}

func TestReload_Idempotent(t *testing.T) {
	store := newPagedStore(12, 5)
	c := New(store, nil)
	ctx := context.Background()

	require.NoError(t, c.Reload(ctx))
	first := c.Words()
	require.NoError(t, c.Reload(ctx))
	assert.Equal(t, first, c.Words())
}

func TestReload_FailureKeepsPreviousList(t *testing.T) {
	store := newPagedStore(12, 5)
	c := New(store, nil)
	ctx := context.Background()
	require.NoError(t, c.Reload(ctx))

	store.failPage = 2
	store.words = store.words[:1]
	store.words = append(store.words, word(50), word(51), word(52), word(53), word(54), word(55))

	err := c.Reload(ctx)
	require.Error(t, err)
	assert.Equal(t, 12, c.Len())
	assert.Equal(t, "word0", c.Words()[0].English)
}

func TestReload_EmptyPageStops(t *testing.T) {
	// Count overstates the list; the empty page ends the loop.
	store := &lyingStore{pagedStore: newPagedStore(4, 2)}
	c := New(store, nil)

	require.NoError(t, c.Reload(context.Background()))
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []int{1, 2, 3}, store.calls)
}

type lyingStore struct{ *pagedStore }

func (s *lyingStore) ListWords(ctx context.Context, page int) (Page, error) {
	p, err := s.pagedStore.ListWords(ctx, page)
	p.Count = 100
	return p, err
}

func TestApply(t *testing.T) {
	words := []vocab.WordEntry{
		{ID: "1", English: "Cat", Uzbek: "mushuk"},
		{ID: "2", English: "dog", Uzbek: "it"},
		{ID: "3", English: "catalog", Uzbek: "katalog"},
		{ID: "4", English: "house", Uzbek: "uy"},
		{ID: "5", English: "mouse", Uzbek: "sichqon"},
		{ID: "6", English: "horse", Uzbek: "ot"},
		{ID: "7", English: "cow", Uzbek: "sigir"},
	}

	t.Run("no query pages the whole list", func(t *testing.T) {
		v := Apply(words, "", 2)
		assert.Equal(t, 7, v.TotalMatching)
		assert.Equal(t, 2, v.PageCount)
		assert.Equal(t, 2, v.PageIndex)
		require.Len(t, v.Items, 2)
		assert.Equal(t, vocab.ID("6"), v.Items[0].ID)
	})

	t.Run("query matches either side case-insensitively", func(t *testing.T) {
		v := Apply(words, "  CAT ", 1)
		assert.Equal(t, 2, v.TotalMatching)
		assert.Equal(t, []vocab.ID{"1", "3"}, ids(v.Items))

		v = Apply(words, "SI", 1)
		assert.Equal(t, []vocab.ID{"5", "7"}, ids(v.Items))
	})

	t.Run("page beyond range is clamped", func(t *testing.T) {
		v := Apply(words, "cat", 9)
		assert.Equal(t, 1, v.PageIndex)
		assert.Equal(t, 1, v.PageCount)
		assert.Len(t, v.Items, 2)
	})

	t.Run("page below one is clamped", func(t *testing.T) {
		v := Apply(words, "", 0)
		assert.Equal(t, 1, v.PageIndex)
	})

	t.Run("no matches still has one page", func(t *testing.T) {
		v := Apply(words, "zebra", 3)
		assert.Equal(t, 0, v.TotalMatching)
		assert.Equal(t, 1, v.PageCount)
		assert.Equal(t, 1, v.PageIndex)
		assert.Empty(t, v.Items)
	})

	t.Run("pure", func(t *testing.T) {
		assert.Equal(t, Apply(words, "o", 2), Apply(words, "o", 2))
	})
}

func TestMutationsReload(t *testing.T) {
	store := newPagedStore(3, 10)
	c := New(store, nil)
	ctx := context.Background()
	require.NoError(t, c.Reload(ctx))

	w, err := c.Add(ctx, vocab.WordInput{English: "  apple ", Uzbek: "olma"})
	require.NoError(t, err)
	assert.Equal(t, "apple", w.English)
	assert.Equal(t, 4, c.Len())

	_, err = c.Update(ctx, w.ID, vocab.WordInput{English: "apple", Uzbek: "olma!"})
	require.NoError(t, err)
	got, ok := c.Find(w.ID)
	require.True(t, ok)
	assert.Equal(t, "olma!", got.Uzbek)

	require.NoError(t, c.Remove(ctx, w.ID))
	assert.Equal(t, 3, c.Len())
	_, ok = c.Find(w.ID)
	assert.False(t, ok)

	t.Run("rejected change skips reload", func(t *testing.T) {
		store := newPagedStore(3, 10)
		c := New(store, nil)
		require.NoError(t, c.Reload(ctx))
		store.failEdit = errors.New("rejected")
		before := len(store.calls)

		_, err := c.Add(ctx, vocab.WordInput{English: "sun", Uzbek: "quyosh"})
		require.Error(t, err)
		assert.False(t, IsStale(err))
		_, err = c.Update(ctx, "1", vocab.WordInput{English: "sun", Uzbek: "quyosh"})
		require.Error(t, err)
		require.Error(t, c.Remove(ctx, "1"))

		assert.Len(t, store.calls, before)
		assert.NoError(t, c.Stale())
	})

	t.Run("failed reload after change is stale", func(t *testing.T) {
		store := newPagedStore(3, 10)
		c := New(store, nil)
		require.NoError(t, c.Reload(ctx))
		store.failPage = 1

		w, err := c.Add(ctx, vocab.WordInput{English: "sun", Uzbek: "quyosh"})
		require.Error(t, err)
		assert.True(t, IsStale(err))
		var se *StaleError
		require.ErrorAs(t, err, &se)
		assert.EqualError(t, se.Err, "reload words: page 1: boom")
		assert.Equal(t, "sun", w.English, "created word is still returned")

		assert.Len(t, store.words, 4)
		assert.Equal(t, 3, c.Len(), "cache keeps the list from before the change")
		assert.ErrorIs(t, c.Stale(), err)

		store.failPage = 0
		require.NoError(t, c.Reload(ctx))
		assert.Equal(t, 4, c.Len())
		assert.NoError(t, c.Stale())
	})

	t.Run("failed reload after delete is stale", func(t *testing.T) {
		store := newPagedStore(3, 10)
		c := New(store, nil)
		require.NoError(t, c.Reload(ctx))
		store.failPage = 1

		err := c.Remove(ctx, "2")
		assert.True(t, IsStale(err))
		assert.Len(t, store.words, 2)
		assert.Equal(t, 3, c.Len())
	})
}

// endlessStore claims far more words than it ever serves.
type endlessStore struct {
	pagedStore
}

func (s *endlessStore) ListWords(_ context.Context, page int) (Page, error) {
	s.calls = append(s.calls, page)
	return Page{Items: []vocab.WordEntry{word(page)}, Count: 1 << 30, Paginated: true}, nil
}

func TestReload_PageLimit(t *testing.T) {
	old := maxPages
	maxPages = 4
	t.Cleanup(func() { maxPages = old })

	prev := newPagedStore(2, 10)
	c := New(prev, nil)
	require.NoError(t, c.Reload(context.Background()))

	store := &endlessStore{}
	c.store = store
	err := c.Reload(context.Background())
	require.ErrorIs(t, err, ErrTooManyPages)
	assert.Len(t, store.calls, 4)
	assert.Equal(t, 2, c.Len(), "truncated list is not stored")
}

func TestAdd_RejectsInvalidInput(t *testing.T) {
	store := newPagedStore(0, 10)
	c := New(store, nil)

	_, err := c.Add(context.Background(), vocab.WordInput{English: "  ", Uzbek: "x"})
	require.Error(t, err)
	var ie *vocab.InputError
	assert.ErrorAs(t, err, &ie)
	assert.Empty(t, store.calls)
}

func ids(ws []vocab.WordEntry) []vocab.ID {
	out := make([]vocab.ID, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.ID)
	}
	return out
}
