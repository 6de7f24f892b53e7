package trending

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/reel/internal/tmdb"
)

type failingStore struct {
	findErr   error
	createErr error
	setErr    error
	topErr    error
}

func (f failingStore) FindByTerm(context.Context, string) (Document, error) {
	if f.findErr != nil {
		return Document{}, f.findErr
	}
	return Document{ID: "doc-1", SearchTerm: "x", Count: 1}, nil
}

func (f failingStore) Create(_ context.Context, doc Document) (Document, error) {
	return doc, f.createErr
}

func (f failingStore) SetCount(context.Context, string, int) error { return f.setErr }

func (f failingStore) Top(context.Context, int) ([]Document, error) { return nil, f.topErr }

func TestAggregator_CreatesThenIncrements(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	agg := NewAggregator(store)

	batman := tmdb.Movie{ID: 1, Title: "Batman", PosterPath: "/x.jpg"}
	require.NoError(t, agg.UpdateSearchCount(ctx, "batman", batman))

	doc, err := store.FindByTerm(ctx, "batman")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Count)
	assert.Equal(t, int64(1), doc.MovieID)
	assert.Equal(t, "Batman", doc.Title)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/x.jpg", doc.PosterURL)
	assert.NotEmpty(t, doc.ID)

	other := tmdb.Movie{ID: 2, Title: "Batman Returns", PosterPath: "/y.jpg"}
	require.NoError(t, agg.UpdateSearchCount(ctx, "batman", other))
	require.NoError(t, agg.UpdateSearchCount(ctx, "batman", other))

	doc, err = store.FindByTerm(ctx, "batman")
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Count)
	assert.Equal(t, "Batman", doc.Title, "existing document keeps its first top movie")
}

func TestAggregator_TrendingOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for i := 1; i <= 7; i++ {
		_, err := store.Create(ctx, Document{
			SearchTerm: fmt.Sprintf("term-%d", i),
			Count:      i * 10,
			Title:      fmt.Sprintf("Movie %d", i),
		})
		require.NoError(t, err)
	}

	agg := NewAggregator(store)
	entries, err := agg.GetTrendingMovies(ctx)
	require.NoError(t, err)
	require.Len(t, entries, DefaultLimit)

	var titles []string
	for _, e := range entries {
		titles = append(titles, e.Title)
		assert.NotEmpty(t, e.ID)
	}
	assert.Equal(t, []string{"Movie 7", "Movie 6", "Movie 5", "Movie 4", "Movie 3"}, titles)

	again, err := agg.GetTrendingMovies(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, again, "reads without writes are stable")
}

func TestAggregator_WithOptions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	agg := NewAggregator(store, WithImageBase("https://img.example/w92/"), WithLimit(2))

	for _, term := range []string{"a", "b", "c"} {
		require.NoError(t, agg.UpdateSearchCount(ctx, term, tmdb.Movie{ID: 9, PosterPath: "/p.jpg"}))
	}
	entries, err := agg.GetTrendingMovies(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "https://img.example/w92/p.jpg", entries[0].PosterURL)
}

func TestAggregator_PropagatesStoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := NewAggregator(failingStore{findErr: boom}).UpdateSearchCount(ctx, "x", tmdb.Movie{})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "lookup")

	err = NewAggregator(failingStore{findErr: ErrNotFound, createErr: boom}).UpdateSearchCount(ctx, "x", tmdb.Movie{})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "create")

	err = NewAggregator(failingStore{setErr: boom}).UpdateSearchCount(ctx, "x", tmdb.Movie{})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "increment")

	_, err = NewAggregator(failingStore{topErr: boom}).GetTrendingMovies(ctx)
	require.ErrorIs(t, err, boom)
}

func TestAggregator_NilStore(t *testing.T) {
	var agg *Aggregator
	require.Error(t, agg.UpdateSearchCount(context.Background(), "x", tmdb.Movie{}))
	_, err := NewAggregator(nil).GetTrendingMovies(context.Background())
	require.Error(t, err)
}
