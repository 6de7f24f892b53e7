package trending

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/reel/internal/tmdb"
)

// fakeAppwrite serves just enough of the Databases API for AppwriteStore.
type fakeAppwrite struct {
	t        *testing.T
	mu       sync.Mutex
	docs     map[string]appwriteDocument
	projects []string
	keys     []string
	failList bool
}

const fakeDocsPath = "/v1/databases/db1/collections/searches/documents"

func (f *fakeAppwrite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.projects = append(f.projects, r.Header.Get("X-Appwrite-Project"))
	f.keys = append(f.keys, r.Header.Get("X-Appwrite-Key"))
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == fakeDocsPath:
		if f.failList {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(appwriteError{Message: "missing scope", Code: 401})
			return
		}
		f.list(w, r)
	case r.Method == http.MethodPost && r.URL.Path == fakeDocsPath:
		var body struct {
			DocumentID string           `json:"documentId"`
			Data       appwriteDocument `json:"data"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		doc := body.Data
		doc.ID = body.DocumentID
		f.docs[doc.ID] = doc
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(doc)
	case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, fakeDocsPath+"/"):
		id := strings.TrimPrefix(r.URL.Path, fakeDocsPath+"/")
		doc, ok := f.docs[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(appwriteError{Message: "Document not found", Code: 404})
			return
		}
		var body struct {
			Data struct {
				Count int `json:"count"`
			} `json:"data"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		doc.Count = body.Data.Count
		f.docs[id] = doc
		_ = json.NewEncoder(w).Encode(doc)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAppwrite) list(w http.ResponseWriter, r *http.Request) {
	var out []appwriteDocument
	for _, d := range f.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SearchTerm < out[j].SearchTerm })
	limit := len(out)
	for _, raw := range r.URL.Query()["queries[]"] {
		var q appwriteQuery
		require.NoError(f.t, json.Unmarshal([]byte(raw), &q))
		switch q.Method {
		case "equal":
			var kept []appwriteDocument
			for _, d := range out {
				if q.Attribute == "searchTerm" && len(q.Values) == 1 && d.SearchTerm == q.Values[0] {
					kept = append(kept, d)
				}
			}
			out = kept
		case "orderDesc":
			require.Equal(f.t, "count", q.Attribute)
			sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
		case "limit":
			require.Len(f.t, q.Values, 1)
			limit = int(q.Values[0].(float64))
		default:
			f.t.Fatalf("unexpected query method %q", q.Method)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	_ = json.NewEncoder(w).Encode(appwriteDocumentList{Total: len(out), Documents: out})
}

func newFakeAppwrite(t *testing.T) (*fakeAppwrite, *AppwriteStore) {
	t.Helper()
	fake := &fakeAppwrite{t: t, docs: make(map[string]appwriteDocument)}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	store, err := NewAppwriteStore(AppwriteConfig{
		Endpoint:     server.URL + "/v1/",
		ProjectID:    "proj",
		APIKey:       "key",
		DatabaseID:   "db1",
		CollectionID: "searches",
	})
	require.NoError(t, err)
	return fake, store
}

func TestAppwriteStore_UpdateSearchCountFlow(t *testing.T) {
	ctx := context.Background()
	fake, store := newFakeAppwrite(t)
	agg := NewAggregator(store)

	batman := tmdb.Movie{ID: 1, Title: "Batman", PosterPath: "/x.jpg"}
	require.NoError(t, agg.UpdateSearchCount(ctx, "batman", batman))
	require.NoError(t, agg.UpdateSearchCount(ctx, "batman", batman))
	require.NoError(t, agg.UpdateSearchCount(ctx, "alien", tmdb.Movie{ID: 2, Title: "Alien"}))

	doc, err := store.FindByTerm(ctx, "batman")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Count)
	assert.Equal(t, int64(1), doc.MovieID)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/x.jpg", doc.PosterURL)
	assert.Len(t, doc.ID, 36, "client generated uuid")

	entries, err := agg.GetTrendingMovies(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Batman", entries[0].Title)
	assert.Equal(t, "Alien", entries[1].Title)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	for i := range fake.projects {
		assert.Equal(t, "proj", fake.projects[i])
		assert.Equal(t, "key", fake.keys[i])
	}
}

func TestAppwriteStore_FiveDocumentsInOrder(t *testing.T) {
	ctx := context.Background()
	fake, store := newFakeAppwrite(t)
	fake.mu.Lock()
	for i, term := range []string{"a", "b", "c", "d", "e", "f"} {
		fake.docs[term] = appwriteDocument{ID: term, SearchTerm: term, Count: 10 - i, Title: strings.ToUpper(term)}
	}
	fake.mu.Unlock()

	docs, err := store.Top(ctx, 5)
	require.NoError(t, err)
	require.Len(t, docs, 5)
	for i, want := range []string{"A", "B", "C", "D", "E"} {
		assert.Equal(t, want, docs[i].Title)
	}
}

func TestAppwriteStore_ErrorsCarryMessage(t *testing.T) {
	ctx := context.Background()
	fake, store := newFakeAppwrite(t)
	fake.mu.Lock()
	fake.failList = true
	fake.mu.Unlock()

	_, err := store.FindByTerm(ctx, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "missing scope")

	fake.mu.Lock()
	fake.failList = false
	fake.mu.Unlock()
	err = store.SetCount(ctx, "nope", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Document not found")

	require.Error(t, store.SetCount(ctx, " ", 2))
}

func TestNewAppwriteStore_Validates(t *testing.T) {
	_, err := NewAppwriteStore(AppwriteConfig{ProjectID: "p", DatabaseID: "d"})
	require.Error(t, err)

	_, err = NewAppwriteStore(AppwriteConfig{Endpoint: "not a url", ProjectID: "p", DatabaseID: "d", CollectionID: "c"})
	require.Error(t, err)

	store, err := NewAppwriteStore(AppwriteConfig{ProjectID: "p", DatabaseID: "d", CollectionID: "c"})
	require.NoError(t, err)
	assert.Equal(t, "cloud.appwrite.io", store.base.Host)
}
