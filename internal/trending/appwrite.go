package trending

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultAppwriteEndpoint is Appwrite Cloud's API root.
const DefaultAppwriteEndpoint = "https://cloud.appwrite.io/v1"

const appwriteTimeout = 10 * time.Second

// AppwriteConfig locates one Appwrite collection.
type AppwriteConfig struct {
	Endpoint     string
	ProjectID    string
	APIKey       string
	DatabaseID   string
	CollectionID string
	HTTPClient   *http.Client
}

// AppwriteStore persists documents through the Appwrite Databases REST API.
type AppwriteStore struct {
	base    *url.URL
	project string
	key     string
	db      string
	coll    string
	http    *http.Client
}

var _ Store = (*AppwriteStore)(nil)

// NewAppwriteStore validates cfg and returns a store bound to its collection.
func NewAppwriteStore(cfg AppwriteConfig) (*AppwriteStore, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultAppwriteEndpoint
	}
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse appwrite endpoint %q: %w", cfg.Endpoint, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("appwrite endpoint %q must be an absolute url", cfg.Endpoint)
	}
	for name, value := range map[string]string{
		"project id":    cfg.ProjectID,
		"database id":   cfg.DatabaseID,
		"collection id": cfg.CollectionID,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("appwrite %s is required", name)
		}
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: appwriteTimeout}
	}
	base.Path = strings.TrimSuffix(base.Path, "/")
	return &AppwriteStore{
		base:    base,
		project: strings.TrimSpace(cfg.ProjectID),
		key:     strings.TrimSpace(cfg.APIKey),
		db:      strings.TrimSpace(cfg.DatabaseID),
		coll:    strings.TrimSpace(cfg.CollectionID),
		http:    hc,
	}, nil
}

// appwriteDocument is the wire shape of a stored document.
type appwriteDocument struct {
	ID         string `json:"$id,omitempty"`
	SearchTerm string `json:"searchTerm"`
	Count      int    `json:"count"`
	MovieID    int64  `json:"movie_id"`
	PosterURL  string `json:"poster_url"`
	Title      string `json:"title"`
}

type appwriteDocumentList struct {
	Total     int                `json:"total"`
	Documents []appwriteDocument `json:"documents"`
}

type appwriteError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// appwriteQuery serialises to Appwrite's JSON query syntax.
type appwriteQuery struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

// FindByTerm implements Store.
func (s *AppwriteStore) FindByTerm(ctx context.Context, term string) (Document, error) {
	list, err := s.list(ctx,
		appwriteQuery{Method: "equal", Attribute: "searchTerm", Values: []any{term}},
		appwriteQuery{Method: "limit", Values: []any{1}},
	)
	if err != nil {
		return Document{}, err
	}
	if len(list.Documents) == 0 {
		return Document{}, ErrNotFound
	}
	return list.Documents[0].toDocument(), nil
}

// Create implements Store. IDs are generated client side.
func (s *AppwriteStore) Create(ctx context.Context, doc Document) (Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	body := map[string]any{
		"documentId": doc.ID,
		"data": appwriteDocument{
			SearchTerm: doc.SearchTerm,
			Count:      doc.Count,
			MovieID:    doc.MovieID,
			PosterURL:  doc.PosterURL,
			Title:      doc.Title,
		},
	}
	var created appwriteDocument
	if err := s.do(ctx, http.MethodPost, s.documentsPath(), nil, body, &created); err != nil {
		return Document{}, err
	}
	if created.ID == "" {
		return doc, nil
	}
	return created.toDocument(), nil
}

// SetCount implements Store.
func (s *AppwriteStore) SetCount(ctx context.Context, id string, count int) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("document id required")
	}
	body := map[string]any{"data": map[string]any{"count": count}}
	return s.do(ctx, http.MethodPatch, s.documentsPath()+"/"+id, nil, body, nil)
}

// Top implements Store.
func (s *AppwriteStore) Top(ctx context.Context, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	list, err := s.list(ctx,
		appwriteQuery{Method: "orderDesc", Attribute: "count"},
		appwriteQuery{Method: "limit", Values: []any{limit}},
	)
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(list.Documents))
	for _, d := range list.Documents {
		docs = append(docs, d.toDocument())
	}
	return docs, nil
}

func (s *AppwriteStore) list(ctx context.Context, queries ...appwriteQuery) (appwriteDocumentList, error) {
	values := url.Values{}
	for _, q := range queries {
		encoded, err := json.Marshal(q)
		if err != nil {
			return appwriteDocumentList{}, fmt.Errorf("encode query: %w", err)
		}
		values.Add("queries[]", string(encoded))
	}
	var list appwriteDocumentList
	if err := s.do(ctx, http.MethodGet, s.documentsPath(), values, nil, &list); err != nil {
		return appwriteDocumentList{}, err
	}
	return list, nil
}

func (s *AppwriteStore) documentsPath() string {
	return "/databases/" + s.db + "/collections/" + s.coll + "/documents"
}

func (s *AppwriteStore) do(ctx context.Context, method, path string, values url.Values, body, dest any) error {
	reqURL := *s.base
	reqURL.Path = s.base.Path + path
	reqURL.RawQuery = values.Encode()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Appwrite-Project", s.project)
	if s.key != "" {
		req.Header.Set("X-Appwrite-Key", s.key)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var apiErr appwriteError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("appwrite %s %s returned status %d: %s", method, path, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("appwrite %s %s returned status %d", method, path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (d appwriteDocument) toDocument() Document {
	return Document{
		ID:         d.ID,
		SearchTerm: d.SearchTerm,
		Count:      d.Count,
		MovieID:    d.MovieID,
		PosterURL:  d.PosterURL,
		Title:      d.Title,
	}
}
