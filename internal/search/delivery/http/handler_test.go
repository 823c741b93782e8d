package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/bookbank/internal/search/googlebooks"
	"github.com/tair/bookbank/internal/search/usecase/query"
)

// stubSearcher records the last call and returns canned results
type stubSearcher struct {
	mu        sync.Mutex
	lastQuery string
	lastMax   int
	books     []googlebooks.BookSummary
	err       error
}

func (s *stubSearcher) Search(_ context.Context, q string, maxResults int) ([]googlebooks.BookSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = q
	s.lastMax = maxResults
	if s.err != nil {
		return nil, s.err
	}
	return s.books, nil
}

// The handler registers its Prometheus collectors on the default
// registry, so the test router is built exactly once per package.
var (
	setupOnce  sync.Once
	testStub   *stubSearcher
	testRouter *mux.Router
)

func setup() (*mux.Router, *stubSearcher) {
	setupOnce.Do(func() {
		testStub = &stubSearcher{}
		testRouter = mux.NewRouter()
		NewSearchHandler(testStub).RegisterRoutes(testRouter)
	})
	return testRouter, testStub
}

func TestSearchBooks(t *testing.T) {
	router, stub := setup()
	stub.err = nil
	stub.books = []googlebooks.BookSummary{
		{Title: "Dune", Author: "Frank Herbert", Rating: 4.5},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/books/search?q=dune", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dune", stub.lastQuery)
	assert.Equal(t, query.APIMaxResults, stub.lastMax)

	var body map[string][]googlebooks.BookSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body["books"], 1)
	assert.Equal(t, "Dune", body["books"][0].Title)
}

func TestSearchBooks_UpstreamFailure(t *testing.T) {
	router, stub := setup()
	stub.books = nil
	stub.err = googlebooks.ErrUpstream

	req := httptest.NewRequest(http.MethodGet, "/api/books/search?q=dune", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body["error"], "unavailable")
	stub.err = nil
}

func TestSearchBooks_EmptyQuery(t *testing.T) {
	router, stub := setup()
	stub.err = nil
	stub.books = []googlebooks.BookSummary{}

	req := httptest.NewRequest(http.MethodGet, "/api/books/search", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]googlebooks.BookSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Empty(t, body["books"])
}
