package query

import (
	"context"

	"github.com/tair/bookbank/internal/search/googlebooks"
)

// Result caps for the two callers; the page shows fewer than the API
const (
	PageMaxResults = 10
	APIMaxResults  = 20
)

// SearchBooksQuery represents the query against the external catalog
type SearchBooksQuery struct {
	Query      string
	MaxResults int
}

// BookSearcher is the contract the handler depends on; satisfied by
// the Google Books client and by test stubs.
type BookSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]googlebooks.BookSummary, error)
}

// SearchBooksHandler handles catalog searches
type SearchBooksHandler struct {
	client BookSearcher
}

// NewSearchBooksHandler creates a new search books handler
func NewSearchBooksHandler(client BookSearcher) *SearchBooksHandler {
	return &SearchBooksHandler{client: client}
}

// Handle executes the search. Upstream failures propagate as
// googlebooks.ErrUpstream for both page and API callers.
func (h *SearchBooksHandler) Handle(ctx context.Context, q SearchBooksQuery) ([]googlebooks.BookSummary, error) {
	max := q.MaxResults
	if max <= 0 {
		max = APIMaxResults
	}
	return h.client.Search(ctx, q.Query, max)
}
