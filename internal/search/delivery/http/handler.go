package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/bookbank/internal/search/googlebooks"
	"github.com/tair/bookbank/internal/search/usecase/query"
	"github.com/tair/bookbank/pkg/logger"
)

// SearchHandler handles HTTP requests for the book catalog search
type SearchHandler struct {
	searchHandler *query.SearchBooksHandler

	requestCounter *prometheus.CounterVec
	searchLatency  prometheus.Histogram
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(client query.BookSearcher) *SearchHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookbank_search_requests_total",
			Help: "Total number of book search requests",
		},
		[]string{"status"},
	)

	searchLatency := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookbank_search_upstream_duration_seconds",
			Help:    "Duration of upstream catalog searches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(searchLatency)

	return &SearchHandler{
		searchHandler:  query.NewSearchBooksHandler(client),
		requestCounter: requestCounter,
		searchLatency:  searchLatency,
	}
}

// SearchBooks handles GET /api/books/search. No authentication is
// required; the catalog is public.
func (h *SearchHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	start := time.Now()
	books, err := h.searchHandler.Handle(r.Context(), query.SearchBooksQuery{
		Query:      q,
		MaxResults: query.APIMaxResults,
	})
	h.searchLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, googlebooks.ErrUpstream) {
			logger.Error(r.Context()).Err(err).Str("query", q).Msg("Book catalog search failed")
			h.requestCounter.WithLabelValues(strconv.Itoa(http.StatusBadGateway)).Inc()
			respondError(w, http.StatusBadGateway, "Book catalog is unavailable")
			return
		}
		h.requestCounter.WithLabelValues(strconv.Itoa(http.StatusInternalServerError)).Inc()
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.requestCounter.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	respondJSON(w, http.StatusOK, map[string]any{"books": books})
}

// RegisterRoutes registers search routes on the router
func (h *SearchHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/books/search", h.SearchBooks).Methods(http.MethodGet)
}

// SearchBooks godoc
// @Summary Search the book catalog
// @Description Forward a free-text query to the external catalog
// @Tags Search
// @Produce json
// @Param q query string false "Search query"
// @Success 200 {object} object{books=[]object{title=string,author=string,description=string,cover_image=string,rating=number}}
// @Failure 502 {object} object{error=string}
// @Router /api/books/search [get]
func (h *SearchHandler) SearchBooksDoc() {}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
