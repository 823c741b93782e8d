package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/bookbank/internal/recommendation/domain"
	"github.com/tair/bookbank/internal/recommendation/usecase/command"
	"github.com/tair/bookbank/internal/recommendation/usecase/query"
	userhttp "github.com/tair/bookbank/internal/user/delivery/http"
)

// dateLayout is the wire format for publication dates
const dateLayout = "2006-01-02"

// RecommendationHandler handles HTTP requests for recommendations,
// likes and comments
type RecommendationHandler struct {
	submitHandler  *command.SubmitRecommendationHandler
	likeHandler    *command.LikeRecommendationHandler
	commentHandler *command.AddCommentHandler

	listHandler   *query.ListRecommendationsHandler
	filterHandler *query.FilterRecommendationsHandler

	validate *validator.Validate

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	likesTotal     prometheus.Counter
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(repo domain.RecommendationRepository) *RecommendationHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookbank_recommendation_requests_total",
			Help: "Total number of requests to recommendation endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookbank_recommendation_request_duration_seconds",
			Help:    "Duration of recommendation endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	likesTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookbank_likes_total",
			Help: "Total number of like increments",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(likesTotal)

	return &RecommendationHandler{
		submitHandler:  command.NewSubmitRecommendationHandler(repo),
		likeHandler:    command.NewLikeRecommendationHandler(repo),
		commentHandler: command.NewAddCommentHandler(repo),
		listHandler:    query.NewListRecommendationsHandler(repo),
		filterHandler:  query.NewFilterRecommendationsHandler(repo),
		validate:       validator.New(),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		likesTotal:     likesTotal,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *RecommendationHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

type submitRequest struct {
	Bookname           string  `json:"bookname" validate:"required"`
	RecommendationText string  `json:"recommendation_text" validate:"required"`
	Rating             float64 `json:"rating" validate:"gte=0,lte=10"`
}

type likeRequest struct {
	Recommendation string `json:"recommendation" validate:"required"`
}

type commentRequest struct {
	Recommendation string `json:"recommendation" validate:"required"`
	CommentText    string `json:"comment_text" validate:"required"`
}

// recommendationResponse is the explicit API shape for a recommendation
type recommendationResponse struct {
	ID                 string  `json:"id"`
	Bookname           string  `json:"bookname"`
	RecommendationText string  `json:"recommendation_text"`
	Rating             float64 `json:"rating"`
	PublicationDate    string  `json:"publication_date"`
	LikeCount          int     `json:"like_count"`
}

func toRecommendationResponse(rec *domain.Recommendation) recommendationResponse {
	return recommendationResponse{
		ID:                 rec.ID,
		Bookname:           rec.Bookname,
		RecommendationText: rec.RecommendationText,
		Rating:             rec.Rating,
		PublicationDate:    rec.PublicationDate.Format(dateLayout),
		LikeCount:          rec.LikeCount,
	}
}

func toRecommendationResponses(recs []domain.Recommendation) []recommendationResponse {
	out := make([]recommendationResponse, 0, len(recs))
	for i := range recs {
		out = append(out, toRecommendationResponse(&recs[i]))
	}
	return out
}

// List handles GET /api/recommendations
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.listHandler.Handle(query.ListRecommendationsQuery{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toRecommendationResponses(recs))
}

// Submit handles POST /api/recommendations
func (h *RecommendationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	rec, err := h.submitHandler.Handle(command.SubmitRecommendationCommand{
		UserID:             userID,
		Bookname:           req.Bookname,
		RecommendationText: req.RecommendationText,
		Rating:             req.Rating,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, toRecommendationResponse(rec))
}

// Like handles PATCH /api/recommendations/like
func (h *RecommendationHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req likeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Recommendation == "" {
		respondError(w, http.StatusBadRequest, "Recommendation ID is required")
		return
	}

	rec, err := h.likeHandler.Handle(command.LikeRecommendationCommand{
		RecommendationID: req.Recommendation,
		UserID:           userID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecommendationNotFound) {
			respondError(w, http.StatusNotFound, "Recommendation not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.likesTotal.Inc()
	respondJSON(w, http.StatusOK, map[string]any{
		"message":        "Recommendation has been liked",
		"recommendation": toRecommendationResponse(rec),
	})
}

// Comment handles POST /api/comments
func (h *RecommendationHandler) Comment(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	_, err := h.commentHandler.Handle(command.AddCommentCommand{
		UserID:           userID,
		RecommendationID: req.Recommendation,
		CommentText:      req.CommentText,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecommendationNotFound) {
			respondError(w, http.StatusNotFound, "Recommendation not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Comment has been added"})
}

// Filter handles GET /api/recommendations/filter
func (h *RecommendationHandler) Filter(w http.ResponseWriter, r *http.Request) {
	q := query.FilterRecommendationsQuery{
		SortBy: r.URL.Query().Get("sort_by"),
	}

	if ratingStr := r.URL.Query().Get("rating"); ratingStr != "" {
		rating, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid rating")
			return
		}
		q.RatingMin = &rating
	}

	if dateStr := r.URL.Query().Get("publication_date"); dateStr != "" {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid publication_date, expected YYYY-MM-DD")
			return
		}
		q.PublicationDate = &date
	}

	recs, err := h.filterHandler.Handle(q)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toRecommendationResponses(recs))
}

// RegisterRoutes registers recommendation routes on the router. All of
// them require a valid bearer token.
func (h *RecommendationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/recommendations",
		h.metricsMiddleware("/api/recommendations", userhttp.AuthMiddleware(h.List))).Methods(http.MethodGet)
	router.HandleFunc("/api/recommendations",
		h.metricsMiddleware("/api/recommendations", userhttp.AuthMiddleware(h.Submit))).Methods(http.MethodPost)
	router.HandleFunc("/api/recommendations/filter",
		h.metricsMiddleware("/api/recommendations/filter", userhttp.AuthMiddleware(h.Filter))).Methods(http.MethodGet)
	router.HandleFunc("/api/recommendations/like",
		h.metricsMiddleware("/api/recommendations/like", userhttp.AuthMiddleware(h.Like))).Methods(http.MethodPatch)
	router.HandleFunc("/api/comments",
		h.metricsMiddleware("/api/comments", userhttp.AuthMiddleware(h.Comment))).Methods(http.MethodPost)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondValidationError maps validator errors to field-level detail
func respondValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	fields := map[string]string{}
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "Validation failed",
		"fields": fields,
	})
}
