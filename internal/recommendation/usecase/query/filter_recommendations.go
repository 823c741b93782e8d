package query

import (
	"fmt"
	"time"

	"github.com/tair/bookbank/internal/recommendation/domain"
)

// FilterRecommendationsQuery represents the query to filter and sort
// recommendations. All criteria are optional and compose with AND
// semantics.
type FilterRecommendationsQuery struct {
	RatingMin       *float64
	PublicationDate *time.Time
	SortBy          string
}

// FilterRecommendationsHandler handles filtered listings
type FilterRecommendationsHandler struct {
	repo domain.RecommendationRepository
}

// NewFilterRecommendationsHandler creates a new filter recommendations handler
func NewFilterRecommendationsHandler(repo domain.RecommendationRepository) *FilterRecommendationsHandler {
	return &FilterRecommendationsHandler{repo: repo}
}

// Handle executes the filter query. An absent SortBy leaves the result
// unordered; an unknown sort key is a validation failure.
func (h *FilterRecommendationsHandler) Handle(q FilterRecommendationsQuery) ([]domain.Recommendation, error) {
	switch q.SortBy {
	case "", domain.SortByRating, domain.SortByPublicationDate:
	default:
		return nil, fmt.Errorf("invalid sort_by: %s", q.SortBy)
	}

	if q.RatingMin != nil && (*q.RatingMin < 0 || *q.RatingMin > 10) {
		return nil, fmt.Errorf("rating must be between 0 and 10")
	}

	recs, err := h.repo.Filter(domain.Filter{
		RatingMin:       q.RatingMin,
		PublicationDate: q.PublicationDate,
		SortBy:          q.SortBy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter recommendations: %w", err)
	}
	return recs, nil
}
