package query

import (
	"fmt"

	"github.com/tair/bookbank/internal/recommendation/domain"
)

// DefaultSampleSize caps the page listing at ten random records
const DefaultSampleSize = 10

// SampleRecommendationsQuery represents the query for the page-view sample
type SampleRecommendationsQuery struct {
	Max int
}

// SampleRecommendationsHandler handles the random sample used by the
// view-recommendations page. The API listing never samples.
type SampleRecommendationsHandler struct {
	repo domain.RecommendationRepository
}

// NewSampleRecommendationsHandler creates a new sample recommendations handler
func NewSampleRecommendationsHandler(repo domain.RecommendationRepository) *SampleRecommendationsHandler {
	return &SampleRecommendationsHandler{repo: repo}
}

// Handle returns all recommendations when the total fits the cap, and a
// uniformly random subset without replacement otherwise.
func (h *SampleRecommendationsHandler) Handle(q SampleRecommendationsQuery) ([]domain.Recommendation, error) {
	max := q.Max
	if max <= 0 {
		max = DefaultSampleSize
	}

	recs, err := h.repo.FindRandom(max)
	if err != nil {
		return nil, fmt.Errorf("failed to sample recommendations: %w", err)
	}
	return recs, nil
}
