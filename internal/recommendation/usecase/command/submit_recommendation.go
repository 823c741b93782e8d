package command

import (
	"fmt"

	"github.com/tair/bookbank/internal/recommendation/domain"
)

// SubmitRecommendationCommand represents the command to submit a recommendation
type SubmitRecommendationCommand struct {
	UserID             string
	Bookname           string
	RecommendationText string
	Rating             float64
}

// SubmitRecommendationHandler handles recommendation submission
type SubmitRecommendationHandler struct {
	repo domain.RecommendationRepository
}

// NewSubmitRecommendationHandler creates a new submit recommendation handler
func NewSubmitRecommendationHandler(repo domain.RecommendationRepository) *SubmitRecommendationHandler {
	return &SubmitRecommendationHandler{repo: repo}
}

// Handle executes the submit recommendation command. The publication
// date defaults to today and the like counter starts at zero.
func (h *SubmitRecommendationHandler) Handle(cmd SubmitRecommendationCommand) (*domain.Recommendation, error) {
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if cmd.Bookname == "" {
		return nil, fmt.Errorf("bookname is required")
	}
	if cmd.RecommendationText == "" {
		return nil, fmt.Errorf("recommendation text is required")
	}
	if cmd.Rating < 0 || cmd.Rating > 10 {
		return nil, fmt.Errorf("rating must be between 0 and 10")
	}

	rec := &domain.Recommendation{
		UserID:             cmd.UserID,
		Bookname:           cmd.Bookname,
		RecommendationText: cmd.RecommendationText,
		Rating:             cmd.Rating,
		PublicationDate:    domain.Today(),
		LikeCount:          0,
	}

	if err := h.repo.Create(rec); err != nil {
		return nil, err
	}

	return rec, nil
}
