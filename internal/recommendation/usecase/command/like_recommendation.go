package command

import (
	"fmt"

	"github.com/tair/bookbank/internal/recommendation/domain"
)

// LikeRecommendationCommand represents the command to like a recommendation
type LikeRecommendationCommand struct {
	RecommendationID string
	UserID           string
}

// LikeRecommendationHandler handles the like increment
type LikeRecommendationHandler struct {
	repo domain.RecommendationRepository
}

// NewLikeRecommendationHandler creates a new like recommendation handler
func NewLikeRecommendationHandler(repo domain.RecommendationRepository) *LikeRecommendationHandler {
	return &LikeRecommendationHandler{repo: repo}
}

// Handle raises the like counter by one and attributes the like to the
// calling user. Repeat likes by the same user increment the counter
// again; the Like rows are attribution records, not a dedup set.
func (h *LikeRecommendationHandler) Handle(cmd LikeRecommendationCommand) (*domain.Recommendation, error) {
	if cmd.RecommendationID == "" {
		return nil, fmt.Errorf("recommendation id is required")
	}
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	return h.repo.Like(cmd.RecommendationID, cmd.UserID)
}
