package command

import (
	"fmt"

	"github.com/tair/bookbank/internal/recommendation/domain"
)

// AddCommentCommand represents the command to comment on a recommendation
type AddCommentCommand struct {
	UserID           string
	RecommendationID string
	CommentText      string
}

// AddCommentHandler handles comment creation
type AddCommentHandler struct {
	repo domain.RecommendationRepository
}

// NewAddCommentHandler creates a new add comment handler
func NewAddCommentHandler(repo domain.RecommendationRepository) *AddCommentHandler {
	return &AddCommentHandler{repo: repo}
}

// Handle appends a comment. Comments have no edit or delete operation.
func (h *AddCommentHandler) Handle(cmd AddCommentCommand) (*domain.Comment, error) {
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if cmd.RecommendationID == "" {
		return nil, fmt.Errorf("recommendation id is required")
	}
	if cmd.CommentText == "" {
		return nil, fmt.Errorf("comment text is required")
	}

	comment := &domain.Comment{
		UserID:           cmd.UserID,
		RecommendationID: cmd.RecommendationID,
		CommentText:      cmd.CommentText,
	}

	if err := h.repo.CreateComment(comment); err != nil {
		return nil, err
	}

	return comment, nil
}
