package http

// List godoc
// @Summary List recommendations
// @Description List every recommendation, no defined order
// @Tags Recommendations
// @Security BearerAuth
// @Produce json
// @Success 200 {array} object{id=string,bookname=string,recommendation_text=string,rating=number,publication_date=string,like_count=int}
// @Failure 401 {object} object{error=string}
// @Router /api/recommendations [get]
func (h *RecommendationHandler) ListDoc() {}

// Submit godoc
// @Summary Submit a recommendation
// @Description Create a recommendation owned by the authenticated user
// @Tags Recommendations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{bookname=string,recommendation_text=string,rating=number} true "Recommendation data"
// @Success 201 {object} object{id=string,bookname=string,rating=number,like_count=int}
// @Failure 400 {object} object{error=string}
// @Router /api/recommendations [post]
func (h *RecommendationHandler) SubmitDoc() {}

// Like godoc
// @Summary Like a recommendation
// @Description Atomically raise the like counter by one
// @Tags Recommendations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{recommendation=string} true "Recommendation ID"
// @Success 200 {object} object{message=string,recommendation=object}
// @Failure 404 {object} object{error=string}
// @Router /api/recommendations/like [patch]
func (h *RecommendationHandler) LikeDoc() {}

// Comment godoc
// @Summary Comment on a recommendation
// @Description Append a comment; comments cannot be edited or deleted
// @Tags Recommendations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{recommendation=string,comment_text=string} true "Comment data"
// @Success 201 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /api/comments [post]
func (h *RecommendationHandler) CommentDoc() {}

// Filter godoc
// @Summary Filter recommendations
// @Description Filter by minimum rating and exact publication date, optionally sorted ascending
// @Tags Recommendations
// @Security BearerAuth
// @Produce json
// @Param rating query number false "Minimum rating (0-10)"
// @Param publication_date query string false "Exact publication date (YYYY-MM-DD)"
// @Param sort_by query string false "Sort key (rating or publication_date)"
// @Success 200 {array} object{id=string,bookname=string,rating=number}
// @Failure 400 {object} object{error=string}
// @Router /api/recommendations/filter [get]
func (h *RecommendationHandler) FilterDoc() {}
