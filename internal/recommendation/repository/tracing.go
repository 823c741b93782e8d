package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/bookbank/internal/recommendation/domain"
)

// tracer is resolved per call so that it always reflects the currently
// registered global tracer provider.
func tracer() trace.Tracer {
	return otel.Tracer("recommendation-repository")
}

// RecommendationRepositoryWithTracing decorates a repository with
// per-operation spans. It satisfies domain.RecommendationRepository
// itself, so callers going through the interface hit the traced
// methods rather than the wrapped ones.
type RecommendationRepositoryWithTracing struct {
	next domain.RecommendationRepository
}

// NewRecommendationRepositoryWithTracing wraps a repository with tracing
func NewRecommendationRepositoryWithTracing(next domain.RecommendationRepository) *RecommendationRepositoryWithTracing {
	return &RecommendationRepositoryWithTracing{next: next}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Create traces recommendation creation
func (r *RecommendationRepositoryWithTracing) Create(rec *domain.Recommendation) error {
	_, span := tracer().Start(context.Background(), "repository.Create",
		trace.WithAttributes(
			attribute.String("recommendation.bookname", rec.Bookname),
			attribute.Float64("recommendation.rating", rec.Rating),
		),
	)

	err := r.next.Create(rec)
	if err == nil {
		span.SetAttributes(attribute.String("recommendation.id", rec.ID))
	}
	endSpan(span, err)
	return err
}

// FindByID delegates without a span
func (r *RecommendationRepositoryWithTracing) FindByID(id string) (*domain.Recommendation, error) {
	return r.next.FindByID(id)
}

// FindAll delegates without a span
func (r *RecommendationRepositoryWithTracing) FindAll() ([]domain.Recommendation, error) {
	return r.next.FindAll()
}

// FindRandom delegates without a span
func (r *RecommendationRepositoryWithTracing) FindRandom(limit int) ([]domain.Recommendation, error) {
	return r.next.FindRandom(limit)
}

// Filter traces filtered listings
func (r *RecommendationRepositoryWithTracing) Filter(f domain.Filter) ([]domain.Recommendation, error) {
	_, span := tracer().Start(context.Background(), "repository.Filter",
		trace.WithAttributes(attribute.String("filter.sort_by", f.SortBy)),
	)

	recs, err := r.next.Filter(f)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(recs)))
	}
	endSpan(span, err)
	return recs, err
}

// Like traces the atomic like increment
func (r *RecommendationRepositoryWithTracing) Like(recommendationID, userID string) (*domain.Recommendation, error) {
	_, span := tracer().Start(context.Background(), "repository.Like",
		trace.WithAttributes(
			attribute.String("recommendation.id", recommendationID),
			attribute.String("user.id", userID),
		),
	)

	rec, err := r.next.Like(recommendationID, userID)
	if err == nil {
		span.SetAttributes(attribute.Int("recommendation.like_count", rec.LikeCount))
	}
	endSpan(span, err)
	return rec, err
}

// CreateComment traces comment creation
func (r *RecommendationRepositoryWithTracing) CreateComment(comment *domain.Comment) error {
	_, span := tracer().Start(context.Background(), "repository.CreateComment",
		trace.WithAttributes(attribute.String("recommendation.id", comment.RecommendationID)),
	)

	err := r.next.CreateComment(comment)
	endSpan(span, err)
	return err
}

// CountLikes delegates without a span
func (r *RecommendationRepositoryWithTracing) CountLikes(recommendationID string) (int64, error) {
	return r.next.CountLikes(recommendationID)
}

// Count delegates without a span
func (r *RecommendationRepositoryWithTracing) Count() (int64, error) {
	return r.next.Count()
}
