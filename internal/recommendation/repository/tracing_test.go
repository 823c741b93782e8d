package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tair/bookbank/internal/recommendation/domain"
)

// stubRepository returns canned values so the decorator can be
// exercised without a database.
type stubRepository struct {
	rec *domain.Recommendation
	err error
}

func (s *stubRepository) Create(rec *domain.Recommendation) error {
	rec.ID = "rec-1"
	return s.err
}

func (s *stubRepository) FindByID(id string) (*domain.Recommendation, error) {
	return s.rec, s.err
}

func (s *stubRepository) FindAll() ([]domain.Recommendation, error) {
	return nil, s.err
}

func (s *stubRepository) FindRandom(limit int) ([]domain.Recommendation, error) {
	return nil, s.err
}

func (s *stubRepository) Filter(f domain.Filter) ([]domain.Recommendation, error) {
	return nil, s.err
}

func (s *stubRepository) Like(recommendationID, userID string) (*domain.Recommendation, error) {
	return s.rec, s.err
}

func (s *stubRepository) CreateComment(comment *domain.Comment) error {
	return s.err
}

func (s *stubRepository) CountLikes(recommendationID string) (int64, error) {
	return 0, s.err
}

func (s *stubRepository) Count() (int64, error) {
	return 0, s.err
}

func spanNames(spans tracetest.SpanStubs) []string {
	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name)
	}
	return names
}

func TestTracedRepositoryRecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	// calls go through the interface, as the usecases do
	var repo domain.RecommendationRepository = NewRecommendationRepositoryWithTracing(&stubRepository{
		rec: &domain.Recommendation{ID: "rec-1", LikeCount: 3},
	})

	require.NoError(t, repo.Create(&domain.Recommendation{Bookname: "Dune", Rating: 9}))

	_, err := repo.Like("rec-1", "user-1")
	require.NoError(t, err)

	_, err = repo.Filter(domain.Filter{SortBy: domain.SortByRating})
	require.NoError(t, err)

	require.NoError(t, repo.CreateComment(&domain.Comment{RecommendationID: "rec-1"}))

	names := spanNames(exporter.GetSpans())
	assert.Contains(t, names, "repository.Create")
	assert.Contains(t, names, "repository.Like")
	assert.Contains(t, names, "repository.Filter")
	assert.Contains(t, names, "repository.CreateComment")
}

func TestTracedRepositoryRecordsErrors(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	var repo domain.RecommendationRepository = NewRecommendationRepositoryWithTracing(&stubRepository{
		err: domain.ErrRecommendationNotFound,
	})

	_, err := repo.Like("missing", "user-1")
	assert.ErrorIs(t, err, domain.ErrRecommendationNotFound)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}
