package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/bookbank/internal/recommendation/domain"
	"github.com/tair/bookbank/pkg/auth"
)

// fakeRecommendationRepository keeps everything in memory
type fakeRecommendationRepository struct {
	mu    sync.Mutex
	recs  map[string]*domain.Recommendation
	likes []domain.Like
}

func (f *fakeRecommendationRepository) Create(rec *domain.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.PublicationDate.IsZero() {
		rec.PublicationDate = domain.Today()
	}
	stored := *rec
	f.recs[rec.ID] = &stored
	return nil
}

func (f *fakeRecommendationRepository) FindByID(id string) (*domain.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.recs[id]; ok {
		copied := *rec
		return &copied, nil
	}
	return nil, domain.ErrRecommendationNotFound
}

func (f *fakeRecommendationRepository) FindAll() ([]domain.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Recommendation, 0, len(f.recs))
	for _, rec := range f.recs {
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeRecommendationRepository) FindRandom(limit int) ([]domain.Recommendation, error) {
	all, _ := f.FindAll()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeRecommendationRepository) Filter(filter domain.Filter) ([]domain.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Recommendation, 0, len(f.recs))
	for _, rec := range f.recs {
		if filter.RatingMin != nil && rec.Rating < *filter.RatingMin {
			continue
		}
		if filter.PublicationDate != nil && !rec.PublicationDate.Equal(*filter.PublicationDate) {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeRecommendationRepository) Like(recommendationID, userID string) (*domain.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[recommendationID]
	if !ok {
		return nil, domain.ErrRecommendationNotFound
	}
	rec.LikeCount++
	f.likes = append(f.likes, domain.Like{UserID: userID, RecommendationID: recommendationID})
	copied := *rec
	return &copied, nil
}

func (f *fakeRecommendationRepository) CreateComment(comment *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recs[comment.RecommendationID]; !ok {
		return domain.ErrRecommendationNotFound
	}
	return nil
}

func (f *fakeRecommendationRepository) CountLikes(recommendationID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, l := range f.likes {
		if l.RecommendationID == recommendationID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRecommendationRepository) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.recs)), nil
}

// The handler registers its Prometheus collectors on the default
// registry, so the test router is built exactly once per package.
var (
	setupOnce  sync.Once
	testRepo   *fakeRecommendationRepository
	testRouter *mux.Router
)

func setup() (*mux.Router, *fakeRecommendationRepository) {
	setupOnce.Do(func() {
		testRepo = &fakeRecommendationRepository{recs: make(map[string]*domain.Recommendation)}
		testRouter = mux.NewRouter()
		NewRecommendationHandler(testRepo).RegisterRoutes(testRouter)
	})
	return testRouter, testRepo
}

func bearerHeader(t *testing.T, userID string) map[string]string {
	t.Helper()
	tokens, err := auth.GenerateTokenPair(userID, "tester")
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tokens.AccessToken}
}

func doJSON(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router, _ := setup()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRoutesRequireBearer(t *testing.T) {
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/recommendations"},
		{http.MethodPost, "/api/recommendations"},
		{http.MethodGet, "/api/recommendations/filter"},
		{http.MethodPatch, "/api/recommendations/like"},
		{http.MethodPost, "/api/comments"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			resp := doJSON(t, p.method, p.path, nil, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.Code)
		})
	}
}

func TestSubmitAndList(t *testing.T) {
	headers := bearerHeader(t, uuid.NewString())

	resp := doJSON(t, http.MethodPost, "/api/recommendations", map[string]any{
		"bookname":            "Dune",
		"recommendation_text": "Sandworms and spice",
		"rating":              9.5,
	}, headers)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Dune", created["bookname"])
	assert.EqualValues(t, 0, created["like_count"])
	assert.Equal(t, domain.Today().Format("2006-01-02"), created["publication_date"])

	resp = doJSON(t, http.MethodGet, "/api/recommendations", nil, headers)
	require.Equal(t, http.StatusOK, resp.Code)

	var listed []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.NotEmpty(t, listed)
}

func TestSubmit_RatingOutOfRange(t *testing.T) {
	headers := bearerHeader(t, uuid.NewString())

	resp := doJSON(t, http.MethodPost, "/api/recommendations", map[string]any{
		"bookname":            "Dune",
		"recommendation_text": "x",
		"rating":              10.5,
	}, headers)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLike(t *testing.T) {
	_, repo := setup()
	rec := &domain.Recommendation{UserID: uuid.NewString(), Bookname: "Hyperion", RecommendationText: "x", Rating: 8}
	require.NoError(t, repo.Create(rec))

	headers := bearerHeader(t, uuid.NewString())

	resp := doJSON(t, http.MethodPatch, "/api/recommendations/like", map[string]string{
		"recommendation": rec.ID,
	}, headers)
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	liked := body["recommendation"].(map[string]any)
	assert.EqualValues(t, 1, liked["like_count"])
}

func TestLike_UnknownRecommendation(t *testing.T) {
	headers := bearerHeader(t, uuid.NewString())

	resp := doJSON(t, http.MethodPatch, "/api/recommendations/like", map[string]string{
		"recommendation": uuid.NewString(),
	}, headers)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestComment(t *testing.T) {
	_, repo := setup()
	rec := &domain.Recommendation{UserID: uuid.NewString(), Bookname: "Foundation", RecommendationText: "x", Rating: 7}
	require.NoError(t, repo.Create(rec))

	headers := bearerHeader(t, uuid.NewString())

	resp := doJSON(t, http.MethodPost, "/api/comments", map[string]string{
		"recommendation": rec.ID,
		"comment_text":   "Read it twice",
	}, headers)
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, http.MethodPost, "/api/comments", map[string]string{
		"recommendation": uuid.NewString(),
		"comment_text":   "orphan",
	}, headers)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestFilter(t *testing.T) {
	_, repo := setup()
	require.NoError(t, repo.Create(&domain.Recommendation{
		UserID: uuid.NewString(), Bookname: "Solaris", RecommendationText: "x", Rating: 9,
	}))

	headers := bearerHeader(t, uuid.NewString())

	resp := doJSON(t, http.MethodGet, "/api/recommendations/filter?rating=5&sort_by=rating", nil, headers)
	require.Equal(t, http.StatusOK, resp.Code)

	var listed []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	for _, item := range listed {
		assert.GreaterOrEqual(t, item["rating"].(float64), 5.0)
	}

	resp = doJSON(t, http.MethodGet, "/api/recommendations/filter?sort_by=likes", nil, headers)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doJSON(t, http.MethodGet, "/api/recommendations/filter?publication_date=08-01-2026", nil, headers)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
