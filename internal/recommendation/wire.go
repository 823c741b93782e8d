//go:build wireinject
// +build wireinject

package recommendation

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/bookbank/internal/recommendation/delivery/http"
	"github.com/tair/bookbank/internal/recommendation/domain"
	"github.com/tair/bookbank/internal/recommendation/repository"
)

// ProvideRecommendationRepository provides the recommendation repository
func ProvideRecommendationRepository(db *gorm.DB) domain.RecommendationRepository {
	return repository.NewGormRecommendationRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideRecommendationRepository,
)

// InitializeHTTPHandler initializes the recommendation HTTP handler
func InitializeHTTPHandler(db *gorm.DB) (*http.RecommendationHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewRecommendationHandler,
	)
	return nil, nil
}
