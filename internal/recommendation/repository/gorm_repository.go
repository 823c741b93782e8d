package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/bookbank/internal/recommendation/domain"
)

// GormRecommendationRepository implements RecommendationRepository using GORM
type GormRecommendationRepository struct {
	db *gorm.DB
}

// NewGormRecommendationRepository creates a new GORM recommendation repository
func NewGormRecommendationRepository(db *gorm.DB) *GormRecommendationRepository {
	return &GormRecommendationRepository{db: db}
}

// Create inserts a new recommendation
func (r *GormRecommendationRepository) Create(rec *domain.Recommendation) error {
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create recommendation: %w", err)
	}
	return nil
}

// FindByID retrieves a recommendation by ID
func (r *GormRecommendationRepository) FindByID(id string) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	if err := r.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecommendationNotFound
		}
		return nil, fmt.Errorf("failed to find recommendation: %w", err)
	}
	return &rec, nil
}

// FindAll retrieves all recommendations as stored, no defined order
func (r *GormRecommendationRepository) FindAll() ([]domain.Recommendation, error) {
	var recs []domain.Recommendation
	if err := r.db.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}
	return recs, nil
}

// FindRandom retrieves up to limit recommendations in random order
func (r *GormRecommendationRepository) FindRandom(limit int) ([]domain.Recommendation, error) {
	var recs []domain.Recommendation
	if err := r.db.Order("RANDOM()").Limit(limit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to sample recommendations: %w", err)
	}
	return recs, nil
}

// Filter retrieves recommendations matching all given criteria
func (r *GormRecommendationRepository) Filter(f domain.Filter) ([]domain.Recommendation, error) {
	query := r.db.Model(&domain.Recommendation{})

	if f.RatingMin != nil {
		query = query.Where("rating >= ?", *f.RatingMin)
	}
	if f.PublicationDate != nil {
		query = query.Where("publication_date = ?", f.PublicationDate.Format("2006-01-02"))
	}
	switch f.SortBy {
	case domain.SortByRating:
		query = query.Order("rating ASC")
	case domain.SortByPublicationDate:
		query = query.Order("publication_date ASC")
	}

	var recs []domain.Recommendation
	if err := query.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to filter recommendations: %w", err)
	}
	return recs, nil
}

// Like increments the like counter with an atomic SQL expression so
// concurrent likes never lose updates, and records the attributing Like
// row in the same transaction.
func (r *GormRecommendationRepository) Like(recommendationID, userID string) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Recommendation{}).
			Where("id = ?", recommendationID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
		if result.Error != nil {
			return fmt.Errorf("failed to increment like count: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrRecommendationNotFound
		}

		like := domain.Like{UserID: userID, RecommendationID: recommendationID}
		if err := tx.Create(&like).Error; err != nil {
			return fmt.Errorf("failed to record like: %w", err)
		}

		return tx.First(&rec, "id = ?", recommendationID).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateComment appends a comment after verifying the recommendation exists
func (r *GormRecommendationRepository) CreateComment(comment *domain.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Recommendation{}).
			Where("id = ?", comment.RecommendationID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check recommendation: %w", err)
		}
		if count == 0 {
			return domain.ErrRecommendationNotFound
		}
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return nil
	})
}

// CountLikes returns the number of Like rows attributed to a recommendation
func (r *GormRecommendationRepository) CountLikes(recommendationID string) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Like{}).
		Where("recommendation_id = ?", recommendationID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// Count returns the total number of recommendations
func (r *GormRecommendationRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Recommendation{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recommendations: %w", err)
	}
	return count, nil
}

// AutoMigrate runs database migrations for the recommendation tables
func (r *GormRecommendationRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Book{},
		&domain.Recommendation{},
		&domain.Like{},
		&domain.Comment{},
	)
}
