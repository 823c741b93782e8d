package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRecommendationNotFound = errors.New("recommendation not found")

// Today returns the current calendar date at UTC midnight. Publication
// dates are date-only values; deriving them here keeps every writer on
// the same day boundary regardless of the server's local zone.
func Today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Recommendation is a user-authored book review with a like counter
type Recommendation struct {
	ID                 string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID             string    `json:"user_id" gorm:"type:uuid;index;not null"`
	Bookname           string    `json:"bookname" gorm:"not null"`
	RecommendationText string    `json:"recommendation_text" gorm:"not null"`
	Rating             float64   `json:"rating" gorm:"not null"`
	PublicationDate    time.Time `json:"publication_date" gorm:"type:date;not null"`
	LikeCount          int       `json:"like_count" gorm:"not null;default:0"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Likes    []Like    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Recommendation) TableName() string {
	return "recommendations"
}

// BeforeCreate assigns a UUID primary key and defaults the publication date
func (rec *Recommendation) BeforeCreate(tx *gorm.DB) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.PublicationDate.IsZero() {
		rec.PublicationDate = Today()
	}
	return nil
}

// Like attributes a like to the user who gave it. The counter on
// Recommendation stays the source of truth for totals; Like rows do not
// deduplicate repeat likes by the same user.
type Like struct {
	ID               string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           string    `json:"user_id" gorm:"type:uuid;index;not null"`
	RecommendationID string    `json:"recommendation_id" gorm:"type:uuid;index;not null"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Like) TableName() string {
	return "likes"
}

// BeforeCreate assigns a UUID primary key
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Comment is an append-only remark on a recommendation
type Comment struct {
	ID               string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           string    `json:"user_id" gorm:"type:uuid;index;not null"`
	RecommendationID string    `json:"recommendation_id" gorm:"type:uuid;index;not null"`
	CommentText      string    `json:"comment_text" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate assigns a UUID primary key
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Book is a catalog entry populated ad hoc, independent of any
// recommendation lifecycle.
type Book struct {
	ID          string  `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string  `json:"title" gorm:"not null"`
	Author      string  `json:"author" gorm:"not null"`
	Description string  `json:"description"`
	CoverImage  string  `json:"cover_image"`
	Rating      float64 `json:"rating"`
}

// TableName specifies the table name
func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns a UUID primary key
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Sort keys accepted by Filter
const (
	SortByRating          = "rating"
	SortByPublicationDate = "publication_date"
)

// Filter narrows and orders recommendation listings. All fields are
// optional and compose with AND semantics; a nil SortBy leaves the
// result unordered.
type Filter struct {
	RatingMin       *float64
	PublicationDate *time.Time
	SortBy          string
}

// RecommendationRepository defines the contract for recommendation data access
type RecommendationRepository interface {
	Create(rec *Recommendation) error
	FindByID(id string) (*Recommendation, error)
	FindAll() ([]Recommendation, error)
	// FindRandom returns up to limit records as a uniform random
	// subset without replacement.
	FindRandom(limit int) ([]Recommendation, error)
	Filter(f Filter) ([]Recommendation, error)
	// Like atomically increments the like counter and records the
	// attributing Like row in one transaction, returning the updated
	// recommendation.
	Like(recommendationID, userID string) (*Recommendation, error)
	CreateComment(comment *Comment) error
	CountLikes(recommendationID string) (int64, error)
	Count() (int64, error)
}
