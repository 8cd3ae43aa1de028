package repositories

import (
	"context"

	"github.com/anonto42/nexa/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment inserts the comment and loads its author. A missing post or
// author yields ErrInvalidReference.
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Author").Create(comment).Error; err != nil {
		return translateError(err, "create comment")
	}
	return translateError(db.Preload("Author").First(comment, "id = ?", comment.ID).Error, "reload comment")
}
