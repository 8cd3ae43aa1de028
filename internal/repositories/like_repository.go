package repositories

import (
	"context"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID, postID uuid.UUID) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts the like unless the (user, post) pair already exists, in
// which case it returns ErrConflict. Concurrent duplicates are settled by the
// unique index, so exactly one caller succeeds.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	res := r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(like)
	if res.Error != nil {
		return translateError(res.Error, "create like")
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrDuplicatedKey, "create like")
	}
	return nil
}

// DeleteLike returns ErrNotFound when there is nothing to delete.
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, userID, postID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return translateError(res.Error, "delete like")
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "delete like")
	}
	return nil
}
