package repositories

import (
	"context"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, followerID, followingID uuid.UUID) (*models.Follow, error)
	IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	GetFollowers(ctx context.Context, userID uuid.UUID) ([]models.Follow, error)
	GetFollowing(ctx context.Context, userID uuid.UUID) ([]models.Follow, error)
	GetFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow returns ErrConflict if the pair already exists and
// ErrInvalidReference if either user does not.
func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	res := r.db.WithContext(ctx).
		Omit("Follower", "Following").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoNothing: true,
		}).
		Create(follow)
	if res.Error != nil {
		return translateError(res.Error, "create follow")
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrDuplicatedKey, "create follow")
	}
	return nil
}

// DeleteFollow removes the edge and returns the deleted row.
func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followingID uuid.UUID) (*models.Follow, error) {
	var deleted []models.Follow
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&deleted)
	if res.Error != nil {
		return nil, translateError(res.Error, "delete follow")
	}
	if res.RowsAffected == 0 || len(deleted) == 0 {
		return nil, translateError(gorm.ErrRecordNotFound, "delete follow")
	}
	return &deleted[0], nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, translateError(err, "check follow")
	}
	return count > 0, nil
}

// GetFollowers lists the edges pointing at userID, newest first.
func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, userID uuid.UUID) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).
		Where("following_id = ?", userID).
		Order(`"timestamp" DESC`).
		Find(&follows).Error
	if err != nil {
		return nil, translateError(err, "get followers")
	}
	return follows, nil
}

// GetFollowing lists the edges leaving userID, newest first.
func (r *PostgresFollowRepository) GetFollowing(ctx context.Context, userID uuid.UUID) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Order(`"timestamp" DESC`).
		Find(&follows).Error
	if err != nil {
		return nil, translateError(err, "get following")
	}
	return follows, nil
}

func (r *PostgresFollowRepository) GetFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, translateError(err, "get following ids")
	}
	return ids, nil
}
