package repositories

import (
	"context"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser returns ErrConflict when the username or email is taken.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error, "create user")
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "get user")
	}
	return &user, nil
}

// UpdateUser overwrites the profile fields of an existing user and reloads
// it into user.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Select("username", "email", "bio", "avatar", "location").
		Updates(user)
	if res.Error != nil {
		return translateError(res.Error, "update user")
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "update user")
	}
	return translateError(r.db.WithContext(ctx).First(user, "id = ?", user.ID).Error, "reload user")
}

// SearchUsers matches the query against username or bio.
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	var users []models.User
	pattern := containsPattern(query)
	err := r.db.WithContext(ctx).
		Where("username LIKE ? OR bio LIKE ?", pattern, pattern).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, translateError(err, "search users")
	}
	return users, nil
}
