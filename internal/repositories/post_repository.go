package repositories

import (
	"context"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostFilter narrows ListPosts. Empty author sets and a zero Limit mean no
// restriction.
type PostFilter struct {
	AuthorIn    []uuid.UUID
	AuthorNotIn []uuid.UUID
	Offset      int
	Limit       int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	GetPostAuthorID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error)
	SearchPosts(ctx context.Context, query string, limit int) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

const newestFirst = `"nexa_post"."timestamp" DESC, "nexa_post"."id" DESC`

// withDetails preloads everything a PostView needs.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order(`"timestamp" ASC, "id" ASC`)
		}).
		Preload("Comments.Author").
		Preload("Likes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order(`"created_at" ASC`)
		})
}

// CreatePost returns ErrInvalidReference when the author does not exist.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return translateError(r.db.WithContext(ctx).Omit("Author").Create(post).Error, "create post")
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := withDetails(r.db.WithContext(ctx)).First(&post, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "get post")
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPostAuthorID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Select("id", "author_id").First(&post, "id = ?", id).Error; err != nil {
		return uuid.Nil, translateError(err, "get post author")
	}
	return post.AuthorID, nil
}

// ListPosts returns posts newest first, ties broken by id descending.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	q := withDetails(r.db.WithContext(ctx)).Model(&models.Post{})
	if len(filter.AuthorIn) > 0 {
		q = q.Where("author_id IN ?", filter.AuthorIn)
	}
	if len(filter.AuthorNotIn) > 0 {
		q = q.Where("author_id NOT IN ?", filter.AuthorNotIn)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var posts []models.Post
	if err := q.Order(newestFirst).Find(&posts).Error; err != nil {
		return nil, translateError(err, "list posts")
	}
	return posts, nil
}

// SearchPosts matches the query against the content or, case-insensitively,
// the author's username.
func (r *PostgresPostRepository) SearchPosts(ctx context.Context, query string, limit int) ([]models.Post, error) {
	var posts []models.Post
	pattern := containsPattern(query)
	err := withDetails(r.db.WithContext(ctx)).
		Joins(`JOIN "nexa_user" ON "nexa_user"."id" = "nexa_post"."author_id"`).
		Where(`"nexa_post"."content" LIKE ? OR "nexa_user"."username" ILIKE ?`, pattern, pattern).
		Order(newestFirst).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, translateError(err, "search posts")
	}
	return posts, nil
}
