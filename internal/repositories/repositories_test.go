package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	u := models.User{Username: name, Email: name + "@example.com"}
	require.NoError(t, NewPostgresUserRepository(db).CreateUser(context.Background(), &u))
	return u
}

func seedPost(t *testing.T, db *gorm.DB, author models.User, content string, ts time.Time) models.Post {
	t.Helper()
	p := models.Post{AuthorID: author.ID, Content: content, Timestamp: ts}
	require.NoError(t, NewPostgresPostRepository(db).CreatePost(context.Background(), &p))
	return p
}

func contents(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Content
	}
	return out
}

func TestUserRepository(t *testing.T) {
	db := createTempDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	bio := "writes go"
	ana := models.User{Username: "ana", Email: "ana@example.com", Bio: &bio}
	require.NoError(t, repo.CreateUser(ctx, &ana))
	assert.NotEqual(t, uuid.Nil, ana.ID)

	dup := models.User{Username: "ana", Email: "other@example.com"}
	assert.True(t, errors.Is(repo.CreateUser(ctx, &dup), ErrConflict))

	got, err := repo.GetUserByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)

	_, err = repo.GetUserByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))

	ana.Username = "ana2"
	require.NoError(t, repo.UpdateUser(ctx, &ana))
	got, err = repo.GetUserByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana2", got.Username)

	missing := models.User{ID: uuid.New(), Username: "x", Email: "x@example.com"}
	assert.True(t, errors.Is(repo.UpdateUser(ctx, &missing), ErrNotFound))

	seedUser(t, db, "bo")
	found, err := repo.SearchUsers(ctx, "go", 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ana.ID, found[0].ID)
}

func TestListPostsOrdering(t *testing.T) {
	db := createTempDB(t)
	repo := NewPostgresPostRepository(db)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	bo := seedUser(t, db, "bo")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, db, ana, "a-old", base)
	seedPost(t, db, bo, "b-new", base.Add(2*time.Hour))
	seedPost(t, db, ana, "a-mid", base.Add(time.Hour))

	posts, err := repo.ListPosts(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b-new", "a-mid", "a-old"}, contents(posts))
	assert.Equal(t, "bo", posts[0].Author.Username)

	posts, err = repo.ListPosts(ctx, PostFilter{AuthorIn: []uuid.UUID{ana.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a-mid", "a-old"}, contents(posts))

	posts, err = repo.ListPosts(ctx, PostFilter{AuthorNotIn: []uuid.UUID{ana.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b-new"}, contents(posts))

	posts, err = repo.ListPosts(ctx, PostFilter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a-mid"}, contents(posts))

	posts, err = repo.ListPosts(ctx, PostFilter{Offset: 10, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestListPostsTieBreak(t *testing.T) {
	db := createTempDB(t)
	repo := NewPostgresPostRepository(db)
	ana := seedUser(t, db, "ana")
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	low := models.Post{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), AuthorID: ana.ID, Content: "low", Timestamp: ts}
	high := models.Post{ID: uuid.MustParse("ffffffff-0000-0000-0000-000000000001"), AuthorID: ana.ID, Content: "high", Timestamp: ts}
	require.NoError(t, repo.CreatePost(context.Background(), &low))
	require.NoError(t, repo.CreatePost(context.Background(), &high))

	posts, err := repo.ListPosts(context.Background(), PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low"}, contents(posts))
}

func TestPostDetails(t *testing.T) {
	db := createTempDB(t)
	posts := NewPostgresPostRepository(db)
	comments := NewPostgresCommentRepository(db)
	likes := NewPostgresLikeRepository(db)
	ctx := context.Background()

	ana := seedUser(t, db, "ana")
	bo := seedUser(t, db, "bo")
	post := seedPost(t, db, ana, "hello", time.Now())
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	first := models.Comment{PostID: post.ID, AuthorID: bo.ID, Content: "first", Timestamp: base}
	require.NoError(t, comments.CreateComment(ctx, &first))
	assert.Equal(t, "bo", first.Author.Username)
	second := models.Comment{PostID: post.ID, AuthorID: ana.ID, Content: "second", Timestamp: base.Add(time.Minute)}
	require.NoError(t, comments.CreateComment(ctx, &second))
	require.NoError(t, likes.CreateLike(ctx, &models.Like{UserID: bo.ID, PostID: post.ID}))

	got, err := posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "first", got.Comments[0].Content)
	assert.Equal(t, "bo", got.Comments[0].Author.Username)
	require.Len(t, got.Likes, 1)
	assert.Equal(t, bo.ID, got.Likes[0].UserID)

	authorID, err := posts.GetPostAuthorID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, authorID)

	_, err = posts.GetPostByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))

	bad := models.Comment{PostID: uuid.New(), AuthorID: bo.ID, Content: "orphan"}
	assert.True(t, errors.Is(comments.CreateComment(ctx, &bad), ErrInvalidReference))
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	db := createTempDB(t)
	p := models.Post{AuthorID: uuid.New(), Content: "x"}
	err := NewPostgresPostRepository(db).CreatePost(context.Background(), &p)
	assert.True(t, errors.Is(err, ErrInvalidReference))
}

func TestSearchPosts(t *testing.T) {
	db := createTempDB(t)
	repo := NewPostgresPostRepository(db)
	ana := seedUser(t, db, "Ana")
	bo := seedUser(t, db, "bo")
	seedPost(t, db, ana, "100% go", time.Now())
	seedPost(t, db, bo, "1000 go", time.Now())

	posts, err := repo.SearchPosts(context.Background(), "0%", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"100% go"}, contents(posts))

	posts, err = repo.SearchPosts(context.Background(), "ana", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"100% go"}, contents(posts))
}

func TestCreateLikeConcurrentDuplicates(t *testing.T) {
	db := createTempDB(t)
	repo := NewPostgresLikeRepository(db)
	ana := seedUser(t, db, "ana")
	bo := seedUser(t, db, "bo")
	post := seedPost(t, db, ana, "hello", time.Now())

	const n = 10
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateLike(context.Background(), &models.Like{UserID: bo.ID, PostID: post.ID})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, ErrConflict), err.Error())
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteLike(t *testing.T) {
	db := createTempDB(t)
	repo := NewPostgresLikeRepository(db)
	ctx := context.Background()
	ana := seedUser(t, db, "ana")
	post := seedPost(t, db, ana, "hello", time.Now())

	assert.True(t, errors.Is(repo.DeleteLike(ctx, ana.ID, post.ID), ErrNotFound))

	require.NoError(t, repo.CreateLike(ctx, &models.Like{UserID: ana.ID, PostID: post.ID}))
	require.NoError(t, repo.DeleteLike(ctx, ana.ID, post.ID))

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	assert.True(t, errors.Is(repo.DeleteLike(ctx, ana.ID, post.ID), ErrNotFound))
}

func TestFollowRepository(t *testing.T) {
	db := createTempDB(t)
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()
	ana := seedUser(t, db, "ana")
	bo := seedUser(t, db, "bo")

	require.NoError(t, repo.CreateFollow(ctx, &models.Follow{FollowerID: ana.ID, FollowingID: bo.ID}))
	err := repo.CreateFollow(ctx, &models.Follow{FollowerID: ana.ID, FollowingID: bo.ID})
	assert.True(t, errors.Is(err, ErrConflict))
	err = repo.CreateFollow(ctx, &models.Follow{FollowerID: ana.ID, FollowingID: uuid.New()})
	assert.True(t, errors.Is(err, ErrInvalidReference))

	ok, err := repo.IsFollowing(ctx, ana.ID, bo.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IsFollowing(ctx, bo.ID, ana.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := repo.GetFollowingIDs(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bo.ID}, ids)

	followers, err := repo.GetFollowers(ctx, bo.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, ana.ID, followers[0].FollowerID)

	following, err := repo.GetFollowing(ctx, bo.ID)
	require.NoError(t, err)
	assert.Empty(t, following)

	deleted, err := repo.DeleteFollow(ctx, ana.ID, bo.ID)
	require.NoError(t, err)
	assert.Equal(t, bo.ID, deleted.FollowingID)

	_, err = repo.DeleteFollow(ctx, ana.ID, bo.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNotificationRepository(t *testing.T) {
	db := createTempDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()
	ana := seedUser(t, db, "ana")
	bo := seedUser(t, db, "bo")

	older := models.Notification{
		Type: models.NotificationFollow, Message: "bo started following you",
		UserID: ana.ID, CreatedByID: bo.ID, Timestamp: time.Now().Add(-time.Hour),
	}
	newer := models.Notification{
		Type: models.NotificationFollow, Message: "bo started following you",
		UserID: ana.ID, CreatedByID: bo.ID,
	}
	require.NoError(t, repo.CreateNotification(ctx, &older))
	require.NoError(t, repo.CreateNotification(ctx, &newer))

	unread, err := repo.GetUnread(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, newer.ID, unread[0].ID)
	assert.Equal(t, "bo", unread[0].CreatedBy.Username)
	assert.False(t, unread[0].IsRead)

	require.NoError(t, repo.MarkAsRead(ctx, newer.ID))
	unread, err = repo.GetUnread(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, older.ID, unread[0].ID)

	assert.True(t, errors.Is(repo.MarkAsRead(ctx, uuid.New()), ErrNotFound))
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil, "op"))
	assert.True(t, errors.Is(translateError(gorm.ErrRecordNotFound, "op"), ErrNotFound))
	assert.True(t, errors.Is(translateError(gorm.ErrDuplicatedKey, "op"), ErrConflict))
	assert.True(t, errors.Is(translateError(gorm.ErrForeignKeyViolated, "op"), ErrInvalidReference))

	other := errors.New("boom")
	err := translateError(other, "list posts")
	assert.True(t, errors.Is(err, other))
	assert.Equal(t, "list posts: boom", err.Error())
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, `%go%`, containsPattern("go"))
	assert.Equal(t, `%100\%\_a\\b%`, containsPattern(`100%_a\b`))
}
