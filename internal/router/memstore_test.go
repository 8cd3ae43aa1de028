package router

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// memStore implements every repository in memory with the same sentinel
// errors as the Postgres repositories.
type memStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]models.User
	posts         map[uuid.UUID]models.Post
	comments      []models.Comment
	likes         []models.Like
	follows       []models.Follow
	notifications []models.Notification
	failWith      error
}

func newMemStore() *memStore {
	return &memStore{
		users: map[uuid.UUID]models.User{},
		posts: map[uuid.UUID]models.Post{},
	}
}

func (s *memStore) fail() error {
	if s.failWith != nil {
		return errors.Wrap(s.failWith, "memstore")
	}
	return nil
}

func (s *memStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email || u.ID == user.ID {
			return errors.Wrap(repositories.ErrConflict, "create user")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, errors.Wrap(repositories.ErrNotFound, "get user")
	}
	return &u, nil
}

func (s *memStore) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.ID]
	if !ok {
		return errors.Wrap(repositories.ErrNotFound, "update user")
	}
	for _, u := range s.users {
		if u.ID != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return errors.Wrap(repositories.ErrConflict, "update user")
		}
	}
	user.CreatedAt = existing.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) SearchUsers(_ context.Context, query string, limit int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if strings.Contains(u.Username, query) || (u.Bio != nil && strings.Contains(*u.Bio, query)) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) CreatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[post.AuthorID]; !ok {
		return errors.Wrap(repositories.ErrInvalidReference, "create post")
	}
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	if post.Timestamp.IsZero() {
		post.Timestamp = time.Now().UTC()
	}
	s.posts[post.ID] = *post
	return nil
}

// hydrate fills the associations the Postgres repository preloads. Callers
// hold the lock.
func (s *memStore) hydrate(p models.Post) models.Post {
	p.Author = s.users[p.AuthorID]
	p.Comments = nil
	for _, c := range s.comments {
		if c.PostID == p.ID {
			c.Author = s.users[c.AuthorID]
			p.Comments = append(p.Comments, c)
		}
	}
	p.Likes = nil
	for _, l := range s.likes {
		if l.PostID == p.ID {
			p.Likes = append(p.Likes, l)
		}
	}
	return p
}

func (s *memStore) GetPostByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, errors.Wrap(repositories.ErrNotFound, "get post")
	}
	p = s.hydrate(p)
	return &p, nil
}

func (s *memStore) GetPostAuthorID(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return uuid.Nil, errors.Wrap(repositories.ErrNotFound, "get post author")
	}
	return p.AuthorID, nil
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func (s *memStore) sortedPosts(keep func(models.Post) bool) []models.Post {
	var out []models.Post
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, s.hydrate(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}

func (s *memStore) ListPosts(_ context.Context, filter repositories.PostFilter) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	out := s.sortedPosts(func(p models.Post) bool {
		if len(filter.AuthorIn) > 0 && !contains(filter.AuthorIn, p.AuthorID) {
			return false
		}
		return !contains(filter.AuthorNotIn, p.AuthorID)
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []models.Post{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *memStore) SearchPosts(_ context.Context, query string, limit int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.sortedPosts(func(p models.Post) bool {
		author := strings.ToLower(s.users[p.AuthorID].Username)
		return strings.Contains(p.Content, query) || strings.Contains(author, strings.ToLower(query))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	author, ok := s.users[comment.AuthorID]
	if _, postOK := s.posts[comment.PostID]; !ok || !postOK {
		return errors.Wrap(repositories.ErrInvalidReference, "create comment")
	}
	comment.ID = uuid.New()
	comment.Timestamp = time.Now().UTC()
	s.comments = append(s.comments, *comment)
	comment.Author = author
	return nil
}

func (s *memStore) CreateLike(_ context.Context, like *models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, userOK := s.users[like.UserID]
	_, postOK := s.posts[like.PostID]
	if !userOK || !postOK {
		return errors.Wrap(repositories.ErrInvalidReference, "create like")
	}
	for _, l := range s.likes {
		if l.UserID == like.UserID && l.PostID == like.PostID {
			return errors.Wrap(repositories.ErrConflict, "create like")
		}
	}
	like.ID = uuid.New()
	like.CreatedAt = time.Now().UTC()
	s.likes = append(s.likes, *like)
	return nil
}

func (s *memStore) DeleteLike(_ context.Context, userID, postID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.likes {
		if l.UserID == userID && l.PostID == postID {
			s.likes = append(s.likes[:i], s.likes[i+1:]...)
			return nil
		}
	}
	return errors.Wrap(repositories.ErrNotFound, "delete like")
}

func (s *memStore) CreateFollow(_ context.Context, follow *models.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, a := s.users[follow.FollowerID]
	_, b := s.users[follow.FollowingID]
	if !a || !b {
		return errors.Wrap(repositories.ErrInvalidReference, "create follow")
	}
	for _, f := range s.follows {
		if f.FollowerID == follow.FollowerID && f.FollowingID == follow.FollowingID {
			return errors.Wrap(repositories.ErrConflict, "create follow")
		}
	}
	follow.ID = uuid.New()
	follow.Timestamp = time.Now().UTC()
	s.follows = append(s.follows, *follow)
	return nil
}

func (s *memStore) DeleteFollow(_ context.Context, followerID, followingID uuid.UUID) (*models.Follow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			s.follows = append(s.follows[:i], s.follows[i+1:]...)
			return &f, nil
		}
	}
	return nil, errors.Wrap(repositories.ErrNotFound, "delete follow")
}

func (s *memStore) IsFollowing(_ context.Context, followerID, followingID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) GetFollowers(_ context.Context, userID uuid.UUID) ([]models.Follow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Follow
	for _, f := range s.follows {
		if f.FollowingID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *memStore) GetFollowing(_ context.Context, userID uuid.UUID) ([]models.Follow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Follow
	for _, f := range s.follows {
		if f.FollowerID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *memStore) GetFollowingIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uuid.UUID
	for _, f := range s.follows {
		if f.FollowerID == userID {
			out = append(out, f.FollowingID)
		}
	}
	return out, nil
}

func (s *memStore) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = uuid.New()
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *memStore) GetUnread(_ context.Context, userID uuid.UUID) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			n.CreatedBy = s.users[n.CreatedByID]
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (s *memStore) MarkAsRead(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].IsRead = true
			return nil
		}
	}
	return errors.Wrap(repositories.ErrNotFound, "mark notification read")
}

func (s *memStore) notificationsFor(userID uuid.UUID) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (s *memStore) likeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.likes)
}
