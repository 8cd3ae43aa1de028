// Package feed builds the post listing behind GET /posts/get.
//
// A personalised feed has two tiers: posts by authors the viewer follows,
// then posts by everyone else except the viewer. Each tier is newest first
// (id descending on ties) and the tiers are never interleaved, so an older
// followed post always ranks above a newer unfollowed one.
package feed

import (
	"context"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/anonto42/nexa/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type PostLister interface {
	ListPosts(ctx context.Context, filter repositories.PostFilter) ([]models.Post, error)
}

type FollowingLister interface {
	GetFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type Assembler struct {
	posts   PostLister
	follows FollowingLister
}

func NewAssembler(posts PostLister, follows FollowingLister) *Assembler {
	return &Assembler{posts: posts, follows: follows}
}

// Assemble returns the feed for viewer windowed by page. uuid.Nil means an
// anonymous viewer, whose feed is every post with the window pushed down to
// the database.
func (a *Assembler) Assemble(ctx context.Context, viewer uuid.UUID, page Page) ([]models.Post, error) {
	if viewer == uuid.Nil {
		filter := repositories.PostFilter{}
		if page.Valid {
			filter.Offset, filter.Limit = page.Skip, page.Limit
		}
		posts, err := a.posts.ListPosts(ctx, filter)
		if err != nil {
			return nil, errors.Wrap(err, "list all posts")
		}
		return posts, nil
	}

	followingIDs, err := a.follows.GetFollowingIDs(ctx, viewer)
	if err != nil {
		return nil, errors.Wrap(err, "load followees")
	}

	var followed []models.Post
	if len(followingIDs) > 0 {
		followed, err = a.posts.ListPosts(ctx, repositories.PostFilter{AuthorIn: followingIDs})
		if err != nil {
			return nil, errors.Wrap(err, "list followed posts")
		}
	}

	excluded := make([]uuid.UUID, 0, len(followingIDs)+1)
	excluded = append(excluded, followingIDs...)
	excluded = append(excluded, viewer)
	others, err := a.posts.ListPosts(ctx, repositories.PostFilter{AuthorNotIn: excluded})
	if err != nil {
		return nil, errors.Wrap(err, "list other posts")
	}

	all := make([]models.Post, 0, len(followed)+len(others))
	all = append(all, followed...)
	all = append(all, others...)
	return Apply(page, all), nil
}
