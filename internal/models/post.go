package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is immutable once created; it only goes away with its author.
type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Content   string    `json:"content" gorm:"not null"`
	ImageURL  *string   `json:"imageUrl"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
	AuthorID  uuid.UUID `json:"authorId" gorm:"type:uuid;not null;index"`

	Author   User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Likes    []Like    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	return nil
}

// PostView is a post with its author summary, its comments oldest first and
// the ids of the users who liked it.
type PostView struct {
	ID        uuid.UUID     `json:"id"`
	Content   string        `json:"content"`
	ImageURL  *string       `json:"imageUrl"`
	Timestamp time.Time     `json:"timestamp"`
	AuthorID  uuid.UUID     `json:"authorId"`
	Author    UserCompact   `json:"author"`
	Comments  []CommentView `json:"comments"`
	Likes     []uuid.UUID   `json:"likes"`
}

// ToView expects Author, Comments.Author and Likes to be preloaded.
func (p *Post) ToView() PostView {
	view := PostView{
		ID:        p.ID,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Timestamp: p.Timestamp,
		AuthorID:  p.AuthorID,
		Author:    p.Author.ToCompact(),
		Comments:  make([]CommentView, len(p.Comments)),
		Likes:     make([]uuid.UUID, len(p.Likes)),
	}
	for i := range p.Comments {
		view.Comments[i] = p.Comments[i].ToView()
	}
	for i, l := range p.Likes {
		view.Likes[i] = l.UserID
	}
	return view
}

func ToPostViews(posts []Post) []PostView {
	views := make([]PostView, len(posts))
	for i := range posts {
		views[i] = posts[i].ToView()
	}
	return views
}

type CreatePostRequest struct {
	AuthorID uuid.UUID `json:"authorId" validate:"required"`
	BodyText string    `json:"bodyText" validate:"required"`
	Image    *string   `json:"image" validate:"omitempty,max=2048"`
}
