package models

import "time"

type Post struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string    `json:"title" gorm:"size:200;not null"`
	Content       string    `json:"content" gorm:"type:text;not null"`
	PublishedDate time.Time `json:"published_date" gorm:"autoCreateTime;index"`
	AuthorID      string    `json:"author_id" gorm:"type:uuid;not null;index"`

	// associations
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tags     []Tag     `json:"tags,omitempty" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE;"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`

	// CommentCount is the full comment total when Comments holds only the newest page.
	CommentCount *int64 `json:"comment_count,omitempty" gorm:"-"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) OwnerID() string {
	return p.AuthorID
}

// PostTag is the post_tags join row.
type PostTag struct {
	PostID int64 `json:"post_id" gorm:"primaryKey"`
	TagID  int64 `json:"tag_id" gorm:"primaryKey"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
