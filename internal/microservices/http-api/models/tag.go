package models

// Tag slugs are derived from the name and unique across tags.
type Tag struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;not null"`
	Slug string `json:"slug" gorm:"size:100;uniqueIndex;not null"`

	Posts []Post `json:"posts,omitempty" gorm:"many2many:post_tags;"`
}

func (Tag) TableName() string {
	return "tags"
}
