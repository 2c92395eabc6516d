package models

import "time"

type NewsStatus string

const (
	NewsStatusDraft     NewsStatus = "draft"
	NewsStatusPublished NewsStatus = "published"
	NewsStatusArchived  NewsStatus = "archived"
)

func (s NewsStatus) Valid() bool {
	switch s {
	case NewsStatusDraft, NewsStatusPublished, NewsStatusArchived:
		return true
	}
	return false
}

type News struct {
	ID          string     `bson:"_id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Content     string     `bson:"content" json:"content"`
	Excerpt     *string    `bson:"excerpt" json:"excerpt"`
	Image       *string    `bson:"image" json:"image"` // base64 encoded
	Status      NewsStatus `bson:"status" json:"status"`
	AuthorID    string     `bson:"author_id" json:"author_id"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	PublishedAt *time.Time `bson:"published_at" json:"published_at"`
}
