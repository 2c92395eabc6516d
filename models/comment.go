package models

import "time"

type Comment struct {
	ID          string    `bson:"_id" json:"id"`
	Content     string    `bson:"content" json:"content"`
	AuthorName  string    `bson:"author_name" json:"author_name"`
	AuthorEmail *string   `bson:"author_email" json:"author_email"`
	NewsID      string    `bson:"news_id" json:"news_id"`
	IsApproved  bool      `bson:"is_approved" json:"is_approved"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
