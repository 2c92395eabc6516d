package models

import "time"

// SchoolInfo is one block of a static page section (about, history, mission...).
type SchoolInfo struct {
	ID        string    `bson:"_id" json:"id"`
	Section   string    `bson:"section" json:"section"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Image     *string   `bson:"image" json:"image"`
	Order     int       `bson:"order" json:"order"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
