package models

import "time"

const DefaultGalleryCategory = "general"

type GalleryItem struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description *string   `bson:"description" json:"description"`
	Image       string    `bson:"image" json:"image"` // base64 encoded
	Category    string    `bson:"category" json:"category"`
	IsActive    bool      `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
