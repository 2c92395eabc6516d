package models

import "time"

type Contact struct {
	ID        string    `bson:"_id" json:"id"`
	Type      string    `bson:"type" json:"type"` // phone, email, address...
	Label     string    `bson:"label" json:"label"`
	Value     string    `bson:"value" json:"value"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
	Order     int       `bson:"order" json:"order"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
