package models

import "time"

type ScheduleEvent struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description *string   `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
	Time        string    `bson:"time" json:"time"`
	Location    *string   `bson:"location" json:"location"`
	IsActive    bool      `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
