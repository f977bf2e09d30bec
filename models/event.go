package models

import "time"

// Event is a read-only listing from the static event directory
type Event struct {
	Title       string    `bson:"title" json:"title"`
	Date        time.Time `bson:"date" json:"date"`
	Time        string    `bson:"time,omitempty" json:"time,omitempty"`
	Venue       string    `bson:"venue,omitempty" json:"venue,omitempty"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
}
