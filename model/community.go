package model

import "time"

// User is a community profile document in the users collection.
type User struct {
	Username string `bson:"username" json:"username"`
	DeviceID string `bson:"device_id,omitempty" json:"device_id,omitempty"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
}

// Report is a free-form issue report; the service stamps Timestamp at insert.
type Report struct {
	DeviceID    string         `bson:"device_id,omitempty" json:"device_id,omitempty"`
	LocationID  string         `bson:"location_id,omitempty" json:"location_id,omitempty"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Details     map[string]any `bson:"details,omitempty" json:"details,omitempty"`
	Timestamp   time.Time      `bson:"timestamp" json:"timestamp"`
}
