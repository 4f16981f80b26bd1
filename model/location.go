package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is one physical accessibility point. Field names match the
// documents already present in the Victoria collections, so no migration
// is needed.
type Location struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Lat         float64            `bson:"Location_Lat" json:"latitude"`
	Lon         float64            `bson:"Location_Lon" json:"longitude"`
	Category    string             `bson:"Accessibility_Type_Name" json:"accessibility_type"`
	Metadata    map[string]any     `bson:"Metadata,omitempty" json:"metadata,omitempty"`
	Tags        map[string]any     `bson:"Tags,omitempty" json:"tags,omitempty"`
	Submissions []Submission       `bson:"Images,omitempty" json:"images,omitempty"`
}

// Submission is one uploaded image attached to a Location. Timestamps are
// RFC3339 strings; an empty upload time means the client never reported one.
type Submission struct {
	ID         string  `bson:"image_id" json:"image_id"`
	ImageURL   string  `bson:"image_url" json:"image_url"`
	UploadedAt string  `bson:"image_upload_time,omitempty" json:"image_upload_time,omitempty"`
	Approved   bool    `bson:"approved_status" json:"approved_status"`
	ApprovedAt *string `bson:"image_approved_time" json:"image_approved_time"`
	DeviceID   string  `bson:"device_id,omitempty" json:"device_id,omitempty"`
	Username   string  `bson:"username,omitempty" json:"username,omitempty"`
}

// DisplayName resolves a human-readable name for the location, preferring
// Metadata over Tags.
func (l *Location) DisplayName() string {
	if name, ok := l.Metadata["name"].(string); ok && name != "" {
		return name
	}
	if name, ok := l.Tags["name"].(string); ok && name != "" {
		return name
	}
	return "Unknown Location"
}
