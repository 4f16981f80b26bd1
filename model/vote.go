package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vote is one device's accuracy judgment on one image. At most one vote may
// exist per (device_id, image_url) pair; the votes collection carries a
// unique index on those two fields.
type Vote struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DeviceID   string             `bson:"device_id" json:"device_id"`
	Username   string             `bson:"username,omitempty" json:"username,omitempty"`
	LocationID string             `bson:"location_id" json:"location_id"`
	ImageURL   string             `bson:"image_url" json:"image_url"`
	IsAccurate bool               `bson:"is_accurate" json:"is_accurate"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// VoteTally is the count snapshot returned after a vote is recorded (and
// alongside a duplicate-vote rejection, so the client can resync).
type VoteTally struct {
	AccurateCount   int64 `json:"accurate_count"`
	InaccurateCount int64 `json:"inaccurate_count"`
	DeviceVoteCount int64 `json:"device_vote_count"`
}

// ImageTally is the per-image count pair. A zero tally for an unknown image
// is valid.
type ImageTally struct {
	AccurateCount   int64 `json:"accurate_count"`
	InaccurateCount int64 `json:"inaccurate_count"`
}

// DeviceVote is the projection of a vote returned by the per-device listing.
type DeviceVote struct {
	ImageURL   string    `bson:"image_url" json:"image_url"`
	IsAccurate bool      `bson:"is_accurate" json:"is_accurate"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
