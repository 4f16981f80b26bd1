package storage

import (
	"context"

	"mobility-mate/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VoteStore is the boundary for the votes collection. Uniqueness of
// (device_id, image_url) is enforced by the collection's unique index, not
// by a check-then-act sequence; InsertVote reports a conflict through
// DuplicateKeyError.
type VoteStore interface {
	InsertVote(ctx context.Context, vote model.Vote) error
	CountImageVotes(ctx context.Context, imageURL string, isAccurate bool) (int64, error)
	CountDeviceVotes(ctx context.Context, deviceID string) (int64, error)
	ListDeviceVotes(ctx context.Context, deviceID string) ([]model.DeviceVote, error)
	ListVotes(ctx context.Context) ([]model.Vote, error)
}

// DuplicateKeyError reports a unique-index conflict on insert.
type DuplicateKeyError struct {
	Err error
}

func (e *DuplicateKeyError) Error() string { return "duplicate key: " + e.Err.Error() }
func (e *DuplicateKeyError) Unwrap() error { return e.Err }

type MongoVoteStore struct {
	collection *mongo.Collection
}

// NewMongoVoteStore binds the votes collection and ensures the unique
// (device_id, image_url) index exists.
func NewMongoVoteStore(ctx context.Context, db *mongo.Database) (*MongoVoteStore, error) {
	collection := db.Collection("votes")

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "device_id", Value: 1}, {Key: "image_url", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	return &MongoVoteStore{collection: collection}, nil
}

func (s *MongoVoteStore) InsertVote(ctx context.Context, vote model.Vote) error {
	_, err := s.collection.InsertOne(ctx, vote)
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{Err: err}
	}
	return err
}

func (s *MongoVoteStore) CountImageVotes(ctx context.Context, imageURL string, isAccurate bool) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{"image_url": imageURL, "is_accurate": isAccurate})
}

func (s *MongoVoteStore) CountDeviceVotes(ctx context.Context, deviceID string) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{"device_id": deviceID})
}

func (s *MongoVoteStore) ListDeviceVotes(ctx context.Context, deviceID string) ([]model.DeviceVote, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, "image_url": 1, "is_accurate": 1, "created_at": 1})
	cursor, err := s.collection.Find(ctx, bson.M{"device_id": deviceID}, opts)
	if err != nil {
		return nil, err
	}
	var votes []model.DeviceVote
	if err := cursor.All(ctx, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

func (s *MongoVoteStore) ListVotes(ctx context.Context) ([]model.Vote, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var votes []model.Vote
	if err := cursor.All(ctx, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}
