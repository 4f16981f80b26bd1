package storage

import (
	"context"

	"mobility-mate/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommunityStore covers the users and reports collections.
type CommunityStore interface {
	AddUser(ctx context.Context, user model.User) error
	ListUsers(ctx context.Context) ([]model.User, error)
	FindUser(ctx context.Context, username string) (*model.User, error)
	AddReport(ctx context.Context, report model.Report) error
}

type MongoCommunityStore struct {
	users   *mongo.Collection
	reports *mongo.Collection
}

func NewMongoCommunityStore(db *mongo.Database) *MongoCommunityStore {
	return &MongoCommunityStore{
		users:   db.Collection("users"),
		reports: db.Collection("reports-victoria"),
	}
}

func (s *MongoCommunityStore) AddUser(ctx context.Context, user model.User) error {
	_, err := s.users.InsertOne(ctx, user)
	return err
}

func (s *MongoCommunityStore) ListUsers(ctx context.Context) ([]model.User, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0})
	cursor, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoCommunityStore) FindUser(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoCommunityStore) AddReport(ctx context.Context, report model.Report) error {
	_, err := s.reports.InsertOne(ctx, report)
	return err
}
