package storage

import (
	"context"

	"mobility-mate/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LocationStore is the metadata-store boundary for the per-category
// location collections.
type LocationStore interface {
	// FindLocation resolves a location by exact coordinate match within the
	// given category, accepting singular and plural category spellings.
	// Returns nil without error when no document matches.
	FindLocation(ctx context.Context, category string, lat, lon float64) (*model.Location, error)
	// AppendSubmission pushes a submission onto the location's Images array.
	AppendSubmission(ctx context.Context, collection string, locationID primitive.ObjectID, sub model.Submission) (matched, modified int64, err error)
	// SetApproval updates one submission, addressed by its stable image_id,
	// in a single atomic array-filtered write.
	SetApproval(ctx context.Context, collection string, locationID primitive.ObjectID, submissionID string, approved bool, approvedAt *string) (matched int64, err error)
	// ScanWithSubmissions returns every location in the collection holding
	// at least one submission.
	ScanWithSubmissions(ctx context.Context, collection string) ([]model.Location, error)
	// PendingApprovals returns locations holding at least one unapproved
	// submission.
	PendingApprovals(ctx context.Context, collection string) ([]model.Location, error)
	// SeedPoints returns the elements array of the seed points document.
	SeedPoints(ctx context.Context) ([]any, error)
}

type MongoLocationStore struct {
	db *mongo.Database
}

func NewMongoLocationStore(db *mongo.Database) *MongoLocationStore {
	return &MongoLocationStore{db: db}
}

func (s *MongoLocationStore) FindLocation(ctx context.Context, category string, lat, lon float64) (*model.Location, error) {
	collection, ok := ResolveCategory(category)
	if !ok {
		return nil, nil
	}

	filter := bson.M{
		"Location_Lat":            lat,
		"Location_Lon":            lon,
		"Accessibility_Type_Name": bson.M{"$in": AliasesFor(category)},
	}

	var loc model.Location
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(&loc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (s *MongoLocationStore) AppendSubmission(ctx context.Context, collection string, locationID primitive.ObjectID, sub model.Submission) (int64, int64, error) {
	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": locationID},
		bson.M{"$push": bson.M{"Images": sub}},
	)
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (s *MongoLocationStore) SetApproval(ctx context.Context, collection string, locationID primitive.ObjectID, submissionID string, approved bool, approvedAt *string) (int64, error) {
	update := bson.M{"$set": bson.M{
		"Images.$[img].approved_status":     approved,
		"Images.$[img].image_approved_time": approvedAt,
	}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"img.image_id": submissionID}},
	})

	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": locationID, "Images.image_id": submissionID},
		update, opts,
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *MongoLocationStore) ScanWithSubmissions(ctx context.Context, collection string) ([]model.Location, error) {
	return s.findLocations(ctx, collection, bson.M{"Images.0": bson.M{"$exists": true}})
}

func (s *MongoLocationStore) PendingApprovals(ctx context.Context, collection string) ([]model.Location, error) {
	filter := bson.M{"Images": bson.M{"$elemMatch": bson.M{"approved_status": false}}}
	return s.findLocations(ctx, collection, filter)
}

func (s *MongoLocationStore) findLocations(ctx context.Context, collection string, filter bson.M) ([]model.Location, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var locations []model.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// SeedPoints reads the single seed document out of the points collection and
// returns its elements array, empty when the document is absent.
func (s *MongoLocationStore) SeedPoints(ctx context.Context) ([]any, error) {
	var doc struct {
		Elements []any `bson:"elements"`
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 0, "elements": 1})
	err := s.db.Collection("test-location-db").FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []any{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Elements == nil {
		return []any{}, nil
	}
	return doc.Elements, nil
}
