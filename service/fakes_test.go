package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"mobility-mate/model"
	"mobility-mate/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeLocationStore keeps per-collection location slices in memory with the
// same append / array-filtered update semantics the Mongo store relies on.
type fakeLocationStore struct {
	collections map[string][]*model.Location
	seedPoints  []any
	failWith    error
}

func newFakeLocationStore() *fakeLocationStore {
	return &fakeLocationStore{collections: make(map[string][]*model.Location)}
}

func (f *fakeLocationStore) add(collection string, loc *model.Location) *model.Location {
	if loc.ID.IsZero() {
		loc.ID = primitive.NewObjectID()
	}
	f.collections[collection] = append(f.collections[collection], loc)
	return loc
}

func (f *fakeLocationStore) FindLocation(_ context.Context, category string, lat, lon float64) (*model.Location, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	collection, ok := storage.ResolveCategory(category)
	if !ok {
		return nil, nil
	}
	aliases := storage.AliasesFor(category)
	for _, loc := range f.collections[collection] {
		if loc.Lat != lat || loc.Lon != lon {
			continue
		}
		for _, alias := range aliases {
			if loc.Category == alias {
				return loc, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeLocationStore) AppendSubmission(_ context.Context, collection string, locationID primitive.ObjectID, sub model.Submission) (int64, int64, error) {
	if f.failWith != nil {
		return 0, 0, f.failWith
	}
	for _, loc := range f.collections[collection] {
		if loc.ID == locationID {
			loc.Submissions = append(loc.Submissions, sub)
			return 1, 1, nil
		}
	}
	return 0, 0, nil
}

func (f *fakeLocationStore) SetApproval(_ context.Context, collection string, locationID primitive.ObjectID, submissionID string, approved bool, approvedAt *string) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	for _, loc := range f.collections[collection] {
		if loc.ID != locationID {
			continue
		}
		for i := range loc.Submissions {
			if loc.Submissions[i].ID == submissionID {
				loc.Submissions[i].Approved = approved
				loc.Submissions[i].ApprovedAt = approvedAt
				return 1, nil
			}
		}
	}
	return 0, nil
}

func (f *fakeLocationStore) ScanWithSubmissions(_ context.Context, collection string) ([]model.Location, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []model.Location
	for _, loc := range f.collections[collection] {
		if len(loc.Submissions) > 0 {
			out = append(out, *loc)
		}
	}
	return out, nil
}

func (f *fakeLocationStore) PendingApprovals(_ context.Context, collection string) ([]model.Location, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []model.Location
	for _, loc := range f.collections[collection] {
		for _, sub := range loc.Submissions {
			if !sub.Approved {
				out = append(out, *loc)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeLocationStore) SeedPoints(context.Context) ([]any, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.seedPoints, nil
}

// fakeObjectStorage is an in-memory bucket.
type fakeObjectStorage struct {
	objects map[string][]byte
	deleted []string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string][]byte)}
}

func (f *fakeObjectStorage) IssueWriteURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

func (f *fakeObjectStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeObjectStorage) DeleteObject(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeObjectStorage) PutObject(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return err
	}
	f.objects[key] = buf.Bytes()
	return nil
}

func (f *fakeObjectStorage) PublicURL(key string) string {
	return fmt.Sprintf("https://test-bucket.s3.ap-southeast-2.amazonaws.com/%s", key)
}

func (f *fakeObjectStorage) Bucket() string { return "test-bucket" }

// fakeOracle flags keys listed in unclean, or everything when allUnclean
// is set (for paths where the key is generated inside the service).
type fakeOracle struct {
	unclean    map[string]bool
	allUnclean bool
	err        error
}

func (f *fakeOracle) Classify(_ context.Context, _, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.allUnclean {
		return false, nil
	}
	return !f.unclean[key], nil
}

// fakeVoteStore mimics the unique-index behavior of the votes collection:
// a second insert for the same (device_id, image_url) pair fails with a
// DuplicateKeyError, no check-then-act involved.
type fakeVoteStore struct {
	votes []model.Vote
}

func (f *fakeVoteStore) InsertVote(_ context.Context, vote model.Vote) error {
	for _, existing := range f.votes {
		if existing.DeviceID == vote.DeviceID && existing.ImageURL == vote.ImageURL {
			return &storage.DuplicateKeyError{Err: errors.New("E11000 duplicate key")}
		}
	}
	f.votes = append(f.votes, vote)
	return nil
}

func (f *fakeVoteStore) CountImageVotes(_ context.Context, imageURL string, isAccurate bool) (int64, error) {
	var n int64
	for _, vote := range f.votes {
		if vote.ImageURL == imageURL && vote.IsAccurate == isAccurate {
			n++
		}
	}
	return n, nil
}

func (f *fakeVoteStore) CountDeviceVotes(_ context.Context, deviceID string) (int64, error) {
	var n int64
	for _, vote := range f.votes {
		if vote.DeviceID == deviceID {
			n++
		}
	}
	return n, nil
}

func (f *fakeVoteStore) ListDeviceVotes(_ context.Context, deviceID string) ([]model.DeviceVote, error) {
	var out []model.DeviceVote
	for _, vote := range f.votes {
		if vote.DeviceID == deviceID {
			out = append(out, model.DeviceVote{
				ImageURL:   vote.ImageURL,
				IsAccurate: vote.IsAccurate,
				CreatedAt:  vote.CreatedAt,
			})
		}
	}
	return out, nil
}

func (f *fakeVoteStore) ListVotes(context.Context) ([]model.Vote, error) {
	return append([]model.Vote(nil), f.votes...), nil
}
