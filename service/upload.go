package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"mobility-mate/model"
	"mobility-mate/moderation"
	"mobility-mate/storage"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const uploadURLTTL = time.Hour

// UploadService drives the submission lifecycle: slot registration,
// object confirmation, moderation, finalize and admin approval.
type UploadService struct {
	locations storage.LocationStore
	objects   storage.ObjectStorage
	oracle    moderation.Oracle
	log       *zap.Logger
	now       func() time.Time
}

func NewUploadService(locations storage.LocationStore, objects storage.ObjectStorage, oracle moderation.Oracle, log *zap.Logger) *UploadService {
	return &UploadService{
		locations: locations,
		objects:   objects,
		oracle:    oracle,
		log:       log,
		now:       time.Now,
	}
}

type RegisterUploadRequest struct {
	Filename    string
	Latitude    *float64
	Longitude   *float64
	Category    string
	ContentType string
	DeviceID    string
	Username    string
}

// UploadSlot is the issued write slot. No submission exists yet; the
// client must PUT the bytes and then confirm.
type UploadSlot struct {
	UploadURL  string `json:"upload_url"`
	PublicURL  string `json:"public_url"`
	StorageKey string `json:"storage_key"`
	LocationID string `json:"location_id"`
}

// RegisterUpload validates the request, resolves the target location by
// exact coordinate match and issues a presigned, content-type-scoped write
// URL. The storage key carries a timestamp prefix plus a random suffix so
// same-second uploads of one filename cannot collide.
func (s *UploadService) RegisterUpload(ctx context.Context, req RegisterUploadRequest) (*UploadSlot, error) {
	if req.Filename == "" {
		return nil, missingField("filename")
	}
	if req.Latitude == nil {
		return nil, missingField("latitude")
	}
	if req.Longitude == nil {
		return nil, missingField("longitude")
	}
	if req.Category == "" {
		return nil, missingField("accessibility_type")
	}
	if req.DeviceID == "" {
		return nil, missingField("device_id")
	}
	if _, ok := storage.ResolveCategory(req.Category); !ok {
		return nil, &ValidationError{Field: "accessibility_type", Reason: "unknown category " + req.Category}
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	location, err := s.locations.FindLocation(ctx, req.Category, *req.Latitude, *req.Longitude)
	if err != nil {
		return nil, fmt.Errorf("find location: %w", err)
	}
	if location == nil {
		return nil, fmt.Errorf("no %s location at (%v, %v): %w",
			req.Category, *req.Latitude, *req.Longitude, ErrNotFound)
	}

	key := s.storageKey(req.Filename)
	uploadURL, err := s.objects.IssueWriteURL(ctx, key, contentType, uploadURLTTL)
	if err != nil {
		return nil, &UpstreamError{Op: "issue write url", Err: err}
	}

	s.log.Info("upload slot issued",
		zap.String("key", key),
		zap.String("category", req.Category),
		zap.String("device_id", req.DeviceID),
	)

	return &UploadSlot{
		UploadURL:  uploadURL,
		PublicURL:  s.objects.PublicURL(key),
		StorageKey: key,
		LocationID: location.ID.Hex(),
	}, nil
}

func (s *UploadService) storageKey(filename string) string {
	stamp := s.now().UTC().Format("20060102150405")
	return fmt.Sprintf("uploads/%s_%s_%s", stamp, uuid.NewString()[:8], filename)
}

// ConfirmAndModerate verifies the object was actually uploaded and runs the
// moderation oracle over it. An unclean object is deleted before the error
// is returned, so nothing of it survives.
func (s *UploadService) ConfirmAndModerate(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return missingField("storage_key")
	}

	exists, err := s.objects.ObjectExists(ctx, storageKey)
	if err != nil {
		return &UpstreamError{Op: "stat object", Err: err}
	}
	if !exists {
		return fmt.Errorf("object %s was never uploaded: %w", storageKey, ErrNotFound)
	}

	clean, err := s.oracle.Classify(ctx, s.objects.Bucket(), storageKey)
	if err != nil {
		return &UpstreamError{Op: "moderate image", Err: err}
	}
	if !clean {
		if err := s.objects.DeleteObject(ctx, storageKey); err != nil {
			return &UpstreamError{Op: "delete rejected object", Err: err}
		}
		s.log.Warn("upload rejected by moderation", zap.String("key", storageKey))
		return fmt.Errorf("%s: %w", storageKey, ErrRejectedContent)
	}
	return nil
}

type ConfirmUploadRequest struct {
	StorageKey string
	Category   string
	LocationID string
	DeviceID   string
	Username   string
}

// ConfirmUpload is the follow-up call after the client PUTs its bytes:
// confirm the object, moderate it, and on a clean verdict append the
// submission to its location.
func (s *UploadService) ConfirmUpload(ctx context.Context, req ConfirmUploadRequest) (*model.Submission, error) {
	if err := s.ConfirmAndModerate(ctx, req.StorageKey); err != nil {
		return nil, err
	}
	return s.FinalizeSubmission(ctx, FinalizeRequest{
		Category:   req.Category,
		LocationID: req.LocationID,
		ImageURL:   s.objects.PublicURL(req.StorageKey),
		DeviceID:   req.DeviceID,
		Username:   req.Username,
	})
}

type FinalizeRequest struct {
	Category   string
	LocationID string
	ImageURL   string
	DeviceID   string
	Username   string
}

// FinalizeSubmission appends an unapproved submission to the location's
// image sequence. Callers must invoke it exactly once per clean upload;
// a second call appends a second submission.
func (s *UploadService) FinalizeSubmission(ctx context.Context, req FinalizeRequest) (*model.Submission, error) {
	collection, ok := storage.ResolveCategory(req.Category)
	if !ok {
		return nil, &ValidationError{Field: "accessibility_type", Reason: "unknown category " + req.Category}
	}
	if req.ImageURL == "" {
		return nil, missingField("image_url")
	}
	if req.DeviceID == "" {
		return nil, missingField("device_id")
	}
	locationID, err := primitive.ObjectIDFromHex(req.LocationID)
	if err != nil {
		return nil, &ValidationError{Field: "location_id", Reason: "not a valid object id"}
	}

	sub := model.Submission{
		ID:         uuid.NewString(),
		ImageURL:   req.ImageURL,
		UploadedAt: s.now().UTC().Format(time.RFC3339),
		Approved:   false,
		DeviceID:   req.DeviceID,
		Username:   req.Username,
	}
	return s.appendSubmission(ctx, collection, locationID, sub)
}

func (s *UploadService) appendSubmission(ctx context.Context, collection string, locationID primitive.ObjectID, sub model.Submission) (*model.Submission, error) {
	matched, modified, err := s.locations.AppendSubmission(ctx, collection, locationID, sub)
	if err != nil {
		return nil, fmt.Errorf("append submission: %w", err)
	}
	if matched == 0 {
		return nil, fmt.Errorf("location %s: %w", locationID.Hex(), ErrNotFound)
	}
	if modified == 0 {
		return nil, fmt.Errorf("location %s not updated: %w", locationID.Hex(), ErrPersistence)
	}

	s.log.Info("submission recorded",
		zap.String("submission_id", sub.ID),
		zap.String("location_id", locationID.Hex()),
	)
	return &sub, nil
}

// SetApproval flips one submission's approval flag. Submissions are
// addressed by their stable id, so a concurrent append elsewhere in the
// sequence cannot shift the target. Re-approving is allowed; last write
// wins on the timestamp.
func (s *UploadService) SetApproval(ctx context.Context, category, locationID, submissionID string, approved bool) (*string, error) {
	collection, ok := storage.ResolveCategory(category)
	if !ok {
		return nil, &ValidationError{Field: "accessibility_type", Reason: "unknown category " + category}
	}
	if submissionID == "" {
		return nil, missingField("submission_id")
	}
	oid, err := primitive.ObjectIDFromHex(locationID)
	if err != nil {
		return nil, &ValidationError{Field: "location_id", Reason: "not a valid object id"}
	}

	var approvedAt *string
	if approved {
		stamp := s.now().UTC().Format(time.RFC3339)
		approvedAt = &stamp
	}

	matched, err := s.locations.SetApproval(ctx, collection, oid, submissionID, approved, approvedAt)
	if err != nil {
		return nil, fmt.Errorf("set approval: %w", err)
	}
	if matched == 0 {
		return nil, fmt.Errorf("submission %s in location %s: %w", submissionID, locationID, ErrNotFound)
	}

	s.log.Info("approval updated",
		zap.String("submission_id", submissionID),
		zap.Bool("approved", approved),
	)
	return approvedAt, nil
}

// CategoryPending groups the locations awaiting review under one category
// label.
type CategoryPending struct {
	Category  string           `json:"accessibility_type"`
	Locations []model.Location `json:"locations"`
}

// PendingApprovals lists, per category, every location holding at least one
// unapproved submission.
func (s *UploadService) PendingApprovals(ctx context.Context) ([]CategoryPending, error) {
	var out []CategoryPending
	for _, collection := range storage.CollectionNames() {
		locations, err := s.locations.PendingApprovals(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		if len(locations) == 0 {
			continue
		}
		out = append(out, CategoryPending{
			Category:  storage.CategoryLabel(collection),
			Locations: locations,
		})
	}
	return out, nil
}

// SeedPoints exposes the map seed points for the mobile client's initial
// pin rendering.
func (s *UploadService) SeedPoints(ctx context.Context) ([]any, error) {
	points, err := s.locations.SeedPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed points: %w", err)
	}
	if points == nil {
		// Clients expect a JSON array even when the seed document is
		// absent or empty.
		points = []any{}
	}
	return points, nil
}

type DirectUploadRequest struct {
	Filename    string
	Category    string
	ContentType string
	DeviceID    string
	Username    string
	Latitude    *float64
	Longitude   *float64
	Body        io.Reader
}

// DirectUpload accepts image bytes server-side instead of handing out a
// presigned URL. Coordinates missing from the request fall back to the
// image's EXIF GPS tags, and the EXIF capture time seeds the upload
// timestamp. The stored object gets a 256px thumbnail next to it, then the
// upload runs through the same moderation and finalize steps as the
// presigned path.
func (s *UploadService) DirectUpload(ctx context.Context, req DirectUploadRequest) (*model.Submission, error) {
	if req.Filename == "" {
		return nil, missingField("filename")
	}
	if req.Category == "" {
		return nil, missingField("accessibility_type")
	}
	if req.DeviceID == "" {
		return nil, missingField("device_id")
	}
	collection, ok := storage.ResolveCategory(req.Category)
	if !ok {
		return nil, &ValidationError{Field: "accessibility_type", Reason: "unknown category " + req.Category}
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, &ValidationError{Field: "file", Reason: "unreadable body"}
	}
	if len(data) == 0 {
		return nil, missingField("file")
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	lat, lon := req.Latitude, req.Longitude
	uploadedAt := s.now().UTC().Format(time.RFC3339)
	if meta, err := exif.Decode(bytes.NewReader(data)); err == nil {
		if lat == nil || lon == nil {
			if exifLat, exifLon, err := meta.LatLong(); err == nil {
				lat, lon = &exifLat, &exifLon
			}
		}
		if taken, err := meta.DateTime(); err == nil {
			uploadedAt = taken.UTC().Format(time.RFC3339)
		}
	}
	if lat == nil || lon == nil {
		return nil, &ValidationError{Field: "latitude", Reason: "no coordinates in request or EXIF data"}
	}

	location, err := s.locations.FindLocation(ctx, req.Category, *lat, *lon)
	if err != nil {
		return nil, fmt.Errorf("find location: %w", err)
	}
	if location == nil {
		return nil, fmt.Errorf("no %s location at (%v, %v): %w", req.Category, *lat, *lon, ErrNotFound)
	}

	key := s.storageKey(req.Filename)
	if err := s.objects.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, &UpstreamError{Op: "store object", Err: err}
	}

	// Moderate before deriving anything from the image; a rejected upload
	// must leave no object behind, thumbnail included.
	if err := s.ConfirmAndModerate(ctx, key); err != nil {
		return nil, err
	}
	s.storeThumbnail(ctx, key, data)

	sub := model.Submission{
		ID:         uuid.NewString(),
		ImageURL:   s.objects.PublicURL(key),
		UploadedAt: uploadedAt,
		Approved:   false,
		DeviceID:   req.DeviceID,
		Username:   req.Username,
	}
	return s.appendSubmission(ctx, collection, location.ID, sub)
}

// storeThumbnail is best effort; a missing thumbnail never blocks the
// upload itself.
func (s *UploadService) storeThumbnail(ctx context.Context, key string, data []byte) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		s.log.Warn("thumbnail skipped, undecodable image", zap.String("key", key))
		return
	}
	thumb := imaging.Thumbnail(img, 256, 256, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		s.log.Warn("thumbnail encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	thumbKey := strings.Replace(key, "uploads/", "thumbnails/", 1)
	if err := s.objects.PutObject(ctx, thumbKey, &buf, int64(buf.Len()), "image/jpeg"); err != nil {
		s.log.Warn("thumbnail store failed", zap.String("key", thumbKey), zap.Error(err))
	}
}
