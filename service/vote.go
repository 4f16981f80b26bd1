package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mobility-mate/model"
	"mobility-mate/storage"

	"go.uber.org/zap"
)

// VoteService is the one-vote-per-device-per-image ledger. Duplicate
// prevention rides on the votes collection's unique index, so two
// concurrent submissions of the same pair resolve to exactly one insert and
// one DuplicateVote rejection.
type VoteService struct {
	votes storage.VoteStore
	log   *zap.Logger
	now   func() time.Time
}

func NewVoteService(votes storage.VoteStore, log *zap.Logger) *VoteService {
	return &VoteService{votes: votes, log: log, now: time.Now}
}

type SubmitVoteRequest struct {
	DeviceID   string
	LocationID string
	ImageURL   string
	IsAccurate *bool
	Username   string
}

// SubmitVote records a vote and returns the refreshed tallies. On a
// duplicate it still returns the current tallies alongside ErrDuplicateVote
// so the client can resync its display.
func (s *VoteService) SubmitVote(ctx context.Context, req SubmitVoteRequest) (*model.VoteTally, error) {
	if req.DeviceID == "" {
		return nil, missingField("device_id")
	}
	if req.LocationID == "" {
		return nil, missingField("location_id")
	}
	if req.ImageURL == "" {
		return nil, missingField("image_url")
	}
	if req.IsAccurate == nil {
		return nil, missingField("is_accurate")
	}

	now := s.now().UTC()
	vote := model.Vote{
		DeviceID:   req.DeviceID,
		Username:   req.Username,
		LocationID: req.LocationID,
		ImageURL:   req.ImageURL,
		IsAccurate: *req.IsAccurate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.votes.InsertVote(ctx, vote)
	var dup *storage.DuplicateKeyError
	if errors.As(err, &dup) {
		tally, tallyErr := s.tallies(ctx, req.ImageURL, req.DeviceID)
		if tallyErr != nil {
			return nil, fmt.Errorf("tally after duplicate: %w", tallyErr)
		}
		return tally, ErrDuplicateVote
	}
	if err != nil {
		return nil, fmt.Errorf("insert vote: %w", err)
	}

	s.log.Info("vote recorded",
		zap.String("device_id", req.DeviceID),
		zap.String("image_url", req.ImageURL),
		zap.Bool("is_accurate", *req.IsAccurate),
	)
	return s.tallies(ctx, req.ImageURL, req.DeviceID)
}

func (s *VoteService) tallies(ctx context.Context, imageURL, deviceID string) (*model.VoteTally, error) {
	accurate, err := s.votes.CountImageVotes(ctx, imageURL, true)
	if err != nil {
		return nil, err
	}
	inaccurate, err := s.votes.CountImageVotes(ctx, imageURL, false)
	if err != nil {
		return nil, err
	}
	deviceCount, err := s.votes.CountDeviceVotes(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return &model.VoteTally{
		AccurateCount:   accurate,
		InaccurateCount: inaccurate,
		DeviceVoteCount: deviceCount,
	}, nil
}

// GetImageTally returns the accurate/inaccurate counts for an image. A zero
// tally for an unknown image is valid; no existence check is made.
func (s *VoteService) GetImageTally(ctx context.Context, imageURL string) (*model.ImageTally, error) {
	if imageURL == "" {
		return nil, missingField("image_url")
	}
	accurate, err := s.votes.CountImageVotes(ctx, imageURL, true)
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}
	inaccurate, err := s.votes.CountImageVotes(ctx, imageURL, false)
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}
	return &model.ImageTally{AccurateCount: accurate, InaccurateCount: inaccurate}, nil
}

// GetDeviceVotes lists a device's votes in natural storage order.
func (s *VoteService) GetDeviceVotes(ctx context.Context, deviceID string) ([]model.DeviceVote, error) {
	if deviceID == "" {
		return nil, missingField("device_id")
	}
	votes, err := s.votes.ListDeviceVotes(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("list device votes: %w", err)
	}
	if votes == nil {
		votes = []model.DeviceVote{}
	}
	return votes, nil
}
