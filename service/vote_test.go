package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func boolPtr(b bool) *bool { return &b }

func newVoteService(store *fakeVoteStore) *VoteService {
	return NewVoteService(store, zap.NewNop())
}

func TestSubmitVoteRecordsAndTallies(t *testing.T) {
	svc := newVoteService(&fakeVoteStore{})
	ctx := context.Background()

	tally, err := svc.SubmitVote(ctx, SubmitVoteRequest{
		DeviceID:   "device-1",
		LocationID: "loc-1",
		ImageURL:   "https://img/1.jpg",
		IsAccurate: boolPtr(true),
		Username:   "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), tally.AccurateCount)
	assert.Equal(t, int64(0), tally.InaccurateCount)
	assert.Equal(t, int64(1), tally.DeviceVoteCount)
}

func TestSubmitVoteValidatesRequiredFields(t *testing.T) {
	svc := newVoteService(&fakeVoteStore{})
	ctx := context.Background()

	cases := []struct {
		name string
		req  SubmitVoteRequest
	}{
		{"missing device", SubmitVoteRequest{LocationID: "l", ImageURL: "i", IsAccurate: boolPtr(true)}},
		{"missing location", SubmitVoteRequest{DeviceID: "d", ImageURL: "i", IsAccurate: boolPtr(true)}},
		{"missing image", SubmitVoteRequest{DeviceID: "d", LocationID: "l", IsAccurate: boolPtr(true)}},
		{"missing verdict", SubmitVoteRequest{DeviceID: "d", LocationID: "l", ImageURL: "i"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitVote(ctx, tc.req)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestSubmitVoteDuplicateIsRejectedOnce(t *testing.T) {
	store := &fakeVoteStore{}
	svc := newVoteService(store)
	ctx := context.Background()

	req := SubmitVoteRequest{
		DeviceID:   "device-1",
		LocationID: "loc-1",
		ImageURL:   "https://img/1.jpg",
		IsAccurate: boolPtr(true),
	}
	_, err := svc.SubmitVote(ctx, req)
	require.NoError(t, err)

	// Repeated submissions of the same pair never add a second vote.
	for i := 0; i < 3; i++ {
		tally, err := svc.SubmitVote(ctx, req)
		require.ErrorIs(t, err, ErrDuplicateVote)
		// The rejection still carries current tallies.
		require.NotNil(t, tally)
		assert.Equal(t, int64(1), tally.AccurateCount)
		assert.Equal(t, int64(1), tally.DeviceVoteCount)
	}
	assert.Len(t, store.votes, 1)
}

func TestSubmitVoteSameImageDifferentDevices(t *testing.T) {
	svc := newVoteService(&fakeVoteStore{})
	ctx := context.Background()

	for _, deviceID := range []string{"a", "b", "c"} {
		_, err := svc.SubmitVote(ctx, SubmitVoteRequest{
			DeviceID:   deviceID,
			LocationID: "loc-1",
			ImageURL:   "https://img/1.jpg",
			IsAccurate: boolPtr(deviceID != "c"),
		})
		require.NoError(t, err)
	}

	tally, err := svc.GetImageTally(ctx, "https://img/1.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(2), tally.AccurateCount)
	assert.Equal(t, int64(1), tally.InaccurateCount)
}

func TestGetImageTallyUnknownImageIsZero(t *testing.T) {
	svc := newVoteService(&fakeVoteStore{})

	tally, err := svc.GetImageTally(context.Background(), "https://img/never-voted.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(0), tally.AccurateCount)
	assert.Equal(t, int64(0), tally.InaccurateCount)
}

func TestGetDeviceVotes(t *testing.T) {
	svc := newVoteService(&fakeVoteStore{})
	ctx := context.Background()

	for _, url := range []string{"https://img/1.jpg", "https://img/2.jpg"} {
		_, err := svc.SubmitVote(ctx, SubmitVoteRequest{
			DeviceID:   "device-1",
			LocationID: "loc-1",
			ImageURL:   url,
			IsAccurate: boolPtr(true),
		})
		require.NoError(t, err)
	}

	votes, err := svc.GetDeviceVotes(ctx, "device-1")
	require.NoError(t, err)
	require.Len(t, votes, 2)
	assert.Equal(t, "https://img/1.jpg", votes[0].ImageURL)

	empty, err := svc.GetDeviceVotes(ctx, "device-without-votes")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
