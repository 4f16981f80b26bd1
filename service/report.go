package service

import (
	"context"
	"fmt"
	"sort"

	"mobility-mate/model"
	"mobility-mate/storage"

	"go.uber.org/zap"
)

const (
	pointsPerVote           = 1
	pointsPerApprovedUpload = 5
)

// ReportService derives leaderboard standings and per-device statistics by
// scanning the category collections and the vote ledger. Every computation
// is a full scan per call; nothing is cached or incrementally maintained.
type ReportService struct {
	locations storage.LocationStore
	votes     storage.VoteStore
	log       *zap.Logger
}

func NewReportService(locations storage.LocationStore, votes storage.VoteStore, log *zap.Logger) *ReportService {
	return &ReportService{locations: locations, votes: votes, log: log}
}

// ComputeLeaderboard ranks every username that cast at least one vote or
// owns at least one approved submission: one point per vote, five per
// approved upload. Ties are broken by username so repeated calls over the
// same data rank identically.
func (s *ReportService) ComputeLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	type score struct {
		points          int
		approvedUploads int
	}
	scores := make(map[string]*score)
	get := func(username string) *score {
		sc, ok := scores[username]
		if !ok {
			sc = &score{}
			scores[username] = sc
		}
		return sc
	}

	votes, err := s.votes.ListVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	for _, vote := range votes {
		if vote.Username == "" {
			continue
		}
		get(vote.Username).points += pointsPerVote
	}

	err = s.eachSubmission(ctx, func(_ string, _ *model.Location, sub model.Submission) {
		if !sub.Approved || sub.Username == "" {
			return
		}
		sc := get(sub.Username)
		sc.points += pointsPerApprovedUpload
		sc.approvedUploads++
	})
	if err != nil {
		return nil, err
	}

	usernames := make([]string, 0, len(scores))
	for username := range scores {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)
	sort.SliceStable(usernames, func(i, j int) bool {
		return scores[usernames[i]].points > scores[usernames[j]].points
	})

	entries := make([]model.LeaderboardEntry, 0, len(usernames))
	for i, username := range usernames {
		sc := scores[username]
		entries = append(entries, model.LeaderboardEntry{
			Rank:            i + 1,
			Username:        username,
			Points:          sc.points,
			ApprovedUploads: sc.approvedUploads,
		})
	}
	return entries, nil
}

// ComputeDeviceVoteSummary groups all votes by device, sorted ascending by
// count so anomalously quiet devices surface first.
func (s *ReportService) ComputeDeviceVoteSummary(ctx context.Context) ([]model.DeviceVoteSummary, error) {
	votes, err := s.votes.ListVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}

	counts := make(map[string]int)
	for _, vote := range votes {
		counts[vote.DeviceID]++
	}

	summaries := make([]model.DeviceVoteSummary, 0, len(counts))
	for deviceID, count := range counts {
		summaries = append(summaries, model.DeviceVoteSummary{DeviceID: deviceID, VoteCount: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].VoteCount != summaries[j].VoteCount {
			return summaries[i].VoteCount < summaries[j].VoteCount
		}
		return summaries[i].DeviceID < summaries[j].DeviceID
	})
	return summaries, nil
}

// ComputeDeviceUploadTotal counts a device's approved submissions across
// every category.
func (s *ReportService) ComputeDeviceUploadTotal(ctx context.Context, deviceID string) (int, error) {
	if deviceID == "" {
		return 0, missingField("device_id")
	}

	total := 0
	err := s.eachSubmission(ctx, func(_ string, _ *model.Location, sub model.Submission) {
		if sub.DeviceID == deviceID && sub.Approved {
			total++
		}
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ComputeDeviceUploadedImages collects every submission by the device,
// approved or not, enriched with the owning location's display name and
// category, newest first. Submissions without an upload timestamp sort
// last; an undated upload must not masquerade as the most recent.
func (s *ReportService) ComputeDeviceUploadedImages(ctx context.Context, deviceID string) ([]model.UploadedImage, error) {
	if deviceID == "" {
		return nil, missingField("device_id")
	}

	images := []model.UploadedImage{}
	err := s.eachSubmission(ctx, func(category string, loc *model.Location, sub model.Submission) {
		if sub.DeviceID != deviceID {
			return
		}
		images = append(images, model.UploadedImage{
			ImageURL:     sub.ImageURL,
			UploadedAt:   sub.UploadedAt,
			Approved:     sub.Approved,
			ApprovedAt:   sub.ApprovedAt,
			LocationName: loc.DisplayName(),
			Category:     category,
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].UploadedAt > images[j].UploadedAt
	})
	return images, nil
}

// eachSubmission walks every submission in every category collection.
func (s *ReportService) eachSubmission(ctx context.Context, visit func(category string, loc *model.Location, sub model.Submission)) error {
	for _, collection := range storage.CollectionNames() {
		locations, err := s.locations.ScanWithSubmissions(ctx, collection)
		if err != nil {
			return fmt.Errorf("scan %s: %w", collection, err)
		}
		label := storage.CategoryLabel(collection)
		for i := range locations {
			for _, sub := range locations[i].Submissions {
				visit(label, &locations[i], sub)
			}
		}
	}
	return nil
}
