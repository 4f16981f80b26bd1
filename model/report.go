package model

// LeaderboardEntry is a computed projection, never persisted. Points come
// from votes (1 each) and approved uploads (5 each); the approved-upload
// count is tracked separately for badge display.
type LeaderboardEntry struct {
	Rank            int    `json:"rank"`
	Username        string `json:"username"`
	Points          int    `json:"points"`
	ApprovedUploads int    `json:"approved_uploads"`
}

// DeviceVoteSummary is one row of the per-device engagement report, sorted
// ascending by count to surface low-engagement devices first.
type DeviceVoteSummary struct {
	DeviceID  string `json:"device_id"`
	VoteCount int    `json:"vote_count"`
}

// UploadedImage is one of a device's uploads enriched with the owning
// location's display name and category.
type UploadedImage struct {
	ImageURL     string  `json:"image_url"`
	UploadedAt   string  `json:"image_upload_time,omitempty"`
	Approved     bool    `json:"approved_status"`
	ApprovedAt   *string `json:"image_approved_time"`
	LocationName string  `json:"location_name"`
	Category     string  `json:"accessibility_type"`
}
