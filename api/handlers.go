package api

import (
	"net/http"

	"mobility-mate/service"
	"mobility-mate/storage"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handlers holds every HTTP dependency; main constructs it once and mounts
// Router on the server.
type Handlers struct {
	Uploads   *service.UploadService
	Votes     *service.VoteService
	Reports   *service.ReportService
	Community storage.CommunityStore
	Events    *EventsClient
	Log       *zap.Logger

	// SecretKey signs admin JWTs; AdminPasswordHash is the bcrypt hash the
	// login endpoint checks against.
	SecretKey         string
	AdminPasswordHash string
}

func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()
	// Image URLs ride in the path on the tally route; without these the
	// router collapses "//" and redirects, handing the handler a mangled
	// key that tallies to zero.
	r.UseEncodedPath()
	r.SkipClean(true)
	r.Use(RecoveryMiddleware(h.Log))
	r.Use(RequestLoggerMiddleware(h.Log))

	r.HandleFunc("/", h.handleHome).Methods(http.MethodGet)

	// submission lifecycle
	r.HandleFunc("/generate-upload-url", h.handleGenerateUploadURL).Methods(http.MethodPost)
	r.HandleFunc("/confirm-upload", h.handleConfirmUpload).Methods(http.MethodPost)
	r.HandleFunc("/upload-image", h.handleDirectUpload).Methods(http.MethodPost)

	// votes
	r.HandleFunc("/api/vote", h.handleSubmitVote).Methods(http.MethodPost)
	r.HandleFunc("/api/votes/device/{deviceID}", h.handleDeviceVotes).Methods(http.MethodGet)
	r.HandleFunc("/api/votes/{imageURL:.*}", h.handleImageTally).Methods(http.MethodGet)

	// reports and aggregation
	r.HandleFunc("/api/leaderboard", h.handleLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/api/reports/device-votes", h.handleDeviceVoteSummary).Methods(http.MethodGet)
	r.HandleFunc("/api/uploads/device/{deviceID}/count", h.handleDeviceUploadTotal).Methods(http.MethodGet)
	r.HandleFunc("/api/uploads/device/{deviceID}", h.handleDeviceUploadedImages).Methods(http.MethodGet)

	// community passthroughs
	r.HandleFunc("/location-points", h.handleLocationPoints).Methods(http.MethodGet)
	r.HandleFunc("/report-issue", h.handleReportIssue).Methods(http.MethodPost)
	r.HandleFunc("/add_user", h.handleAddUser).Methods(http.MethodPost)
	r.HandleFunc("/get_users", h.handleGetUsers).Methods(http.MethodGet)
	r.HandleFunc("/events", h.handleEvents).Methods(http.MethodPost)

	// admin
	r.HandleFunc("/admin/login", h.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/admin/approvals", h.authMiddleware(h.handlePendingApprovals)).Methods(http.MethodGet)
	r.HandleFunc("/admin/approvals", h.authMiddleware(h.handleSetApproval)).Methods(http.MethodPost)

	return r
}

func (h *Handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to MobilityMate API"})
}
