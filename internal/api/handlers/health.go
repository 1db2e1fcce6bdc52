package handlers

import (
	"net/http"
	"time"

	"slowquery-monitor/internal/api/dto"
	"slowquery-monitor/internal/api/utils"
	"slowquery-monitor/internal/monitor"
)

// NewHealthHandler reports on the poll loop, not on the database: the
// last poll outcome decides the status.
func NewHealthHandler(snap *monitor.Snapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			utils.WriteMethodNotAllowed(w, http.MethodGet)
			return
		}

		st := snap.State()
		resp := dto.HealthResponse{
			Status:     "ok",
			Polls:      st.Polls,
			Failures:   st.Failures,
			LastPollAt: utils.TimePtr(lastPoll(st)),
		}

		switch {
		case st.Polls == 0:
			resp.Status = "starting"
		case lastPollFailed(st):
			resp.Status = "degraded"
			utils.WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}

		utils.WriteJSON(w, http.StatusOK, resp)
	}
}

func lastPollFailed(st monitor.SnapshotState) bool {
	return !st.LastErrorAt.IsZero() && st.LastErrorAt.After(st.UpdatedAt)
}

func lastPoll(st monitor.SnapshotState) time.Time {
	if st.LastErrorAt.After(st.UpdatedAt) {
		return st.LastErrorAt
	}
	return st.UpdatedAt
}
