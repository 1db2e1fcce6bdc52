package handlers

import (
	"net/http"

	"slowquery-monitor/internal/api/dto"
	"slowquery-monitor/internal/api/utils"
	"slowquery-monitor/internal/monitor"
)

func NewSlowQueriesHandler(snap *monitor.Snapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			utils.WriteMethodNotAllowed(w, http.MethodGet)
			return
		}

		st := snap.State()
		resp := dto.SlowQueriesResponse{
			API:         r.URL.Path,
			Status:      "success",
			Columns:     monitor.Header,
			Rows:        make([][]string, 0),
			UpdatedAt:   utils.TimePtr(st.UpdatedAt),
			LastError:   st.LastError,
			LastErrorAt: utils.TimePtr(st.LastErrorAt),
		}
		if st.Polls == 0 {
			resp.Status = "pending"
		}
		// The "nothing found" row is a display artifact, not a record.
		if !st.Table.Empty() {
			resp.Rows = append(resp.Rows, st.Table.Rows...)
		}
		resp.RowCount = len(resp.Rows)

		utils.WriteJSON(w, http.StatusOK, resp)
	}
}
