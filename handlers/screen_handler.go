package handlers

import (
	"encoding/json"
	"net/http"
)

type ScreenHandler struct {
	Session *ScreenSession
}

// GetScreen returns the current list-screen state.
func (h *ScreenHandler) GetScreen(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: h.Session.Current()})
}

// ScreenActionRequest is one UI event against the list screen.
type ScreenActionRequest struct {
	Action   ScreenAction `json:"action"`
	RecordID int64        `json:"record_id"`
}

// ApplyScreenAction runs one screen transition. Rejected transitions leave
// the state untouched and come back as 409.
func (h *ScreenHandler) ApplyScreenAction(w http.ResponseWriter, r *http.Request) {
	var req ScreenActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	next, err := h.Session.Apply(req.Action, req.RecordID)
	if err != nil {
		writeJSON(w, http.StatusConflict, ApiResponse{Success: false, Message: err.Error(), Data: next})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: next})
}
