package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"fuelreq/models"
	"fuelreq/repository"
)

type SettingsHandler struct {
	Store *repository.SettingsStore
}

// GetSettings returns the current settings, falling back to defaults when
// the file is missing or unreadable.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: h.Store.Load()})
}

// SaveSettings validates and persists the whole settings object at once.
func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var s models.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	s.SMTPServer = strings.TrimSpace(s.SMTPServer)
	s.SMTPUser = strings.TrimSpace(s.SMTPUser)
	if s.SMTPPort < 1 || s.SMTPPort > 65535 {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "porta SMTP inválida"})
		return
	}

	if err := h.Store.Save(&s); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Configurações salvas"})
}
