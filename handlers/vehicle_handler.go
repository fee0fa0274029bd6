package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"fuelreq/models"
	"fuelreq/repository"
)

type VehicleHandler struct {
	Repo repository.VehicleRepository
}

// ListVehicles returns the whole cadastros registry.
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if list == nil {
		list = []*models.Vehicle{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

// UpsertVehicle creates or replaces one registry entry, keyed by plate.
func (h *VehicleHandler) UpsertVehicle(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if strings.TrimSpace(v.Placa) == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Placa é obrigatória"})
		return
	}
	if err := h.Repo.Upsert(&v); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Cadastro salvo"})
}
