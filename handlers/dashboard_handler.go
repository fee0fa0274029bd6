package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"fuelreq/repository"
	"fuelreq/utils"
)

type DashboardHandler struct {
	Repo repository.RequisitionRepository
}

// Dashboard returns the fleet KPI block: distinct vehicles, total liters
// and total spend over all requisitions.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.Stats()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: stats})
}

// Narrative is one generated sentence plus the raw numbers behind it.
type Narrative struct {
	Texto         string           `json:"texto"`
	LitrosRecente float64          `json:"litros_recentes"`
	TopPlacas     []narrativePlate `json:"top_placas"`
}

type narrativePlate struct {
	Placa       string `json:"placa"`
	Requisicoes int    `json:"requisicoes"`
}

// Narratives produces the two summary sentences the dashboard shows: the
// recent consumption line and the most-requested plates line.
func (h *DashboardHandler) Narratives(w http.ResponseWriter, r *http.Request) {
	liters, err := h.Repo.RecentLiters(listDisplayLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	top, err := h.Repo.TopPlates(5)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	plates := make([]narrativePlate, 0, len(top))
	names := make([]string, 0, len(top))
	for _, p := range top {
		plates = append(plates, narrativePlate{Placa: p.Placa, Requisicoes: p.Requisicoes})
		names = append(names, fmt.Sprintf("%s (%d)", p.Placa, p.Requisicoes))
	}

	texto := fmt.Sprintf("Nas últimas %d requisições foram abastecidos %s litros.",
		listDisplayLimit, utils.FormatLiters(liters))
	if len(names) > 0 {
		texto += " Placas com mais requisições: " + strings.Join(names, ", ") + "."
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: Narrative{
		Texto:         texto,
		LitrosRecente: liters,
		TopPlacas:     plates,
	}})
}
