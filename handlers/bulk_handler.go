package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"fuelreq/repository"
	"fuelreq/utils"
)

// maxUploadBytes bounds import uploads; spreadsheets past this are refused.
const maxUploadBytes = 20 << 20

type BulkHandler struct {
	Repo     repository.RequisitionRepository
	Vehicles repository.VehicleRepository
	Settings *repository.SettingsStore
}

// ImportVehicles ingests a cadastros spreadsheet. The whole file is
// rejected when any row is invalid; valid rows upsert by plate.
func (h *BulkHandler) ImportVehicles(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "arquivo ausente: " + err.Error()})
		return
	}
	defer file.Close()

	vehicles, err := utils.ParseVehicleImport(file, header.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	imported := 0
	for i := range vehicles {
		if err := h.Vehicles.Upsert(&vehicles[i]); err != nil {
			writeJSON(w, http.StatusInternalServerError, ApiResponse{
				Success: false,
				Message: fmt.Sprintf("falha ao gravar %s: %v", vehicles[i].Placa, err),
			})
			return
		}
		imported++
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: fmt.Sprintf("%d cadastros importados", imported),
	})
}

// ImportRequisitions ingests an abastecimentos spreadsheet, normalizing
// fuel names on the way in. Same whole-file rejection rule as the registry.
func (h *BulkHandler) ImportRequisitions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "arquivo ausente: " + err.Error()})
		return
	}
	defer file.Close()

	reqs, err := utils.ParseRequisitionImport(file, header.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	imported := 0
	for i := range reqs {
		reqs[i].Combustivel = utils.NormalizeFuel(reqs[i].Combustivel)
		if reqs[i].Status == "" {
			reqs[i].Status = "Enviada"
		}
		if _, err := h.Repo.Insert(&reqs[i]); err != nil {
			writeJSON(w, http.StatusInternalServerError, ApiResponse{
				Success: false,
				Message: fmt.Sprintf("falha ao gravar linha da placa %s: %v", reqs[i].Placa, err),
			})
			return
		}
		imported++
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: fmt.Sprintf("%d requisições importadas", imported),
	})
}

// ExportRequisitions streams the whole requisition table as a workbook.
// When the workbook build fails it degrades to CSV instead of failing the
// request.
func (h *BulkHandler) ExportRequisitions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	stamp := time.Now().Format("20060102150405")
	data, err := utils.BuildRequisitionWorkbook(list)
	if err == nil {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="abastecimentos_`+stamp+`.xlsx"`)
		_, _ = w.Write(data)
		return
	}
	log.Printf("workbook export failed, falling back to CSV: %v", err)

	data, err = utils.BuildRequisitionCSV(list)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="abastecimentos_`+stamp+`.csv"`)
	_, _ = w.Write(data)
}

// MailExportRequest is the export-by-mail payload.
type MailExportRequest struct {
	To string `json:"to"`
}

// MailExport builds the workbook and mails it to the given address.
func (h *BulkHandler) MailExport(w http.ResponseWriter, r *http.Request) {
	var req MailExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if req.To == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "destinatário é obrigatório"})
		return
	}

	list, err := h.Repo.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	data, err := utils.BuildRequisitionWorkbook(list)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	mailer := &utils.Mailer{Settings: h.Settings.Load()}
	filename := "abastecimentos_" + time.Now().Format("20060102150405") + ".xlsx"
	err = mailer.Send(utils.Message{
		To:             req.To,
		Subject:        "Exportação de abastecimentos",
		PlainBody:      "Segue em anexo a planilha de abastecimentos.",
		Attachment:     data,
		AttachmentName: filename,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Planilha enviada para " + req.To})
}
