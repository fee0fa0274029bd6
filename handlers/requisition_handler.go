package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fuelreq/models"
	"fuelreq/repository"
	"fuelreq/utils"
)

// listDisplayLimit caps the rows the list screen returns; search still runs
// over the full set before the cap is applied.
const listDisplayLimit = 200

type RequisitionHandler struct {
	Repo         repository.RequisitionRepository
	Vehicles     repository.VehicleRepository
	Settings     *repository.SettingsStore
	PDFRepo      *repository.PDFRepository
	SavePath     string
	TemplatePath string
	Empresa      string

	// Render turns the report payload into document bytes. Nil selects the
	// HTML + headless-Chrome pipeline.
	Render func(*models.RequisitionPDFData) ([]byte, error)
}

// CreateRequest is the creation payload. A test submission still persists
// the record, as "Pendente", but skips the registry upsert, the archive and
// the e-mail.
type CreateRequest struct {
	models.Requisition
	Teste bool `json:"teste"`
}

// requisitionRow is one row of the list screen, with the derived quantity
// column resolved server side.
type requisitionRow struct {
	*models.Requisition
	Quantidade string `json:"quantidade"`
}

// CreateRequisition renders the requisition report first and only persists
// the record once the PDF exists. A render failure aborts the whole
// operation and nothing is written.
func (h *RequisitionHandler) CreateRequisition(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if strings.TrimSpace(req.Placa) == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Placa é obrigatória"})
		return
	}

	req.Combustivel = utils.NormalizeFuel(req.Combustivel)
	if req.TanqueCheio {
		req.TotalLitros = nil
	}
	if req.Data == "" {
		req.Data = time.Now().Format("2006-01-02")
	}

	pdfBytes, err := h.renderPDF(&req.Requisition)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	filename := utils.RequisitionFilename(req.Placa, time.Now())
	if err := h.savePDF(filename, pdfBytes); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	zero := 0.0
	req.ValorTotal = &zero
	if req.Teste {
		req.Status = "Pendente"
	} else {
		req.Status = "Enviada"
	}

	id, err := h.Repo.Insert(&req.Requisition)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	req.ID = id

	if req.Teste {
		writeJSON(w, http.StatusCreated, ApiResponse{
			Success: true,
			Message: "Requisição de teste gravada como Pendente",
			Data:    map[string]interface{}{"id": id, "file": filename},
		})
		return
	}

	// Registry upkeep is best effort, the requisition is already saved.
	if err := h.Vehicles.Upsert(&models.Vehicle{
		Placa:    req.Placa,
		Condutor: req.Condutor,
		Unidade:  req.Unidade,
		Setor:    req.Setor,
	}); err != nil {
		log.Printf("cadastro upsert failed for %s: %v", req.Placa, err)
	}

	if utils.ArchiveConfigured() {
		if url, err := utils.ArchiveRequisitionPDF(pdfBytes, filename); err != nil {
			log.Printf("archive upload failed for %s: %v", filename, err)
		} else {
			log.Printf("archived %s at %s", filename, url)
		}
	}

	mailed := false
	if req.EmailPosto != "" {
		if err := h.mailPDF(&req.Requisition, pdfBytes, filename); err != nil {
			log.Printf("e-mail to %s failed: %v", req.EmailPosto, err)
		} else {
			mailed = true
		}
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Requisição criada",
		Data: map[string]interface{}{
			"id":      id,
			"file":    filename,
			"enviada": mailed,
		},
	})
}

// ListRequisitions returns the newest requisitions, optionally filtered by
// the q parameter (case-insensitive substring over every column).
func (h *RequisitionHandler) ListRequisitions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		list = filterRequisitions(list, q)
	}
	if len(list) > listDisplayLimit {
		list = list[:listDisplayLimit]
	}

	rows := make([]requisitionRow, 0, len(list))
	for _, req := range list {
		if norm := utils.NormalizeFuel(req.Combustivel); norm != "" {
			req.Combustivel = norm
		}
		if req.Observacoes == "" {
			req.Observacoes = req.Referente
		}
		rows = append(rows, requisitionRow{Requisition: req, Quantidade: req.Quantidade()})
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: rows})
}

// GetRequisition returns one requisition by id.
func (h *RequisitionHandler) GetRequisition(w http.ResponseWriter, r *http.Request, id string) {
	reqID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "id inválido"})
		return
	}
	req, err := h.Repo.GetByID(reqID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if req == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Requisição não encontrada"})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: requisitionRow{Requisition: req, Quantidade: req.Quantidade()}})
}

// CompleteRequisition records actual usage. Only KmUso, valor_total,
// total_litros and DataUso may change here.
func (h *RequisitionHandler) CompleteRequisition(w http.ResponseWriter, r *http.Request, id string) {
	reqID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "id inválido"})
		return
	}
	var upd models.CompletionUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	existing, err := h.Repo.GetByID(reqID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Requisição não encontrada"})
		return
	}

	if err := h.Repo.UpdateCompletion(reqID, &upd); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Uso registrado"})
}

// StatusUpdateRequest is the bulk status change payload.
type StatusUpdateRequest struct {
	IDs    []int64 `json:"ids"`
	Status string  `json:"status"`
}

// UpdateStatus changes the status of a batch of requisitions.
func (h *RequisitionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if len(req.IDs) == 0 || req.Status == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "ids e status são obrigatórios"})
		return
	}
	if err := h.Repo.UpdateStatus(req.IDs, req.Status); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Status atualizado"})
}

// SendRequisition re-renders the report for an existing requisition and
// mails it to the registered station address.
func (h *RequisitionHandler) SendRequisition(w http.ResponseWriter, r *http.Request, id string) {
	reqID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "id inválido"})
		return
	}
	req, err := h.PDFRepo.GetRequisitionForPDF(reqID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if req == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Requisição não encontrada"})
		return
	}
	if req.EmailPosto == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "Requisição sem e-mail de posto"})
		return
	}

	pdfBytes, err := h.renderPDF(req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	filename := utils.RequisitionFilename(req.Placa, time.Now())
	if err := h.mailPDF(req, pdfBytes, filename); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	if err := h.Repo.UpdateStatus([]int64{reqID}, "Enviada"); err != nil {
		log.Printf("status update failed for %d after send: %v", reqID, err)
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Requisição enviada para " + req.EmailPosto})
}

// RequisitionPDF re-renders the report for an existing requisition and
// streams the PDF back.
func (h *RequisitionHandler) RequisitionPDF(w http.ResponseWriter, r *http.Request, id string) {
	reqID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "id inválido"})
		return
	}
	req, err := h.PDFRepo.GetRequisitionForPDF(reqID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}
	if req == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Requisição não encontrada"})
		return
	}

	pdfBytes, err := h.renderPDF(req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
		return
	}

	filename := utils.RequisitionFilename(req.Placa, time.Now())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func (h *RequisitionHandler) renderPDF(req *models.Requisition) ([]byte, error) {
	data := h.buildPDFData(req)
	if h.Render != nil {
		return h.Render(data)
	}
	html, err := utils.BuildRequisitionHTML(data, h.TemplatePath)
	if err != nil {
		return nil, err
	}
	return utils.GenerateRequisitionPDF(html)
}

func (h *RequisitionHandler) buildPDFData(req *models.Requisition) *models.RequisitionPDFData {
	data := &models.RequisitionPDFData{
		Empresa:     h.Empresa,
		LogoPath:    h.PDFRepo.GetLogoForPDF(),
		Data:        req.Data,
		Posto:       req.Posto,
		Referente:   req.Referente,
		Placa:       req.Placa,
		Motorista:   req.Condutor,
		Setor:       req.Setor,
		Subsetor:    req.Subsetor,
		KmAtual:     req.Odometro,
		ValorTotal:  req.ValorTotal,
		Combustivel: req.Combustivel,
		Solicitante: req.Condutor,
	}
	if !req.TanqueCheio {
		data.Litros = req.TotalLitros
	}
	if req.Referente != "" {
		data.Justificativa = utils.JustificationHTML(req.Referente)
	}
	return data
}

func (h *RequisitionHandler) savePDF(filename string, pdfBytes []byte) error {
	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./pdfs"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(saveDir, filename), pdfBytes, 0644)
}

func (h *RequisitionHandler) mailPDF(req *models.Requisition, pdfBytes []byte, filename string) error {
	mailer := &utils.Mailer{Settings: h.Settings.Load()}
	body := "Segue em anexo a requisição de abastecimento para a placa " + req.Placa + "."
	return mailer.Send(utils.Message{
		To:             req.EmailPosto,
		Subject:        "Requisição de Abastecimento - Placa " + req.Placa,
		PlainBody:      body,
		Attachment:     pdfBytes,
		AttachmentName: filename,
	})
}

// filterRequisitions keeps the rows where any column contains the query,
// ignoring case. The derived quantity column participates too.
func filterRequisitions(list []*models.Requisition, q string) []*models.Requisition {
	q = strings.ToLower(q)
	out := make([]*models.Requisition, 0, len(list))
	for _, req := range list {
		haystack := strings.ToLower(strings.Join(utils.RequisitionFields(req), " ") + " " + req.Quantidade())
		if strings.Contains(haystack, q) {
			out = append(out, req)
		}
	}
	return out
}
