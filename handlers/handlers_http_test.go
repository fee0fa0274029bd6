package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"fuelreq/models"
	"fuelreq/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequisitionRepo is the in-memory stand-in for handler tests.
type fakeRequisitionRepo struct {
	rows   []*models.Requisition
	nextID int64
}

func (f *fakeRequisitionRepo) Insert(req *models.Requisition) (int64, error) {
	f.nextID++
	req.ID = f.nextID
	f.rows = append([]*models.Requisition{req}, f.rows...)
	return req.ID, nil
}

func (f *fakeRequisitionRepo) GetByID(id int64) (*models.Requisition, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRequisitionRepo) List() ([]*models.Requisition, error) {
	return f.rows, nil
}

func (f *fakeRequisitionRepo) UpdateCompletion(id int64, u *models.CompletionUpdate) error {
	r, _ := f.GetByID(id)
	if r == nil {
		return nil
	}
	r.KmUso = u.KmUso
	r.ValorTotal = u.ValorTotal
	r.TotalLitros = u.TotalLitros
	if u.DataUso != "" {
		r.DataUso = u.DataUso
	}
	return nil
}

func (f *fakeRequisitionRepo) UpdateStatus(ids []int64, status string) error {
	for _, id := range ids {
		if r, _ := f.GetByID(id); r != nil {
			r.Status = status
		}
	}
	return nil
}

func (f *fakeRequisitionRepo) Stats() (*models.FleetStats, error) {
	return &models.FleetStats{Veiculos: 2, TotalLitros: 100, ValorTotal: 600}, nil
}

func (f *fakeRequisitionRepo) TopPlates(limit int) ([]models.PlateCount, error) {
	return []models.PlateCount{{Placa: "AAA1A11", Requisicoes: 2}}, nil
}

func (f *fakeRequisitionRepo) RecentLiters(limit int) (float64, error) {
	return 100.5, nil
}

func decodeResponse(t *testing.T, body string) ApiResponse {
	t.Helper()
	var resp ApiResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp
}

func TestListRequisitionsCapsAtDisplayLimit(t *testing.T) {
	repo := &fakeRequisitionRepo{}
	for i := 0; i < listDisplayLimit+50; i++ {
		_, err := repo.Insert(&models.Requisition{Placa: fmt.Sprintf("PLT%04d", i), Status: "Enviada"})
		require.NoError(t, err)
	}
	h := &RequisitionHandler{Repo: repo}

	rec := httptest.NewRecorder()
	h.ListRequisitions(rec, httptest.NewRequest("GET", "/requisicoes", nil))

	require.Equal(t, 200, rec.Code)
	resp := decodeResponse(t, rec.Body.String())
	rows, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, listDisplayLimit)
}

func TestListRequisitionsNormalizesAndFallsBack(t *testing.T) {
	repo := &fakeRequisitionRepo{}
	_, err := repo.Insert(&models.Requisition{
		Placa:       "ABC1D23",
		Combustivel: "gasolina comum",
		Referente:   "Rota norte",
		Status:      "Enviada",
	})
	require.NoError(t, err)
	h := &RequisitionHandler{Repo: repo}

	rec := httptest.NewRecorder()
	h.ListRequisitions(rec, httptest.NewRequest("GET", "/requisicoes", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `"combustivel":"Gasolina"`)
	assert.Contains(t, body, `"observacoes":"Rota norte"`, "empty Observacoes falls back to Referente")
}

func TestListRequisitionsSearchQuery(t *testing.T) {
	repo := &fakeRequisitionRepo{}
	for _, placa := range []string{"ABC1D23", "XYZ9K88"} {
		_, err := repo.Insert(&models.Requisition{Placa: placa, Status: "Enviada"})
		require.NoError(t, err)
	}
	h := &RequisitionHandler{Repo: repo}

	rec := httptest.NewRecorder()
	h.ListRequisitions(rec, httptest.NewRequest("GET", "/requisicoes?q=xyz", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "XYZ9K88")
	assert.NotContains(t, body, "ABC1D23")
}

func TestCreateRequisitionRequiresPlate(t *testing.T) {
	h := &RequisitionHandler{Repo: &fakeRequisitionRepo{}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requisicoes", strings.NewReader(`{"placa":"  "}`))
	h.CreateRequisition(rec, req)

	require.Equal(t, 400, rec.Code)
	resp := decodeResponse(t, rec.Body.String())
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Placa")
}

func TestGetRequisitionNotFound(t *testing.T) {
	h := &RequisitionHandler{Repo: &fakeRequisitionRepo{}}

	rec := httptest.NewRecorder()
	h.GetRequisition(rec, httptest.NewRequest("GET", "/requisicoes/99", nil), "99")
	assert.Equal(t, 404, rec.Code)

	rec = httptest.NewRecorder()
	h.GetRequisition(rec, httptest.NewRequest("GET", "/requisicoes/x", nil), "x")
	assert.Equal(t, 400, rec.Code)
}

func TestUpdateStatusValidation(t *testing.T) {
	h := &RequisitionHandler{Repo: &fakeRequisitionRepo{}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/requisicoes/status", strings.NewReader(`{"ids":[],"status":"Abastecida"}`))
	h.UpdateStatus(rec, req)
	assert.Equal(t, 400, rec.Code)
}

func TestDashboardHandler(t *testing.T) {
	h := &DashboardHandler{Repo: &fakeRequisitionRepo{}}

	rec := httptest.NewRecorder()
	h.Dashboard(rec, httptest.NewRequest("GET", "/dashboard", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"veiculos_distintos":2`)
	assert.Contains(t, body, `"total_litros":100`)
}

func TestNarrativesHandler(t *testing.T) {
	h := &DashboardHandler{Repo: &fakeRequisitionRepo{}}

	rec := httptest.NewRecorder()
	h.Narratives(rec, httptest.NewRequest("GET", "/narrativas", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "100,50")
	assert.Contains(t, body, "AAA1A11 (2)")
}

func TestSettingsHandlerRoundTrip(t *testing.T) {
	store := repository.NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
	h := &SettingsHandler{Store: store}

	// defaults come back before anything is saved
	rec := httptest.NewRecorder()
	h.GetSettings(rec, httptest.NewRequest("GET", "/configuracoes", nil))
	assert.Contains(t, rec.Body.String(), "smtp.gmail.com")

	rec = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/configuracoes", strings.NewReader(
		`{"smtp_server":"mail.example.com","smtp_port":465,"smtp_user":"frota@example.com","smtp_password":"x","smtp_use_tls":true}`))
	h.SaveSettings(rec, req)
	require.Equal(t, 200, rec.Code)

	saved := store.Load()
	assert.Equal(t, "mail.example.com", saved.SMTPServer)
	assert.Equal(t, 465, saved.SMTPPort)
}

func TestSettingsHandlerRejectsBadPort(t *testing.T) {
	store := repository.NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
	h := &SettingsHandler{Store: store}

	for _, port := range []int{0, -1, 70000} {
		rec := httptest.NewRecorder()
		body := fmt.Sprintf(`{"smtp_server":"mail.example.com","smtp_port":%d,"smtp_user":"u"}`, port)
		h.SaveSettings(rec, httptest.NewRequest("POST", "/configuracoes", strings.NewReader(body)))
		assert.Equal(t, 400, rec.Code, "port %d", port)
	}
}
