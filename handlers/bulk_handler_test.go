package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"fuelreq/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVehicleRepo struct {
	byPlate map[string]models.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{byPlate: map[string]models.Vehicle{}}
}

func (f *fakeVehicleRepo) Upsert(v *models.Vehicle) error {
	f.byPlate[v.Placa] = *v
	return nil
}

func (f *fakeVehicleRepo) List() ([]*models.Vehicle, error) {
	var out []*models.Vehicle
	for plate := range f.byPlate {
		v := f.byPlate[plate]
		out = append(out, &v)
	}
	return out, nil
}

func TestImportVehiclesCSV(t *testing.T) {
	vehicles := newFakeVehicleRepo()
	h := &BulkHandler{Vehicles: vehicles}

	csvData := strings.Join([]string{
		"Placa,Categoria,Marca,Modelo,Condutor,Unidade,Setor",
		"ABC1D23,Caminhão,Volvo,FH540,João,Matriz,Logística",
	}, "\n")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "cadastros.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csvData))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/importar/cadastros", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ImportVehicles(rec, req)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "1 cadastros importados")
	assert.Equal(t, "Volvo", vehicles.byPlate["ABC1D23"].Marca)
}

func TestImportVehiclesRejectsWholeFileOnBadRow(t *testing.T) {
	vehicles := newFakeVehicleRepo()
	h := &BulkHandler{Vehicles: vehicles}

	csvData := strings.Join([]string{
		"Placa,Categoria,Marca,Modelo,Condutor,Unidade,Setor",
		"ABC1D23,Caminhão,Volvo,FH540,João,Matriz,Logística",
		",Utilitário,Fiat,Fiorino,Maria,Filial,Vendas",
	}, "\n")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "cadastros.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csvData))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/importar/cadastros", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ImportVehicles(rec, req)

	require.Equal(t, 400, rec.Code)
	assert.Empty(t, vehicles.byPlate, "nothing persisted when any row is invalid")
}

func TestImportRequisitionsNormalizesFuel(t *testing.T) {
	repo := &fakeRequisitionRepo{}
	h := &BulkHandler{Repo: repo, Vehicles: newFakeVehicleRepo()}

	csvData := strings.Join([]string{
		"Placa,Valor Total,Total de litros,Data,Referente,Odometro,Posto,Combustivel,Condutor,Unidade,Setor",
		"ABC1D23,150,40,2026-08-30,Rota,123,Posto Central,diesel s500 comum,João,Matriz,Log",
	}, "\n")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "abastecimentos.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csvData))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/importar/abastecimentos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ImportRequisitions(rec, req)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	require.Len(t, repo.rows, 1)
	assert.Equal(t, "Diesel S500", repo.rows[0].Combustivel)
	assert.Equal(t, "Enviada", repo.rows[0].Status, "imports default to sent")
}

func TestExportRequisitionsXLSX(t *testing.T) {
	repo := &fakeRequisitionRepo{}
	litros := 40.5
	_, err := repo.Insert(&models.Requisition{Placa: "ABC1D23", TotalLitros: &litros, Status: "Enviada"})
	require.NoError(t, err)
	h := &BulkHandler{Repo: repo}

	rec := httptest.NewRecorder()
	h.ExportRequisitions(rec, httptest.NewRequest("GET", "/exportar/abastecimentos", nil))

	require.Equal(t, 200, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "abastecimentos_")
}
