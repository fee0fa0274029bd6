package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fuelreq/models"

	"github.com/xuri/excelize/v2"
)

var requisitionExportHeader = []string{
	"ID", "Placa", "Valor Total", "Total de litros", "Data", "Referente",
	"Odometro", "Posto", "Combustivel", "Condutor", "Unidade", "Setor",
	"Status", "Subsetor", "Observacoes", "TanqueCheio", "DataUso", "KmUso",
	"EmailPosto", "TipoPosto",
}

// VehicleImportHeader is the exact header row the registry import requires.
var VehicleImportHeader = []string{"Placa", "Categoria", "Marca", "Modelo", "Condutor", "Unidade", "Setor"}

// RequisitionImportHeader is the exact header row the requisition import requires.
var RequisitionImportHeader = []string{
	"Placa", "Valor Total", "Total de litros", "Data", "Referente",
	"Odometro", "Posto", "Combustivel", "Condutor", "Unidade", "Setor",
}

// RequisitionFields returns every column of a requisition as text, in
// export-header order. The list screen search also matches against it.
func RequisitionFields(r *models.Requisition) []string {
	row := []string{
		strconv.FormatInt(r.ID, 10), r.Placa,
		floatCell(r.ValorTotal), floatCell(r.TotalLitros),
		r.Data, r.Referente, intCell(r.Odometro), r.Posto, r.Combustivel,
		r.Condutor, r.Unidade, r.Setor, r.Status, r.Subsetor, r.Observacoes,
		boolCell(r.TanqueCheio), r.DataUso, intCell(r.KmUso),
		r.EmailPosto, r.TipoPosto,
	}
	return row
}

func floatCell(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func intCell(i *int64) string {
	if i == nil {
		return ""
	}
	return strconv.FormatInt(*i, 10)
}

func boolCell(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// BuildRequisitionWorkbook renders all requisitions as an xlsx workbook.
func BuildRequisitionWorkbook(list []*models.Requisition) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(requisitionExportHeader))
	for i, h := range requisitionExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, r := range list {
		cells := RequisitionFields(r)
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildRequisitionCSV is the fallback export when workbook rendering fails.
func BuildRequisitionCSV(list []*models.Requisition) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(requisitionExportHeader); err != nil {
		return nil, err
	}
	for _, r := range list {
		if err := w.Write(RequisitionFields(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// readTabular loads the first sheet of an xlsx upload, or the whole file as
// CSV for anything else.
func readTabular(r io.Reader, filename string) ([][]string, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("planilha vazia")
		}
		return f.GetRows(sheets[0])
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func checkHeader(got, want []string) error {
	if len(got) < len(want) {
		return fmt.Errorf("cabeçalho inválido: esperado %s", strings.Join(want, ", "))
	}
	for i, h := range want {
		if strings.TrimSpace(got[i]) != h {
			return fmt.Errorf("cabeçalho inválido: esperado %s", strings.Join(want, ", "))
		}
	}
	// trailing blank cells are tolerated (xlsx readers and CSVs with a
	// dangling separator produce them), named surplus columns are not
	for _, h := range got[len(want):] {
		if strings.TrimSpace(h) != "" {
			return fmt.Errorf("cabeçalho inválido: esperado %s", strings.Join(want, ", "))
		}
	}
	return nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseVehicleImport reads a registry import (xlsx or CSV). Any data row
// without a plate rejects the entire import.
func ParseVehicleImport(r io.Reader, filename string) ([]models.Vehicle, error) {
	rows, err := readTabular(r, filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("arquivo vazio")
	}
	if err := checkHeader(rows[0], VehicleImportHeader); err != nil {
		return nil, err
	}

	var vehicles []models.Vehicle
	for i, row := range rows[1:] {
		placa := cellAt(row, 0)
		if placa == "" {
			return nil, fmt.Errorf("linha %d sem Placa - importação rejeitada", i+2)
		}
		vehicles = append(vehicles, models.Vehicle{
			Placa:     placa,
			Categoria: cellAt(row, 1),
			Marca:     cellAt(row, 2),
			Modelo:    cellAt(row, 3),
			Condutor:  cellAt(row, 4),
			Unidade:   cellAt(row, 5),
			Setor:     cellAt(row, 6),
		})
	}
	return vehicles, nil
}

// ParseRequisitionImport reads a requisition import (xlsx or CSV), same
// whole-import rejection rule as the registry import.
func ParseRequisitionImport(r io.Reader, filename string) ([]models.Requisition, error) {
	rows, err := readTabular(r, filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("arquivo vazio")
	}
	if err := checkHeader(rows[0], RequisitionImportHeader); err != nil {
		return nil, err
	}

	var reqs []models.Requisition
	for i, row := range rows[1:] {
		placa := cellAt(row, 0)
		if placa == "" {
			return nil, fmt.Errorf("linha %d sem Placa - importação rejeitada", i+2)
		}
		req := models.Requisition{
			Placa:       placa,
			Data:        cellAt(row, 3),
			Referente:   cellAt(row, 4),
			Posto:       cellAt(row, 6),
			Combustivel: NormalizeFuel(cellAt(row, 7)),
			Condutor:    cellAt(row, 8),
			Unidade:     cellAt(row, 9),
			Setor:       cellAt(row, 10),
		}
		if v, err := strconv.ParseFloat(strings.ReplaceAll(cellAt(row, 1), ",", "."), 64); err == nil {
			req.ValorTotal = &v
		}
		if l, err := strconv.ParseFloat(strings.ReplaceAll(cellAt(row, 2), ",", "."), 64); err == nil {
			req.TotalLitros = &l
		}
		if o, err := strconv.ParseInt(cellAt(row, 5), 10, 64); err == nil {
			req.Odometro = &o
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
