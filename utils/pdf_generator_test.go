package utils

import (
	"testing"
	"time"

	"fuelreq/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int64) *int64     { return &v }

func TestMetaRowsFixedOrder(t *testing.T) {
	p := &models.RequisitionPDFData{
		Data:      "2026-08-30",
		Posto:     "Posto Central",
		Referente: "Troca de rota",
		Placa:     "ABC1D23",
		Motorista: "João",
		Setor:     "Logística",
		Subsetor:  "Entrega",
	}
	rows := MetaRows(p)
	require.Len(t, rows, 8)
	assert.Equal(t, "Data da Requisição:", rows[0][0])
	assert.Equal(t, "2026-08-30", rows[0][1])
	assert.Equal(t, "Placa:", rows[3][0])
	assert.Equal(t, "Subsetor:", rows[7][0])
}

func TestMetaRowsOmitsZeroAndNilNumerics(t *testing.T) {
	p := &models.RequisitionPDFData{Placa: "ABC1D23"}
	base := len(MetaRows(p))

	p.ValorTotal = ptrF(0)
	p.Litros = ptrF(0)
	p.KmAtual = ptrI(0)
	assert.Len(t, MetaRows(p), base, "zero numerics must not add rows")

	p.ValorTotal = ptrF(150.5)
	p.Litros = ptrF(40)
	p.KmAtual = ptrI(123456)
	rows := MetaRows(p)
	require.Len(t, rows, base+3)
	assert.Equal(t, [2]string{"Quilometragem atual (no momento):", "123456"}, rows[base])
	assert.Equal(t, [2]string{"Quantidade abastecida (L):", "40"}, rows[base+1])
	assert.Equal(t, [2]string{"Valor total:", "R$ 150,50"}, rows[base+2])
}

func TestMetaRowsFuelRow(t *testing.T) {
	p := &models.RequisitionPDFData{Combustivel: "Gasolina"}
	rows := MetaRows(p)
	assert.Equal(t, [2]string{"Combustível:", "Gasolina"}, rows[len(rows)-1])
}

func TestJustificationHTML(t *testing.T) {
	got := JustificationHTML("linha 1\nlinha 2 <script>")
	assert.Equal(t, "linha 1<br/>linha 2 &lt;script&gt;", string(got))
}

func TestBuildRequisitionHTML(t *testing.T) {
	p := &models.RequisitionPDFData{
		Empresa:     "Frango Americano",
		Data:        "2026-08-30",
		Placa:       "ABC1D23",
		Combustivel: "Gasolina",
		Litros:      ptrF(50),
		ValorTotal:  ptrF(0),
		GeradoEm:    "30/08/2026 10:00",
	}
	html, err := BuildRequisitionHTML(p, "../templates/requisition_template.html")
	require.NoError(t, err)

	s := string(html)
	assert.Contains(t, s, "Requisição de Abastecimento")
	assert.Contains(t, s, "Frango Americano")
	assert.Contains(t, s, "Combustível:")
	assert.Contains(t, s, "Gasolina")
	assert.Contains(t, s, "Quantidade abastecida (L):")
	assert.Contains(t, s, "50")
	assert.NotContains(t, s, "Valor total:", "zero value must not render a row")
}

func TestBuildRequisitionHTMLMissingLogoDropped(t *testing.T) {
	p := &models.RequisitionPDFData{
		LogoPath: "/nonexistent/logo.png",
		GeradoEm: "30/08/2026 10:00",
	}
	html, err := BuildRequisitionHTML(p, "../templates/requisition_template.html")
	require.NoError(t, err)
	assert.NotContains(t, string(html), "/nonexistent/logo.png")
}

func TestRequisitionFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "requisicao_ABC1D23_20260830140509.pdf", RequisitionFilename("ABC1D23", now))
}
