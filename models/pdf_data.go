package models

import "html/template"

// RequisitionPDFData is the flat payload the report generator renders.
// Numeric fields are pointers so that absent and zero values can both be
// treated as "omit the row".
type RequisitionPDFData struct {
	Empresa     string
	LogoPath    string
	Data        string
	Posto       string
	Referente   string
	Placa       string
	Motorista   string
	Supervisor  string
	Setor       string
	Subsetor    string
	KmAtual     *int64
	Litros      *float64
	ValorTotal  *float64
	Combustivel string
	Solicitante string

	// Justificativa is the free-text block; newlines already converted to
	// <br/> by the generator.
	Justificativa template.HTML

	// Filled by the generator before template execution.
	GeradoEm string
	MetaRows [][2]string
}
