package models

import "strconv"

// Requisition is one row of the abastecimentos table: a request to fuel a
// vehicle, later completed with actual usage data (KmUso, valor_total,
// total_litros, DataUso).
type Requisition struct {
	ID          int64    `json:"id" db:"id"`
	Placa       string   `json:"placa" db:"Placa"`
	ValorTotal  *float64 `json:"valor_total,omitempty" db:"valor_total"`
	TotalLitros *float64 `json:"total_litros,omitempty" db:"total_litros"`
	Data        string   `json:"data" db:"data"` // YYYY-MM-DD
	Referente   string   `json:"referente,omitempty" db:"Referente"`
	Odometro    *int64   `json:"odometro,omitempty" db:"Odometro"`
	Posto       string   `json:"posto,omitempty" db:"Posto"`
	Combustivel string   `json:"combustivel,omitempty" db:"Combustivel"`
	Condutor    string   `json:"condutor,omitempty" db:"Condutor"`
	Unidade     string   `json:"unidade,omitempty" db:"Unidade"`
	Setor       string   `json:"setor,omitempty" db:"Setor"`
	Status      string   `json:"status,omitempty" db:"Status"`
	Subsetor    string   `json:"subsetor,omitempty" db:"Subsetor"`
	Observacoes string   `json:"observacoes,omitempty" db:"Observacoes"`
	TanqueCheio bool     `json:"tanque_cheio" db:"TanqueCheio"`
	DataUso     string   `json:"data_uso,omitempty" db:"DataUso"`
	KmUso       *int64   `json:"km_uso,omitempty" db:"KmUso"`
	EmailPosto  string   `json:"email_posto,omitempty" db:"EmailPosto"`
	TipoPosto   string   `json:"tipo_posto,omitempty" db:"TipoPosto"` // Próprio | Terceiro
}

// Quantidade is the list-screen quantity column: the liter amount, or the
// literal "Tanque cheio" when the full-tank flag is set.
func (r *Requisition) Quantidade() string {
	if r.TanqueCheio {
		return "Tanque cheio"
	}
	if r.TotalLitros == nil {
		return ""
	}
	return strconv.FormatFloat(*r.TotalLitros, 'f', -1, 64)
}

// CompletionUpdate carries the only fields the completion step may touch.
type CompletionUpdate struct {
	KmUso       *int64   `json:"km_uso"`
	ValorTotal  *float64 `json:"valor_total"`
	TotalLitros *float64 `json:"total_litros"`
	DataUso     string   `json:"data_uso"`
}

// FleetStats are the dashboard KPIs.
type FleetStats struct {
	Veiculos    int     `json:"veiculos_distintos"`
	TotalLitros float64 `json:"total_litros"`
	ValorTotal  float64 `json:"valor_total"`
}

// PlateCount is one entry of the narrative top-plates ranking.
type PlateCount struct {
	Placa       string `json:"placa"`
	Requisicoes int    `json:"requisicoes"`
}
