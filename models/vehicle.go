package models

// Vehicle is one row of the cadastros registry, keyed by license plate.
// Created on the first requisition referencing a new plate or via bulk
// import; upserted by plate, last write wins; never deleted.
type Vehicle struct {
	ID        int64  `json:"id" db:"id"`
	Placa     string `json:"placa" db:"Placa"`
	Condutor  string `json:"condutor,omitempty" db:"Condutor"`
	Unidade   string `json:"unidade,omitempty" db:"Unidade"`
	Setor     string `json:"setor,omitempty" db:"Setor"`
	Categoria string `json:"categoria,omitempty" db:"Categoria"`
	Marca     string `json:"marca,omitempty" db:"Marca"`
	Modelo    string `json:"modelo,omitempty" db:"Modelo"`
}
