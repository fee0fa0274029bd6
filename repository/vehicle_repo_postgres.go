package repository

import (
	"database/sql"

	"fuelreq/models"
)

type PostgresVehicleRepo struct {
	DB *sql.DB
}

func NewPostgresVehicleRepo(db *sql.DB) *PostgresVehicleRepo {
	return &PostgresVehicleRepo{DB: db}
}

func (r *PostgresVehicleRepo) Upsert(v *models.Vehicle) error {
	_, err := r.DB.Exec(`
		INSERT INTO cadastros ("Placa", "Condutor", "Unidade", "Setor", "Categoria", "Marca", "Modelo")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT("Placa") DO UPDATE SET
			"Condutor" = excluded."Condutor",
			"Unidade" = excluded."Unidade",
			"Setor" = excluded."Setor",
			"Categoria" = excluded."Categoria",
			"Marca" = excluded."Marca",
			"Modelo" = excluded."Modelo"
	`, v.Placa, v.Condutor, v.Unidade, v.Setor, v.Categoria, v.Marca, v.Modelo)
	return err
}

func (r *PostgresVehicleRepo) List() ([]*models.Vehicle, error) {
	rows, err := r.DB.Query(`
		SELECT id, "Placa", "Condutor", "Unidade", "Setor", "Categoria", "Marca", "Modelo"
		FROM cadastros ORDER BY "Placa"
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
