package repository

import (
	"database/sql"

	"fuelreq/models"
)

type SQLiteVehicleRepo struct {
	DB *sql.DB
}

func NewSQLiteVehicleRepo(db *sql.DB) *SQLiteVehicleRepo {
	return &SQLiteVehicleRepo{DB: db}
}

func (r *SQLiteVehicleRepo) Upsert(v *models.Vehicle) error {
	_, err := r.DB.Exec(`
		INSERT INTO cadastros (Placa, Condutor, Unidade, Setor, Categoria, Marca, Modelo)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(Placa) DO UPDATE SET
			Condutor = excluded.Condutor,
			Unidade = excluded.Unidade,
			Setor = excluded.Setor,
			Categoria = excluded.Categoria,
			Marca = excluded.Marca,
			Modelo = excluded.Modelo
	`, v.Placa, v.Condutor, v.Unidade, v.Setor, v.Categoria, v.Marca, v.Modelo)
	return err
}

func (r *SQLiteVehicleRepo) List() ([]*models.Vehicle, error) {
	rows, err := r.DB.Query(`
		SELECT id, Placa, Condutor, Unidade, Setor, Categoria, Marca, Modelo
		FROM cadastros ORDER BY Placa
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

func scanVehicle(row interface{ Scan(...interface{}) error }) (*models.Vehicle, error) {
	var (
		v                models.Vehicle
		cond, uni, setor sql.NullString
		cat, marca, mod  sql.NullString
	)
	if err := row.Scan(&v.ID, &v.Placa, &cond, &uni, &setor, &cat, &marca, &mod); err != nil {
		return nil, err
	}
	v.Condutor = cond.String
	v.Unidade = uni.String
	v.Setor = setor.String
	v.Categoria = cat.String
	v.Marca = marca.String
	v.Modelo = mod.String
	return &v, nil
}
