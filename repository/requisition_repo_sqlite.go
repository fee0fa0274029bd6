package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"fuelreq/models"
)

type SQLiteRequisitionRepo struct {
	DB *sql.DB
}

func NewSQLiteRequisitionRepo(db *sql.DB) *SQLiteRequisitionRepo {
	return &SQLiteRequisitionRepo{DB: db}
}

const requisitionColumns = `id, Placa, valor_total, total_litros, data, Referente, Odometro, Posto,
	Combustivel, Condutor, Unidade, Setor, Status, Subsetor, Observacoes,
	TanqueCheio, DataUso, KmUso, EmailPosto, TipoPosto`

func scanRequisition(row interface{ Scan(...interface{}) error }) (*models.Requisition, error) {
	var (
		req                 models.Requisition
		valor, litros       sql.NullFloat64
		odo, km, tanque     sql.NullInt64
		data, ref, posto    sql.NullString
		comb, cond, uni     sql.NullString
		setor, status, subs sql.NullString
		obs, dataUso, email sql.NullString
		tipo                sql.NullString
	)
	err := row.Scan(
		&req.ID, &req.Placa, &valor, &litros, &data, &ref, &odo, &posto,
		&comb, &cond, &uni, &setor, &status, &subs, &obs,
		&tanque, &dataUso, &km, &email, &tipo,
	)
	if err != nil {
		return nil, err
	}
	if valor.Valid {
		req.ValorTotal = &valor.Float64
	}
	if litros.Valid {
		req.TotalLitros = &litros.Float64
	}
	if odo.Valid {
		req.Odometro = &odo.Int64
	}
	if km.Valid {
		req.KmUso = &km.Int64
	}
	req.TanqueCheio = tanque.Valid && tanque.Int64 == 1
	req.Data = data.String
	req.Referente = ref.String
	req.Posto = posto.String
	req.Combustivel = comb.String
	req.Condutor = cond.String
	req.Unidade = uni.String
	req.Setor = setor.String
	req.Status = status.String
	req.Subsetor = subs.String
	req.Observacoes = obs.String
	req.DataUso = dataUso.String
	req.EmailPosto = email.String
	req.TipoPosto = tipo.String
	return &req, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *SQLiteRequisitionRepo) Insert(req *models.Requisition) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO abastecimentos
		(Placa, valor_total, total_litros, data, Referente, Odometro, Posto, Combustivel,
		 Condutor, Unidade, Setor, Status, Subsetor, Observacoes, TanqueCheio, DataUso,
		 KmUso, EmailPosto, TipoPosto)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		req.Placa, req.ValorTotal, req.TotalLitros, req.Data, req.Referente, req.Odometro,
		req.Posto, req.Combustivel, req.Condutor, req.Unidade, req.Setor, req.Status,
		req.Subsetor, req.Observacoes, boolToInt(req.TanqueCheio), nullIfEmpty(req.DataUso),
		req.KmUso, req.EmailPosto, req.TipoPosto,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	req.ID = id
	return id, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (r *SQLiteRequisitionRepo) GetByID(id int64) (*models.Requisition, error) {
	row := r.DB.QueryRow(`SELECT `+requisitionColumns+` FROM abastecimentos WHERE id = ?`, id)
	req, err := scanRequisition(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *SQLiteRequisitionRepo) List() ([]*models.Requisition, error) {
	rows, err := r.DB.Query(`SELECT ` + requisitionColumns + ` FROM abastecimentos ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Requisition
	for rows.Next() {
		req, err := scanRequisition(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

// UpdateCompletion touches only the usage fields; plate, request date and
// status stay as written. Fields absent from the payload keep their stored
// value, so a partial completion never erases an earlier one.
func (r *SQLiteRequisitionRepo) UpdateCompletion(id int64, u *models.CompletionUpdate) error {
	if u.DataUso != "" {
		_, err := r.DB.Exec(`
			UPDATE abastecimentos
			SET KmUso = COALESCE(?, KmUso),
			    valor_total = COALESCE(?, valor_total),
			    total_litros = COALESCE(?, total_litros),
			    DataUso = ?
			WHERE id = ?
		`, u.KmUso, u.ValorTotal, u.TotalLitros, u.DataUso, id)
		return err
	}
	_, err := r.DB.Exec(`
		UPDATE abastecimentos
		SET KmUso = COALESCE(?, KmUso),
		    valor_total = COALESCE(?, valor_total),
		    total_litros = COALESCE(?, total_litros)
		WHERE id = ?
	`, u.KmUso, u.ValorTotal, u.TotalLitros, id)
	return err
}

func (r *SQLiteRequisitionRepo) UpdateStatus(ids []int64, status string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, status)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	query := fmt.Sprintf(`UPDATE abastecimentos SET Status = ? WHERE id IN (%s)`, strings.Join(placeholders, ","))
	_, err := r.DB.Exec(query, args...)
	return err
}

func (r *SQLiteRequisitionRepo) Stats() (*models.FleetStats, error) {
	var stats models.FleetStats
	err := r.DB.QueryRow(`
		SELECT COUNT(DISTINCT Placa), COALESCE(SUM(total_litros), 0), COALESCE(SUM(valor_total), 0)
		FROM abastecimentos
	`).Scan(&stats.Veiculos, &stats.TotalLitros, &stats.ValorTotal)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *SQLiteRequisitionRepo) TopPlates(limit int) ([]models.PlateCount, error) {
	rows, err := r.DB.Query(`
		SELECT Placa, COUNT(*) AS c
		FROM abastecimentos
		WHERE Placa IS NOT NULL AND Placa != ''
		GROUP BY Placa
		ORDER BY c DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.PlateCount
	for rows.Next() {
		var pc models.PlateCount
		if err := rows.Scan(&pc.Placa, &pc.Requisicoes); err != nil {
			return nil, err
		}
		result = append(result, pc)
	}
	return result, rows.Err()
}

func (r *SQLiteRequisitionRepo) RecentLiters(limit int) (float64, error) {
	var total float64
	err := r.DB.QueryRow(`
		SELECT COALESCE(SUM(total_litros), 0) FROM (
			SELECT total_litros FROM abastecimentos ORDER BY data DESC LIMIT ?
		)
	`, limit).Scan(&total)
	return total, err
}
