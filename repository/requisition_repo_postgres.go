package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"fuelreq/models"
)

type PostgresRequisitionRepo struct {
	DB *sql.DB
}

func NewPostgresRequisitionRepo(db *sql.DB) *PostgresRequisitionRepo {
	return &PostgresRequisitionRepo{DB: db}
}

const requisitionColumnsPG = `id, "Placa", valor_total, total_litros, data, "Referente", "Odometro", "Posto",
	"Combustivel", "Condutor", "Unidade", "Setor", "Status", "Subsetor", "Observacoes",
	"TanqueCheio", "DataUso", "KmUso", "EmailPosto", "TipoPosto"`

func (r *PostgresRequisitionRepo) Insert(req *models.Requisition) (int64, error) {
	err := r.DB.QueryRow(`
		INSERT INTO abastecimentos
		("Placa", valor_total, total_litros, data, "Referente", "Odometro", "Posto", "Combustivel",
		 "Condutor", "Unidade", "Setor", "Status", "Subsetor", "Observacoes", "TanqueCheio", "DataUso",
		 "KmUso", "EmailPosto", "TipoPosto")
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING id
	`,
		req.Placa, req.ValorTotal, req.TotalLitros, req.Data, req.Referente, req.Odometro,
		req.Posto, req.Combustivel, req.Condutor, req.Unidade, req.Setor, req.Status,
		req.Subsetor, req.Observacoes, boolToInt(req.TanqueCheio), nullIfEmpty(req.DataUso),
		req.KmUso, req.EmailPosto, req.TipoPosto,
	).Scan(&req.ID)
	if err != nil {
		return 0, err
	}
	return req.ID, nil
}

func (r *PostgresRequisitionRepo) GetByID(id int64) (*models.Requisition, error) {
	row := r.DB.QueryRow(`SELECT `+requisitionColumnsPG+` FROM abastecimentos WHERE id = $1`, id)
	req, err := scanRequisition(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *PostgresRequisitionRepo) List() ([]*models.Requisition, error) {
	rows, err := r.DB.Query(`SELECT ` + requisitionColumnsPG + ` FROM abastecimentos ORDER BY id DESC`)
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

func (r *PostgresRequisitionRepo) UpdateCompletion(id int64, u *models.CompletionUpdate) error {
	if u.DataUso != "" {
		_, err := r.DB.Exec(`
			UPDATE abastecimentos
			SET "KmUso" = COALESCE($1, "KmUso"),
			    valor_total = COALESCE($2, valor_total),
			    total_litros = COALESCE($3, total_litros),
			    "DataUso" = $4
			WHERE id = $5
		`, u.KmUso, u.ValorTotal, u.TotalLitros, u.DataUso, id)
		return err
	}
	_, err := r.DB.Exec(`
		UPDATE abastecimentos
		SET "KmUso" = COALESCE($1, "KmUso"),
		    valor_total = COALESCE($2, valor_total),
		    total_litros = COALESCE($3, total_litros)
		WHERE id = $4
	`, u.KmUso, u.ValorTotal, u.TotalLitros, id)
	return err
}

func (r *PostgresRequisitionRepo) UpdateStatus(ids []int64, status string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, status)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}
	query := fmt.Sprintf(`UPDATE abastecimentos SET "Status" = $1 WHERE id IN (%s)`, strings.Join(placeholders, ","))
	_, err := r.DB.Exec(query, args...)
	return err
}

func (r *PostgresRequisitionRepo) Stats() (*models.FleetStats, error) {
	var stats models.FleetStats
	err := r.DB.QueryRow(`
		SELECT COUNT(DISTINCT "Placa"), COALESCE(SUM(total_litros), 0), COALESCE(SUM(valor_total), 0)
		FROM abastecimentos
	`).Scan(&stats.Veiculos, &stats.TotalLitros, &stats.ValorTotal)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *PostgresRequisitionRepo) TopPlates(limit int) ([]models.PlateCount, error) {
	rows, err := r.DB.Query(`
		SELECT "Placa", COUNT(*) AS c
		FROM abastecimentos
		WHERE "Placa" IS NOT NULL AND "Placa" != ''
		GROUP BY "Placa"
		ORDER BY c DESC
		LIMIT $1
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

func (r *PostgresRequisitionRepo) RecentLiters(limit int) (float64, error) {
	var total float64
	err := r.DB.QueryRow(`
		SELECT COALESCE(SUM(total_litros), 0) FROM (
			SELECT total_litros FROM abastecimentos ORDER BY data DESC LIMIT $1
		) recent
	`, limit).Scan(&total)
	return total, err
}
