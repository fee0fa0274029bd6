package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"fuelreq/db"
	"fuelreq/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, db.RunMigrations(db.SQLite, path, "file://../db/migrations/sqlite"))

	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestInsertAndReadBack(t *testing.T) {
	repo := NewSQLiteRequisitionRepo(newTestStore(t))

	valor := 0.0
	odo := int64(123456)
	id, err := repo.Insert(&models.Requisition{
		Placa:       "ABC1D23",
		ValorTotal:  &valor,
		Data:        "2026-08-30",
		Referente:   "Rota norte",
		Odometro:    &odo,
		Posto:       "Posto Central",
		Combustivel: "Gasolina",
		Condutor:    "João",
		Status:      "Enviada",
		TanqueCheio: true,
		EmailPosto:  "posto@example.com",
		TipoPosto:   "Terceiro",
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ABC1D23", got.Placa)
	assert.True(t, got.TanqueCheio)
	assert.Nil(t, got.TotalLitros, "full tank stores no liter amount")
	require.NotNil(t, got.ValorTotal)
	assert.Equal(t, 0.0, *got.ValorTotal)
	require.NotNil(t, got.Odometro)
	assert.Equal(t, int64(123456), *got.Odometro)
	assert.Equal(t, "Enviada", got.Status)
	assert.Empty(t, got.DataUso)
}

func TestGetByIDMissing(t *testing.T) {
	repo := NewSQLiteRequisitionRepo(newTestStore(t))
	got, err := repo.GetByID(999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateCompletionTouchesOnlyUsageFields(t *testing.T) {
	repo := NewSQLiteRequisitionRepo(newTestStore(t))

	valor := 0.0
	id, err := repo.Insert(&models.Requisition{
		Placa:       "ABC1D23",
		ValorTotal:  &valor,
		Data:        "2026-08-30",
		Posto:       "Posto Central",
		Combustivel: "Gasolina",
		Status:      "Enviada",
	})
	require.NoError(t, err)

	km := int64(124000)
	newValor := 310.75
	litros := 52.3
	require.NoError(t, repo.UpdateCompletion(id, &models.CompletionUpdate{
		KmUso:       &km,
		ValorTotal:  &newValor,
		TotalLitros: &litros,
		DataUso:     "2026-08-31",
	}))

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got.KmUso)
	assert.Equal(t, km, *got.KmUso)
	assert.Equal(t, newValor, *got.ValorTotal)
	assert.Equal(t, litros, *got.TotalLitros)
	assert.Equal(t, "2026-08-31", got.DataUso)

	// everything else untouched
	assert.Equal(t, "ABC1D23", got.Placa)
	assert.Equal(t, "2026-08-30", got.Data)
	assert.Equal(t, "Posto Central", got.Posto)
	assert.Equal(t, "Enviada", got.Status)
}

func TestUpdateCompletionKeepsOmittedFields(t *testing.T) {
	repo := NewSQLiteRequisitionRepo(newTestStore(t))

	id, err := repo.Insert(&models.Requisition{Placa: "ABC1D23", Data: "2026-08-30", Status: "Enviada"})
	require.NoError(t, err)

	km := int64(124000)
	valor := 310.75
	litros := 52.3
	require.NoError(t, repo.UpdateCompletion(id, &models.CompletionUpdate{
		KmUso:       &km,
		ValorTotal:  &valor,
		TotalLitros: &litros,
	}))

	// a later payload carrying only liters leaves km and value alone
	newLitros := 60.0
	require.NoError(t, repo.UpdateCompletion(id, &models.CompletionUpdate{
		TotalLitros: &newLitros,
	}))

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got.KmUso)
	assert.Equal(t, km, *got.KmUso)
	require.NotNil(t, got.ValorTotal)
	assert.Equal(t, valor, *got.ValorTotal)
	require.NotNil(t, got.TotalLitros)
	assert.Equal(t, newLitros, *got.TotalLitros)
}

func TestUpdateStatusBulk(t *testing.T) {
	repo := NewSQLiteRequisitionRepo(newTestStore(t))

	var ids []int64
	for _, placa := range []string{"AAA1A11", "BBB2B22", "CCC3C33"} {
		id, err := repo.Insert(&models.Requisition{Placa: placa, Status: "Enviada"})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	require.NoError(t, repo.UpdateStatus(ids[:2], "Abastecida"))

	first, _ := repo.GetByID(ids[0])
	third, _ := repo.GetByID(ids[2])
	assert.Equal(t, "Abastecida", first.Status)
	assert.Equal(t, "Enviada", third.Status)

	// empty batch is a no-op
	require.NoError(t, repo.UpdateStatus(nil, "Cancelada"))
}

func TestStatsAndRankings(t *testing.T) {
	repo := NewSQLiteRequisitionRepo(newTestStore(t))

	insert := func(placa string, litros, valor float64) {
		id, err := repo.Insert(&models.Requisition{Placa: placa, Data: "2026-08-30", Status: "Enviada"})
		require.NoError(t, err)
		require.NoError(t, repo.UpdateCompletion(id, &models.CompletionUpdate{
			TotalLitros: &litros,
			ValorTotal:  &valor,
		}))
	}
	insert("AAA1A11", 50, 300)
	insert("AAA1A11", 30, 180)
	insert("BBB2B22", 20, 120)

	stats, err := repo.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Veiculos)
	assert.Equal(t, 100.0, stats.TotalLitros)
	assert.Equal(t, 600.0, stats.ValorTotal)

	top, err := repo.TopPlates(5)
	require.NoError(t, err)
	require.NotEmpty(t, top)
	assert.Equal(t, "AAA1A11", top[0].Placa)
	assert.Equal(t, 2, top[0].Requisicoes)

	liters, err := repo.RecentLiters(200)
	require.NoError(t, err)
	assert.Equal(t, 100.0, liters)
}

func TestListNewestFirst(t *testing.T) {
	repo := NewSQLiteRequisitionRepo(newTestStore(t))

	for _, placa := range []string{"AAA1A11", "BBB2B22"} {
		_, err := repo.Insert(&models.Requisition{Placa: placa, Status: "Enviada"})
		require.NoError(t, err)
	}

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "BBB2B22", list[0].Placa)
}

func TestVehicleUpsertLastWriteWins(t *testing.T) {
	repo := NewSQLiteVehicleRepo(newTestStore(t))

	require.NoError(t, repo.Upsert(&models.Vehicle{Placa: "ABC1D23", Condutor: "João", Marca: "Volvo"}))
	require.NoError(t, repo.Upsert(&models.Vehicle{Placa: "ABC1D23", Condutor: "Maria", Marca: "Scania"}))

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Maria", list[0].Condutor)
	assert.Equal(t, "Scania", list[0].Marca)
}
