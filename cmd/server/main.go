package main

import (
	"fmt"
	"net/http"

	"fuelreq/config"
	"fuelreq/db"
	"fuelreq/db/postgres"
	"fuelreq/db/sqlite"
	"fuelreq/handlers"
	"fuelreq/repository"
	"fuelreq/routes"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()

	var reqRepo repository.RequisitionRepository
	var vehicleRepo repository.VehicleRepository

	switch db.DBType(cfg.DBType) {
	case db.SQLite:
		if err := db.RunMigrations(db.SQLite, cfg.SQLitePath, db.MigrationSource(db.SQLite)); err != nil {
			panic(err)
		}
		store := sqlite.NewSQLiteDB(cfg.SQLitePath)
		if err := store.Connect(); err != nil {
			panic(err)
		}
		defer store.Disconnect()

		reqRepo = repository.NewSQLiteRequisitionRepo(store.Conn)
		vehicleRepo = repository.NewSQLiteVehicleRepo(store.Conn)

	case db.Postgres:
		if err := db.RunMigrations(db.Postgres, cfg.PostgresURL, db.MigrationSource(db.Postgres)); err != nil {
			panic(err)
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		reqRepo = repository.NewPostgresRequisitionRepo(pg.Conn)
		vehicleRepo = repository.NewPostgresVehicleRepo(pg.Conn)

	default:
		panic("DB_TYPE not supported")
	}

	settingsStore := repository.NewSettingsStore(cfg.SettingsPath)
	pdfRepo := repository.NewPDFRepository(reqRepo, settingsStore)

	// Handlers
	reqHandler := &handlers.RequisitionHandler{
		Repo:         reqRepo,
		Vehicles:     vehicleRepo,
		Settings:     settingsStore,
		PDFRepo:      pdfRepo,
		SavePath:     cfg.PDFSavePath,
		TemplatePath: cfg.TemplatePath,
		Empresa:      cfg.Empresa,
	}
	vehicleHandler := &handlers.VehicleHandler{Repo: vehicleRepo}
	dashboardHandler := &handlers.DashboardHandler{Repo: reqRepo}
	settingsHandler := &handlers.SettingsHandler{Store: settingsStore}
	bulkHandler := &handlers.BulkHandler{Repo: reqRepo, Vehicles: vehicleRepo, Settings: settingsStore}
	screenHandler := &handlers.ScreenHandler{Session: handlers.NewScreenSession()}

	routes.SetupRoutes(reqHandler, vehicleHandler, dashboardHandler, settingsHandler, bulkHandler, screenHandler)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		panic(err)
	}
}
