package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"fuelreq/utils"
)

type Config struct {
	DBType       string
	SQLitePath   string
	PostgresURL  string
	Port         string
	SettingsPath string
	PDFSavePath  string
	TemplatePath string
	Empresa      string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		DBType:       os.Getenv("DB_TYPE"),
		SQLitePath:   os.Getenv("SQLITE_PATH"),
		PostgresURL:  os.Getenv("POSTGRES_URL"),
		Port:         os.Getenv("PORT"),
		SettingsPath: os.Getenv("SETTINGS_PATH"),
		PDFSavePath:  os.Getenv("PDF_SAVE_PATH"),
		TemplatePath: os.Getenv("TEMPLATE_PATH"),
		Empresa:      os.Getenv("EMPRESA"),
	}
	if cfg.DBType == "" {
		cfg.DBType = "sqlite"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "abastecimentos.db"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = "settings.json"
	}
	if cfg.PDFSavePath == "" {
		cfg.PDFSavePath = "./pdfs"
	}
	if cfg.TemplatePath == "" {
		cfg.TemplatePath = utils.DefaultTemplatePath
	}
	if cfg.Empresa == "" {
		cfg.Empresa = "Frango Americano"
	}
	return cfg
}
