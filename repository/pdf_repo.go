package repository

import "fuelreq/models"

// PDFRepository bundles what the report generator needs: the requisition
// itself plus the settings document for the logo.
type PDFRepository struct {
	ReqRepo  RequisitionRepository
	Settings *SettingsStore
}

func NewPDFRepository(reqRepo RequisitionRepository, settings *SettingsStore) *PDFRepository {
	return &PDFRepository{
		ReqRepo:  reqRepo,
		Settings: settings,
	}
}

// GetRequisitionForPDF fetches a single requisition by ID for rendering.
func (r *PDFRepository) GetRequisitionForPDF(id int64) (*models.Requisition, error) {
	return r.ReqRepo.GetByID(id)
}

// GetLogoForPDF resolves the configured logo path, if any.
func (r *PDFRepository) GetLogoForPDF() string {
	settings := r.Settings.Load()
	return r.Settings.ResolveLogoPath(settings.LogoPath)
}
