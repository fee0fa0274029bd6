package repository

import "fuelreq/models"

type RequisitionRepository interface {
	Insert(req *models.Requisition) (int64, error)
	GetByID(id int64) (*models.Requisition, error)
	List() ([]*models.Requisition, error)
	UpdateCompletion(id int64, u *models.CompletionUpdate) error
	UpdateStatus(ids []int64, status string) error
	Stats() (*models.FleetStats, error)
	TopPlates(limit int) ([]models.PlateCount, error)
	RecentLiters(limit int) (float64, error)
}
