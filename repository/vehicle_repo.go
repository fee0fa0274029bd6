package repository

import "fuelreq/models"

// VehicleRepository is the cadastros registry. Upsert is keyed by plate,
// last write wins; the registry never deletes.
type VehicleRepository interface {
	Upsert(v *models.Vehicle) error
	List() ([]*models.Vehicle, error)
}
