package plant

import (
	plantRepo "verdant/database/repository/plant"
	"verdant/models"
)

// PlantService defines plant collection operations. Every mutating operation
// verifies the caller owns the plant.
type PlantService interface {
	CreatePlant(userID string, plant *models.Plant) (*models.Plant, error)
	GetPlant(userID, plantID string) (*models.Plant, error)
	ListPlants(userID string) ([]models.Plant, error)
	UpdatePlant(userID, plantID string, req models.PlantUpdateRequest) (*models.Plant, error)
	DeletePlant(userID, plantID string) error
}

// DefaultPlantService is the production implementation.
type DefaultPlantService struct {
	Repo plantRepo.PlantRepository
}
