package plantRepo

import "verdant/models"

// PlantRepository defines methods for plant data access.
type PlantRepository interface {
	// GetByID retrieves a plant by its unique ID.
	GetByID(id string) (*models.Plant, error)
	// GetByUser retrieves all plants owned by the given user.
	GetByUser(userID string) ([]models.Plant, error)
	// Create inserts a new plant record.
	Create(plant *models.Plant) error
	// Update modifies an existing plant record.
	Update(plant *models.Plant) error
	// Delete removes a plant record by its ID.
	Delete(id string) error
}
