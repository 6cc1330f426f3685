package plant

import (
	"fmt"

	"verdant/models"
	"verdant/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePlant adds a plant to the caller's collection.
func (s *DefaultPlantService) CreatePlant(userID string, plant *models.Plant) (*models.Plant, error) {
	if plant.Name == "" {
		return nil, fmt.Errorf("plant name is required")
	}

	plant.ID = uuid.NewString()
	plant.UserID = userID
	if err := s.Repo.Create(plant); err != nil {
		return nil, fmt.Errorf("failed to create plant: %w", err)
	}

	utils.GetLogger().Info("Plant created", zap.String("plantID", plant.ID), zap.String("userID", userID))
	return plant, nil
}

// GetPlant fetches a plant, enforcing ownership.
func (s *DefaultPlantService) GetPlant(userID, plantID string) (*models.Plant, error) {
	p, err := s.Repo.GetByID(plantID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("plant %s: %w", plantID, utils.ErrForbidden)
	}
	return p, nil
}

// ListPlants returns the caller's collection.
func (s *DefaultPlantService) ListPlants(userID string) ([]models.Plant, error) {
	plants, err := s.Repo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	return plants, nil
}

// UpdatePlant applies the provided fields, enforcing ownership.
func (s *DefaultPlantService) UpdatePlant(userID, plantID string, req models.PlantUpdateRequest) (*models.Plant, error) {
	p, err := s.GetPlant(userID, plantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Species != nil {
		p.Species = *req.Species
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}
	if req.WateringDays != nil {
		p.WateringDays = *req.WateringDays
	}
	if req.SunlightNeeds != nil {
		p.SunlightNeeds = *req.SunlightNeeds
	}

	if err := s.Repo.Update(p); err != nil {
		return nil, fmt.Errorf("failed to update plant: %w", err)
	}
	return p, nil
}

// DeletePlant removes a plant, enforcing ownership.
func (s *DefaultPlantService) DeletePlant(userID, plantID string) error {
	if _, err := s.GetPlant(userID, plantID); err != nil {
		return err
	}
	if err := s.Repo.Delete(plantID); err != nil {
		return fmt.Errorf("failed to delete plant: %w", err)
	}
	utils.GetLogger().Info("Plant deleted", zap.String("plantID", plantID), zap.String("userID", userID))
	return nil
}
