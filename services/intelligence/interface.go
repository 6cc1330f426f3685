package intelligence

import (
	"context"

	"verdant/models"
)

// DiagnosisService produces a disease diagnosis for a plant from the owner's
// description of its symptoms.
type DiagnosisService interface {
	DiagnosePlant(ctx context.Context, plant *models.Plant, symptoms string) (*models.PlantDiagnosis, error)
}
