package intelligence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"verdant/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiDiagnosisService implements DiagnosisService on the Gemini API.
type GeminiDiagnosisService struct {
	model *genai.GenerativeModel
}

func NewGeminiDiagnosisService(apiKey string) (*GeminiDiagnosisService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiDiagnosisService{model: model}, nil
}

// DiagnosePlant asks the model for a likely condition and care advice.
func (g *GeminiDiagnosisService) DiagnosePlant(ctx context.Context, plant *models.Plant, symptoms string) (*models.PlantDiagnosis, error) {
	prompt := buildDiagnosisPrompt(plant, symptoms)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	details := sb.String()
	return &models.PlantDiagnosis{
		PlantID:     plant.ID,
		Condition:   firstLine(details),
		Details:     details,
		GeneratedAt: time.Now(),
	}, nil
}

func buildDiagnosisPrompt(plant *models.Plant, symptoms string) string {
	var sb strings.Builder
	sb.WriteString("You are a plant pathologist. Diagnose the most likely condition and give concise care advice.\n")
	fmt.Fprintf(&sb, "Plant: %s", plant.Name)
	if plant.Species != "" {
		fmt.Fprintf(&sb, " (%s)", plant.Species)
	}
	sb.WriteString("\n")
	if plant.Location != "" {
		fmt.Fprintf(&sb, "Kept: %s\n", plant.Location)
	}
	fmt.Fprintf(&sb, "Reported symptoms: %s\n", symptoms)
	sb.WriteString("Start your answer with a one-line condition name.")
	return sb.String()
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}
