package handlers

import (
	"net/http"

	"verdant/middleware"
	"verdant/models"
	"verdant/services/intelligence"
	"verdant/services/plant"
	"verdant/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlantHandler exposes plant collection endpoints.
type PlantHandler struct {
	PlantService plant.PlantService
	Diagnosis    intelligence.DiagnosisService
}

func NewPlantHandler(svc plant.PlantService, diag intelligence.DiagnosisService) *PlantHandler {
	return &PlantHandler{PlantService: svc, Diagnosis: diag}
}

// CreatePlantHandler handles POST /api/plants.
func (h *PlantHandler) CreatePlantHandler(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var p models.Plant
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.PlantService.CreatePlant(userID, &p)
	if err != nil {
		utils.GetLogger().Error("Plant create failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListPlantsHandler handles GET /api/plants.
func (h *PlantHandler) ListPlantsHandler(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	plants, err := h.PlantService.ListPlants(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if plants == nil {
		plants = []models.Plant{}
	}
	c.JSON(http.StatusOK, plants)
}

// GetPlantHandler handles GET /api/plants/:id.
func (h *PlantHandler) GetPlantHandler(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	p, err := h.PlantService.GetPlant(userID, c.Param("id"))
	if err != nil {
		c.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdatePlantHandler handles PUT /api/plants/:id.
func (h *PlantHandler) UpdatePlantHandler(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.PlantUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.PlantService.UpdatePlant(userID, c.Param("id"), req)
	if err != nil {
		c.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePlantHandler handles DELETE /api/plants/:id.
func (h *PlantHandler) DeletePlantHandler(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.PlantService.DeletePlant(userID, c.Param("id")); err != nil {
		c.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plant deleted"})
}

// DiagnosePlantHandler handles POST /api/plants/:id/diagnose.
func (h *PlantHandler) DiagnosePlantHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if h.Diagnosis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "diagnosis service not configured"})
		return
	}

	var req struct {
		Symptoms string `json:"symptoms" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.PlantService.GetPlant(userID, c.Param("id"))
	if err != nil {
		c.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
		return
	}

	diag, err := h.Diagnosis.DiagnosePlant(c.Request.Context(), p, req.Symptoms)
	if err != nil {
		logger.Error("Diagnosis failed", zap.String("plantID", p.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "diagnosis failed, try again later"})
		return
	}
	c.JSON(http.StatusOK, diag)
}
