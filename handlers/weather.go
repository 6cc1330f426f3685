package handlers

import (
	"net/http"

	"verdant/services/weather"
	"verdant/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WeatherHandler exposes the weather passthrough endpoint.
type WeatherHandler struct {
	WeatherService weather.WeatherService
}

func NewWeatherHandler(svc weather.WeatherService) *WeatherHandler {
	return &WeatherHandler{WeatherService: svc}
}

// GetWeatherHandler handles GET /api/weather?city=.
func (h *WeatherHandler) GetWeatherHandler(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city query parameter is required"})
		return
	}

	report, err := h.WeatherService.GetWeather(c.Request.Context(), city)
	if err != nil {
		utils.GetLogger().Error("Weather fetch failed", zap.String("city", city), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "weather service unavailable"})
		return
	}
	c.JSON(http.StatusOK, report)
}
