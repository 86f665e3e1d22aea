package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/atauni/internal/app/models/dto"
	"github.com/yigit/atauni/internal/app/services"
	"github.com/yigit/atauni/internal/middleware"
)

// WeatherController serves the campus weather widget
type WeatherController struct {
	weatherService services.WeatherService
	logger         zerolog.Logger
}

// NewWeatherController creates a new WeatherController
func NewWeatherController(weatherService services.WeatherService, logger zerolog.Logger) *WeatherController {
	return &WeatherController{
		weatherService: weatherService,
		logger:         logger,
	}
}

// GetWeather returns current conditions for a coordinate
// @Summary Current weather
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} dto.APIResponse{data=dto.WeatherResponse}
// @Failure 502 {object} dto.ErrorResponse "Weather service error"
// @Failure 504 {object} dto.ErrorResponse "Weather service timed out"
// @Router /weather [get]
func (c *WeatherController) GetWeather(ctx *gin.Context) {
	var q dto.WeatherQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	resp, err := c.weatherService.Current(ctx.Request.Context(), *q.Lat, *q.Lon)
	if err != nil {
		c.logger.Warn().Err(err).Float64("lat", *q.Lat).Float64("lon", *q.Lon).Msg("Weather lookup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
