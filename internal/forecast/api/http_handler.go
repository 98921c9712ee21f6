package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/forecast/service"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

type ForecastHandler struct {
	forecastService service.ForecastService
}

func NewForecastHandler(fs service.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastService: fs}
}

func (h *ForecastHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/forecast/products/:id", h.ForecastProduct)
}

func (h *ForecastHandler) ForecastProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id parameter"})
		return
	}

	targetDate := time.Now().AddDate(0, 0, 1)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date parameter"})
			return
		}
		targetDate = parsed
	}

	forecast, err := h.forecastService.ForecastProduct(c.Request.Context(), productID, targetDate)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("ForecastProduct Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute forecast"})
		return
	}
	c.JSON(http.StatusOK, forecast)
}
