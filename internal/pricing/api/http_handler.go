package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
	"github.com/tarikuzuma/ShelfSmart/internal/pricing/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/pricing/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/pricing/service"
)

type PriceHandler struct {
	priceService service.PriceService
}

func NewPriceHandler(ps service.PriceService) *PriceHandler {
	return &PriceHandler{priceService: ps}
}

func (h *PriceHandler) RegisterRoutes(router *gin.RouterGroup) {
	priceRoutes := router.Group("/product-prices")
	{
		priceRoutes.POST("", h.CreatePricePoint)
		priceRoutes.GET("", h.ListPrices)
	}
	router.GET("/product-batch-discounted-price", h.GetTodayPrice)
}

func (h *PriceHandler) CreatePricePoint(c *gin.Context) {
	var req domain.CreatePricePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	point, err := h.priceService.CreatePricePoint(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, repository.ErrDuplicatePrice) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("CreatePricePoint Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create price point"})
		return
	}
	c.JSON(http.StatusCreated, point)
}

func (h *PriceHandler) ListPrices(c *gin.Context) {
	query := domain.PriceQuery{}
	if raw := c.Query("product_batch_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_batch_id parameter"})
			return
		}
		query.BatchID = id
	}
	for _, bound := range []struct {
		param string
		dst   *time.Time
	}{
		{"date_from", &query.DateFrom},
		{"date_to", &query.DateTo},
	} {
		if raw := c.Query(bound.param); raw != "" {
			d, err := time.Parse("2006-01-02", raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + bound.param + " parameter"})
				return
			}
			*bound.dst = d
		}
	}

	prices, err := h.priceService.ListPrices(c.Request.Context(), query)
	if err != nil {
		logger.Error("ListPrices Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prices"})
		return
	}
	c.JSON(http.StatusOK, prices)
}

// GetTodayPrice returns today's discounted price for a batch, falling back to
// the batch's base price when the daily job has not priced it yet.
func (h *PriceHandler) GetTodayPrice(c *gin.Context) {
	batchID, err := strconv.ParseInt(c.Query("product_batch_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_batch_id parameter"})
		return
	}
	price, err := h.priceService.EffectiveBatchPrice(c.Request.Context(), batchID, time.Now())
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
			return
		}
		logger.Error("GetTodayPrice Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve price"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"discounted_price": price})
}
